package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the form catalog",
	Long:  `Print every registered form with its branch, tier, prerequisite and aura.`,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
}

func runCatalog(_ *cobra.Command, _ []string) error {
	registry := engine.DefaultRegistry()

	if catalogJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.All())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tBRANCH\tTIER\tPREREQUISITE\tSOURCES\tAURA")
	for _, branch := range entities.Branches {
		for _, def := range registry.BranchMembers(branch) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%v\t%s\n",
				def.Key,
				def.DisplayName,
				def.Branch,
				def.Tier,
				orDash(string(def.Prerequisite)),
				def.Sources,
				def.Aura,
			)
		}
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
