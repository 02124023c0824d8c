// Package client provides commands that talk to a running forms server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var (
	// Connection flags
	serverAddr string
	adminURL   string
	timeout    time.Duration

	// Join flags
	joinAuthoritative bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for a running forms server",
	Long:  `Client commands check server health and drive players through the admin API.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().StringVar(&adminURL, "admin", "http://localhost:8080", "Admin API base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(healthCmd)
	ClientCmd.AddCommand(getPlayerCmd)
	ClientCmd.AddCommand(snapshotsCmd)
	ClientCmd.AddCommand(joinCmd)
	ClientCmd.AddCommand(leaveCmd)
	ClientCmd.AddCommand(transformCmd)
	ClientCmd.AddCommand(powerDownCmd)

	joinCmd.Flags().BoolVar(&joinAuthoritative, "authoritative", true, "Join as the player's owner")
}

var healthCmd = &cobra.Command{
	Use:   "health [service]",
	Short: "Check the gRPC health service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		conn, err := createConnection()
		if err != nil {
			return err
		}
		defer func() {
			_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		req := &grpc_health_v1.HealthCheckRequest{}
		if len(args) == 1 {
			req.Service = args[0]
		}
		resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, req)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		fmt.Printf("%s: %s\n", serverAddr, resp.GetStatus())
		return nil
	},
}

var getPlayerCmd = &cobra.Command{
	Use:   "player [entity-id]",
	Short: "Show a stored player record",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return adminCall(http.MethodGet, "/v1/players/"+args[0], nil)
	},
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Show live snapshots of every player in the session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return adminCall(http.MethodGet, "/v1/snapshots", nil)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join [entity-id]",
	Short: "Add a player to the server's session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]bool{"authoritative": joinAuthoritative})
		if err != nil {
			return err
		}
		return adminCall(http.MethodPost, "/v1/players/"+args[0]+"/join", body)
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave [entity-id]",
	Short: "Remove a player from the session, saving the record when owned",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return adminCall(http.MethodPost, "/v1/players/"+args[0]+"/leave", nil)
	},
}

var transformCmd = &cobra.Command{
	Use:   "transform [entity-id] [form]",
	Short: "Request a form for a player",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{"form": args[1]})
		if err != nil {
			return err
		}
		return adminCall(http.MethodPost, "/v1/players/"+args[0]+"/transform", body)
	},
}

var powerDownCmd = &cobra.Command{
	Use:   "power-down [entity-id]",
	Short: "Clear a player's form",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return adminCall(http.MethodPost, "/v1/players/"+args[0]+"/power-down", nil)
	},
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// adminCall sends a request to the admin API and prints the response body
func adminCall(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(adminURL, "/")+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("admin request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("admin request returned %s", resp.Status)
	}
	return nil
}
