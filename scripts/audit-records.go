package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

const (
	recordKeyPattern = "forms:player:*"
	recordKeyPrefix  = "forms:player:"
	recordIndexKey   = "forms:players"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	registry := engine.DefaultRegistry()

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Auditing player records...")

	iter := client.Scan(ctx, 0, recordKeyPattern, 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		problems := audit(registry, key, data)
		if len(problems) == 0 {
			continue
		}

		fmt.Printf("✗ %s\n", key)
		for _, p := range problems {
			fmt.Printf("    %s\n", p)
		}
		corruptedKeys = append(corruptedKeys, key)

		indexed, err := client.SIsMember(ctx, recordIndexKey, strings.TrimPrefix(key, recordKeyPrefix)).Result()
		if err == nil && !indexed {
			fmt.Printf("    missing from %s\n", recordIndexKey)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d records, found %d with problems\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted records found!")
		return
	}

	fmt.Print("\nDo you want to DELETE these records? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		pipe := client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.SRem(ctx, recordIndexKey, strings.TrimPrefix(key, recordKeyPrefix))
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// audit lists everything wrong with one stored record
func audit(registry *engine.Registry, key, data string) []string {
	var record entities.PlayerRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return []string{"invalid JSON: " + err.Error()}
	}

	var problems []string
	if want := strings.TrimPrefix(key, recordKeyPrefix); record.EntityID != want {
		problems = append(problems, fmt.Sprintf("entity_id %q does not match key", record.EntityID))
	}
	for form := range record.Achievements {
		if _, ok := registry.Get(form); !ok {
			problems = append(problems, fmt.Sprintf("achievement for unknown form %q", form))
		}
	}
	for track, progress := range record.Mastery {
		if _, ok := registry.Get(track); !ok {
			problems = append(problems, fmt.Sprintf("mastery for unknown form %q", track))
		}
		if progress.Level < 0 || progress.Level > 1 {
			problems = append(problems, fmt.Sprintf("mastery %q level %.3f outside [0, 1]", track, progress.Level))
		}
		if progress.Timer < 0 {
			problems = append(problems, fmt.Sprintf("mastery %q timer %d is negative", track, progress.Timer))
		}
	}
	return problems
}
