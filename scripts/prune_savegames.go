package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Prunes savegames that have not been touched for a while. Run it from cron
// against the same database the server uses:
//
//	DATABASE_URL=postgres://... go run scripts/prune_savegames.go -older-than 720h
func main() {
	olderThan := flag.Duration("older-than", 30*24*time.Hour, "delete savegames not updated for this long")
	dryRun := flag.Bool("dry-run", false, "only report what would be deleted")
	flag.Parse()

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://monopoly@localhost:5432/monopoly?sslmode=disable"
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	cutoff := time.Now().Add(-*olderThan)
	fmt.Printf("Pruning savegames not updated since %s\n", cutoff.Format(time.RFC3339))

	if *dryRun {
		var count int64
		err := pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM savegames WHERE updated_at < $1", cutoff).Scan(&count)
		if err != nil {
			log.Fatalf("Failed to count stale savegames: %v", err)
		}
		fmt.Printf("Would delete %d savegames\n", count)
		return
	}

	tag, err := pool.Exec(ctx, "DELETE FROM savegames WHERE updated_at < $1", cutoff)
	if err != nil {
		log.Fatalf("Failed to delete stale savegames: %v", err)
	}
	fmt.Printf("Deleted %d savegames\n", tag.RowsAffected())
}
