package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store/postgres"
)

//go:embed sql/*.sql
var migrations embed.FS

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	seed := flag.Bool("seed", false, "Load demo customers, invoices and revenue after the schema")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files := []string{"sql/schema.sql"}
	if *seed {
		files = append(files, "sql/seed.sql")
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, name := range files {
			body, err := migrations.ReadFile(name)
			if err != nil {
				logger.Fatalw("Failed to read migration", "file", name, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", name, body)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	for _, name := range files {
		body, err := migrations.ReadFile(name)
		if err != nil {
			logger.Fatalw("Failed to read migration", "file", name, "error", err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			logger.Fatalw("Failed to apply migration", "file", name, "error", err)
		}
		logger.Infow("Applied migration", "file", name)
	}

	fmt.Println("Migration process completed")
}
