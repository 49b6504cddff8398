package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajeebtech/playerlens/internal/db"
	"github.com/ajeebtech/playerlens/internal/importer"
	"github.com/ajeebtech/playerlens/internal/logging"
	"github.com/ajeebtech/playerlens/internal/retry"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "player-import",
		Usage: "Load the auction list CSV into the players table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "csv",
				Aliases: []string{"f"},
				Usage:   "Path to the players CSV",
				Value:   "scraper/players.csv",
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "Postgres DSN",
				EnvVars: []string{"PLAYERS_DSN"},
			},
			&cli.BoolFlag{
				Name:  "create-table",
				Usage: "Create the players table if it does not exist",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse and report without writing",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Usage: "Rows per upsert statement",
				Value: importer.DefaultChunkSize,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent upserts",
				Value: importer.DefaultWorkers,
			},
			&cli.IntFlag{
				Name:  "attempts",
				Usage: "Attempts per chunk before giving up",
				Value: 3,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: importAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func importAction(c *cli.Context) error {
	logger := logging.New(logging.Config{Level: c.String("log-level"), Format: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := c.String("csv")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := importer.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, s := range parsed.Skipped {
		logger.Warn("row skipped", slog.Int("line", s.Line), slog.String("reason", s.Reason))
	}
	fmt.Printf("✓ Parsed %d players from %s (%d rows skipped)\n", len(parsed.Players), path, len(parsed.Skipped))

	opts := importer.Options{
		ChunkSize: c.Int("chunk-size"),
		Workers:   c.Int("workers"),
		DryRun:    c.Bool("dry-run"),
		Retry:     retry.NewRetryPolicy(c.Int("attempts"), 500*time.Millisecond),
		Logger:    logger,
	}

	if opts.DryRun {
		report, err := importer.Import(ctx, nil, parsed.Players, opts)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Dry run: would upload %d players in %d chunks\n", report.Players, report.Chunks)
		return nil
	}

	dsn := c.String("dsn")
	if dsn == "" {
		return fmt.Errorf("--dsn or PLAYERS_DSN is required unless --dry-run is set")
	}

	client, err := db.NewClient(dsn)
	if err != nil {
		return err
	}
	defer client.Close()
	fmt.Println("✓ Connected to players DB")

	if c.Bool("create-table") {
		if err := client.EnsureSchema(ctx); err != nil {
			return err
		}
		fmt.Println("✓ Players table ready")
	}

	fmt.Printf("Uploading %d records to 'players' table...\n", len(parsed.Players))
	report, err := importer.Import(ctx, client, parsed.Players, opts)
	if report != nil {
		fmt.Printf("  run %s: %d rows upserted, %d/%d chunks failed in %s\n",
			report.RunID, report.Upserted, report.FailedChunks, report.Chunks, report.Duration.Round(time.Millisecond))
	}
	if err != nil {
		return err
	}

	fmt.Println("✓ Upload complete")
	return nil
}
