// Package importer loads auction list exports into the players table.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ajeebtech/playerlens/internal/retry"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

const (
	DefaultChunkSize = 100
	DefaultWorkers   = 4
)

// Upserter writes a batch of players. *db.Client satisfies it.
type Upserter interface {
	UpsertPlayers(ctx context.Context, players []models.Player) (int64, error)
}

// Options configures an import run
type Options struct {
	ChunkSize int
	Workers   int
	DryRun    bool
	Retry     *retry.RetryPolicy
	Logger    *slog.Logger
}

// Report summarizes an import run
type Report struct {
	RunID        string
	Players      int
	Chunks       int
	FailedChunks int
	Upserted     int64
	Duration     time.Duration
}

// Import upserts players in chunks on a bounded worker pool. Each chunk is
// retried on its own; the run reports an error when any chunk gives up.
func Import(ctx context.Context, up Upserter, players []models.Player, opts Options) (*Report, error) {
	start := time.Now()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Retry == nil {
		opts.Retry = retry.NewRetryPolicy(3, 500*time.Millisecond)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Players: len(players),
		Chunks:  (len(players) + opts.ChunkSize - 1) / opts.ChunkSize,
	}
	logger := opts.Logger.With(slog.String("run_id", report.RunID))

	logger.Info("import started",
		slog.Int("players", report.Players),
		slog.Int("chunks", report.Chunks),
		slog.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun || len(players) == 0 {
		report.Duration = time.Since(start)
		return report, nil
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	recordFailure := func(chunk int, err error) {
		logger.Error("chunk failed", slog.Int("chunk", chunk), slog.String("error", err.Error()))
		mu.Lock()
		defer mu.Unlock()
		report.FailedChunks++
		if firstErr == nil {
			firstErr = err
		}
	}

	for i := 0; i < len(players); i += opts.ChunkSize {
		end := i + opts.ChunkSize
		if end > len(players) {
			end = len(players)
		}
		batch := players[i:end]
		chunk := i/opts.ChunkSize + 1

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			var written int64
			err := opts.Retry.Execute(ctx, func(attempt int) error {
				n, err := up.UpsertPlayers(ctx, batch)
				if err != nil {
					logger.Warn("chunk upsert failed",
						slog.Int("chunk", chunk),
						slog.Int("attempt", attempt),
						slog.String("error", err.Error()),
					)
					return err
				}
				written = n
				return nil
			})
			if err != nil {
				recordFailure(chunk, err)
				return
			}

			mu.Lock()
			report.Upserted += written
			mu.Unlock()
			logger.Info("chunk uploaded", slog.Int("chunk", chunk), slog.Int("rows", len(batch)))
		})
		if submitErr != nil {
			wg.Done()
			recordFailure(chunk, fmt.Errorf("submit chunk: %w", submitErr))
		}
	}

	wg.Wait()
	report.Duration = time.Since(start)

	logger.Info("import finished",
		slog.Int64("upserted", report.Upserted),
		slog.Int("failed_chunks", report.FailedChunks),
		slog.Duration("duration", report.Duration),
	)

	if firstErr != nil {
		return report, fmt.Errorf("%d of %d chunks failed: %w", report.FailedChunks, report.Chunks, firstErr)
	}
	return report, nil
}
