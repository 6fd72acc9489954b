// Command ingest is the Courtside data ingestion CLI. Invoked with no
// arguments it performs one full scrape-and-replace run.
//
// Usage:
//
//	courtside-ingest
//	courtside-ingest seed --season 2023
//	courtside-ingest check
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/courtside/courtside-data/internal/config"
	"github.com/courtside/courtside-data/internal/db"
	"github.com/courtside/courtside-data/internal/provider/bref"
	"github.com/courtside/courtside-data/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "courtside-ingest",
		Short: "NBA per-game stats ingestion CLI",
		Args:  cobra.NoArgs,
		// Bare invocation performs exactly one run.
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedOnce(0)
		},
	}

	root.AddCommand(seedCmd())
	root.AddCommand(checkCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Scrape per-game stats and replace the stats table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedOnce(season)
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (defaults to SEASON env)")
	return cmd
}

// seedOnce performs one full pipeline run. A positive season overrides the
// SEASON env value.
func seedOnce(season int) error {
	return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
		if season > 0 {
			cfg.Season = season
		}
		pageURL := sourceURL(cfg)

		client := bref.NewClient(cfg.ScrapeTimeout, cfg.UserAgent, logger)
		store := seed.NewStore(pool.Pool)

		start := time.Now()
		result := seed.SeedPerGame(ctx, client, store, pageURL, cfg.StatsTable, logger)
		logger.Info("Seed finished",
			"season", cfg.Season,
			"duration", time.Since(start).Round(time.Millisecond),
			"summary", result.Summary())
		if result.Failed() {
			return result.Err
		}
		return nil
	})
}

// --------------------------------------------------------------------------
// check command
// --------------------------------------------------------------------------

// checkCmd fetches and parses the page without touching the database, and
// exits non-zero when tracked stat columns are missing from the header.
func checkCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch the page and report schema drift without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if season > 0 {
				cfg.Season = season
			}
			pageURL := sourceURL(cfg)

			client := bref.NewClient(cfg.ScrapeTimeout, cfg.UserAgent, logger)
			html, err := client.FetchPage(ctx, pageURL)
			if err != nil {
				return err
			}
			table, err := bref.ParseTable(html)
			if err != nil {
				return err
			}

			missing := bref.MissingStatColumns(table.Headers)
			logger.Info("Schema check",
				"url", pageURL,
				"headers", len(table.Headers),
				"rows", len(table.Rows),
				"padded", table.Padded,
				"truncated", table.Truncated,
				"missing_columns", len(missing))
			for _, col := range missing {
				logger.Warn("Tracked column missing from page", "column", col)
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d tracked columns missing from %s", len(missing), pageURL)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (defaults to SEASON env)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// sourceURL resolves the page to scrape: SOURCE_URL wins, otherwise the
// season-derived basketball-reference URL.
func sourceURL(cfg *config.Config) string {
	if cfg.SourceURL != "" {
		return cfg.SourceURL
	}
	return bref.PerGameURL(cfg.Season)
}

// runSeed handles config loading, DB connection, and context cancellation.
func runSeed(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
