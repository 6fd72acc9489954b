package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courtside/courtside-data/internal/provider"
	"github.com/courtside/courtside-data/internal/provider/bref"
)

// Fetcher supplies raw page HTML. Implemented by bref.Client.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// TableWriter replaces the destination table with a record set and returns
// the number of rows written. The replace must be atomic: on failure the
// previous contents survive. Implemented by Store.
type TableWriter interface {
	Replace(ctx context.Context, table string, rs *provider.RecordSet) (int64, error)
}

// SeedPerGame runs the pipeline once: fetch pageURL, extract the stats
// table, normalize it, and replace the destination table. The four stages
// run strictly in order and the first failure aborts the run — persistence
// never begins unless normalization fully succeeded.
func SeedPerGame(ctx context.Context, fetcher Fetcher, store TableWriter, pageURL, table string, logger *slog.Logger) Result {
	var result Result

	html, err := fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", pageURL, err)
		logger.Error("Fetch stage failed", "url", pageURL, "error", err)
		return result
	}

	raw, err := bref.ParseTable(html)
	if err != nil {
		result.Err = fmt.Errorf("extract table from %s: %w", pageURL, err)
		logger.Error("Extract stage failed", "url", pageURL, "error", err)
		return result
	}
	result.RowsExtracted = len(raw.Rows)
	result.RowsPadded = raw.Padded
	result.RowsTruncated = raw.Truncated
	if raw.Padded > 0 || raw.Truncated > 0 {
		logger.Warn("Ragged rows in source table",
			"padded", raw.Padded, "truncated", raw.Truncated)
	}

	// Schema drift check before coercion, so renamed or removed source
	// columns surface as a diagnostic instead of silently zeroed stats.
	result.MissingColumns = bref.MissingStatColumns(raw.Headers)
	if len(result.MissingColumns) > 0 {
		logger.Warn("Tracked stat columns missing from source header",
			"columns", result.MissingColumns)
	}

	records, err := bref.NormalizePerGame(raw)
	if err != nil {
		result.Err = fmt.Errorf("normalize rows: %w", err)
		logger.Error("Normalize stage failed", "url", pageURL, "error", err)
		return result
	}
	result.HeaderRowsDropped = result.RowsExtracted - records.Len()
	result.Columns = len(records.Columns)
	logger.Info("Normalized records",
		"rows", records.Len(),
		"columns", result.Columns,
		"header_rows_dropped", result.HeaderRowsDropped)

	written, err := store.Replace(ctx, table, records)
	if err != nil {
		result.Err = fmt.Errorf("replace table %s: %w", table, err)
		logger.Error("Persist stage failed", "table", table, "error", err)
		return result
	}
	result.RowsWritten = written

	logger.Info("Per-game seed complete", "table", table, "summary", result.Summary())
	return result
}
