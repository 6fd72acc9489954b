package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/courtside/courtside-data/internal/provider"
	"github.com/courtside/courtside-data/internal/provider/bref"
)

const testURL = "https://example.test/leagues/NBA_2024_per_game.html"

type fakeFetcher struct {
	html string
	err  error
	urls []string
}

func (f *fakeFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

type fakeStore struct {
	err     error
	tables  []string
	records []*provider.RecordSet
}

func (s *fakeStore) Replace(ctx context.Context, table string, rs *provider.RecordSet) (int64, error) {
	s.tables = append(s.tables, table)
	s.records = append(s.records, rs)
	if s.err != nil {
		return 0, s.err
	}
	return int64(rs.Len()), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const pipelineHTML = `<table>
<thead><tr><th>Rk</th><th>Player</th><th>Tm</th><th>G</th><th>PTS</th></tr></thead>
<tbody>
<tr><th>1</th><td>A. Guard</td><td>AAA</td><td>70</td><td>25.1</td></tr>
<tr class="thead"><th>Rk</th><th>Player</th><th>Tm</th><th>G</th><th>PTS</th></tr>
<tr><th>2</th><td> B. Wing </td><td>BBB</td><td>64</td><td></td></tr>
</tbody>
</table>`

func TestSeedPerGame(t *testing.T) {
	fetcher := &fakeFetcher{html: pipelineHTML}
	store := &fakeStore{}

	result := SeedPerGame(context.Background(), fetcher, store, testURL, "player_stats", discardLogger())

	if result.Failed() {
		t.Fatalf("run failed: %v", result.Err)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != testURL {
		t.Errorf("fetched %v, want one call to %s", fetcher.urls, testURL)
	}
	if result.RowsExtracted != 3 {
		t.Errorf("RowsExtracted = %d, want 3", result.RowsExtracted)
	}
	if result.HeaderRowsDropped != 1 {
		t.Errorf("HeaderRowsDropped = %d, want 1", result.HeaderRowsDropped)
	}
	if result.RowsPadded != 1 || result.RowsTruncated != 0 {
		t.Errorf("padded/truncated = %d/%d, want 1/0", result.RowsPadded, result.RowsTruncated)
	}
	if result.Columns != 5 {
		t.Errorf("Columns = %d, want 5", result.Columns)
	}
	if result.RowsWritten != 2 {
		t.Errorf("RowsWritten = %d, want 2", result.RowsWritten)
	}
	// The minimal header carries only G and PTS of the tracked stats.
	if len(result.MissingColumns) != 23 {
		t.Errorf("MissingColumns reports %d, want 23", len(result.MissingColumns))
	}

	if len(store.tables) != 1 || store.tables[0] != "player_stats" {
		t.Fatalf("store received %v, want one replace of player_stats", store.tables)
	}
	rs := store.records[0]
	if got, _ := rs.Value(1, "Player_Name"); got != "B. Wing" {
		t.Errorf("Player_Name = %q, want trimmed \"B. Wing\"", got)
	}
	if got, _ := rs.Value(1, "Points_Per_Game"); got != 0.0 {
		t.Errorf("Points_Per_Game = %v, want coerced 0", got)
	}
}

func TestSeedPerGameFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: %s returned 503", bref.ErrFetchFailed, testURL)}
	store := &fakeStore{}

	result := SeedPerGame(context.Background(), fetcher, store, testURL, "player_stats", discardLogger())

	if !result.Failed() {
		t.Fatal("run succeeded despite fetch failure")
	}
	if !errors.Is(result.Err, bref.ErrFetchFailed) {
		t.Errorf("Err = %v, want ErrFetchFailed", result.Err)
	}
	if len(store.tables) != 0 {
		t.Error("persistence ran after a fetch failure")
	}
	if result.RowsExtracted != 0 || result.RowsWritten != 0 {
		t.Errorf("counters advanced on failed run: %s", result.Summary())
	}
}

func TestSeedPerGameExtractFailure(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html><body><p>Down for maintenance.</p></body></html>"}
	store := &fakeStore{}

	result := SeedPerGame(context.Background(), fetcher, store, testURL, "player_stats", discardLogger())

	if !errors.Is(result.Err, bref.ErrSchemaNotFound) {
		t.Errorf("Err = %v, want ErrSchemaNotFound", result.Err)
	}
	if len(store.tables) != 0 {
		t.Error("persistence ran after an extract failure")
	}
}

func TestSeedPerGameNormalizeFailure(t *testing.T) {
	html := `<table><thead><tr><th>Rk</th><th>Tm</th></tr></thead>
<tbody><tr><th>1</th><td>AAA</td></tr></tbody></table>`
	fetcher := &fakeFetcher{html: html}
	store := &fakeStore{}

	result := SeedPerGame(context.Background(), fetcher, store, testURL, "player_stats", discardLogger())

	if !errors.Is(result.Err, bref.ErrMissingRequiredField) {
		t.Errorf("Err = %v, want ErrMissingRequiredField", result.Err)
	}
	if len(store.tables) != 0 {
		t.Error("persistence ran after a normalize failure")
	}
}

func TestSeedPerGamePersistFailure(t *testing.T) {
	fetcher := &fakeFetcher{html: pipelineHTML}
	store := &fakeStore{err: errors.New("connection reset")}

	result := SeedPerGame(context.Background(), fetcher, store, testURL, "player_stats", discardLogger())

	if !result.Failed() {
		t.Fatal("run succeeded despite persist failure")
	}
	if !strings.Contains(result.Err.Error(), "replace table player_stats") {
		t.Errorf("Err = %v, want replace-stage context", result.Err)
	}
	if result.RowsWritten != 0 {
		t.Errorf("RowsWritten = %d after failed persist", result.RowsWritten)
	}
}

func TestResultSummary(t *testing.T) {
	r := Result{
		RowsExtracted:     25,
		HeaderRowsDropped: 1,
		RowsPadded:        1,
		MissingColumns:    []string{"PTS"},
		Columns:           31,
		RowsWritten:       24,
	}
	want := "extracted=25 dropped=1 padded=1 truncated=0 missing_cols=1 columns=31 written=24 errors=0"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if r.Failed() {
		t.Error("Failed() = true without error")
	}
}
