package bref

import (
	"errors"
	"os"
	"testing"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/per_game_sample.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(b)
}

func TestParseTableFixture(t *testing.T) {
	table, err := ParseTable(loadFixture(t))
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}

	if len(table.Headers) != 31 {
		t.Fatalf("got %d headers, want 31", len(table.Headers))
	}
	if table.Headers[0] != "Rk" || table.Headers[1] != "Player" || table.Headers[30] != "Awards" {
		t.Errorf("unexpected header boundaries: %q, %q, %q",
			table.Headers[0], table.Headers[1], table.Headers[30])
	}

	if len(table.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(table.Rows))
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Headers) {
			t.Errorf("row %d has %d fields, want %d", i, len(row), len(table.Headers))
		}
	}

	// The embedded repeated-header row carries only its row-header cell,
	// so it is padded out to the header width.
	if table.Padded != 1 || table.Truncated != 0 {
		t.Errorf("Padded/Truncated = %d/%d, want 1/0", table.Padded, table.Truncated)
	}
	if table.Rows[3][0] != "Rk" {
		t.Errorf("artifact row rank cell = %q, want \"Rk\"", table.Rows[3][0])
	}

	// Cell text is verbatim: anchors flattened, whitespace kept.
	if table.Rows[0][1] != "Precious Achiuwa" {
		t.Errorf("row 0 player = %q", table.Rows[0][1])
	}
	if table.Rows[2][1] != " Ochai Agbaji " {
		t.Errorf("row 2 player = %q, want untrimmed text", table.Rows[2][1])
	}
	if table.Rows[1][29] != "19.3" || table.Rows[1][30] != "AS" {
		t.Errorf("row 1 tail cells = %q, %q", table.Rows[1][29], table.Rows[1][30])
	}
	// Empty percentage cells stay empty strings.
	if table.Rows[2][13] != "" || table.Rows[2][20] != "" {
		t.Errorf("row 2 empty cells = %q, %q, want empty", table.Rows[2][13], table.Rows[2][20])
	}
}

func TestParseTableRaggedRows(t *testing.T) {
	html := `<table>
		<thead><tr><th>Rk</th><th>Player</th><th>Tm</th><th>PTS</th></tr></thead>
		<tbody>
			<tr><th>1</th><td>A. Exact</td><td>AAA</td><td>10.0</td></tr>
			<tr><th>2</th><td>B. Short</td></tr>
			<tr><th>3</th><td>C. Long</td><td>CCC</td><td>12.5</td><td>extra</td></tr>
			<tr><td>D. Headless</td><td>DDD</td><td>3.1</td></tr>
		</tbody>
	</table>`

	table, err := ParseTable(html)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}

	if len(table.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(table.Rows))
	}
	for i, row := range table.Rows {
		if len(row) != 4 {
			t.Errorf("row %d has %d fields, want 4", i, len(row))
		}
	}
	if table.Padded != 1 || table.Truncated != 1 {
		t.Errorf("Padded/Truncated = %d/%d, want 1/1", table.Padded, table.Truncated)
	}

	// Short rows fill with empty cells, long rows drop the excess.
	if table.Rows[1][2] != "" || table.Rows[1][3] != "" {
		t.Errorf("short row tail = %q, %q, want empty", table.Rows[1][2], table.Rows[1][3])
	}
	if table.Rows[2][3] != "12.5" {
		t.Errorf("long row last field = %q, want \"12.5\"", table.Rows[2][3])
	}

	// A row with no row-header cell gets an empty first field.
	if table.Rows[3][0] != "" || table.Rows[3][1] != "D. Headless" {
		t.Errorf("headless row = %q, %q", table.Rows[3][0], table.Rows[3][1])
	}
}

func TestParseTableNoHeader(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no rows at all", `<html><body><p>Down for maintenance.</p></body></html>`},
		{"first row has no header cells", `<table><thead><tr><td>1</td><td>x</td></tr></thead><tbody><tr><td>2</td></tr></tbody></table>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(tt.html)
			if !errors.Is(err, ErrSchemaNotFound) {
				t.Errorf("ParseTable() error = %v, want ErrSchemaNotFound", err)
			}
		})
	}
}

func TestParseTableNoBody(t *testing.T) {
	html := `<table><thead><tr><th>Rk</th><th>Player</th></tr></thead></table>`
	_, err := ParseTable(html)
	if !errors.Is(err, ErrBodyNotFound) {
		t.Errorf("ParseTable() error = %v, want ErrBodyNotFound", err)
	}
}

func TestParseTableEmptyBody(t *testing.T) {
	html := `<table><thead><tr><th>Rk</th></tr></thead><tbody></tbody></table>`
	table, err := ParseTable(html)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}
