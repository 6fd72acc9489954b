// Package provider defines the canonical tabular types page scrapers
// normalize into. These types are the contract between a provider and the
// seed runner — providers output a RecordSet, the seeder writes it to
// Postgres. Adding a provider means producing these types; the seed runner
// never changes.
package provider

import "strconv"

// Kind is the semantic type of a canonical column.
type Kind int

const (
	// Text columns carry cell contents verbatim (player name, team code).
	Text Kind = iota
	// Numeric columns carry float64 values; unparseable cells are coerced
	// to zero during normalization.
	Numeric
)

// String returns the kind name used in diagnostics and the meta endpoint.
func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// MarshalJSON encodes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// Column describes one canonical output column.
type Column struct {
	Source string `json:"source"` // header text as scraped
	Name   string `json:"name"`   // canonical field name
	Kind   Kind   `json:"kind"`
}

// RecordSet is the complete ordered set of typed rows produced by one
// scrape, the unit handed to persistence. Every row is aligned positionally
// with Columns: text columns hold string values, numeric columns float64.
// A RecordSet fully supersedes whatever the destination table held before.
type RecordSet struct {
	Columns []Column
	Rows    [][]interface{}
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// ColumnIndex returns the position of the named canonical column, or -1.
func (rs *RecordSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the canonical column names in output order.
func (rs *RecordSet) ColumnNames() []string {
	names := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		names[i] = c.Name
	}
	return names
}

// Value returns the value at row i for the named canonical column.
func (rs *RecordSet) Value(i int, name string) (interface{}, bool) {
	col := rs.ColumnIndex(name)
	if col < 0 || i < 0 || i >= len(rs.Rows) {
		return nil, false
	}
	return rs.Rows[i][col], true
}
