package bref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/courtside/courtside-data/internal/provider"
)

// ErrMissingRequiredField marks a header schema that lacks the identity or
// rank column the normalizer keys on.
var ErrMissingRequiredField = errors.New("required column missing")

const (
	rankHeader   = "Rk"
	playerHeader = "Player"
)

// --------------------------------------------------------------------------
// Fixed per-game schema
// --------------------------------------------------------------------------

// numericStatHeaders is the fixed list of source columns coerced to
// numbers. Deliberately not derived from the page header — see
// MissingStatColumns for the drift diagnostic.
var numericStatHeaders = []string{
	"G", "GS", "MP", "FG", "FGA", "FG%", "3P", "3PA", "3P%",
	"2P", "2PA", "2P%", "eFG%", "FT", "FTA", "FT%",
	"ORB", "DRB", "TRB", "AST", "STL", "BLK", "TOV", "PF", "PTS",
}

// canonicalNames maps source headers to stable descriptive field names.
// Headers not listed pass through unchanged.
var canonicalNames = map[string]string{
	"Rk":     "Rank",
	"Player": "Player_Name",
	"Age":    "Player_Age",
	"Tm":     "Team_Name",
	"Pos":    "Position",
	"G":      "Games_Played",
	"GS":     "Games_Started",
	"MP":     "Minutes_Played",
	"FG":     "Field_Goals_Made",
	"FGA":    "Field_Goals_Attempted",
	"FG%":    "Field_Goal_Percentage",
	"3P":     "Three_Pointers_Made",
	"3PA":    "Three_Pointers_Attempted",
	"3P%":    "Three_Point_Percentage",
	"2P":     "Two_Pointers_Made",
	"2PA":    "Two_Pointers_Attempted",
	"2P%":    "Two_Point_Percentage",
	"eFG%":   "Effective_Field_Goal_Percentage",
	"FT":     "Free_Throws_Made",
	"FTA":    "Free_Throws_Attempted",
	"FT%":    "Free_Throw_Percentage",
	"ORB":    "Offensive_Rebounds",
	"DRB":    "Defensive_Rebounds",
	"TRB":    "Total_Rebounds",
	"AST":    "Assists",
	"STL":    "Steals",
	"BLK":    "Blocks",
	"TOV":    "Turnovers",
	"PF":     "Personal_Fouls",
	"PTS":    "Points_Per_Game",
}

var numericStatSet = func() map[string]bool {
	m := make(map[string]bool, len(numericStatHeaders))
	for _, h := range numericStatHeaders {
		m[h] = true
	}
	return m
}()

// CanonicalFieldName returns the canonical name for a source header, or the
// header itself when it has no mapping. Applying it to an already-canonical
// name is a no-op.
func CanonicalFieldName(header string) string {
	if canonical, ok := canonicalNames[header]; ok {
		return canonical
	}
	return header
}

// CanonicalFieldNames returns every canonical field name the fixed per-game
// schema can produce, in source column order. Used by the API to whitelist
// sortable columns.
func CanonicalFieldNames() []string {
	ordered := []string{rankHeader, playerHeader, "Pos", "Age", "Tm"}
	ordered = append(ordered, numericStatHeaders...)
	names := make([]string, len(ordered))
	for i, h := range ordered {
		names[i] = canonicalNames[h]
	}
	return names
}

// MissingStatColumns returns the tracked numeric columns absent from a
// header schema. A non-empty result means the source renamed or removed
// columns and the affected stats would be written as all zeroes.
func MissingStatColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, h := range numericStatHeaders {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

// --------------------------------------------------------------------------
// Normalization
// --------------------------------------------------------------------------

// NormalizePerGame converts a raw per-game table into the canonical record
// set: trims the player-name field, drops the repeated-header rows the
// source embeds every ~20 rows, coerces the tracked stat columns to numbers
// (unparseable cells become zero, never an error) and renames every known
// header to its canonical field name.
func NormalizePerGame(t *Table) (*provider.RecordSet, error) {
	rankIdx, playerIdx := -1, -1
	for i, h := range t.Headers {
		switch h {
		case rankHeader:
			if rankIdx < 0 {
				rankIdx = i
			}
		case playerHeader:
			if playerIdx < 0 {
				playerIdx = i
			}
		}
	}
	if rankIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingRequiredField, rankHeader)
	}
	if playerIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingRequiredField, playerHeader)
	}

	columns := make([]provider.Column, len(t.Headers))
	for i, h := range t.Headers {
		kind := provider.Text
		if numericStatSet[h] {
			kind = provider.Numeric
		}
		columns[i] = provider.Column{Source: h, Name: CanonicalFieldName(h), Kind: kind}
	}

	rs := &provider.RecordSet{Columns: columns}
	for _, raw := range t.Rows {
		// Repeated-header artifact: the rank cell carries the header
		// label instead of a rank.
		if raw[rankIdx] == rankHeader {
			continue
		}

		row := make([]interface{}, len(columns))
		for i, col := range columns {
			if col.Kind == provider.Numeric {
				v, _ := provider.ParseNumber(raw[i])
				row[i] = v
				continue
			}
			cell := raw[i]
			if i == playerIdx {
				cell = strings.TrimSpace(cell)
			}
			row[i] = cell
		}
		rs.Rows = append(rs.Rows, row)
	}

	return rs, nil
}
