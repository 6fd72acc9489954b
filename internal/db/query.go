package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ColumnInfo describes one column of the destination table.
type ColumnInfo struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// ListQuery filters and orders a player listing. Sort must already be
// validated against the canonical schema; Limit and Offset must be
// non-negative.
type ListQuery struct {
	Team   string
	Sort   string
	Desc   bool
	Limit  int
	Offset int
}

// TableColumns returns the destination table's columns in ordinal order.
// An empty result means the table does not exist yet.
func (p *Pool) TableColumns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := p.Query(ctx, "table_columns", table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// CountRows returns the destination table's row count.
func (p *Pool) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := p.QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return n, nil
}

// ListPlayers returns rows from the stats table as generic records,
// filtered and ordered per the query.
func (p *Pool) ListPlayers(ctx context.Context, table string, q ListQuery) ([]map[string]interface{}, error) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(pgx.Identifier{table}.Sanitize())

	var args []interface{}
	if q.Team != "" {
		args = append(args, q.Team)
		sb.WriteString(` WHERE "Team_Name" = $1`)
	}
	if q.Sort != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(pgx.Identifier{q.Sort}.Sanitize())
		if q.Desc {
			sb.WriteString(" DESC")
		}
	}
	fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", q.Limit, q.Offset)

	rows, err := p.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list players from %s: %w", table, err)
	}
	return scanRecords(rows)
}

// PlayerRows returns every stats row for one player name. Traded players
// carry one row per team plus a combined row.
func (p *Pool) PlayerRows(ctx context.Context, table, name string) ([]map[string]interface{}, error) {
	sql := "SELECT * FROM " + pgx.Identifier{table}.Sanitize() + ` WHERE "Player_Name" = $1`
	rows, err := p.Query(ctx, sql, name)
	if err != nil {
		return nil, fmt.Errorf("player rows from %s: %w", table, err)
	}
	return scanRecords(rows)
}

// scanRecords converts pgx rows into field-name keyed records.
func scanRecords(rows pgx.Rows) ([]map[string]interface{}, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := []map[string]interface{}{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		rec := make(map[string]interface{}, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = vals[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
