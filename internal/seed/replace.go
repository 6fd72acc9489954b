package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/courtside-data/internal/provider"
)

// Store persists record sets through a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Replace swaps the destination table's contents for the record set. Inside
// one transaction the table is dropped, recreated from the canonical
// columns, and bulk-loaded over the COPY protocol; the commit publishes the
// swap atomically. On any failure the transaction rolls back and the
// previous contents survive.
func (s *Store) Replace(ctx context.Context, table string, rs *provider.RecordSet) (int64, error) {
	if len(rs.Columns) == 0 {
		return 0, fmt.Errorf("record set has no columns")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{table}
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("drop table %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, createTableSQL(table, rs.Columns)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}

	written, err := tx.CopyFrom(ctx, ident, rs.ColumnNames(), pgx.CopyFromRows(rs.Rows))
	if err != nil {
		return 0, fmt.Errorf("copy %d rows into %s: %w", rs.Len(), table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit replace of %s: %w", table, err)
	}
	return written, nil
}

// createTableSQL builds the CREATE TABLE statement for a record set's
// canonical columns. Numeric columns become DOUBLE PRECISION, text TEXT.
func createTableSQL(table string, cols []provider.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		sqlType := "TEXT"
		if c.Kind == provider.Numeric {
			sqlType = "DOUBLE PRECISION"
		}
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + sqlType
	}
	return "CREATE TABLE " + pgx.Identifier{table}.Sanitize() + " (" + strings.Join(defs, ", ") + ")"
}
