// Package sqlquery executes read-only SQL queries against the
// assistant database and returns rows as generic maps.
package sqlquery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
)

// ErrNotReadOnly is returned for anything that is not a single SELECT
// statement.
var ErrNotReadOnly = errors.New("only read-only SELECT queries are allowed")

// A single SELECT, optionally terminated by one semicolon. Multiple
// statements are rejected outright.
var selectPattern = regexp.MustCompile(`(?is)^\s*select\b[^;]*;?\s*$`)

// Runner validates and executes queries.
type Runner struct {
	db *sql.DB
}

// NewRunner creates a runner bound to db.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Run executes query and returns one map per row, keyed by column
// name. Byte-slice values are converted to strings so that results
// serialize cleanly as JSON.
func (r *Runner) Run(ctx context.Context, query string) ([]map[string]any, error) {
	if !selectPattern.MatchString(query) {
		return nil, ErrNotReadOnly
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("rows", len(results)).
		Msg("query executed")
	return results, nil
}
