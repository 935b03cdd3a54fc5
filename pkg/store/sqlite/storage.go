package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const salesSchema = `
	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		month TEXT NOT NULL,
		product TEXT NOT NULL,
		city TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		amount REAL NOT NULL
	);
`

var bootQueries = []string{
	salesSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (creating if needed) the assistant sqlite database and
// applies the boot schema.
func NewDB(settings Settings) (*sql.DB, error) {
	if dir := filepath.Dir(settings.DbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", settings.DbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return db, nil
}

var (
	demoMonths = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	demoProducts = []string{
		"Widget A", "Widget B", "Widget Pro", "Gizmo", "Gizmo Plus",
		"Gadget X", "Tool Basic", "Service Gold",
	}
	demoCities = []string{
		"Paris", "Lyon", "Marseille", "Toulouse", "Nice", "Nantes",
		"Strasbourg", "Bordeaux", "Lille", "Rennes",
	}
)

// SeedDemo fills the sales table with n rows of demo data so the SQL
// tool has something to query out of the box. Existing rows are kept.
func SeedDemo(ctx context.Context, db *sql.DB, n int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sales (year, month, product, city, quantity, amount) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		quantity := 1 + rng.Intn(20)
		unitPrice := 10 + rng.Float64()*490
		_, err := stmt.ExecContext(ctx,
			2023+rng.Intn(2),
			demoMonths[rng.Intn(len(demoMonths))],
			demoProducts[rng.Intn(len(demoProducts))],
			demoCities[rng.Intn(len(demoCities))],
			quantity,
			float64(quantity)*unitPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert demo row: %w", err)
		}
	}
	return tx.Commit()
}
