package sqlquery

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT product, amount FROM sales").
		WillReturnRows(sqlmock.NewRows([]string{"product", "amount"}).
			AddRow([]byte("Widget"), 125.5).
			AddRow([]byte("Gadget"), 99.0))

	runner := NewRunner(db)
	rows, err := runner.Run(context.Background(), "SELECT product, amount FROM sales")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Widget", rows[0]["product"])
	assert.Equal(t, 125.5, rows[0]["amount"])
	assert.Equal(t, "Gadget", rows[1]["product"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_EmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("select \\* from sales").
		WillReturnRows(sqlmock.NewRows([]string{"product"}))

	runner := NewRunner(db)
	rows, err := runner.Run(context.Background(), "select * from sales")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRunner_RejectsNonSelect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewRunner(db)

	queries := []string{
		"DROP TABLE sales",
		"INSERT INTO sales VALUES (1)",
		"UPDATE sales SET amount = 0",
		"DELETE FROM sales",
		"select 1; drop table sales",
		"  ",
		"PRAGMA table_info(sales)",
	}
	for _, query := range queries {
		_, err := runner.Run(context.Background(), query)
		assert.ErrorIs(t, err, ErrNotReadOnly, "query: %s", query)
	}
}

func TestRunner_AcceptsSelectVariants(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewRunner(db)

	queries := []string{
		"SELECT 1",
		"  select 1  ",
		"SeLeCt 1;",
		"select\n1",
	}
	for _, query := range queries {
		mock.ExpectQuery("(?i)select").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		_, err := runner.Run(context.Background(), query)
		assert.NoError(t, err, "query: %s", query)
	}
}
