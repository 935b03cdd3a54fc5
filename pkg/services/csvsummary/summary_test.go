package csvsummary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSummarise(t *testing.T) {
	path := writeCSV(t, "sales.csv", `name,amount,ratio,active,notes
Widget,100,0.5,true,
Gadget,200,1.25,false,urgent
Gizmo,,2.0,true,
`)

	summary, err := Summarise(path)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 5, summary.ColumnCount)
	require.Len(t, summary.Columns, 5)

	assert.Equal(t, "name", summary.Columns[0].Name)
	assert.Equal(t, "string", summary.Columns[0].InferredType)
	assert.Equal(t, 0, summary.Columns[0].MissingValues)

	assert.Equal(t, "integer", summary.Columns[1].InferredType)
	assert.Equal(t, 1, summary.Columns[1].MissingValues)

	assert.Equal(t, "float", summary.Columns[2].InferredType)
	assert.Equal(t, "boolean", summary.Columns[3].InferredType)

	assert.Equal(t, "string", summary.Columns[4].InferredType)
	assert.Equal(t, 2, summary.Columns[4].MissingValues)
}

func TestSummarise_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "empty.csv", "a,b\n")

	summary, err := Summarise(path)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.RowCount)
	assert.Equal(t, 2, summary.ColumnCount)
	assert.Equal(t, "empty", summary.Columns[0].InferredType)
}

func TestSummarise_RaggedRows(t *testing.T) {
	path := writeCSV(t, "ragged.csv", "a,b,c\n1,2\n3,4,5\n")

	summary, err := Summarise(path)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RowCount)
	assert.Equal(t, 1, summary.Columns[2].MissingValues)
}

func TestSummarise_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Summarise(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := writeCSV(t, "data.txt", "a,b\n1,2\n")
		_, err := Summarise(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only CSV files")
	})
}

func TestSummarise_UppercaseExtension(t *testing.T) {
	path := writeCSV(t, "DATA.CSV", "a\n1\n")

	summary, err := Summarise(path)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowCount)
}
