package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestNewPaths_CreatesDirectories(t *testing.T) {
	root := t.TempDir()

	p, err := NewPaths(root)
	require.NoError(t, err)

	for _, dir := range []string{p.Data, p.Uploads} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFind_AbsolutePath(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	target := filepath.Join(root, "direct.csv")
	touch(t, target)

	assert.Equal(t, target, p.Find(context.Background(), target, "csv"))
}

func TestFind_SearchDirectoryPriority(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	// same name in uploads and data; uploads wins
	touch(t, filepath.Join(p.Data, "sales.csv"))
	touch(t, filepath.Join(p.Uploads, "sales.csv"))

	found := p.Find(context.Background(), "sales.csv", "csv")
	assert.Equal(t, filepath.Join(p.Uploads, "sales.csv"), found)
}

func TestFind_NewestByExtension(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	older := filepath.Join(p.Uploads, "older.csv")
	newer := filepath.Join(p.Uploads, "newer.csv")
	touch(t, older)
	touch(t, newer)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	found := p.Find(context.Background(), "whatever.csv", "csv")
	assert.Equal(t, newer, found)
}

func TestFind_UploadedCSVCompatibilityName(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	target := filepath.Join(root, UploadedCSVName)
	touch(t, target)

	found := p.Find(context.Background(), UploadedCSVName, "")
	assert.Equal(t, target, found)
}

func TestFind_NoMatchReturnsInput(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	assert.Equal(t, "ghost.csv", p.Find(context.Background(), "ghost.csv", ""))
}

func TestSearchPaths_PDFIncludesReports(t *testing.T) {
	root := t.TempDir()
	p, err := NewPaths(root)
	require.NoError(t, err)

	assert.NotContains(t, p.SearchPaths("csv"), p.Reports)
	assert.Contains(t, p.SearchPaths("pdf"), p.Reports)

	info, err := os.Stat(p.Reports)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
