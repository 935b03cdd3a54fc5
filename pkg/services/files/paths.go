// Package files centralizes the directory layout shared by the tools
// (data, uploads, reports) and locates user-referenced files across
// those directories.
package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// UploadedCSVName is the well-known name chat uploads are copied to
// for tools that expect a fixed location.
const UploadedCSVName = "uploaded.csv"

// Paths is the standard directory layout rooted at a working
// directory.
type Paths struct {
	Root    string
	Data    string
	Uploads string
	Reports string
}

// NewPaths builds the layout under root and creates the data and
// uploads directories.
func NewPaths(root string) (*Paths, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = cwd
	}

	p := &Paths{
		Root:    root,
		Data:    filepath.Join(root, "data"),
		Uploads: filepath.Join(root, "uploads"),
		Reports: filepath.Join(root, "reports"),
	}
	for _, dir := range []string{p.Data, p.Uploads} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SearchPaths returns the directories to search for a file of the
// given type, in priority order.
func (p *Paths) SearchPaths(fileType string) []string {
	paths := []string{p.Uploads, p.Data, p.Root}
	if fileType == "pdf" {
		_ = os.MkdirAll(p.Reports, 0o755)
		paths = append(paths, p.Reports)
	}
	return paths
}

// Find locates filename in the standard directories. It tries, in
// order: an existing absolute path, the root directory, each search
// directory, the uploaded.csv compatibility name, and finally — when a
// file type is given — the newest file carrying that extension in any
// search directory. When nothing matches the input is returned
// unchanged.
func (p *Paths) Find(ctx context.Context, filename, fileType string) string {
	logger := zerolog.Ctx(ctx)

	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
	}

	if _, err := os.Stat(filename); err == nil {
		if abs, err := filepath.Abs(filename); err == nil {
			return abs
		}
		return filename
	}

	searchPaths := p.SearchPaths(fileType)
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			logger.Debug().Str("file", candidate).Msg("found file")
			return candidate
		}
	}

	if filename == UploadedCSVName {
		candidate := filepath.Join(p.Root, UploadedCSVName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if fileType != "" {
		if found := newestWithExtension(searchPaths, "."+fileType); found != "" {
			logger.Debug().Str("file", found).Msg("found file by extension")
			return found
		}
	}

	logger.Debug().Str("file", filename).Msg("file not found, returning input")
	return filename
}

// newestWithExtension scans dirs in priority order and returns the
// most recently modified file with ext in the first directory that has
// any.
func newestWithExtension(dirs []string, ext string) string {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		var newest string
		var newestMod int64
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
				newest = filepath.Join(dir, entry.Name())
				newestMod = mod
			}
		}
		if newest != "" {
			return newest
		}
	}
	return ""
}
