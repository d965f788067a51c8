package main

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/sinytra/mapconv/mapping"
)

// writeTable serializes t to path. The file is replaced atomically so readers
// never observe a partially written output.
func writeTable(path string, t *mapping.Table, format mapping.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &mapping.WriteError{Path: path, Err: err}
	}

	file, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return &mapping.WriteError{Path: path, Err: err}
	}
	defer file.Cleanup()

	if err := mapping.Write(file, t, format); err != nil {
		return &mapping.WriteError{Path: path, Err: err}
	}
	if err := file.CloseAtomicallyReplace(); err != nil {
		return &mapping.WriteError{Path: path, Err: err}
	}
	return nil
}
