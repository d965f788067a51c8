package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliergopher/cpio"
	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/zip"
)

// zipEpoch is used as the timestamp of every jar entry so bundles are reproducible (1980-01-01 UTC).
var zipEpoch = time.Unix(315532800, 0).UTC()

// entryWriter is the part of zip.Writer and cpio.Writer a Bundle relies on.
type entryWriter interface {
	create(name string, size int64) (io.Writer, error)
	io.Closer
}

type jarWriter struct{ *zip.Writer }

func (w jarWriter) create(name string, _ int64) (io.Writer, error) {
	h := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: zipEpoch}
	h.SetMode(0o644)
	return w.CreateHeader(h)
}

type cpioWriter struct{ *cpio.Writer }

func (w cpioWriter) create(name string, size int64) (io.Writer, error) {
	hdr := &cpio.Header{
		Name: name,
		Mode: cpio.FileMode(0o644) | cpio.TypeReg,
		Size: size,
	}
	if err := w.WriteHeader(hdr); err != nil {
		return nil, err
	}
	return w.Writer, nil
}

// Bundle packs converted mapping files into a single archive.
// The archive becomes visible at its path only after a successful Close.
type Bundle struct {
	path       string
	file       *renameio.PendingFile
	compressor io.WriteCloser
	out        entryWriter
	contains   map[string]bool
	closed     bool
}

func NewBundle(path, format, compression string, force bool) (*Bundle, error) {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return nil, fmt.Errorf("File %v exists, please specify --force if you want to overwrite it", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		path:     path,
		file:     file,
		contains: make(map[string]bool),
	}
	switch format {
	case "jar", "":
		if compression != "" && compression != "none" {
			_ = file.Cleanup()
			return nil, fmt.Errorf("jar bundles are always deflated, compression %s is not supported", compression)
		}
		b.compressor = nopWriteCloser{file}
		b.out = jarWriter{zip.NewWriter(file)}
	case "cpio":
		b.compressor, err = newCompressor(file, compression)
		if err != nil {
			_ = file.Cleanup()
			return nil, err
		}
		b.out = cpioWriter{cpio.NewWriter(b.compressor)}
	default:
		_ = file.Cleanup()
		return nil, fmt.Errorf("Unknown bundle format: %s", format)
	}
	return b, nil
}

// Cleanup discards the pending bundle. It is a no-op after a successful Close.
func (b *Bundle) Cleanup() {
	if b.closed {
		return
	}
	_ = b.out.Close()
	_ = b.compressor.Close()
	_ = b.file.Cleanup()
}

func (b *Bundle) Close() error {
	b.closed = true
	if err := b.out.Close(); err != nil {
		_ = b.file.Cleanup()
		return err
	}
	if err := b.compressor.Close(); err != nil {
		_ = b.file.Cleanup()
		return err
	}
	return b.file.CloseAtomicallyReplace()
}

// AppendContent adds an entry with the given content. Adding the same name twice is an error.
func (b *Bundle) AppendContent(name string, content []byte) error {
	name = strings.TrimPrefix(filepath.ToSlash(name), "/")
	if b.contains[name] {
		return fmt.Errorf("%s: entry %s is already in the bundle", b.path, name)
	}
	b.contains[name] = true

	w, err := b.out.create(name, int64(len(content)))
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// AppendFile adds the content of the file at path as entry name.
func (b *Bundle) AppendFile(name, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	debug("adding %s to %s as %s", path, b.path, name)
	return b.AppendContent(name, content)
}
