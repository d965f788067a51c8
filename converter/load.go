package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/sinytra/mapconv/mapping"
)

// tinyEntry is where yarn and intermediary jars keep their mappings.
const tinyEntry = "mappings/mappings.tiny"

type inputReader struct {
	io.Reader
	closers []io.Closer
}

func (r inputReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &mapping.NotFoundError{Path: path}
	}
	return err
}

// openInput opens a file and transparently decompresses it.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}

	kind, err := filetype(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if kind != "" {
		debug("%s is %s compressed", path, kind)
	}

	dec, err := newDecompressor(f, kind)
	if err != nil {
		_ = f.Close()
		return nil, &mapping.ParseError{File: path, Err: err}
	}
	return inputReader{dec, []io.Closer{dec, f}}, nil
}

// loadMappings reads a text mapping file in any supported format.
func loadMappings(path string) (*mapping.Table, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t, err := mapping.Read(in, path)
	if err != nil {
		var perr *mapping.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &mapping.ParseError{File: path, Err: err}
	}
	debug("loaded %d classes from %s", t.Len(), path)
	return t, nil
}

// loadArchive reads the multi-namespace mappings stored under entry in a zip or jar file.
func loadArchive(path, entry string) (*mapping.NamedTable, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &mapping.NotFoundError{Path: path}
		}
		return nil, &mapping.ParseError{File: path, Err: err}
	}
	defer zr.Close()

	var file *zip.File
	for _, f := range zr.File {
		if f.Name == entry {
			file = f
			break
		}
	}
	if file == nil {
		return nil, &mapping.NotFoundError{Path: path, Entry: entry}
	}

	r, err := file.Open()
	if err != nil {
		return nil, &mapping.ParseError{File: path, Err: err}
	}
	defer r.Close()

	name := fmt.Sprintf("%s!/%s", path, entry)
	n, err := mapping.ReadNamed(r, name)
	if err != nil {
		var perr *mapping.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &mapping.ParseError{File: name, Err: err}
	}
	debug("loaded %d classes in namespaces %v from %s", n.Len(), n.Namespaces, name)
	return n, nil
}
