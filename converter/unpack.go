package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cavaliergopher/cpio"
	"github.com/klauspost/compress/zip"

	"github.com/sinytra/mapconv/mapping"
)

var errStop = fmt.Errorf("Stop Processing")

type processEntryFn func(name string, r io.Reader) error

// processBundle calls fn for every regular file in a jar or a (compressed) cpio bundle.
// fn may return errStop to end the iteration early.
func processBundle(file string, fn processEntryFn) error {
	input, err := os.Open(file)
	if err != nil {
		return notFound(file, err)
	}
	defer input.Close()

	kind, err := filetype(input)
	if err != nil {
		return err
	}

	if kind == "zip" {
		return processJar(input, fn)
	}

	dec, err := newDecompressor(input, kind)
	if err != nil {
		return err
	}
	defer dec.Close()

	if kind != "cpio" {
		// content is compressed, check what is inside
		debug("%s is %s compressed", file, kind)
	}

	img := cpio.NewReader(dec)
	for {
		hdr, err := img.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if hdr.Mode&0o770000 != cpio.TypeReg {
			continue
		}

		err = fn(hdr.Name, img)
		if err == errStop {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func processJar(f *os.File, fn processEntryFn) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name(), err)
	}

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		r, err := zf.Open()
		if err != nil {
			return err
		}
		err = fn(zf.Name, r)
		_ = r.Close()
		if err == errStop {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func listBundle(file string, w io.Writer) error {
	return processBundle(file, func(name string, _ io.Reader) error {
		_, err := fmt.Fprintln(w, name)
		return err
	})
}

func catBundle(file, entry string, w io.Writer) error {
	found := false
	err := processBundle(file, func(name string, r io.Reader) error {
		if name != entry {
			return nil
		}
		found = true
		if _, err := io.Copy(w, r); err != nil {
			return err
		}
		return errStop
	})
	if err != nil {
		return err
	}
	if !found {
		return &mapping.NotFoundError{Path: file, Entry: entry}
	}
	return nil
}

func runLs() error {
	return listBundle(opts.LsCommand.Args.Bundle, os.Stdout)
}

func runCat() error {
	err := catBundle(opts.CatCommand.Args.Bundle, opts.CatCommand.Args.Entry, os.Stdout)
	var nf *mapping.NotFoundError
	if errors.As(err, &nf) && nf.Entry != "" {
		return fmt.Errorf("%w (use 'mapconv ls %s' to list entries)", err, nf.Path)
	}
	return err
}
