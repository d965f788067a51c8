package main

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

var compressions = []string{"none", "zstd", "gzip", "xz", "lz4"}

func validCompression(c string) bool {
	return contains(compressions, c)
}

// newCompressor wraps w with the given compression. Closing the result
// flushes the compressor but does not close w.
func newCompressor(w io.Writer, compression string) (io.WriteCloser, error) {
	switch compression {
	case "zstd":
		return zstd.NewWriter(w)
	case "gzip":
		return gzip.NewWriter(w), nil
	case "xz":
		conf := xz.WriterConfig{CheckSum: xz.CRC32}
		if err := conf.Verify(); err != nil {
			return nil, err
		}
		return conf.NewWriter(w)
	case "lz4":
		return lz4.NewWriter(w), nil
	case "none", "":
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("Unknown compression format: %s", compression)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// newDecompressor returns a reader for content compressed with kind as reported by filetype.
// Kinds that are not compressions are passed through.
func newDecompressor(r io.Reader, kind string) (io.ReadCloser, error) {
	switch kind {
	case "zstd":
		zst, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zst.IOReadCloser(), nil
	case "gzip":
		return gzip.NewReader(r)
	case "xz":
		conf := xz.ReaderConfig{}
		if err := conf.Verify(); err != nil {
			return nil, err
		}
		x, err := conf.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(x), nil
	case "lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
