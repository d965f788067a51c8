package main

import (
	"bytes"
	"io"
)

type matcher func(seeker io.ReadSeeker) (bool, error)

var matchers = map[string]matcher{
	"zstd": matchZstd,
	"gzip": matchGzip,
	"xz":   matchXz,
	"lz4":  matchLz4,
	"cpio": matchCpio,
	"zip":  matchZip,
}

func matchBytes(f io.ReadSeeker, offset int64, marker []byte) (bool, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return false, err
	}
	buff := make([]byte, len(marker))
	if _, err := io.ReadFull(f, buff); err != nil {
		return false, nil
	}
	return bytes.Equal(marker, buff), nil
}

func matchCpio(f io.ReadSeeker) (bool, error) {
	return matchBytes(f, 0, []byte{'0', '7', '0', '7', '0', '1'}) // "new" cpio format
}

func matchLz4(f io.ReadSeeker) (bool, error) {
	ok, err := matchBytes(f, 0, []byte{0x04, 0x22, 0x4d, 0x18}) // frame format
	if ok || err != nil {
		return ok, err
	}
	return matchBytes(f, 0, []byte{0x02, 0x21, 0x4c, 0x18}) // legacy format
}

func matchXz(f io.ReadSeeker) (bool, error) {
	return matchBytes(f, 0, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00})
}

func matchGzip(f io.ReadSeeker) (bool, error) {
	return matchBytes(f, 0, []byte{0x1f, 0x8b})
}

func matchZstd(f io.ReadSeeker) (bool, error) {
	return matchBytes(f, 0, []byte{0x28, 0xb5, 0x2f, 0xfd})
}

func matchZip(f io.ReadSeeker) (bool, error) {
	return matchBytes(f, 0, []byte{'P', 'K', 0x03, 0x04})
}

// filetype detects a compression or archive format by its magic bytes.
// An empty string means plain content. The read position is preserved.
func filetype(r io.ReadSeeker) (string, error) {
	loc, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", err
	}
	defer r.Seek(loc, io.SeekStart)

	for name, match := range matchers {
		ok, err := match(r)
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}

	return "", nil
}
