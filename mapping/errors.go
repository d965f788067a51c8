package mapping

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrDuplicate is returned when a source key is mapped to two different targets.
	ErrDuplicate = errors.New("conflicting mapping")
	// ErrUnknownScheme is returned for naming scheme tags outside of the recognized set.
	ErrUnknownScheme = errors.New("unknown naming scheme")
	// ErrUnknownFormat is returned when a mapping format cannot be detected or is not supported.
	ErrUnknownFormat = errors.New("unknown mapping format")
)

// NotFoundError reports a missing input file or a missing entry inside an archive.
// It matches fs.ErrNotExist with errors.Is.
type NotFoundError struct {
	Path  string
	Entry string // set if the archive exists but does not contain the entry
}

func (e *NotFoundError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("%s: entry %s not found", e.Path, e.Entry)
	}
	return fmt.Sprintf("%s: file not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// ParseError reports malformed mapping content. Line is 1-based, 0 if unknown.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a failure to write an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func parseErrorf(file string, line int, format string, v ...interface{}) error {
	return &ParseError{File: file, Line: line, Err: fmt.Errorf(format, v...)}
}
