package mapping

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Format is an on-disk mapping format.
type Format string

const (
	FormatSRG   Format = "srg"
	FormatCSRG  Format = "csrg"
	FormatTSRG  Format = "tsrg"
	FormatTSRG2 Format = "tsrg2"
	FormatTiny1 Format = "tiny1"
	FormatTiny2 Format = "tiny2"
)

// Namespace names used for formats that do not declare them.
const (
	leftNamespace  = "left"
	rightNamespace = "right"
)

// Unnamed reports whether the table was read from a format that does not
// declare its namespaces, so From and To are only placeholders.
func (t *Table) Unnamed() bool {
	return t.From == leftNamespace && t.To == rightNamespace
}

var writers = map[Format]func(w *bufio.Writer, t *Table) error{
	FormatSRG:   writeSRG,
	FormatCSRG:  writeCSRG,
	FormatTSRG:  writeTSRG,
	FormatTSRG2: writeTSRG2,
}

// ParseFormat validates a user supplied output format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if _, ok := writers[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// line is a single non-empty line of a mapping file with comments removed.
type line struct {
	num    int
	indent int // number of leading tabs
	text   string
}

// splitLines works on the whole content so there is no limit on the line length.
func splitLines(data []byte, comment string) []line {
	var out []line
	for i, raw := range strings.Split(string(data), "\n") {
		num := i + 1
		text := strings.TrimRight(raw, "\r")
		if comment != "" {
			if c := strings.Index(text, comment); c >= 0 {
				text = text[:c]
			}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		indent := 0
		for indent < len(text) && text[indent] == '\t' {
			indent++
		}
		out = append(out, line{num: num, indent: indent, text: text[indent:]})
	}
	return out
}

// Detect guesses the format of mapping content.
func Detect(data []byte) (Format, error) {
	lines := splitLines(data, "")
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrUnknownFormat)
	}
	first := lines[0].text
	switch {
	case strings.HasPrefix(first, "v1\t"):
		return FormatTiny1, nil
	case strings.HasPrefix(first, "tiny\t2\t"):
		return FormatTiny2, nil
	case strings.HasPrefix(first, "tsrg2 "):
		return FormatTSRG2, nil
	case hasSRGTag(first):
		return FormatSRG, nil
	}
	for _, l := range lines {
		if l.indent > 0 {
			return FormatTSRG, nil
		}
	}
	return FormatCSRG, nil
}

func hasSRGTag(s string) bool {
	for _, tag := range []string{"PK: ", "CL: ", "FD: ", "MD: "} {
		if strings.HasPrefix(s, tag) {
			return true
		}
	}
	return false
}

// ReadNamed parses mapping content of any supported format. name is used in error messages.
// Two-column formats get the namespaces "left" and "right".
func ReadNamed(r io.Reader, name string) (*NamedTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	format, err := Detect(data)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	switch format {
	case FormatTiny1:
		return parseTiny1(data, name)
	case FormatTiny2:
		return parseTiny2(data, name)
	case FormatTSRG2:
		return parseTSRG2(data, name)
	case FormatTSRG:
		return parseTSRG(data, name)
	case FormatSRG:
		return parseSRG(data, name)
	default:
		return parseCSRG(data, name)
	}
}

// Read parses mapping content and returns the table between its first two namespaces.
func Read(r io.Reader, name string) (*Table, error) {
	n, err := ReadNamed(r, name)
	if err != nil {
		return nil, err
	}
	if len(n.Namespaces) < 2 {
		return nil, parseErrorf(name, 0, "expected at least 2 namespaces, got %v", n.Namespaces)
	}
	return n.Table(n.Namespaces[0], n.Namespaces[1])
}

// Write serializes t in the given format.
func Write(w io.Writer, t *Table, format Format) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	bw := bufio.NewWriter(w)
	if err := fn(bw, t); err != nil {
		return err
	}
	return bw.Flush()
}

// splitMember splits "owner/name" at the last slash.
func splitMember(s string) (owner, name string, ok bool) {
	i := strings.LastIndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
