package mapping

import (
	"strconv"
	"strings"
)

// parseTiny1 parses the tab separated "v1" format:
//
//	v1	official	intermediary	named
//	CLASS	a	net/minecraft/class_1	net/minecraft/Foo
//	FIELD	a	I	b	field_1	bar
//	METHOD	a	(I)V	c	method_1	baz
func parseTiny1(data []byte, file string) (*NamedTable, error) {
	lines := splitLines(data, "#")
	header := strings.Split(lines[0].text, "\t")
	if len(header) < 3 {
		return nil, parseErrorf(file, lines[0].num, "tiny header must declare at least 2 namespaces")
	}
	n := newNamedTable(header[1:])
	cols := len(n.Namespaces)

	for _, l := range lines[1:] {
		parts := strings.Split(l.text, "\t")
		var err error
		switch parts[0] {
		case "CLASS":
			if len(parts) < 1+cols || parts[1] == "" {
				return nil, parseErrorf(file, l.num, "malformed CLASS line")
			}
			_, err = n.addClass(parts[1 : 1+cols])
		case "FIELD", "METHOD":
			if len(parts) < 3+cols || parts[1] == "" || parts[3] == "" {
				return nil, parseErrorf(file, l.num, "malformed %s line", parts[0])
			}
			if !validDescriptor(parts[2]) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", parts[2])
			}
			c := n.class(parts[1])
			if parts[0] == "FIELD" {
				err = c.addField(parts[3:3+cols], parts[2])
			} else {
				_, err = c.addMethod(parts[3:3+cols], parts[2])
			}
		default:
			// other v1 extensions (e.g. METHOD-ARG) are not needed here
			continue
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

// parseTiny2 parses the tiny v2 format. Nesting is expressed with leading tabs:
//
//	tiny	2	0	official	intermediary	named
//	c	a	net/minecraft/class_1	net/minecraft/Foo
//		f	I	b	field_1	bar
//		m	(I)V	c	method_1	baz
//			p	1		param_1	x
func parseTiny2(data []byte, file string) (*NamedTable, error) {
	lines := splitLines(data, "")
	header := strings.Split(lines[0].text, "\t")
	if len(header) < 5 || header[1] != "2" {
		return nil, parseErrorf(file, lines[0].num, "unsupported tiny header")
	}
	n := newNamedTable(header[3:])
	cols := len(n.Namespaces)

	escaped := false
	var cls *namedClass
	var method *namedMethod
	inBody := false

	for _, l := range lines[1:] {
		parts := strings.Split(l.text, "\t")
		if !inBody && l.indent == 1 {
			// header properties
			if parts[0] == "escaped-names" {
				escaped = true
			}
			continue
		}
		inBody = true

		if escaped {
			for i := range parts {
				parts[i] = unescapeTiny(parts[i])
			}
		}

		var err error
		switch {
		case l.indent == 0 && parts[0] == "c":
			if len(parts) < 1+cols || parts[1] == "" {
				return nil, parseErrorf(file, l.num, "malformed class line")
			}
			cls, err = n.addClass(parts[1 : 1+cols])
			method = nil
		case l.indent == 1 && (parts[0] == "f" || parts[0] == "m"):
			if cls == nil {
				return nil, parseErrorf(file, l.num, "member outside of a class")
			}
			if len(parts) < 2+cols || parts[2] == "" {
				return nil, parseErrorf(file, l.num, "malformed member line")
			}
			if !validDescriptor(parts[1]) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", parts[1])
			}
			if parts[0] == "f" {
				err = cls.addField(parts[2:2+cols], parts[1])
				method = nil
			} else {
				method, err = cls.addMethod(parts[2:2+cols], parts[1])
			}
		case l.indent == 2 && parts[0] == "p":
			if method == nil {
				continue
			}
			if len(parts) < 2+cols {
				return nil, parseErrorf(file, l.num, "malformed parameter line")
			}
			idx, perr := strconv.Atoi(parts[1])
			if perr != nil || idx < 0 {
				return nil, parseErrorf(file, l.num, "invalid parameter index %q", parts[1])
			}
			err = method.addParam(idx, parts[2:2+cols])
		case l.indent == 0:
			return nil, parseErrorf(file, l.num, "unexpected top level section %q", parts[0])
		default:
			// comments, local variables
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

var tinyEscapes = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\t`, "\t", `\0`, "\x00")

func unescapeTiny(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	return tinyEscapes.Replace(s)
}
