package mapping

import (
	"bufio"
	"fmt"
	"strings"
)

// parseSRG parses the tagged SRG format:
//
//	PK: ./ net/minecraft/server
//	CL: a net/minecraft/Foo
//	FD: a/b net/minecraft/Foo/field_1
//	MD: a/c (I)La; net/minecraft/Foo/func_1 (I)Lnet/minecraft/Foo;
func parseSRG(data []byte, file string) (*NamedTable, error) {
	n := newNamedTable([]string{leftNamespace, rightNamespace})

	for _, l := range splitLines(data, "#") {
		parts := strings.Fields(l.text)
		var err error
		switch parts[0] {
		case "PK:":
			if len(parts) != 3 {
				return nil, parseErrorf(file, l.num, "malformed package line")
			}
			err = n.addPackage([]string{trimPackage(parts[1]), trimPackage(parts[2])})
		case "CL:":
			if len(parts) != 3 {
				return nil, parseErrorf(file, l.num, "malformed class line")
			}
			_, err = n.addClass(parts[1:3])
		case "FD:":
			// plain FD has 2 names, XSRG adds a descriptor after each
			var src, dst, desc string
			switch len(parts) {
			case 3:
				src, dst = parts[1], parts[2]
			case 5:
				src, desc, dst = parts[1], parts[2], parts[3]
			default:
				return nil, parseErrorf(file, l.num, "malformed field line")
			}
			err = addSRGMember(n, src, dst, desc, false)
		case "MD:":
			if len(parts) != 5 {
				return nil, parseErrorf(file, l.num, "malformed method line")
			}
			if !validDescriptor(parts[2]) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", parts[2])
			}
			err = addSRGMember(n, parts[1], parts[3], parts[2], true)
		default:
			return nil, parseErrorf(file, l.num, "unknown SRG tag %q", parts[0])
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

func addSRGMember(n *NamedTable, src, dst, desc string, method bool) error {
	owner, name, ok := splitMember(src)
	if !ok {
		return fmt.Errorf("malformed member name %q", src)
	}
	newOwner, newName, ok := splitMember(dst)
	if !ok {
		return fmt.Errorf("malformed member name %q", dst)
	}
	c, err := n.addClass([]string{owner, newOwner})
	if err != nil {
		return err
	}
	if method {
		_, err = c.addMethod([]string{name, newName}, desc)
		return err
	}
	return c.addField([]string{name, newName}, desc)
}

// parseCSRG parses the compact SRG format, one entry per line, no tags:
//
//	a/ net/minecraft/
//	a net/minecraft/Foo
//	a b field_1
//	a c (I)V func_1
func parseCSRG(data []byte, file string) (*NamedTable, error) {
	n := newNamedTable([]string{leftNamespace, rightNamespace})

	for _, l := range splitLines(data, "#") {
		parts := strings.Fields(l.text)
		var err error
		switch len(parts) {
		case 2:
			if strings.HasSuffix(parts[0], "/") {
				err = n.addPackage([]string{trimPackage(parts[0]), trimPackage(parts[1])})
			} else {
				_, err = n.addClass(parts)
			}
		case 3:
			err = n.class(parts[0]).addField(parts[1:3], "")
		case 4:
			if !validDescriptor(parts[2]) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", parts[2])
			}
			_, err = n.class(parts[0]).addMethod([]string{parts[1], parts[3]}, parts[2])
		default:
			return nil, parseErrorf(file, l.num, "unexpected number of columns: %d", len(parts))
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

func trimPackage(s string) string {
	if s == "./" || s == "." {
		return "."
	}
	return strings.TrimSuffix(s, "/")
}

func srgPackage(s string) string {
	if s == "." {
		return "./"
	}
	return s
}

func writeSRG(w *bufio.Writer, t *Table) error {
	for _, p := range t.Packages() {
		w.WriteString("PK: " + srgPackage(p[0]) + " " + srgPackage(p[1]) + "\n")
	}
	classes := t.Classes()
	for _, c := range classes {
		w.WriteString("CL: " + c.Source + " " + c.Target + "\n")
	}
	for _, c := range classes {
		for _, f := range c.Fields() {
			w.WriteString("FD: " + c.Source + "/" + f.Source + " " + c.Target + "/" + f.Target + "\n")
		}
	}
	for _, c := range classes {
		for _, m := range c.Methods() {
			w.WriteString("MD: " + c.Source + "/" + m.Source + " " + m.Desc + " " + c.Target + "/" + m.Target + " " + t.MapDescriptor(m.Desc) + "\n")
		}
	}
	return nil
}

func writeCSRG(w *bufio.Writer, t *Table) error {
	for _, p := range t.Packages() {
		w.WriteString(p[0] + "/ " + p[1] + "/\n")
	}
	classes := t.Classes()
	for _, c := range classes {
		w.WriteString(c.Source + " " + c.Target + "\n")
	}
	for _, c := range classes {
		for _, f := range c.Fields() {
			w.WriteString(c.Source + " " + f.Source + " " + f.Target + "\n")
		}
		for _, m := range c.Methods() {
			w.WriteString(c.Source + " " + m.Source + " " + m.Desc + " " + m.Target + "\n")
		}
	}
	return nil
}
