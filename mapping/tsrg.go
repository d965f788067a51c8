package mapping

import (
	"bufio"
	"strconv"
	"strings"
)

// parseTSRG parses TSRG v1, members are indented under their class:
//
//	a net/minecraft/Foo
//		b field_1
//		c (I)V func_1
func parseTSRG(data []byte, file string) (*NamedTable, error) {
	n := newNamedTable([]string{leftNamespace, rightNamespace})
	var cls *namedClass

	for _, l := range splitLines(data, "#") {
		parts := strings.Fields(l.text)
		var err error
		switch {
		case l.indent == 0 && len(parts) == 2:
			if strings.HasSuffix(parts[0], "/") {
				err = n.addPackage([]string{trimPackage(parts[0]), trimPackage(parts[1])})
				cls = nil
			} else {
				cls, err = n.addClass(parts)
			}
		case l.indent == 1 && cls != nil && len(parts) == 2:
			err = cls.addField(parts, "")
		case l.indent == 1 && cls != nil && len(parts) == 3:
			if !validDescriptor(parts[1]) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", parts[1])
			}
			_, err = cls.addMethod([]string{parts[0], parts[2]}, parts[1])
		default:
			return nil, parseErrorf(file, l.num, "malformed TSRG line %q", l.text)
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

// parseTSRG2 parses TSRG v2 which declares its namespaces and may carry
// field descriptors and parameter names:
//
//	tsrg2 obf srg
//	a net/minecraft/Foo
//		b I field_1
//		c (I)V func_1
//			static
//			0 o p_1
//
// "o" is the unnamed placeholder only in an obfuscated first column.
func parseTSRG2(data []byte, file string) (*NamedTable, error) {
	lines := splitLines(data, "#")
	header := strings.Fields(lines[0].text)
	if len(header) < 3 {
		return nil, parseErrorf(file, lines[0].num, "tsrg2 header must declare at least 2 namespaces")
	}
	n := newNamedTable(header[1:])
	cols := len(n.Namespaces)
	obfuscated := obfuscatedNamespace(n.Namespaces[0])

	var cls *namedClass
	var method *namedMethod

	for _, l := range lines[1:] {
		parts := strings.Fields(l.text)
		var err error
		switch {
		case l.indent == 0 && len(parts) == cols:
			method = nil
			if strings.HasSuffix(parts[0], "/") {
				names := make([]string, cols)
				for i, p := range parts {
					names[i] = trimPackage(p)
				}
				err = n.addPackage(names)
				cls = nil
			} else {
				cls, err = n.addClass(parts)
			}
		case l.indent == 1 && cls != nil && len(parts) == cols:
			err = cls.addField(parts, "")
			method = nil
		case l.indent == 1 && cls != nil && len(parts) == cols+1:
			names := append([]string{parts[0]}, parts[2:]...)
			desc := parts[1]
			if !validDescriptor(desc) {
				return nil, parseErrorf(file, l.num, "invalid descriptor %q", desc)
			}
			if desc[0] == '(' {
				method, err = cls.addMethod(names, desc)
			} else {
				err = cls.addField(names, desc)
				method = nil
			}
		case l.indent == 2 && method != nil && len(parts) == 1 && parts[0] == "static":
			// method metadata, not needed
		case l.indent == 2 && method != nil && len(parts) == cols+1:
			idx, perr := strconv.Atoi(parts[0])
			if perr != nil || idx < 0 {
				return nil, parseErrorf(file, l.num, "invalid parameter index %q", parts[0])
			}
			names := parts[1:]
			if obfuscated && names[0] == "o" {
				names[0] = ""
			}
			err = method.addParam(idx, names)
		default:
			return nil, parseErrorf(file, l.num, "malformed TSRG2 line %q", l.text)
		}
		if err != nil {
			return nil, &ParseError{File: file, Line: l.num, Err: err}
		}
	}

	return n, nil
}

func writeTSRG(w *bufio.Writer, t *Table) error {
	for _, p := range t.Packages() {
		w.WriteString(p[0] + "/ " + p[1] + "/\n")
	}
	for _, c := range t.Classes() {
		w.WriteString(c.Source + " " + c.Target + "\n")
		for _, f := range c.Fields() {
			w.WriteString("\t" + f.Source + " " + f.Target + "\n")
		}
		for _, m := range c.Methods() {
			w.WriteString("\t" + m.Source + " " + m.Desc + " " + m.Target + "\n")
		}
	}
	return nil
}

func writeTSRG2(w *bufio.Writer, t *Table) error {
	from, to := t.From, t.To
	if from == "" || to == "" {
		from, to = leftNamespace, rightNamespace
	}
	w.WriteString("tsrg2 " + from + " " + to + "\n")
	for _, p := range t.Packages() {
		w.WriteString(p[0] + "/ " + p[1] + "/\n")
	}
	for _, c := range t.Classes() {
		w.WriteString(c.Source + " " + c.Target + "\n")
		for _, f := range c.Fields() {
			if f.Desc != "" {
				w.WriteString("\t" + f.Source + " " + f.Desc + " " + f.Target + "\n")
			} else {
				w.WriteString("\t" + f.Source + " " + f.Target + "\n")
			}
		}
		for _, m := range c.Methods() {
			w.WriteString("\t" + m.Source + " " + m.Desc + " " + m.Target + "\n")
			for _, p := range m.Params() {
				if p.Target == "" {
					continue
				}
				w.WriteString("\t\t" + strconv.Itoa(p.Index) + " " + paramName(p.Source) + " " + p.Target + "\n")
			}
		}
	}
	return nil
}

// obfuscatedNamespace reports whether names in ns come from an obfuscated
// jar, which has no parameter names.
func obfuscatedNamespace(ns string) bool {
	return ns == "obf" || ns == string(Official) || ns == leftNamespace
}

// paramName fills the first column, where "o" stands for a parameter
// without a name. It reads back as empty only under an obfuscated
// namespace. A parameter without a target name is not written at all.
func paramName(s string) string {
	if s == "" {
		return "o"
	}
	return s
}
