package mapping

import (
	"fmt"
	"sort"
)

// NamedTable holds mappings between any number of naming schemes (namespaces).
// The first namespace is the canonical one, member descriptors are expressed in it.
// Empty names mean "same as the canonical name".
type NamedTable struct {
	Namespaces []string

	packages map[string][]string
	classes  map[string]*namedClass
}

type namedClass struct {
	names   []string
	fields  map[string]*namedField
	methods map[methodKey]*namedMethod
}

type namedField struct {
	names []string
	desc  string
}

type namedMethod struct {
	names  []string
	desc   string
	params map[int][]string
}

func newNamedTable(namespaces []string) *NamedTable {
	return &NamedTable{
		Namespaces: namespaces,
		packages:   make(map[string][]string),
		classes:    make(map[string]*namedClass),
	}
}

// Len returns number of classes.
func (n *NamedTable) Len() int {
	return len(n.classes)
}

func (n *NamedTable) namespace(name string) (int, error) {
	for i, ns := range n.Namespaces {
		if ns == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not present, available namespaces are %v", ErrUnknownScheme, name, n.Namespaces)
}

// mergeNames fills empty slots of dst with names from src and fails if a
// slot is already set to something else.
func mergeNames(dst, src []string) error {
	for i, s := range src {
		if s == "" || i >= len(dst) {
			continue
		}
		if dst[i] != "" && dst[i] != s {
			return fmt.Errorf("%w: %s is mapped to both %s and %s", ErrDuplicate, dst[0], dst[i], s)
		}
		dst[i] = s
	}
	return nil
}

func (n *NamedTable) addPackage(names []string) error {
	if p, ok := n.packages[names[0]]; ok {
		return mergeNames(p, names)
	}
	n.packages[names[0]] = append([]string(nil), names...)
	return nil
}

// class returns a class by its canonical name, creating a placeholder if necessary.
func (n *NamedTable) class(name string) *namedClass {
	c, ok := n.classes[name]
	if !ok {
		names := make([]string, len(n.Namespaces))
		names[0] = name
		c = &namedClass{
			names:   names,
			fields:  make(map[string]*namedField),
			methods: make(map[methodKey]*namedMethod),
		}
		n.classes[name] = c
	}
	return c
}

func (n *NamedTable) addClass(names []string) (*namedClass, error) {
	c := n.class(names[0])
	if err := mergeNames(c.names, names); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *namedClass) addField(names []string, desc string) error {
	if f, ok := c.fields[names[0]]; ok {
		if f.desc == "" {
			f.desc = desc
		}
		return mergeNames(f.names, names)
	}
	c.fields[names[0]] = &namedField{names: append([]string(nil), names...), desc: desc}
	return nil
}

func (c *namedClass) addMethod(names []string, desc string) (*namedMethod, error) {
	key := methodKey{names[0], desc}
	if m, ok := c.methods[key]; ok {
		return m, mergeNames(m.names, names)
	}
	m := &namedMethod{names: append([]string(nil), names...), desc: desc, params: make(map[int][]string)}
	c.methods[key] = m
	return m, nil
}

func (m *namedMethod) addParam(index int, names []string) error {
	if p, ok := m.params[index]; ok {
		return mergeNames(p, names)
	}
	m.params[index] = append([]string(nil), names...)
	return nil
}

func pick(names []string, i int) string {
	if names[i] != "" {
		return names[i]
	}
	return names[0]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table projects two namespaces into a two-sided table.
// When the source is not the canonical namespace and two canonical entries
// collapse into one source key, the first one in canonical order is kept.
func (n *NamedTable) Table(from, to string) (*Table, error) {
	fi, err := n.namespace(from)
	if err != nil {
		return nil, err
	}
	ti, err := n.namespace(to)
	if err != nil {
		return nil, err
	}

	t := NewTable(from, to)

	classNames := make(map[string]string, len(n.classes))
	for k, c := range n.classes {
		classNames[k] = pick(c.names, fi)
	}
	mapDesc := func(desc string) string {
		if fi == 0 {
			return desc
		}
		return remapDescriptor(desc, func(name string) string {
			if v, ok := classNames[name]; ok {
				return v
			}
			return name
		})
	}

	for _, k := range sortedKeys(n.packages) {
		p := n.packages[k]
		src := pick(p, fi)
		if _, ok := t.packages[src]; !ok {
			t.packages[src] = pick(p, ti)
		}
	}

	for _, k := range sortedKeys(n.classes) {
		nc := n.classes[k]
		src := pick(nc.names, fi)
		if _, ok := t.classes[src]; ok {
			continue
		}
		c := newClass(src, pick(nc.names, ti))
		t.classes[src] = c

		for _, fk := range sortedKeys(nc.fields) {
			nf := nc.fields[fk]
			name := pick(nf.names, fi)
			if _, ok := c.fields[name]; !ok {
				c.fields[name] = &Field{Source: name, Target: pick(nf.names, ti), Desc: mapDesc(nf.desc)}
			}
		}

		methods := make([]*namedMethod, 0, len(nc.methods))
		for _, m := range nc.methods {
			methods = append(methods, m)
		}
		sort.Slice(methods, func(i, j int) bool {
			if methods[i].names[0] != methods[j].names[0] {
				return methods[i].names[0] < methods[j].names[0]
			}
			return methods[i].desc < methods[j].desc
		})
		for _, nm := range methods {
			key := methodKey{pick(nm.names, fi), mapDesc(nm.desc)}
			if _, ok := c.methods[key]; ok {
				continue
			}
			m := &Method{Source: key.name, Target: pick(nm.names, ti), Desc: key.desc, params: make(map[int]*Param, len(nm.params))}
			for i, p := range nm.params {
				src, dst := p[fi], p[ti]
				if src == "" && dst == "" {
					continue
				}
				m.params[i] = &Param{Index: i, Source: src, Target: dst}
			}
			c.methods[key] = m
		}
	}

	return t, nil
}
