// Package mapping models symbol name mappings between naming schemes and
// reads and writes them in the SRG family and tiny formats.
package mapping

import (
	"fmt"
	"sort"
)

// Table maps symbol names of one naming scheme (From) to another (To).
// Each source key maps to at most one target.
type Table struct {
	From, To string

	packages map[string]string
	classes  map[string]*Class
}

// Class is a class mapping together with its members.
type Class struct {
	Source, Target string

	fields  map[string]*Field
	methods map[methodKey]*Method
}

// Field is a field mapping. Desc is the source-side descriptor and may be empty
// for formats that do not carry field descriptors.
type Field struct {
	Source, Target string
	Desc           string
}

// Method is a method mapping keyed by its source name and source-side descriptor.
type Method struct {
	Source, Target string
	Desc           string

	params map[int]*Param
}

type Param struct {
	Index          int
	Source, Target string
}

type methodKey struct {
	name, desc string
}

func NewTable(from, to string) *Table {
	return &Table{
		From:     from,
		To:       to,
		packages: make(map[string]string),
		classes:  make(map[string]*Class),
	}
}

// AddPackage adds a package mapping. Package names use '/' separators and no trailing slash.
func (t *Table) AddPackage(source, target string) error {
	if v, ok := t.packages[source]; ok && v != target {
		return fmt.Errorf("%w: package %s->%s, already mapped to %s", ErrDuplicate, source, target, v)
	}
	t.packages[source] = target
	return nil
}

// AddClass adds a class mapping and returns it so members can be attached.
// Adding the same mapping twice returns the existing class.
func (t *Table) AddClass(source, target string) (*Class, error) {
	if c, ok := t.classes[source]; ok {
		if c.Target != target {
			return nil, fmt.Errorf("%w: class %s->%s, already mapped to %s", ErrDuplicate, source, target, c.Target)
		}
		return c, nil
	}
	c := newClass(source, target)
	t.classes[source] = c
	return c, nil
}

func newClass(source, target string) *Class {
	return &Class{
		Source:  source,
		Target:  target,
		fields:  make(map[string]*Field),
		methods: make(map[methodKey]*Method),
	}
}

func (c *Class) AddField(source, target, desc string) (*Field, error) {
	if f, ok := c.fields[source]; ok {
		if f.Target != target {
			return nil, fmt.Errorf("%w: field %s.%s->%s, already mapped to %s", ErrDuplicate, c.Source, source, target, f.Target)
		}
		if f.Desc == "" {
			f.Desc = desc
		}
		return f, nil
	}
	f := &Field{Source: source, Target: target, Desc: desc}
	c.fields[source] = f
	return f, nil
}

func (c *Class) AddMethod(source, target, desc string) (*Method, error) {
	key := methodKey{source, desc}
	if m, ok := c.methods[key]; ok {
		if m.Target != target {
			return nil, fmt.Errorf("%w: method %s.%s%s->%s, already mapped to %s", ErrDuplicate, c.Source, source, desc, target, m.Target)
		}
		return m, nil
	}
	m := &Method{Source: source, Target: target, Desc: desc, params: make(map[int]*Param)}
	c.methods[key] = m
	return m, nil
}

func (m *Method) AddParam(index int, source, target string) (*Param, error) {
	if p, ok := m.params[index]; ok {
		if p.Target != target {
			return nil, fmt.Errorf("%w: parameter %d of %s%s->%s, already mapped to %s", ErrDuplicate, index, m.Source, m.Desc, target, p.Target)
		}
		return p, nil
	}
	p := &Param{Index: index, Source: source, Target: target}
	m.params[index] = p
	return p, nil
}

// Package returns the target name of a package.
func (t *Table) Package(source string) (string, bool) {
	v, ok := t.packages[source]
	return v, ok
}

// Class looks up a class by its source name.
func (t *Table) Class(source string) *Class {
	return t.classes[source]
}

// Len returns the number of classes in the table.
func (t *Table) Len() int {
	return len(t.classes)
}

// Packages returns package mappings as sorted [source, target] pairs.
func (t *Table) Packages() [][2]string {
	out := make([][2]string, 0, len(t.packages))
	for k, v := range t.packages {
		out = append(out, [2]string{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Classes returns classes sorted by source name.
func (t *Table) Classes() []*Class {
	out := make([]*Class, 0, len(t.classes))
	for _, c := range t.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

func (c *Class) Field(source string) *Field {
	return c.fields[source]
}

func (c *Class) Method(source, desc string) *Method {
	return c.methods[methodKey{source, desc}]
}

// Fields returns fields sorted by source name.
func (c *Class) Fields() []*Field {
	out := make([]*Field, 0, len(c.fields))
	for _, f := range c.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Methods returns methods sorted by source name, then descriptor.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.methods))
	for _, m := range c.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Desc < out[j].Desc
	})
	return out
}

func (m *Method) Param(index int) *Param {
	return m.params[index]
}

// Params returns parameters sorted by index.
func (m *Method) Params() []*Param {
	out := make([]*Param, 0, len(m.params))
	for _, p := range m.params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// MapClass returns the target name of a class or the name itself if it is unmapped.
func (t *Table) MapClass(name string) string {
	if c, ok := t.classes[name]; ok {
		return c.Target
	}
	return name
}

// MapDescriptor rewrites every class reference in a field or method descriptor.
func (t *Table) MapDescriptor(desc string) string {
	return remapDescriptor(desc, t.MapClass)
}

// Equal reports whether both tables hold exactly the same entries.
// Scheme names are not compared.
func (t *Table) Equal(o *Table) bool {
	if len(t.packages) != len(o.packages) || len(t.classes) != len(o.classes) {
		return false
	}
	for k, v := range t.packages {
		if o.packages[k] != v {
			return false
		}
	}
	for k, c := range t.classes {
		oc, ok := o.classes[k]
		if !ok || !c.equal(oc) {
			return false
		}
	}
	return true
}

func (c *Class) equal(o *Class) bool {
	if c.Target != o.Target || len(c.fields) != len(o.fields) || len(c.methods) != len(o.methods) {
		return false
	}
	for k, f := range c.fields {
		of, ok := o.fields[k]
		if !ok || *f != *of {
			return false
		}
	}
	for k, m := range c.methods {
		om, ok := o.methods[k]
		if !ok || m.Target != om.Target || len(m.params) != len(om.params) {
			return false
		}
		for i, p := range m.params {
			op, ok := om.params[i]
			if !ok || *p != *op {
				return false
			}
		}
	}
	return true
}
