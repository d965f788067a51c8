package mapping

import "strings"

// Relocation moves every unmapped class under From (an internal name prefix
// such as "org/spongepowered/") to To.
type Relocation struct {
	From, To string
}

// Remapper answers name lookups against a table. Members that are not found
// in their owner fall back to a flat index of member names, and class names
// that are not in the table get relocation prefixes applied.
type Remapper struct {
	table       *Table
	flat        map[string]string
	relocations []Relocation
}

func NewRemapper(t *Table, relocations ...Relocation) *Remapper {
	return &Remapper{
		table:       t,
		flat:        t.Flatten(),
		relocations: relocations,
	}
}

// Flatten indexes member names regardless of their owner. Intermediary style
// names are globally unique so this is enough to remap strings that lost
// their owner (reflection, mixin targets). Names with ambiguous targets are
// left out.
func (t *Table) Flatten() map[string]string {
	flat := make(map[string]string)
	ambiguous := make(map[string]bool)
	add := func(src, dst string) {
		if src == dst || ambiguous[src] {
			return
		}
		if v, ok := flat[src]; ok && v != dst {
			delete(flat, src)
			ambiguous[src] = true
			return
		}
		flat[src] = dst
	}
	for _, c := range t.classes {
		for _, f := range c.fields {
			add(f.Source, f.Target)
		}
		for _, m := range c.methods {
			add(m.Source, m.Target)
		}
	}
	return flat
}

func (r *Remapper) relocate(name string) string {
	for _, rel := range r.relocations {
		if strings.HasPrefix(name, rel.From) {
			return rel.To + name[len(rel.From):]
		}
	}
	return name
}

func (r *Remapper) MapClass(name string) string {
	if c, ok := r.table.classes[name]; ok {
		return c.Target
	}
	return r.relocate(name)
}

func (r *Remapper) MapDescriptor(desc string) string {
	return remapDescriptor(desc, r.MapClass)
}

func (r *Remapper) MapField(owner, name string) string {
	if c, ok := r.table.classes[owner]; ok {
		if f, ok := c.fields[name]; ok {
			return f.Target
		}
	}
	if v, ok := r.flat[name]; ok {
		return v
	}
	return name
}

func (r *Remapper) MapMethod(owner, name, desc string) string {
	if c, ok := r.table.classes[owner]; ok {
		if m, ok := c.methods[methodKey{name, desc}]; ok {
			return m.Target
		}
	}
	if v, ok := r.flat[name]; ok {
		return v
	}
	return name
}

// MapValue remaps a free form string constant: a dotted class name, a bare
// member name or anything that starts with a relocated package.
func (r *Remapper) MapValue(s string) string {
	for _, rel := range r.relocations {
		from := strings.ReplaceAll(rel.From, "/", ".")
		if strings.HasPrefix(s, from) {
			return strings.ReplaceAll(rel.To, "/", ".") + s[len(from):]
		}
	}
	if v, ok := r.flat[s]; ok {
		return v
	}
	internal := strings.ReplaceAll(s, ".", "/")
	if c, ok := r.table.classes[internal]; ok {
		return strings.ReplaceAll(c.Target, "/", ".")
	}
	return s
}

// MapSymbol remaps a symbol reference written as "owner", "owner.name" or
// "owner.name(desc)" where owner is an internal class name.
func (r *Remapper) MapSymbol(sym string) string {
	dot := strings.IndexByte(sym, '.')
	if dot < 0 {
		return r.MapClass(sym)
	}
	owner, member := sym[:dot], sym[dot+1:]
	if p := strings.IndexByte(member, '('); p >= 0 {
		name, desc := member[:p], member[p:]
		return r.MapClass(owner) + "." + r.MapMethod(owner, name, desc) + r.MapDescriptor(desc)
	}
	return r.MapClass(owner) + "." + r.MapField(owner, member)
}
