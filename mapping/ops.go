package mapping

import "sort"

// Reverse returns a new table with the sides swapped. Member descriptors are
// rewritten into the new source side.
//
// If two source keys share a target, the one that sorts first wins and the
// rest are dropped. Use Collisions to find out whether that happens.
func (t *Table) Reverse() *Table {
	r := NewTable(t.To, t.From)

	pkgs := newBimap()
	for _, p := range t.Packages() {
		if pkgs.add(p[0], p[1]) == nil {
			r.packages[p[1]] = p[0]
		}
	}

	classes := newBimap()
	for _, c := range t.Classes() {
		if classes.add(c.Source, c.Target) != nil {
			continue
		}
		rc := newClass(c.Target, c.Source)
		r.classes[c.Target] = rc

		for _, f := range c.Fields() {
			if _, ok := rc.fields[f.Target]; ok {
				continue
			}
			rc.fields[f.Target] = &Field{Source: f.Target, Target: f.Source, Desc: t.MapDescriptor(f.Desc)}
		}
		for _, m := range c.Methods() {
			key := methodKey{m.Target, t.MapDescriptor(m.Desc)}
			if _, ok := rc.methods[key]; ok {
				continue
			}
			rm := &Method{Source: key.name, Target: m.Source, Desc: key.desc, params: make(map[int]*Param, len(m.params))}
			for i, p := range m.params {
				rm.params[i] = &Param{Index: i, Source: p.Target, Target: p.Source}
			}
			rc.methods[key] = rm
		}
	}

	return r
}

// Chain composes t (A->B) with next (B->C) into a new A->C table.
// Entries whose B-side name is absent from next are dropped.
func (t *Table) Chain(next *Table) *Table {
	out := NewTable(t.From, next.To)

	for src, mid := range t.packages {
		if dst, ok := next.packages[mid]; ok {
			out.packages[src] = dst
		}
	}

	for _, c := range t.classes {
		nc, ok := next.classes[c.Target]
		if !ok {
			continue
		}
		oc := newClass(c.Source, nc.Target)
		out.classes[c.Source] = oc

		for _, f := range c.fields {
			nf, ok := nc.fields[f.Target]
			if !ok {
				continue
			}
			oc.fields[f.Source] = &Field{Source: f.Source, Target: nf.Target, Desc: f.Desc}
		}
		for key, m := range c.methods {
			nm, ok := nc.methods[methodKey{m.Target, t.MapDescriptor(m.Desc)}]
			if !ok {
				continue
			}
			om := &Method{Source: m.Source, Target: nm.Target, Desc: m.Desc, params: make(map[int]*Param)}
			for i, p := range m.params {
				if np, ok := nm.params[i]; ok {
					om.params[i] = &Param{Index: i, Source: p.Source, Target: np.Target}
				}
			}
			oc.methods[key] = om
		}
	}

	return out
}

// Collision is a group of source keys that share the same target.
type Collision struct {
	Kind    string // "package", "class", "field" or "method"
	Owner   string // owning class for members
	Target  string
	Sources []string // in the order Reverse visits them, the first one is kept
}

// Collisions lists all targets that more than one source key maps to,
// i.e. everything Reverse would have to drop.
func (t *Table) Collisions() []Collision {
	var out []Collision

	// sources are appended in the same sorted order Reverse uses,
	// so they must not be re-sorted as plain strings here
	group := func(kind, owner string, targets []string, pairs map[string][]string) {
		sort.Strings(targets)
		for _, tg := range targets {
			if sources := pairs[tg]; len(sources) > 1 {
				out = append(out, Collision{Kind: kind, Owner: owner, Target: tg, Sources: sources})
			}
		}
	}
	add := func(targets []string, pairs map[string][]string, target, source string) []string {
		if _, ok := pairs[target]; !ok {
			targets = append(targets, target)
		}
		pairs[target] = append(pairs[target], source)
		return targets
	}

	var targets []string
	pairs := make(map[string][]string)
	for _, p := range t.Packages() {
		targets = add(targets, pairs, p[1], p[0])
	}
	group("package", "", targets, pairs)

	targets, pairs = nil, make(map[string][]string)
	classes := t.Classes()
	for _, c := range classes {
		targets = add(targets, pairs, c.Target, c.Source)
	}
	group("class", "", targets, pairs)

	for _, c := range classes {
		targets, pairs = nil, make(map[string][]string)
		for _, f := range c.Fields() {
			targets = add(targets, pairs, f.Target, f.Source)
		}
		group("field", c.Source, targets, pairs)

		targets, pairs = nil, make(map[string][]string)
		for _, m := range c.Methods() {
			targets = add(targets, pairs, m.Target+t.MapDescriptor(m.Desc), m.Source+m.Desc)
		}
		group("method", c.Source, targets, pairs)
	}

	return out
}
