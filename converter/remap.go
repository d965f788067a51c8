package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sinytra/mapconv/mapping"
)

func parseRelocations(specs []string) ([]mapping.Relocation, error) {
	var relocs []mapping.Relocation
	for _, s := range specs {
		from, to, ok := strings.Cut(s, "=")
		if !ok || from == "" {
			return nil, fmt.Errorf("invalid relocation %q, expected from=to", s)
		}
		// accept both dotted and internal package names
		relocs = append(relocs, mapping.Relocation{
			From: strings.ReplaceAll(from, ".", "/"),
			To:   strings.ReplaceAll(to, ".", "/"),
		})
	}
	return relocs, nil
}

// remapNames prints the mapped form of every name. If names is empty the
// names are read from in, one per line.
func remapNames(r *mapping.Remapper, names []string, in io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if len(names) > 0 {
		for _, n := range names {
			if _, err := fmt.Fprintln(bw, r.MapSymbol(n)); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		n := strings.TrimSpace(sc.Text())
		if n == "" {
			continue
		}
		if _, err := fmt.Fprintln(bw, r.MapSymbol(n)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

func runRemap() error {
	cmd := opts.RemapCommand

	t, err := loadMappings(cmd.Mappings)
	if err != nil {
		return err
	}
	if cmd.Reverse {
		if c := t.Collisions(); len(c) > 0 {
			warning("%s has %d shared targets, reversed lookups keep the first source", cmd.Mappings, len(c))
		}
		t = t.Reverse()
	}
	relocs, err := parseRelocations(cmd.Relocate)
	if err != nil {
		return err
	}

	return remapNames(mapping.NewRemapper(t, relocs...), cmd.Args.Names, os.Stdin, os.Stdout)
}
