package main

import (
	"fmt"
	"path/filepath"

	"github.com/sinytra/mapconv/mapping"
)

// srgNamespace names the target side of text mappings that do not declare one.
const srgNamespace = "srg"

// conversion turns "canonical -> target" names from the archive plus
// "canonical -> B" names from a text mapping file into "target -> B".
type conversion struct {
	name     string
	archive  string // zip or jar with the tiny mappings
	entry    string // tiny file inside archive
	mappings string // text mapping keyed by canonical names
	target   mapping.Scheme
	output   string
	bundleAs string // entry name inside the bundle
}

// defaultOutputName names outputs after the exposed scheme, e.g. namedToMcp.tsrg.
func defaultOutputName(target mapping.Scheme, format mapping.Format) string {
	return fmt.Sprintf("%sToMcp.%s", target, format)
}

// compose reverses the archive projection and chains it with the text table.
// Symbols missing from either side are dropped.
func compose(archive *mapping.NamedTable, text *mapping.Table, target mapping.Scheme, strict bool) (*mapping.Table, error) {
	canonicalToTarget, err := archive.Table(string(mapping.Official), string(target))
	if err != nil {
		return nil, err
	}

	if collisions := canonicalToTarget.Collisions(); len(collisions) > 0 {
		c := collisions[0]
		if strict {
			return nil, fmt.Errorf("%s mappings cannot be reversed: %d targets are shared, e.g. %s %s <- %v",
				target, len(collisions), c.Kind, c.Target, c.Sources)
		}
		warning("%s mappings have %d shared targets, keeping the first source of each (e.g. %s %s <- %v)",
			target, len(collisions), c.Kind, c.Target, c.Sources)
	}

	out := canonicalToTarget.Reverse().Chain(text)
	if text.Unnamed() {
		// headerless srg family files are keyed by official names and map to srg
		out.To = srgNamespace
	}
	if dropped := canonicalToTarget.Len() - out.Len(); dropped > 0 {
		debug("%d of %d %s classes have no counterpart in the text mappings", dropped, canonicalToTarget.Len(), target)
	}
	return out, nil
}

// runConversion is a single load -> compose -> write cycle. It shares nothing
// with other conversions so they may run in any order.
func runConversion(c conversion, format mapping.Format, strict bool) error {
	archive, err := loadArchive(c.archive, c.entry)
	if err != nil {
		return err
	}
	text, err := loadMappings(c.mappings)
	if err != nil {
		return err
	}

	out, err := compose(archive, text, c.target, strict)
	if err != nil {
		return err
	}
	if err := writeTable(c.output, out, format); err != nil {
		return err
	}
	info("%s: wrote %d classes to %s", c.name, out.Len(), c.output)
	return nil
}

func runConvert() error {
	cmd := opts.ConvertCommand

	target, err := mapping.ParseTarget(cmd.Target)
	if err != nil {
		return err
	}
	format, err := mapping.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	output := cmd.Args.Output
	if output == "" {
		output = defaultOutputName(target, format)
	}

	c := conversion{
		name:     "convert",
		archive:  cmd.Archive,
		entry:    cmd.Entry,
		mappings: cmd.Mappings,
		target:   target,
		output:   output,
	}
	return runConversion(c, format, cmd.Strict)
}

func runBuild() error {
	conf, err := readConverterConfig(opts.BuildCommand.Config)
	if err != nil {
		return err
	}
	return build(conf)
}

func build(conf *converterConfig) error {
	for _, c := range conf.conversions {
		if err := runConversion(c, conf.format, conf.strict); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}

	if conf.bundle == "" {
		return nil
	}
	return writeBundle(conf)
}

func writeBundle(conf *converterConfig) error {
	bundle, err := NewBundle(conf.bundle, conf.bundleFormat, conf.compression, conf.forceOverwrite)
	if err != nil {
		return err
	}
	defer bundle.Cleanup()

	for _, c := range conf.conversions {
		name := c.bundleAs
		if name == "" {
			name = filepath.Base(c.output)
		}
		if err := bundle.AppendFile(name, c.output); err != nil {
			return err
		}
	}

	if err := bundle.Close(); err != nil {
		return err
	}
	info("bundled %d mapping files into %s", len(conf.conversions), conf.bundle)
	return nil
}
