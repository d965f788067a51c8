package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yookoala/realpath"
	"gopkg.in/yaml.v3"

	"github.com/sinytra/mapconv/mapping"
)

// UserConfig is a format for mapconv.yaml, the interface between the user and the build command
type UserConfig struct {
	Archive   string `yaml:",omitempty"`           // jar with mappings/mappings.tiny, e.g. yarn-1.16.5+build.10-v2.jar
	Entry     string `yaml:",omitempty"`           // tiny file inside the archive
	OutputDir string `yaml:"output_dir,omitempty"` // where converted files are written
	Format    string `yaml:",omitempty"`           // output format for every conversion
	Strict    bool   `yaml:",omitempty"`           // fail when a mapping cannot be reversed without loss
	Bundle    *struct {
		Path        string
		Format      string `yaml:",omitempty"` // jar or cpio
		Compression string `yaml:",omitempty"` // cpio only
	} `yaml:",omitempty"`
	Conversions []struct {
		Name     string `yaml:",omitempty"`
		Mappings string // text mapping keyed by official names
		Target   string // named or intermediary
		Output   string `yaml:",omitempty"`
		Entry    string `yaml:",omitempty"` // file name inside the bundle
	}
}

// An internal structure that represents configuration for the build command.
// It is essentially combination of UserConfig + flags
type converterConfig struct {
	format         mapping.Format
	strict         bool
	conversions    []conversion
	bundle         string // bundle path, empty if no bundle is built
	bundleFormat   string
	compression    string
	forceOverwrite bool
}

var bundleFormats = []string{"jar", "cpio"}

// default bundle entry names used by mod loaders looking up the converted files
var defaultBundleEntries = map[mapping.Scheme]string{
	mapping.Named:        "yarnToMcp.tsrg",
	mapping.Intermediary: "intermediaryToSrg.tsrg",
}

// resolvePath makes p relative to dir and canonicalizes it. Paths that cannot be
// canonicalized yet (e.g. outputs that do not exist) are only cleaned.
func resolvePath(dir, p string) string {
	if p == "" {
		return ""
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	if rp, err := realpath.Realpath(p); err == nil {
		return rp
	}
	return filepath.Clean(p)
}

// read user config from the specified file.
// once the user config is parsed, flags values are applied on top of it.
func readConverterConfig(file string) (*converterConfig, error) {
	var u UserConfig

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("config %s: %w", file, err)
	}

	dir := filepath.Dir(file)
	if rp, err := realpath.Realpath(dir); err == nil {
		dir = rp
	}

	// config sanity check
	if u.Archive == "" {
		return nil, fmt.Errorf("config: option archive is required")
	}
	if len(u.Conversions) == 0 {
		return nil, fmt.Errorf("config: no conversions specified")
	}

	var conf converterConfig

	if u.Format == "" {
		u.Format = string(mapping.FormatTSRG)
	}
	conf.format, err = mapping.ParseFormat(u.Format)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	conf.strict = u.Strict

	entry := u.Entry
	if entry == "" {
		entry = tinyEntry
	}
	archive := resolvePath(dir, u.Archive)
	outputDir := dir
	if u.OutputDir != "" {
		outputDir = resolvePath(dir, u.OutputDir)
	}

	outputs := make(map[string]string)
	bundleEntries := make(map[string]string)
	for i, c := range u.Conversions {
		target, err := mapping.ParseTarget(c.Target)
		if err != nil {
			return nil, fmt.Errorf("config: conversions[%d]: %w", i, err)
		}
		if c.Mappings == "" {
			return nil, fmt.Errorf("config: conversions[%d]: option mappings is required", i)
		}

		name := c.Name
		if name == "" {
			name = string(target)
		}
		output := c.Output
		if output == "" {
			output = defaultOutputName(target, conf.format)
		}
		bundleAs := c.Entry
		if bundleAs == "" {
			bundleAs = defaultBundleEntries[target]
		}
		output = resolvePath(outputDir, output)
		if prev, ok := outputs[output]; ok {
			return nil, fmt.Errorf("config: conversions %s and %s write to the same file %s", prev, name, output)
		}
		outputs[output] = name
		if prev, ok := bundleEntries[bundleAs]; ok && u.Bundle != nil {
			return nil, fmt.Errorf("config: conversions %s and %s use the same bundle entry %s", prev, name, bundleAs)
		}
		bundleEntries[bundleAs] = name

		conf.conversions = append(conf.conversions, conversion{
			name:     name,
			archive:  archive,
			entry:    entry,
			mappings: resolvePath(dir, c.Mappings),
			target:   target,
			output:   output,
			bundleAs: bundleAs,
		})
	}

	if b := u.Bundle; b != nil {
		if b.Path == "" {
			return nil, fmt.Errorf("config: option bundle.path is required")
		}
		conf.bundle = resolvePath(dir, b.Path)
		conf.bundleFormat = b.Format
		if conf.bundleFormat == "" {
			conf.bundleFormat = "jar"
		}
		if !contains(bundleFormats, conf.bundleFormat) {
			return nil, fmt.Errorf("config: unknown bundle format %s", conf.bundleFormat)
		}
		conf.compression = b.Compression
		if conf.compression != "" && conf.bundleFormat != "cpio" {
			return nil, fmt.Errorf("config: option bundle.compression can only be used with the cpio bundle format")
		}
		if conf.compression != "" && !validCompression(conf.compression) {
			return nil, fmt.Errorf("config: unknown compression format %s", conf.compression)
		}
	}

	// now check command line flags
	conf.forceOverwrite = opts.BuildCommand.Force
	if opts.BuildCommand.Strict {
		conf.strict = true
	}

	return &conf, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
