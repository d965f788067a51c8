package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

var opts struct {
	Verbose bool `short:"v" long:"verbose" description:"Enable verbose output"`

	ConvertCommand struct {
		Archive  string `short:"a" long:"archive" required:"true" description:"Jar or zip with the tiny mappings"`
		Entry    string `long:"entry" default:"mappings/mappings.tiny" description:"Path of the tiny mappings inside the archive"`
		Mappings string `short:"m" long:"mappings" required:"true" description:"Text mappings keyed by official names (srg, csrg, tsrg, tsrg2, tiny)"`
		Target   string `short:"t" long:"target" default:"named" description:"Scheme the output is keyed by (named or intermediary)"`
		Format   string `short:"f" long:"format" default:"tsrg" description:"Output format (tsrg, tsrg2, srg, csrg)"`
		Strict   bool   `long:"strict" description:"Fail if the archive mappings cannot be reversed without loss"`
		Args     struct {
			Output string `positional-arg-name:"output" description:"Output file, <target>ToMcp.<format> if not specified"`
		} `positional-args:"true"`
	} `command:"convert" description:"Convert a single mappings file"`

	BuildCommand struct {
		Config string `short:"c" long:"config" default:"mapconv.yaml" description:"Configuration file path"`
		Force  bool   `short:"f" long:"force" description:"Overwrite existing bundle file"`
		Strict bool   `long:"strict" description:"Fail if the archive mappings cannot be reversed without loss"`
	} `command:"build" description:"Run every conversion from the config file and bundle the results"`

	LsCommand struct {
		Args struct {
			Bundle string `positional-arg-name:"bundle" required:"true"`
		} `positional-args:"true"`
	} `command:"ls" description:"List entries of a bundle"`

	CatCommand struct {
		Args struct {
			Bundle string `positional-arg-name:"bundle" required:"true"`
			Entry  string `positional-arg-name:"entry" required:"true"`
		} `positional-args:"true"`
	} `command:"cat" description:"Print content of a bundle entry"`

	RemapCommand struct {
		Mappings string   `short:"m" long:"mappings" required:"true" description:"Mappings file"`
		Reverse  bool     `short:"r" long:"reverse" description:"Map from the target side back to the source side"`
		Relocate []string `long:"relocate" value-name:"FROM=TO" description:"Move unmapped classes from one package to another"`
		Args     struct {
			Names []string `positional-arg-name:"name" description:"Symbols (owner, owner.name or owner.name(desc)); read from stdin if none"`
		} `positional-args:"true"`
	} `command:"remap" description:"Remap symbol names"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Verbose {
		verbosityLevel = levelDebug
	}

	var err error
	switch parser.Active.Name {
	case "convert":
		err = runConvert()
	case "build":
		err = runBuild()
	case "ls":
		err = runLs()
	case "cat":
		err = runCat()
	case "remap":
		err = runRemap()
	}
	if err != nil {
		severe("%v", err)
		os.Exit(1)
	}
}
