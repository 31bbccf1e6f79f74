package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Options holds the driver's parsed command-line flags, the goflags
// CreateGroup/StringVarP shape of internal/runner/runner.go.
type Options struct {
	CSV     string
	Base    string
	Delete  bool
	Query   goflags.StringSlice
	Out     string
	Format  string
	Config  string
	Debug   bool
	Verbose bool
	Silent  bool
}

// ParseFlags parses the CLI's flags, applies the saved config (if any), and
// sets up logging verbosity, following the same order of operations as
// internal/runner/runner.go's ParseFlags.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Build and query a minimal subsequential transducer over a CSV dictionary.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.CSV, "csv", "c", "", "CSV file of entries to load (word,output header for additions, content header for deletions; stdin if empty)"),
		flagSet.BoolVarP(&opts.Delete, "delete", "d", false, "treat -csv as a deletion list to remove from -base instead of an addition list"),
		flagSet.StringVarP(&opts.Base, "base", "b", "", "base dictionary CSV to build before applying -delete (word,output header; required with -delete)"),
		flagSet.StringSliceVarP(&opts.Query, "query", "q", nil, "word(s) to query after loading (comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Out, "output", "o", "", "output file to write query results to (stdout if empty)"),
		flagSet.StringVarP(&opts.Format, "format", "f", "", "output line template, e.g. '{{word}} -> {{output}}' (default from config)"),
		flagSet.BoolVarP(&opts.Debug, "debug", "dbg", false, "dump the transducer's internal state after loading"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `transducer cli config file (default '$HOME/.config/transducer/config.yaml')`),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.Format == "" {
		opts.Format = DefaultConfig.Format
	}

	if opts.CSV == "" && !fileutil.HasStdin() {
		gologger.Fatal().Msgf("transducer: no CSV input found (pass -csv or pipe via stdin)")
	}
	if opts.Delete && opts.Base == "" {
		gologger.Fatal().Msgf("transducer: -delete requires -base to name the dictionary to delete from")
	}

	return opts
}

// OpenInput returns the CSV source: the named file, or stdin when -csv was
// not given.
func (o *Options) OpenInput() (*os.File, error) {
	if o.CSV == "" {
		return os.Stdin, nil
	}
	return os.Open(o.CSV)
}

// OpenBase returns the base dictionary CSV source for -delete mode.
func (o *Options) OpenBase() (*os.File, error) {
	return os.Open(o.Base)
}
