package main

import (
	"fmt"
	"io"
	"os"

	"github.com/projectdiscovery/gologger"

	transducer "github.com/atanasormanow/min-subseq-transducer"
	"github.com/atanasormanow/min-subseq-transducer/internal/ingest"
	"github.com/atanasormanow/min-subseq-transducer/internal/runner"
)

func main() {
	opts := runner.ParseFlags()

	src, err := opts.OpenInput()
	if err != nil {
		gologger.Fatal().Msgf("failed to open input: %v", err)
	}
	if closer, ok := src.(io.Closer); ok && src != os.Stdin {
		defer closer.Close()
	}

	if opts.Delete {
		runDelete(opts, src)
		return
	}
	runBuild(opts, src)
}

func runBuild(opts *runner.Options, src io.Reader) {
	entries, err := ingest.ReadAdditions(src, runner.DefaultConfig.WordColumn, runner.DefaultConfig.OutputColumn)
	if err != nil {
		gologger.Fatal().Msgf("failed to read CSV: %v", err)
	}

	t := transducer.FromDictionary(entries)
	gologger.Info().Msgf("loaded %d entries into %d states", len(entries), len(t.States()))

	if opts.Debug {
		gologger.Debug().Msg(t.DebugString())
	}

	runQueries(opts, t)
}

func runDelete(opts *runner.Options, src io.Reader) {
	base, err := opts.OpenBase()
	if err != nil {
		gologger.Fatal().Msgf("failed to open base dictionary: %v", err)
	}
	defer base.Close()

	entries, err := ingest.ReadAdditions(base, runner.DefaultConfig.WordColumn, runner.DefaultConfig.OutputColumn)
	if err != nil {
		gologger.Fatal().Msgf("failed to read base CSV: %v", err)
	}
	words, err := ingest.ReadDeletions(src, runner.DefaultConfig.ContentColumn)
	if err != nil {
		gologger.Fatal().Msgf("failed to read deletion CSV: %v", err)
	}

	t := transducer.FromDictionary(entries)
	for _, w := range words {
		t.RemoveEntryWithWord(w)
	}
	gologger.Info().Msgf("deleted %d entries, %d states remain", len(words), len(t.States()))

	if opts.Debug {
		gologger.Debug().Msg(t.DebugString())
	}

	runQueries(opts, t)
}

func runQueries(opts *runner.Options, t *transducer.Transducer) {
	if len(opts.Query) == 0 {
		return
	}

	out := os.Stdout
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	for _, word := range opts.Query {
		output := t.Output(word)
		fmt.Fprintln(out, runner.FormatResult(opts.Format, word, output))
	}
}
