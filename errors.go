package transducer

import (
	"fmt"

	errorutil "github.com/projectdiscovery/utils/errors"
)

// fatalf aborts on a violated precondition or invariant (spec.md §7):
// these are programmer errors, not recoverable input errors, so the core
// package panics rather than returning an error value. The panic carries
// an errorutil-formatted message so it reads consistently with the rest
// of the stack's error text. Nothing in the CLI driver recovers it.
func fatalf(format string, args ...any) {
	panic(errorutil.NewWithTag("transducer", fmt.Sprintf(format, args...)))
}

func requireNonEmpty(word string) {
	if word == "" {
		fatalf("empty words are not supported")
	}
}

func requireNonEmptyDictionary(entries []Entry) {
	if len(entries) == 0 {
		fatalf("FromDictionary requires at least one entry")
	}
}
