// Package transducer builds and maintains a minimal subsequential
// transducer: a deterministic finite-state machine mapping each word of a
// dictionary to a non-negative integer output, kept minimal and canonical
// (outputs pushed as early as possible) across incremental construction,
// out-of-order insertion and deletion.
package transducer

import (
	"fmt"
	"strings"

	"github.com/atanasormanow/min-subseq-transducer/internal/signature"
	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// Transducer is a minimal subsequential transducer over an initially empty
// alphabet. The zero value is not usable — build one with New or
// FromDictionary.
type Transducer struct {
	store *store.Store
	index *signature.Index

	// minExcept is the working word: the automaton is minimal everywhere
	// except possibly along the state path it names. Nil means fully
	// minimal (min-except == ε).
	minExcept []rune
}

// New returns the empty transducer: a single non-final initial state,
// iota == 0, no transitions.
func New() *Transducer {
	return &Transducer{
		store: store.New(),
		index: signature.NewIndex(),
	}
}

func (t *Transducer) isEmpty() bool {
	return t.store.StateCount() == 1 && !t.store.IsFinal(store.InitialState) &&
		t.store.TransitionCount(store.InitialState) == 0
}

// Output returns iota + lambda*(word) + psi(state reached by word). word
// must be a word actually represented by the transducer; behaviour on any
// other word is unspecified (it may panic, per the store's recognised-path
// requirement).
func (t *Transducer) Output(word string) uint64 {
	return t.store.Output([]rune(word))
}

// States returns every live state id, sorted ascending.
func (t *Transducer) States() []int {
	ids := t.store.States()
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// Finality returns the ids of every accepting state, sorted ascending.
func (t *Transducer) Finality() []int {
	ids := t.store.FinalStates()
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// InitialOutput returns iota.
func (t *Transducer) InitialOutput() uint64 {
	return t.store.Iota()
}

// TransitionCount returns the total number of defined (state, char) edges
// across the whole automaton.
func (t *Transducer) TransitionCount() int {
	return t.store.TransitionTotal()
}

// StateAt returns the id of the state reached by reading prefix from the
// initial state. prefix must be a recognised path; behaviour otherwise is
// unspecified (it may panic).
func (t *Transducer) StateAt(prefix string) int {
	path := t.store.StateSequence([]rune(prefix))
	return int(path[len(path)-1])
}

// PsiAt returns the final output recorded at state id, or 0 if the state is
// not final.
func (t *Transducer) PsiAt(id int) uint64 {
	return t.store.Psi(store.StateID(id))
}

// LambdaAt returns the transition output recorded on the edge leaving state
// id over ch. Panics if no such edge exists.
func (t *Transducer) LambdaAt(id int, ch rune) uint64 {
	return t.store.Lambda(store.StateID(id), ch)
}

// IsFinalState reports whether state id is accepting.
func (t *Transducer) IsFinalState(id int) bool {
	return t.store.IsFinal(store.StateID(id))
}

// DebugString dumps the automaton's internal structure, the Go analogue of
// the original implementation's Transducer::print. Intended for tests and
// the CLI's -debug flag, not for parsing.
func (t *Transducer) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "iota=%d min_except=%q\n", t.store.Iota(), string(t.minExcept))
	for _, q := range t.store.States() {
		final := ""
		if t.store.IsFinal(q) {
			final = fmt.Sprintf(" final(psi=%d)", t.store.Psi(q))
		}
		fmt.Fprintf(&b, "state %d%s\n", q, final)
		for _, tr := range t.store.Transitions(q) {
			fmt.Fprintf(&b, "  %q -> %d (lambda=%d)\n", tr.Char, tr.Dest, tr.Output)
		}
	}
	return b.String()
}
