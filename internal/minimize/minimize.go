// Package minimize implements the minimisation engine (spec component C):
// folding the trailing end of the min-except path back into the shared,
// minimal part of the automaton, one state at a time.
package minimize

import (
	"github.com/atanasormanow/min-subseq-transducer/internal/signature"
	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// ReduceExceptByOne folds the last edge of the min-except path
// (path[n-1] -a-> path[n]) back into the automaton: if some other live
// state already wears path[n]'s signature, path[n] is replaced by that
// equivalent state and discarded; otherwise path[n] is registered as the
// new canonical representative of its own signature. Either way the edge
// (path[n-1], a) is left pointing at whichever state survives. Returns the
// state that now occupies the tail position (path[n], unless merged away).
func ReduceExceptByOne(s *store.Store, idx *signature.Index, path []store.StateID, a rune) store.StateID {
	n := len(path) - 1
	tail := path[n]
	pred := path[n-1]

	sig := signature.Of(s, tail)
	if existing, ok := idx.Lookup(sig); ok && existing != tail {
		preservedOutput := s.Lambda(pred, a)
		s.DeleteState(tail)
		s.AddDeltaTransition(pred, a, existing)
		s.SetLambda(pred, a, preservedOutput)
		return existing
	}
	idx.Upsert(sig, tail)
	return tail
}

// ReduceToLength runs ReduceExceptByOne until the min-except region has
// shrunk to length keepLen (measured in edges from the initial state),
// leaving path[:keepLen+1] as the new min-except path. word supplies the
// characters read along path (len(word) == len(path)-1).
func ReduceToLength(s *store.Store, idx *signature.Index, path []store.StateID, word []rune, keepLen int) []store.StateID {
	cur := append([]store.StateID(nil), path...)
	for len(cur)-1 > keepLen {
		n := len(cur) - 1
		ReduceExceptByOne(s, idx, cur, word[n-1])
		cur = cur[:n]
	}
	return cur
}

// ReduceToEpsilon folds the min-except region all the way back to the
// initial state.
func ReduceToEpsilon(s *store.Store, idx *signature.Index, path []store.StateID, word []rune) []store.StateID {
	return ReduceToLength(s, idx, path, word, 0)
}
