// Package pathmat implements path materialisation (spec component D):
// widening the min-except region forward along a word, cloning off
// convergent states so private edits along the new path never leak onto a
// state shared by some other word.
package pathmat

import (
	"github.com/atanasormanow/min-subseq-transducer/internal/signature"
	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// IncreaseExceptFromEpsilonToW walks w from the initial state, extending
// the min-except path one character at a time. At each step, if the
// current state has more than one incoming edge (it is shared by some
// other word), it is cloned and the predecessor's transition is redirected
// to the clone before the walk continues — so everything from here on
// mutates a private copy. w must be a prefix already recognised by the
// automaton (the caller extends with fresh suffix states separately, via
// mutate.go, once the recognised prefix is exhausted). Returns the
// resulting state sequence (length len(w)+1), matching path[i] to the
// state reached after reading w[:i].
func IncreaseExceptFromEpsilonToW(s *store.Store, idx *signature.Index, w []rune) []store.StateID {
	path := make([]store.StateID, len(w)+1)
	path[0] = store.InitialState
	cur := store.InitialState
	for i, ch := range w {
		dest, output, ok := s.Delta(cur, ch)
		if !ok {
			panic("pathmat: w is not a recognised prefix")
		}
		if s.InDegree(dest) > 1 {
			idx.RemoveState(s, dest)
			clone := s.CloneState(dest)
			s.AddDeltaTransition(cur, ch, clone)
			s.SetLambda(cur, ch, output)
			dest = clone
		} else {
			idx.RemoveState(s, dest)
		}
		path[i+1] = dest
		cur = dest
	}
	return path
}
