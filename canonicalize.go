package transducer

import "github.com/atanasormanow/min-subseq-transducer/internal/store"

// lcp returns the length of the longest common prefix of a and b.
func lcp(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// lexLess reports whether a sorts strictly before b.
func lexLess(a, b []rune) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// minOutgoing returns the minimum value among q's outgoing lambda edges and
// its psi (if final); 0 if q has neither.
func minOutgoing(s *store.Store, q store.StateID) (uint64, bool) {
	var m uint64
	has := false
	for _, t := range s.Transitions(q) {
		if !has || t.Output < m {
			m, has = t.Output, true
		}
	}
	if s.IsFinal(q) {
		if p := s.Psi(q); !has || p < m {
			m, has = p, true
		}
	}
	return m, has
}

// canonicalizeMinExcept restores invariant 5 (outputs pushed maximally
// upstream) along w after an edit has disturbed it — used by
// RemoveEntryWithWord (spec.md 4.E step 5). Walks backward from w's
// terminal state: at each state, the minimum across outgoing lambda values
// and psi is extracted, subtracted from all of them, and carried upstream
// onto the incoming edge (or onto iota, at the initial state).
func canonicalizeMinExcept(s *store.Store, w []rune) {
	path := s.StateSequence(w)
	for i := len(path) - 1; i >= 0; i-- {
		state := path[i]
		m, has := minOutgoing(s, state)
		if !has || m == 0 {
			continue
		}
		for _, t := range s.Transitions(state) {
			s.SetLambda(state, t.Char, store.CheckedSub(t.Output, m))
		}
		if s.IsFinal(state) {
			s.SetFinal(state, store.CheckedSub(s.Psi(state), m))
		}
		if i == 0 {
			s.SetIota(s.Iota() + m)
		} else {
			pred, ch := path[i-1], w[i-1]
			s.SetLambda(pred, ch, s.Lambda(pred, ch)+m)
		}
	}
}
