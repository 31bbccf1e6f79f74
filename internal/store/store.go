// Package store implements the automaton store (spec component A): the
// states/delta/delta-inverse/lambda/finality/psi quintuple, and the
// primitive edits over it. Primitives keep delta, delta-inverse and lambda
// consistent with each other but make no claim about minimality or output
// canonicity — that is the job of internal/minimize and internal/pathmat.
package store

import (
	"fmt"
	"sort"
)

// StateID identifies a state. Ids are never reused: AllocState always
// returns current-max+1, and deleted ids leave holes (invariant: no
// renumbering on deletion).
type StateID int

// InitialState is always id 0 (invariant 6: never deleted, never moves).
const InitialState StateID = 0

// inverseEdge is one entry of delta-inverse[dest]: a predecessor reached
// dest via Char.
type inverseEdge struct {
	Char predChar
	Pred StateID
}

type predChar = rune

// Store holds the automaton's raw structure.
type Store struct {
	nextID   StateID
	states   map[StateID]struct{}
	delta    map[StateID]*TransitionSet
	inverse  map[StateID][]inverseEdge
	finality map[StateID]struct{}
	psi      map[StateID]uint64
	alphabet map[rune]struct{}
	iota     uint64
}

// New returns a Store containing only the initial state: non-final, no
// transitions, iota = 0.
func New() *Store {
	s := &Store{
		states:   map[StateID]struct{}{InitialState: {}},
		delta:    map[StateID]*TransitionSet{},
		inverse:  map[StateID][]inverseEdge{},
		finality: map[StateID]struct{}{},
		psi:      map[StateID]uint64{},
		alphabet: map[rune]struct{}{},
	}
	return s
}

// AllocState mints a fresh state id (current max + 1) and registers it.
func (s *Store) AllocState() StateID {
	s.nextID++
	id := s.nextID
	s.states[id] = struct{}{}
	return id
}

func (s *Store) InitState() StateID { return InitialState }

func (s *Store) StateCount() int { return len(s.states) }

// States returns every live state id, sorted ascending.
func (s *Store) States() []StateID {
	out := make([]StateID, 0, len(s.states))
	for id := range s.states {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) Alphabet() []rune {
	out := make([]rune, 0, len(s.alphabet))
	for ch := range s.alphabet {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) transitionsOf(q StateID) *TransitionSet {
	ts := s.delta[q]
	if ts == nil {
		ts = newTransitionSet()
		s.delta[q] = ts
	}
	return ts
}

// Transitions returns the (possibly empty) transition set of q. The
// returned set must not be mutated directly by callers outside this
// package.
func (s *Store) Transitions(q StateID) []Transition {
	if ts, ok := s.delta[q]; ok {
		return ts.All()
	}
	return nil
}

func (s *Store) TransitionCount(q StateID) int {
	if ts, ok := s.delta[q]; ok {
		return ts.Len()
	}
	return 0
}

// Delta returns the destination and output of (q, a), if defined.
func (s *Store) Delta(q StateID, a rune) (dest StateID, output uint64, ok bool) {
	ts, has := s.delta[q]
	if !has {
		return 0, 0, false
	}
	t, found := ts.Get(a)
	if !found {
		return 0, 0, false
	}
	return t.Dest, t.Output, true
}

func (s *Store) addInverseEdge(dest, pred StateID, ch rune) {
	s.inverse[dest] = append(s.inverse[dest], inverseEdge{Char: ch, Pred: pred})
}

func (s *Store) removeInverseEdge(dest, pred StateID, ch rune) {
	edges := s.inverse[dest]
	for i, e := range edges {
		if e.Pred == pred && e.Char == ch {
			s.inverse[dest] = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

// InDegree returns the number of distinct incoming (char, predecessor)
// edges into q — the "convergent" test of spec.md 4.D is InDegree(q) > 1.
func (s *Store) InDegree(q StateID) int {
	return len(s.inverse[q])
}

// AddDeltaTransition installs q1 -a-> q2, overwriting any previous
// destination on a, and keeps delta-inverse consistent. Does not touch
// lambda: the output already recorded on (q1, a), if any, survives.
func (s *Store) AddDeltaTransition(q1 StateID, a rune, q2 StateID) {
	ts := s.transitionsOf(q1)
	if old, ok := ts.Get(a); ok {
		if old.Dest == q2 {
			return
		}
		s.removeInverseEdge(old.Dest, q1, a)
	}
	ts.setDest(a, q2)
	s.addInverseEdge(q2, q1, a)
	s.alphabet[a] = struct{}{}
}

// SetLambda overwrites the output carried by the already-defined edge
// (q1, a).
func (s *Store) SetLambda(q1 StateID, a rune, output uint64) {
	ts, ok := s.delta[q1]
	if !ok {
		panic(fmt.Sprintf("store: lambda write on undefined transition (%d, %q)", q1, a))
	}
	ts.setOutput(a, output)
}

// Lambda reads the output carried by edge (q1, a). Panics if undefined —
// callers must only read edges they know exist.
func (s *Store) Lambda(q1 StateID, a rune) uint64 {
	_, output, ok := s.Delta(q1, a)
	if !ok {
		panic(fmt.Sprintf("store: lambda read on undefined transition (%d, %q)", q1, a))
	}
	return output
}

func (s *Store) IsFinal(q StateID) bool {
	_, ok := s.finality[q]
	return ok
}

// SetFinal marks q final with final output psi.
func (s *Store) SetFinal(q StateID, psi uint64) {
	s.finality[q] = struct{}{}
	s.psi[q] = psi
}

// ClearFinal strips q's finality and final output, if any.
func (s *Store) ClearFinal(q StateID) {
	delete(s.finality, q)
	delete(s.psi, q)
}

func (s *Store) Psi(q StateID) uint64 {
	return s.psi[q]
}

// FinalStates returns every accepting state, sorted ascending.
func (s *Store) FinalStates() []StateID {
	out := make([]StateID, 0, len(s.finality))
	for id := range s.finality {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) Iota() uint64     { return s.iota }
func (s *Store) SetIota(v uint64) { s.iota = v }

// TransitionTotal sums the number of defined (state, char) edges across the
// whole automaton — the public TransitionCount() accessor.
func (s *Store) TransitionTotal() int {
	total := 0
	for _, ts := range s.delta {
		total += ts.Len()
	}
	return total
}

// DeleteState excises q: every edge mentioning it, as source (its own
// outgoing transitions) or as target (found via delta-inverse), is
// removed, then q itself is dropped from states/finality/psi. q must not
// be the initial state.
func (s *Store) DeleteState(q StateID) {
	if q == InitialState {
		panic("store: cannot delete the initial state")
	}
	if ts, ok := s.delta[q]; ok {
		for _, t := range ts.All() {
			s.removeInverseEdge(t.Dest, q, t.Char)
		}
		delete(s.delta, q)
	}
	for _, e := range s.inverse[q] {
		if pts, ok := s.delta[e.Pred]; ok {
			pts.delete(e.Char)
		}
	}
	delete(s.inverse, q)
	delete(s.finality, q)
	delete(s.psi, q)
	delete(s.states, q)
}

// CloneState allocates a fresh state carrying a copy of q's outgoing
// transitions (delta+lambda) and finality/psi. Used by path materialisation
// (internal/pathmat) to split a convergent state off the shared graph.
func (s *Store) CloneState(q StateID) StateID {
	clone := s.AllocState()
	if ts, ok := s.delta[q]; ok {
		for _, t := range ts.All() {
			s.AddDeltaTransition(clone, t.Char, t.Dest)
			s.SetLambda(clone, t.Char, t.Output)
		}
	}
	if s.IsFinal(q) {
		s.SetFinal(clone, s.Psi(q))
	}
	return clone
}

// StateSequence returns the ordered states visited reading w from the
// initial state (length len(w)+1). Panics if a transition is missing: the
// caller must guarantee w is a recognised prefix.
func (s *Store) StateSequence(w []rune) []StateID {
	seq := make([]StateID, len(w)+1)
	seq[0] = InitialState
	cur := InitialState
	for i, ch := range w {
		dest, _, ok := s.Delta(cur, ch)
		if !ok {
			panic(fmt.Sprintf("store: %q is not a recognised prefix (stuck at state %d on %q)", string(w), cur, ch))
		}
		cur = dest
		seq[i+1] = cur
	}
	return seq
}

// Recognizes reports whether w names a complete path from the initial
// state to some state, without panicking on a missing transition.
func (s *Store) Recognizes(w []rune) bool {
	cur := InitialState
	for _, ch := range w {
		dest, _, ok := s.Delta(cur, ch)
		if !ok {
			return false
		}
		cur = dest
	}
	return true
}

// LongestRecognizedPrefix returns the longest prefix of w that names a
// valid path from the initial state.
func (s *Store) LongestRecognizedPrefix(w []rune) []rune {
	cur := InitialState
	i := 0
	for i < len(w) {
		dest, _, ok := s.Delta(cur, w[i])
		if !ok {
			break
		}
		cur = dest
		i++
	}
	return w[:i]
}

// LambdaStar sums the lambda contributions along the path read by w,
// excluding iota and psi. Panics if w is not a recognised prefix.
func (s *Store) LambdaStar(w []rune) uint64 {
	var total uint64
	cur := InitialState
	for _, ch := range w {
		dest, output, ok := s.Delta(cur, ch)
		if !ok {
			panic(fmt.Sprintf("store: %q is not a recognised prefix", string(w)))
		}
		total += output
		cur = dest
	}
	return total
}

// Output computes iota + lambda*(w) + psi(state-after-w) for a recognised
// word w (psi defaults to 0 when the final state is not accepting, though
// callers should only ask for words actually in the dictionary).
func (s *Store) Output(w []rune) uint64 {
	last := InitialState
	total := s.iota
	cur := InitialState
	for _, ch := range w {
		dest, output, ok := s.Delta(cur, ch)
		if !ok {
			panic(fmt.Sprintf("store: %q is not a recognised word", string(w)))
		}
		total += output
		cur = dest
		last = dest
	}
	return total + s.psi[last]
}

// CheckedSub computes a-b, panicking (invariant violation, spec.md 9) if
// b > a: the algorithm guarantees this never happens along a correctly
// maintained min-except path.
func CheckedSub(a, b uint64) uint64 {
	if b > a {
		panic(fmt.Sprintf("store: output subtraction would underflow (%d - %d)", a, b))
	}
	return a - b
}

func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
