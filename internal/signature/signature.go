// Package signature implements the behavioural-equivalence index (spec
// component B): a state's signature is its finality flag, final output and
// sorted (char, dest, output) transition triples, and two states with equal
// signatures are behaviourally interchangeable.
package signature

import (
	"strconv"
	"strings"

	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// Signature is the hashable fingerprint of a state, built so that two
// states are behaviourally equivalent iff their signatures compare equal.
// It is encoded into a single string so it can key a plain Go map, the
// same "canonical string key" idiom the teacher uses for its own dedupe
// storage.
type Signature string

// Of builds q's signature from its current finality/psi/transitions. The
// transition set handed back by Store is already char-sorted, so the
// encoding only needs to concatenate it.
func Of(s *store.Store, q store.StateID) Signature {
	var b strings.Builder
	if s.IsFinal(q) {
		b.WriteByte('1')
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(s.Psi(q), 10))
	} else {
		b.WriteByte('0')
	}
	for _, t := range s.Transitions(q) {
		b.WriteByte('|')
		b.WriteRune(t.Char)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(t.Dest)))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(t.Output, 10))
	}
	return Signature(b.String())
}
