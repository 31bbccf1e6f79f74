package minimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atanasormanow/min-subseq-transducer/internal/signature"
	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// buildChain links a plain linear chain q0 -w[0]-> q1 -w[1]-> ... from the
// initial state, each edge carrying output 0, the final state marked
// accepting with psi. Existing transitions along the way (e.g. a shared
// prefix from a previous buildChain call) are reused rather than
// overwritten, so repeated calls can build a branching automaton. Returns
// the full state sequence.
func buildChain(s *store.Store, word string, psi uint64) []store.StateID {
	path := make([]store.StateID, len(word)+1)
	path[0] = store.InitialState
	cur := store.InitialState
	for i, ch := range word {
		dest, _, ok := s.Delta(cur, ch)
		if !ok {
			dest = s.AllocState()
			s.AddDeltaTransition(cur, ch, dest)
			s.SetLambda(cur, ch, 0)
		}
		cur = dest
		path[i+1] = cur
	}
	s.SetFinal(cur, psi)
	return path
}

func TestReduceExceptByOneMergesEquivalentTail(t *testing.T) {
	s := store.New()
	idx := signature.NewIndex()

	// Two independent final states with identical signatures (final, psi=5,
	// no outgoing transitions) hung off two different branches.
	pathA := buildChain(s, "a", 5)
	pathB := buildChain(s, "b", 5)

	idx.Upsert(signature.Of(s, pathA[1]), pathA[1])

	survivor := ReduceExceptByOne(s, idx, pathB, 'b')

	require.Equal(t, pathA[1], survivor, "the second identical leaf must fold into the first")
	dest, _, ok := s.Delta(store.InitialState, 'b')
	require.True(t, ok)
	require.Equal(t, pathA[1], dest)
}

func TestReduceExceptByOneRegistersNovelSignature(t *testing.T) {
	s := store.New()
	idx := signature.NewIndex()
	path := buildChain(s, "a", 5)

	survivor := ReduceExceptByOne(s, idx, path, 'a')

	require.Equal(t, path[1], survivor)
	got, ok := idx.Lookup(signature.Of(s, path[1]))
	require.True(t, ok)
	require.Equal(t, path[1], got)
}

func TestReduceToEpsilonFoldsSharedSuffixes(t *testing.T) {
	s := store.New()
	idx := signature.NewIndex()

	pathCab := buildChain(s, "cab", 5)
	idx.Upsert(signature.Of(s, pathCab[3]), pathCab[3])
	idx.Upsert(signature.Of(s, pathCab[2]), pathCab[2])
	idx.Upsert(signature.Of(s, pathCab[1]), pathCab[1])
	idx.Upsert(signature.Of(s, store.InitialState), store.InitialState)

	pathCad := buildChain(s, "cad", 5)

	before := s.StateCount()
	ReduceToEpsilon(s, idx, pathCad, []rune("cad"))

	// "cad"'s terminal state is behaviourally identical to "cab"'s terminal
	// (both final, psi=5, no outgoing edges) so it must fold away, while the
	// branching state shared on 'c'+'a' survives unmerged (different
	// outgoing alphabets).
	require.Less(t, s.StateCount(), before)
	dest, _, ok := s.Delta(pathCad[2], 'd')
	require.True(t, ok)
	require.Equal(t, pathCab[3], dest)
}
