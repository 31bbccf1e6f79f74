package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

func TestOfDistinguishesFinalityAndPsi(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	s.SetFinal(q1, 3)
	s.SetFinal(q2, 4)

	require.NotEqual(t, Of(s, q1), Of(s, q2))
}

func TestOfIsOrderIndependentOverTransitions(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	dest := s.AllocState()

	s.AddDeltaTransition(q1, 'b', dest)
	s.SetLambda(q1, 'b', 1)
	s.AddDeltaTransition(q1, 'a', dest)
	s.SetLambda(q1, 'a', 0)

	s.AddDeltaTransition(q2, 'a', dest)
	s.SetLambda(q2, 'a', 0)
	s.AddDeltaTransition(q2, 'b', dest)
	s.SetLambda(q2, 'b', 1)

	require.Equal(t, Of(s, q1), Of(s, q2), "insertion order must not affect the encoded signature")
}

func TestOfDistinguishesDestination(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	destA := s.AllocState()
	destB := s.AllocState()

	s.AddDeltaTransition(q1, 'a', destA)
	s.SetLambda(q1, 'a', 0)
	s.AddDeltaTransition(q2, 'a', destB)
	s.SetLambda(q2, 'a', 0)

	require.NotEqual(t, Of(s, q1), Of(s, q2))
}

func TestIndexUpsertLookupRemove(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	idx := NewIndex()

	sig := Of(s, q1)
	_, ok := idx.Lookup(sig)
	require.False(t, ok)

	idx.Upsert(sig, q1)
	got, ok := idx.Lookup(sig)
	require.True(t, ok)
	require.Equal(t, q1, got)

	idx.Remove(sig, q1)
	_, ok = idx.Lookup(sig)
	require.False(t, ok)
}

func TestIndexRemoveIsNoOpForNonOwner(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	idx := NewIndex()

	sig := Of(s, q1)
	idx.Upsert(sig, q1)

	idx.Remove(sig, q2)

	got, ok := idx.Lookup(sig)
	require.True(t, ok)
	require.Equal(t, q1, got)
}

func TestIndexRemoveState(t *testing.T) {
	s := store.New()
	q1 := s.AllocState()
	idx := NewIndex()
	idx.Upsert(Of(s, q1), q1)

	idx.RemoveState(s, q1)

	_, ok := idx.Lookup(Of(s, q1))
	require.False(t, ok)
}
