package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	require.Equal(t, 1, s.StateCount())
	require.False(t, s.IsFinal(InitialState))
	require.Equal(t, 0, s.TransitionCount(InitialState))
	require.Zero(t, s.Iota())
}

func TestAllocStateNeverReusesIDs(t *testing.T) {
	s := New()
	a := s.AllocState()
	s.DeleteState(a)
	b := s.AllocState()
	require.NotEqual(t, a, b)
}

func TestAddDeltaTransitionAndLambda(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	s.AddDeltaTransition(InitialState, 'a', q1)
	s.SetLambda(InitialState, 'a', 7)

	dest, output, ok := s.Delta(InitialState, 'a')
	require.True(t, ok)
	require.Equal(t, q1, dest)
	require.EqualValues(t, 7, output)
	require.EqualValues(t, 7, s.Lambda(InitialState, 'a'))
	require.ElementsMatch(t, []rune{'a'}, s.Alphabet())
}

func TestAddDeltaTransitionOverwritesDestination(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	s.AddDeltaTransition(InitialState, 'a', q1)
	require.Equal(t, 1, s.InDegree(q1))

	s.AddDeltaTransition(InitialState, 'a', q2)
	require.Equal(t, 0, s.InDegree(q1))
	require.Equal(t, 1, s.InDegree(q2))
}

func TestLambdaPanicsOnUndefinedTransition(t *testing.T) {
	s := New()
	require.Panics(t, func() {
		s.Lambda(InitialState, 'z')
	})
}

func TestInDegreeTracksConvergence(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	shared := s.AllocState()
	s.AddDeltaTransition(q1, 'x', shared)
	s.AddDeltaTransition(q2, 'y', shared)
	require.Equal(t, 2, s.InDegree(shared))
}

func TestFinalityAndPsi(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	require.False(t, s.IsFinal(q1))

	s.SetFinal(q1, 42)
	require.True(t, s.IsFinal(q1))
	require.EqualValues(t, 42, s.Psi(q1))
	require.Equal(t, []StateID{q1}, s.FinalStates())

	s.ClearFinal(q1)
	require.False(t, s.IsFinal(q1))
	require.EqualValues(t, 0, s.Psi(q1))
}

func TestDeleteStateCleansUpBothDirections(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	s.AddDeltaTransition(InitialState, 'a', q1)
	s.AddDeltaTransition(q1, 'b', q2)

	s.DeleteState(q1)

	_, _, ok := s.Delta(InitialState, 'a')
	require.False(t, ok, "the deleted state's incoming edge must be gone")
	require.Equal(t, 0, s.InDegree(q2), "the deleted state's outgoing edge must be gone from delta-inverse too")
}

func TestDeleteStatePanicsOnInitialState(t *testing.T) {
	s := New()
	require.Panics(t, func() {
		s.DeleteState(InitialState)
	})
}

func TestCloneStateCopiesTransitionsAndFinality(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	dest := s.AllocState()
	s.AddDeltaTransition(q1, 'a', dest)
	s.SetLambda(q1, 'a', 3)
	s.SetFinal(q1, 9)

	clone := s.CloneState(q1)

	require.NotEqual(t, q1, clone)
	require.EqualValues(t, 3, s.Lambda(clone, 'a'))
	require.True(t, s.IsFinal(clone))
	require.EqualValues(t, 9, s.Psi(clone))
	cdest, _, ok := s.Delta(clone, 'a')
	require.True(t, ok)
	require.Equal(t, dest, cdest)
}

func TestStateSequenceAndRecognizes(t *testing.T) {
	s := New()
	q1 := s.AllocState()
	q2 := s.AllocState()
	s.AddDeltaTransition(InitialState, 'a', q1)
	s.AddDeltaTransition(q1, 'b', q2)
	s.SetLambda(InitialState, 'a', 0)
	s.SetLambda(q1, 'b', 0)

	require.True(t, s.Recognizes([]rune("ab")))
	require.False(t, s.Recognizes([]rune("ac")))
	require.Equal(t, []StateID{InitialState, q1, q2}, s.StateSequence([]rune("ab")))
	require.Equal(t, []rune("a"), s.LongestRecognizedPrefix([]rune("ac")))
}

func TestOutputSumsIotaLambdaAndPsi(t *testing.T) {
	s := New()
	s.SetIota(2)
	q1 := s.AllocState()
	q2 := s.AllocState()
	s.AddDeltaTransition(InitialState, 'a', q1)
	s.SetLambda(InitialState, 'a', 3)
	s.AddDeltaTransition(q1, 'b', q2)
	s.SetLambda(q1, 'b', 1)
	s.SetFinal(q2, 4)

	require.EqualValues(t, 10, s.Output([]rune("ab")))
}

func TestCheckedSubPanicsOnUnderflow(t *testing.T) {
	require.Panics(t, func() {
		CheckedSub(1, 2)
	})
	require.EqualValues(t, 3, CheckedSub(5, 2))
}

func TestMin(t *testing.T) {
	require.EqualValues(t, 1, Min(1, 2))
	require.EqualValues(t, 1, Min(2, 1))
}
