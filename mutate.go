package transducer

import (
	"github.com/atanasormanow/min-subseq-transducer/internal/minimize"
	"github.com/atanasormanow/min-subseq-transducer/internal/pathmat"
	"github.com/atanasormanow/min-subseq-transducer/internal/signature"
	"github.com/atanasormanow/min-subseq-transducer/internal/store"
)

// FromDictionary builds a transducer from entries, which must be sorted
// strictly ascending by word and non-empty. Fatal on violation of either
// requirement (spec.md 4.E, 7).
func FromDictionary(entries []Entry) *Transducer {
	requireNonEmptyDictionary(entries)
	t := fromEntry(entries[0])
	for i := 1; i < len(entries); i++ {
		if !lexLess([]rune(entries[i-1].Word), []rune(entries[i].Word)) {
			fatalf("FromDictionary: entries not strictly ascending at index %d (%q, %q)", i, entries[i-1].Word, entries[i].Word)
		}
		t.AddEntryInOrder(entries[i].Word, entries[i].Output)
	}
	t.reduceToEpsilon()
	return t
}

// fromEntry builds the trivial linear-chain transducer for a single word:
// one fresh state per character, all lambda 0, the chain's last state final
// with psi == 0, iota == output (original_source/src/transducer.rs's
// from_entry: `iota: entry.output, psi: 0`). Parking the whole output on
// iota rather than psi is what makes it canonical from the start — there is
// nothing further upstream than the initial state to push it to. The
// subsequent canonicalisation performed by AddEntryInOrder only ever lowers
// iota, so any later entry with a smaller output still pushes correctly.
func fromEntry(e Entry) *Transducer {
	requireNonEmpty(e.Word)
	t := New()
	word := []rune(e.Word)
	cur := store.InitialState
	for _, ch := range word {
		next := t.store.AllocState()
		t.store.AddDeltaTransition(cur, ch, next)
		t.store.SetLambda(cur, ch, 0)
		cur = next
	}
	t.store.SetFinal(cur, 0)
	t.store.SetIota(e.Output)
	t.minExcept = word
	return t
}

// reduceToEpsilon folds the min-except region all the way back to the
// initial state, then records the initial state's signature (spec.md 4.C).
func (t *Transducer) reduceToEpsilon() {
	if len(t.minExcept) == 0 {
		return
	}
	path := t.store.StateSequence(t.minExcept)
	minimize.ReduceToEpsilon(t.store, t.index, path, t.minExcept)
	t.minExcept = nil
	t.index.Upsert(signature.Of(t.store, store.InitialState), store.InitialState)
}

// ensureEpsilon brings the automaton to fully minimal before an operation
// that requires it (path materialisation's precondition, spec.md 4.D).
// AddEntryInOrder is the only operation that leaves min-except non-empty
// between calls (bulk in-order construction defers re-minimisation); every
// other public mutation must start from a clean slate.
func (t *Transducer) ensureEpsilon() {
	t.reduceToEpsilon()
}

// AddEntryInOrder inserts (word, output), requiring word not to sort before
// whatever word is currently the tail of min-except (or that this is the
// first entry on an empty transducer). A word equal to that tail updates its
// output. When min-except is ε, no ordering check is made. Implements the output-canonicalisation sequence of
// spec.md 4.E verbatim.
func (t *Transducer) AddEntryInOrder(word string, output uint64) {
	requireNonEmpty(word)
	w := []rune(word)

	if t.minExcept == nil {
		if t.isEmpty() {
			*t = *fromEntry(NewEntry(word, output))
			return
		}
		// The automaton was already fully reduced (min-except == ε) by a
		// prior operation. The longest prefix of word it already
		// recognises is materialised as the new min-except path, so the
		// word branches off from there and existing words keep their
		// transitions.
		p := t.store.LongestRecognizedPrefix(w)
		pathmat.IncreaseExceptFromEpsilonToW(t.store, t.index, p)
		t.minExcept = p
	}

	if lexLess(w, t.minExcept) {
		fatalf("AddEntryInOrder: %q is not greater than the previous word %q", word, string(t.minExcept))
	}

	k := lcp(t.minExcept, w)

	// Step 1: reduce min-except down to length k.
	path := t.store.StateSequence(t.minExcept)
	path = minimize.ReduceToLength(t.store, t.index, path, t.minExcept, k)

	oldIota := t.store.Iota()

	// Snapshot lambda_star along the retained prefix, before any writes.
	oldLambdaStar := make([]uint64, k+1)
	for i := 1; i <= k; i++ {
		oldLambdaStar[i] = oldLambdaStar[i-1] + t.store.Lambda(path[i-1], w[i-1])
	}
	lambdaI := func(i int) uint64 {
		return store.Min(oldIota+oldLambdaStar[i], output)
	}

	// Snapshot competing transitions at each position 0..k, before any of
	// today's edits (in particular, before the new branch edge at k is
	// added). At i < k the path's own continuation character is excluded;
	// the new word hasn't defined a continuation at k yet, so nothing is
	// excluded there.
	type competing struct {
		pos   int
		state store.StateID
		ch    rune
		old   uint64
	}
	var competitors []competing
	for i := 0; i <= k; i++ {
		for _, tr := range t.store.Transitions(path[i]) {
			if i < k && tr.Char == w[i] {
				continue
			}
			competitors = append(competitors, competing{i, path[i], tr.Char, tr.Output})
		}
	}

	leaf := k == len(w)

	// Step 2: allocate the new suffix chain (branch case only); the last is
	// final with psi = 0 (spec.md 4.E step 2).
	if !leaf {
		cur := path[k]
		for i := k; i < len(w); i++ {
			next := t.store.AllocState()
			t.store.AddDeltaTransition(cur, w[i], next)
			t.store.SetLambda(cur, w[i], 0)
			path = append(path, next)
			cur = next
		}
		t.store.SetFinal(cur, 0)
	}

	// Step 4a: restore psi for existing final prefixes on the retained
	// path; the leaf case's own terminal is handled separately below
	// since its target output is `output`, not a preserved old value.
	for i := 1; i <= k; i++ {
		if leaf && i == k {
			continue
		}
		if t.store.IsFinal(path[i]) {
			oldOut := oldIota + oldLambdaStar[i] + t.store.Psi(path[i])
			t.store.SetFinal(path[i], store.CheckedSub(oldOut, lambdaI(i)))
		}
	}
	if leaf {
		t.store.SetFinal(path[k], store.CheckedSub(output, lambdaI(k)))
	}

	// Step 4b: schedule the shared-prefix edge updates.
	type write struct {
		state store.StateID
		ch    rune
		value uint64
	}
	var writes []write
	for i := 1; i <= k; i++ {
		writes = append(writes, write{path[i-1], w[i-1], store.CheckedSub(lambdaI(i), lambdaI(i-1))})
	}

	// Step 4c: the new branching edge (branch case only), written
	// immediately.
	if !leaf {
		t.store.SetLambda(path[k], w[k], store.CheckedSub(output, lambdaI(k)))
	}

	// Step 4d: new suffix edges are already 0 from allocation above.

	// Step 4e: schedule compensation on every competing transition.
	for _, c := range competitors {
		writes = append(writes, write{c.state, c.ch, store.CheckedSub(oldIota+oldLambdaStar[c.pos]+c.old, lambdaI(c.pos))})
	}

	// Step 4f: flush.
	for _, wr := range writes {
		t.store.SetLambda(wr.state, wr.ch, wr.value)
	}

	// Step 4g: iota, last.
	t.store.SetIota(store.Min(oldIota, output))

	t.minExcept = w
}

// AddEntryOutOfOrder inserts (word, output) regardless of ordering
// relative to previously inserted words (spec.md 4.E).
func (t *Transducer) AddEntryOutOfOrder(word string, output uint64) {
	requireNonEmpty(word)
	if t.isEmpty() {
		*t = *fromEntry(NewEntry(word, output))
		t.reduceToEpsilon()
		return
	}
	t.ensureEpsilon()

	w := []rune(word)
	p := t.store.LongestRecognizedPrefix(w)

	pathmat.IncreaseExceptFromEpsilonToW(t.store, t.index, p)
	t.minExcept = p

	t.AddEntryInOrder(word, output)
	t.reduceToEpsilon()
}

// RemoveEntryWithWord deletes word from the dictionary. word must be
// non-empty and must currently be recognised (spec.md 4.E); violating
// either is a fatal precondition error.
func (t *Transducer) RemoveEntryWithWord(word string) {
	requireNonEmpty(word)
	w := []rune(word)
	if !t.store.Recognizes(w) {
		fatalf("RemoveEntryWithWord: %q is not recognised", word)
	}
	t.ensureEpsilon()
	if !t.store.IsFinal(t.store.StateSequence(w)[len(w)]) {
		fatalf("RemoveEntryWithWord: %q is not a dictionary word", word)
	}

	path := pathmat.IncreaseExceptFromEpsilonToW(t.store, t.index, w)
	terminal := path[len(w)]
	t.store.ClearFinal(terminal)

	cur := len(path) - 1
	for cur > 0 {
		state := path[cur]
		if state == store.InitialState || t.store.TransitionCount(state) > 0 || t.store.IsFinal(state) {
			break
		}
		t.store.DeleteState(state)
		cur--
	}

	if cur == 0 && t.store.TransitionCount(store.InitialState) == 0 && !t.store.IsFinal(store.InitialState) {
		// Deleting the last remaining word: well-defined empty transducer
		// (spec.md 9, open question 1).
		t.store.SetIota(0)
		t.minExcept = nil
		return
	}

	t.minExcept = w[:cur]
	canonicalizeMinExcept(t.store, t.minExcept)
	// canonicalizeMinExcept may have touched the initial state's own edges
	// even when min-except has collapsed back to ε (the backward walk
	// always reaches position 0); keep its signature entry current so a
	// future equivalent branch can still merge into it.
	t.index.Upsert(signature.Of(t.store, store.InitialState), store.InitialState)
	t.reduceToEpsilon()
}
