package signature

import "github.com/atanasormanow/min-subseq-transducer/internal/store"

// Index maps a signature to the one canonical state wearing it. It is
// intentionally shaped like the teacher's DedupeBackend (dedupe.go):
// Upsert/Lookup/Remove instead of Upsert/IterCallback/Cleanup, since the
// index never needs to iterate or flush — only to add, remove and look up
// by key.
type Index struct {
	byTag map[Signature]store.StateID
}

func NewIndex() *Index {
	return &Index{byTag: map[Signature]store.StateID{}}
}

// Lookup returns the canonical state already registered under sig, if any.
func (idx *Index) Lookup(sig Signature) (store.StateID, bool) {
	q, ok := idx.byTag[sig]
	return q, ok
}

// Upsert registers q as the canonical representative of sig. Any previous
// occupant of sig is silently replaced — callers only call this after
// confirming (via Lookup) that no live equivalent state remains, or when
// re-registering q itself under its own freshly computed signature.
func (idx *Index) Upsert(sig Signature, q store.StateID) {
	idx.byTag[sig] = q
}

// Remove drops whatever entry maps to sig, if its registered state matches
// q. Removing a signature that maps to a different state is a no-op: it
// means q was never the canonical representative, which is the expected
// shape for a just-allocated clone (internal/pathmat's convergent-state
// branch never needs to touch the index for the clone).
func (idx *Index) Remove(sig Signature, q store.StateID) {
	if cur, ok := idx.byTag[sig]; ok && cur == q {
		delete(idx.byTag, sig)
	}
}

// RemoveState removes whatever the current signature of q resolves to, if
// q owns it. Convenience used by path materialisation when a state joins
// the min-except path and must first be unlisted.
func (idx *Index) RemoveState(s *store.Store, q store.StateID) {
	idx.Remove(Of(s, q), q)
}

func (idx *Index) Len() int { return len(idx.byTag) }
