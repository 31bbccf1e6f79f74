// Package ingest turns a CSV source into the (word, output) additions or
// plain word deletions the transducer core consumes, deduping repeats
// before they ever reach the core.
package ingest

// DedupeBackend is the storage behind Dedupe, the same three-method shape
// as the teacher's dedupe.go/internal/dedupe: Upsert/IterCallback/Cleanup.
// Only a map-backed implementation is kept here (see DESIGN.md for why the
// disk-backed LevelDB backend was dropped) — the in-memory dictionary the
// core already holds dwarfs any CSV this package will ever dedupe against.
type DedupeBackend interface {
	Upsert(elem string)
	IterCallback(callback func(elem string))
	Cleanup()
}

type mapBackend struct {
	storage map[string]struct{}
}

func newMapBackend() *mapBackend {
	return &mapBackend{storage: map[string]struct{}{}}
}

func (m *mapBackend) Upsert(elem string) {
	m.storage[elem] = struct{}{}
}

func (m *mapBackend) IterCallback(callback func(elem string)) {
	for k := range m.storage {
		callback(k)
	}
}

func (m *mapBackend) Cleanup() {
	m.storage = nil
}

// Dedupe removes repeated words from a CSV read before they are handed to
// the core, mirroring the teacher's Dedupe type minus its channel-draining
// machinery (CSV files are read whole, not streamed).
type Dedupe struct {
	backend DedupeBackend
}

func NewDedupe() *Dedupe {
	return &Dedupe{backend: newMapBackend()}
}

func (d *Dedupe) Upsert(word string) {
	d.backend.Upsert(word)
}

// Words returns every distinct word seen, in unspecified order.
func (d *Dedupe) Words() []string {
	var out []string
	d.backend.IterCallback(func(elem string) {
		out = append(out, elem)
	})
	d.backend.Cleanup()
	return out
}
