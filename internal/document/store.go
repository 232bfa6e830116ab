package document

import (
	"sync"

	"github.com/jonathan/elevate/internal/types"
)

// Store holds the current document of a session as an immutable snapshot.
// All changes go through Apply with a pure transform; concurrent commits are
// serialised and the last one to commit wins.
//
// Snapshots share backing arrays with the store and must be treated as read-only.
type Store struct {
	mu        sync.Mutex
	doc       types.Document
	version   uint64
	nextSubID int
	listeners map[int]Listener

	// dispatch is taken before mu is released, so listeners see commits in
	// version order.
	dispatch sync.Mutex
}

// Listener receives each committed document with its version.
type Listener func(doc types.Document, version uint64)

// NewStore creates a store seeded with doc.
func NewStore(doc types.Document) *Store {
	return &Store{
		doc:       doc,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current document.
func (s *Store) Snapshot() types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Version returns the number of commits made so far.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Apply commits fn(current) as the new document and returns it.
// fn runs under the store lock and must not call back into the store.
// Listeners are called before Apply returns, one commit at a time; they must
// not commit to the store themselves.
func (s *Store) Apply(fn func(types.Document) types.Document) types.Document {
	s.mu.Lock()
	s.doc = fn(s.doc)
	s.version++
	doc, version := s.doc, s.version
	listeners := s.snapshotListeners()
	s.dispatch.Lock()
	s.mu.Unlock()
	defer s.dispatch.Unlock()

	for _, l := range listeners {
		l(doc, version)
	}
	return doc
}

// Replace commits doc as the new document.
func (s *Store) Replace(doc types.Document) {
	s.Apply(func(types.Document) types.Document { return doc })
}

// Subscribe registers fn to be called after every commit.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}
