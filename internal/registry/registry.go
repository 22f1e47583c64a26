// Package registry holds the name -> book lookup that sits in front of the
// matching engine: one *orderbook.Book per book name, created lazily on
// first reference.
package registry

import (
	"sync"

	"github.com/TanishqM1/ladderbook/internal/orderbook"
)

// Registry guards the book-name -> *orderbook.Book map. It is the only
// lock shared across books: once a Book is fetched, all further
// synchronization for operations on it happens inside the Book itself.
type Registry struct {
	mu    sync.RWMutex
	books map[string]*orderbook.Book
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		books: make(map[string]*orderbook.Book),
	}
}

// Get returns the book for name, creating it if this is the first
// reference. The common case (book already exists) only takes the read
// lock.
func (r *Registry) Get(name string) *orderbook.Book {
	r.mu.RLock()
	b, ok := r.books[name]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok = r.books[name]; ok {
		return b
	}
	b = orderbook.NewBook()
	r.books[name] = b
	return b
}

// Names returns the book names currently known to the registry, in no
// particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.books))
	for name := range r.books {
		names = append(names, name)
	}
	return names
}
