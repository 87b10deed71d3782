package idxwatch

import (
	"errors"
	"slices"
)

// DefaultCollectionName is the label given to collections synthesized from
// legacy configurations and to the initial collection of a fresh setup.
const DefaultCollectionName = "Default"

// ErrLastCollection rejects removal of the only collection of a kind: a
// collection set must never become empty.
var ErrLastCollection = errors.New("cannot remove the last collection")

// Kind selects one of the two parallel collection structures.
type Kind int

const (
	Watchlists Kind = iota
	Portfolios
)

func (k Kind) String() string {
	if k == Portfolios {
		return "portfolio"
	}
	return "watchlist"
}

// Collection is a named, ordered sequence of items. Insertion order is
// meaningful: it defines the default view and export order and is preserved
// across mutation.
type Collection[T any] struct {
	Name  string
	Items []T
}

// CollectionSet is an ordered sequence of collections of one kind plus an
// active index. The sequence is never empty and the active index is always
// a valid offset into it.
type CollectionSet[T any] struct {
	collections []Collection[T]
	active      int
}

// NewCollectionSet builds a set from existing collections, clamping the
// active index into range. An empty input yields a set with one empty
// collection under the default name.
func NewCollectionSet[T any](collections []Collection[T], active int) *CollectionSet[T] {
	if len(collections) == 0 {
		collections = []Collection[T]{{Name: DefaultCollectionName}}
	}
	if active < 0 || active >= len(collections) {
		active = 0
	}
	return &CollectionSet[T]{collections: collections, active: active}
}

// Current returns the active collection. The pointer stays valid until the
// next Add or Remove on the set.
func (s *CollectionSet[T]) Current() *Collection[T] { return &s.collections[s.active] }

// Active returns the active index.
func (s *CollectionSet[T]) Active() int { return s.active }

// Len returns the number of collections in the set.
func (s *CollectionSet[T]) Len() int { return len(s.collections) }

// At returns the collection at position i.
func (s *CollectionSet[T]) At(i int) *Collection[T] { return &s.collections[i] }

// Names returns the collection names in order.
func (s *CollectionSet[T]) Names() []string {
	names := make([]string, len(s.collections))
	for i, c := range s.collections {
		names[i] = c.Name
	}
	return names
}

// Next advances the active index with wraparound.
func (s *CollectionSet[T]) Next() {
	s.active = (s.active + 1) % len(s.collections)
}

// Prev retreats the active index with wraparound.
func (s *CollectionSet[T]) Prev() {
	s.active = (s.active - 1 + len(s.collections)) % len(s.collections)
}

// Add appends an empty collection with the given name and makes it active.
func (s *CollectionSet[T]) Add(name string) {
	s.collections = append(s.collections, Collection[T]{Name: name})
	s.active = len(s.collections) - 1
}

// Remove deletes the active collection and clamps the active index. It
// fails with ErrLastCollection, leaving the set unchanged, when only one
// collection remains.
func (s *CollectionSet[T]) Remove() error {
	if len(s.collections) == 1 {
		return ErrLastCollection
	}
	s.collections = append(s.collections[:s.active], s.collections[s.active+1:]...)
	if s.active >= len(s.collections) {
		s.active = len(s.collections) - 1
	}
	return nil
}

// Rename changes the active collection's name in place.
func (s *CollectionSet[T]) Rename(name string) {
	s.collections[s.active].Name = name
}

// ContainsSymbol reports whether the watchlist holds sym.
func ContainsSymbol(c *Collection[Symbol], sym Symbol) bool {
	return slices.Contains(c.Items, sym)
}

// RemoveSymbol removes sym from the watchlist, reporting whether it was
// there at all.
func RemoveSymbol(c *Collection[Symbol], sym Symbol) bool {
	before := len(c.Items)
	c.Items = slices.DeleteFunc(c.Items, func(s Symbol) bool { return s == sym })
	return len(c.Items) < before
}
