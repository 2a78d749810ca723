package rackspace

import "iter"

// List is an ordered collection of entities.
// The zero value is an empty list ready to use. A nil *List reads as empty
// and rejects Set and Remove; Append needs a non-nil list.
type List[T any] struct {
	items []T
}

// Len returns the number of entries.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the entry at index i and whether it exists.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if l == nil || i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Set replaces the entry at index i. A negative index or i == Len() appends.
// It reports false if i is past the end of the list.
func (l *List[T]) Set(i int, v T) bool {
	if l == nil {
		return false
	}
	if i < 0 || i == len(l.items) {
		l.items = append(l.items, v)
		return true
	}
	if i > len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// Append adds entries to the end of the list.
func (l *List[T]) Append(v ...T) {
	l.items = append(l.items, v...)
}

// Remove deletes the entry at index i, shifting later entries down.
// It reports false if there is no such entry.
func (l *List[T]) Remove(i int) bool {
	if l == nil || i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Items returns the entries in order. The slice must not be modified.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return l.items
}

// All iterates over the entries with their index.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l == nil {
			return
		}
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}
