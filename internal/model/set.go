package model

import (
	"slices"
)

// Set is an unordered collection of identifiers
type Set[T ~string] map[T]struct{}

// NewSet creates a set holding the given ids
func NewSet[T ~string](ids ...T) Set[T] {
	s := make(Set[T], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership
func (s Set[T]) Has(id T) bool {
	_, ok := s[id]
	return ok
}

// Add inserts the ids
func (s Set[T]) Add(ids ...T) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Remove deletes the ids
func (s Set[T]) Remove(ids ...T) {
	for _, id := range ids {
		delete(s, id)
	}
}

// Minus returns the ids in s that are not in other, sorted
func (s Set[T]) Minus(other Set[T]) []T {
	var out []T
	for id := range s {
		if !other.Has(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Sorted returns the ids in ascending order
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same ids
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}
