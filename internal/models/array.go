package models

import (
	"fmt"
	"iter"

	"github.com/mcncl/jsontree/internal/errors"
)

// DefaultMaxElements caps how many children a single container may hold.
const DefaultMaxElements = 1 << 24

// Array is an ordered, growable sequence of owned Values.
type Array struct {
	items []Value
	limit int
}

// NewArray returns an empty array with room for capacity items.
// A capacity below one is raised to one.
func NewArray(capacity int) *Array {
	if capacity < 1 {
		capacity = 1
	}
	return &Array{
		items: make([]Value, 0, capacity),
		limit: DefaultMaxElements,
	}
}

// SetLimit changes the maximum number of items the array may grow to.
// Values below one restore DefaultMaxElements.
func (a *Array) SetLimit(n int) {
	if n < 1 {
		n = DefaultMaxElements
	}
	a.limit = n
}

// Len returns the number of populated items.
func (a *Array) Len() int { return len(a.items) }

// Cap returns the number of slots reserved, populated or not.
func (a *Array) Cap() int { return cap(a.items) }

// Append takes ownership of v and adds it at the end.
func (a *Array) Append(v Value) error {
	if len(a.items) == cap(a.items) {
		c, err := grownCap(cap(a.items), a.limit)
		if err != nil {
			return fmt.Errorf("array of %d items: %w", len(a.items), err)
		}
		items := make([]Value, len(a.items), c)
		copy(items, a.items)
		a.items = items
	}
	a.items = append(a.items, v)
	return nil
}

// At returns the item at index i, borrowed from the array.
func (a *Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.items) {
		return Value{}, fmt.Errorf("index %d out of range [0,%d)", i, len(a.items))
	}
	return a.items[i].borrow(), nil
}

// Set releases the item at index i and takes ownership of v in its place.
func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("index %d out of range [0,%d)", i, len(a.items))
	}
	a.items[i].Destroy()
	a.items[i] = v
	return nil
}

// All iterates borrowed items in insertion order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.items {
			if !yield(i, v.borrow()) {
				return
			}
		}
	}
}

func (a *Array) destroy(depth int) {
	for i := range a.items {
		a.items[i].destroy(depth)
	}
	a.items = a.items[:0]
}

// grownCap doubles c, clamping to limit, and refuses once c already is the limit.
func grownCap(c, limit int) (int, error) {
	if c >= limit {
		return 0, errors.NewAllocationError(fmt.Sprintf("cannot grow past %d elements", limit))
	}
	next := c * 2
	if next < 1 {
		next = 1
	}
	if next > limit {
		next = limit
	}
	return next, nil
}
