package models

import (
	"fmt"
	"iter"
)

// Member is one key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered, growable list of owned key/value members.
//
// Keys are not deduplicated: Append always adds a member, and Get returns
// the first member whose key matches. Later duplicates stay reachable
// through At and All.
type Object struct {
	members []Member
	limit   int
}

// NewObject returns an empty object with room for capacity members.
// A capacity below one is raised to one.
func NewObject(capacity int) *Object {
	if capacity < 1 {
		capacity = 1
	}
	return &Object{
		members: make([]Member, 0, capacity),
		limit:   DefaultMaxElements,
	}
}

// SetLimit changes the maximum number of members the object may grow to.
// Values below one restore DefaultMaxElements.
func (o *Object) SetLimit(n int) {
	if n < 1 {
		n = DefaultMaxElements
	}
	o.limit = n
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Cap returns the number of member slots reserved.
func (o *Object) Cap() int { return cap(o.members) }

// Append takes ownership of v and adds it under key at the end.
func (o *Object) Append(key string, v Value) error {
	if len(o.members) == cap(o.members) {
		c, err := grownCap(cap(o.members), o.limit)
		if err != nil {
			return fmt.Errorf("object of %d members: %w", len(o.members), err)
		}
		members := make([]Member, len(o.members), c)
		copy(members, o.members)
		o.members = members
	}
	o.members = append(o.members, Member{Key: key, Value: v})
	return nil
}

// Get returns the value of the first member named key, borrowed from the
// object. Lookup is a linear scan in insertion order.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.members {
		if m.Key == key {
			return m.Value.borrow(), true
		}
	}
	return Value{}, false
}

// Has reports whether any member is named key.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// At returns the member at index i. Its Value is borrowed.
func (o *Object) At(i int) (Member, error) {
	if i < 0 || i >= len(o.members) {
		return Member{}, fmt.Errorf("index %d out of range [0,%d)", i, len(o.members))
	}
	return Member{Key: o.members[i].Key, Value: o.members[i].Value.borrow()}, nil
}

// Keys returns member keys in insertion order, duplicates included.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All iterates members in insertion order, yielding borrowed values.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value.borrow()) {
				return
			}
		}
	}
}

func (o *Object) destroy(depth int) {
	for i := range o.members {
		o.members[i].Value.destroy(depth)
	}
	o.members = o.members[:0]
}
