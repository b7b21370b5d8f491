// Package models holds the in-memory representation of a parsed JSON-like
// document: a tagged Value and the two containers, Array and Object, that
// own their children.
package models

import (
	"fmt"

	"github.com/mcncl/jsontree/internal/errors"
)

// DefaultMaxDepth is the nesting budget used when callers give none.
const DefaultMaxDepth = 512

// Kind identifies which payload a Value carries.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single JSON-like datum. The zero Value is Undefined.
//
// A Value owns its string, Array or Object payload. Copying a Value that
// holds a container copies the handle, not the tree: use Clone when two
// independent owners are needed.
//
// Values handed out by Array.At, Object.Get, Object.At and the All
// iterators are borrowed. They read the tree in place, and destroying one
// only clears the borrowed copy.
type Value struct {
	kind     Kind
	b        bool
	i        int64
	s        string
	arr      *Array
	obj      *Object
	borrowed bool
}

func (v Value) borrow() Value {
	v.borrowed = true
	return v
}

// NullValue returns a Value holding JSON null.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue returns a Value holding b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns a Value holding i.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ArrayValue returns a Value that takes ownership of a.
// A nil a yields an empty array.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = NewArray(0)
	}
	return Value{kind: KindArray, arr: a}
}

// ObjectValue returns a Value that takes ownership of o.
// A nil o yields an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject(0)
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsUndefined reports whether v holds nothing at all.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, have %s", errors.ErrTypeMismatch, want, v.kind)
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// Int returns the integer payload.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// Str returns the string payload.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// Array returns the array payload.
func (v Value) Array() (*Array, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.arr, nil
}

// Object returns the object payload.
func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.obj, nil
}

// SetNull releases the current payload and stores null.
func (v *Value) SetNull() {
	v.Destroy()
	v.kind = KindNull
}

// SetBool releases the current payload and stores b.
func (v *Value) SetBool(b bool) {
	v.Destroy()
	v.kind, v.b = KindBool, b
}

// SetInt releases the current payload and stores i.
func (v *Value) SetInt(i int64) {
	v.Destroy()
	v.kind, v.i = KindInt, i
}

// SetString releases the current payload and stores s.
func (v *Value) SetString(s string) {
	v.Destroy()
	v.kind, v.s = KindString, s
}

// SetArray releases the current payload and takes ownership of a.
func (v *Value) SetArray(a *Array) {
	v.Destroy()
	*v = ArrayValue(a)
}

// SetObject releases the current payload and takes ownership of o.
func (v *Value) SetObject(o *Object) {
	v.Destroy()
	*v = ObjectValue(o)
}

// Destroy releases everything v owns and leaves it Undefined. Calling it
// again on the same Value finds nothing left to release. A borrowed Value
// owns nothing, so only the copy is cleared.
func (v *Value) Destroy() {
	if v.borrowed {
		*v = Value{}
		return
	}
	v.destroy(v.Depth())
}

// destroy walks at most depth levels recursively. Deeper subtrees are
// detached and left to the collector rather than walked.
func (v *Value) destroy(depth int) {
	switch v.kind {
	case KindArray:
		if depth > 0 {
			v.arr.destroy(depth - 1)
		}
	case KindObject:
		if depth > 0 {
			v.obj.destroy(depth - 1)
		}
	}
	*v = Value{}
}

// Take moves the payload out of v and leaves v Undefined.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Clone returns a deep copy of v. The copy is owned even when v is borrowed.
func (v Value) Clone() (Value, error) {
	return v.clone(v.Depth())
}

func (v Value) clone(depth int) (Value, error) {
	switch v.kind {
	case KindArray:
		if depth <= 0 {
			return Value{}, errors.ErrDepthExceeded
		}
		a := NewArray(v.arr.Len())
		for _, item := range v.arr.items {
			c, err := item.clone(depth - 1)
			if err != nil {
				a.destroy(depth - 1)
				return Value{}, err
			}
			a.items = append(a.items, c)
		}
		return ArrayValue(a), nil
	case KindObject:
		if depth <= 0 {
			return Value{}, errors.ErrDepthExceeded
		}
		o := NewObject(v.obj.Len())
		for _, m := range v.obj.members {
			c, err := m.Value.clone(depth - 1)
			if err != nil {
				o.destroy(depth - 1)
				return Value{}, err
			}
			o.members = append(o.members, Member{Key: m.Key, Value: c})
		}
		return ObjectValue(o), nil
	default:
		v.borrowed = false
		return v, nil
	}
}

// Equal reports whether v and other have the same shape and content,
// including member order. Whether either side is borrowed does not matter.
func (v Value) Equal(other Value) bool {
	return v.equal(other, v.Depth())
}

func (v Value) equal(other Value, depth int) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindArray:
		if depth <= 0 || v.arr.Len() != other.arr.Len() {
			return false
		}
		for i := range v.arr.items {
			if !v.arr.items[i].equal(other.arr.items[i], depth-1) {
				return false
			}
		}
		return true
	case KindObject:
		if depth <= 0 || v.obj.Len() != other.obj.Len() {
			return false
		}
		for i := range v.obj.members {
			a, b := v.obj.members[i], other.obj.members[i]
			if a.Key != b.Key || !a.Value.equal(b.Value, depth-1) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Depth reports how many containers nest along the deepest path of v. A
// scalar has depth 0. The walk keeps its own stack, so any tree can be
// measured, and the recursive walks above are bounded by its result.
func (v Value) Depth() int {
	type frame struct {
		v     Value
		level int
	}
	deepest := 0
	stack := []frame{{v: v}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch f.v.kind {
		case KindArray:
			deepest = max(deepest, f.level+1)
			for _, item := range f.v.arr.items {
				stack = append(stack, frame{item, f.level + 1})
			}
		case KindObject:
			deepest = max(deepest, f.level+1)
			for _, m := range f.v.obj.members {
				stack = append(stack, frame{m.Value, f.level + 1})
			}
		}
	}
	return deepest
}
