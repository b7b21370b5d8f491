package models

import (
	"strconv"

	"github.com/mcncl/jsontree/internal/errors"
)

// Marshal renders v as compact JSON-like text, walking at most maxDepth
// levels of nesting.
//
// Strings are written between double quotes exactly as stored; embedded
// quotes and backslashes are not escaped, mirroring the lexer, which does
// not unescape them either. Undefined renders as nothing at all.
func (v Value) Marshal(maxDepth int) ([]byte, error) {
	return v.AppendJSON(nil, maxDepth)
}

// AppendJSON appends the compact rendering of v to dst.
func (v Value) AppendJSON(dst []byte, maxDepth int) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindString:
		dst = append(dst, '"')
		dst = append(dst, v.s...)
		return append(dst, '"'), nil
	case KindArray:
		if maxDepth <= 0 {
			return dst, errors.ErrDepthExceeded
		}
		dst = append(dst, '[')
		var err error
		for i, item := range v.arr.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = item.AppendJSON(dst, maxDepth-1); err != nil {
				return dst, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		if maxDepth <= 0 {
			return dst, errors.ErrDepthExceeded
		}
		dst = append(dst, '{')
		var err error
		for i, m := range v.obj.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = append(dst, '"')
			dst = append(dst, m.Key...)
			dst = append(dst, '"', ':')
			if dst, err = m.Value.AppendJSON(dst, maxDepth-1); err != nil {
				return dst, err
			}
		}
		return append(dst, '}'), nil
	default:
		return dst, nil
	}
}

// String renders v compactly, however deep it nests.
func (v Value) String() string {
	b, err := v.Marshal(v.Depth())
	if err != nil {
		return ""
	}
	return string(b)
}
