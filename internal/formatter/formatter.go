package formatter

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/models"
)

// Formatter renders value trees as indented, human-readable text
type Formatter struct {
	indent   string
	maxDepth int
}

// NewFormatter creates a new Formatter that indents with indent
func NewFormatter(indent string) *Formatter {
	return &Formatter{
		indent:   indent,
		maxDepth: models.DefaultMaxDepth,
	}
}

// NewFormatterWithConfig creates a Formatter from the output and limit settings
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	f := NewFormatter(cfg.Output.Indent)
	f.maxDepth = cfg.Limits.Depth()
	return f
}

// Format renders v with one member or item per line. Content follows the
// compact form exactly: strings are quoted but not escaped and members keep
// their insertion order. Empty containers stay on one line.
func (f *Formatter) Format(v models.Value) (string, error) {
	var b strings.Builder
	if err := f.write(&b, v, 0); err != nil {
		return "", errors.NewFormatError("failed to format tree", err)
	}
	return b.String(), nil
}

func (f *Formatter) newline(b *strings.Builder, level int) {
	b.WriteByte('\n')
	for i := 0; i < level; i++ {
		b.WriteString(f.indent)
	}
}

func (f *Formatter) write(b *strings.Builder, v models.Value, level int) error {
	switch v.Kind() {
	case models.KindArray:
		if level >= f.maxDepth {
			return errors.ErrDepthExceeded
		}
		arr, _ := v.Array()
		if arr.Len() == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteByte('[')
		for i, item := range arr.All() {
			if i > 0 {
				b.WriteByte(',')
			}
			f.newline(b, level+1)
			if err := f.write(b, item, level+1); err != nil {
				return err
			}
		}
		f.newline(b, level)
		b.WriteByte(']')
	case models.KindObject:
		if level >= f.maxDepth {
			return errors.ErrDepthExceeded
		}
		obj, _ := v.Object()
		if obj.Len() == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteByte('{')
		first := true
		for key, member := range obj.All() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			f.newline(b, level+1)
			b.WriteByte('"')
			b.WriteString(key)
			b.WriteString(`": `)
			if err := f.write(b, member, level+1); err != nil {
				return err
			}
		}
		f.newline(b, level)
		b.WriteByte('}')
	case models.KindString:
		s, _ := v.Str()
		b.WriteByte('"')
		b.WriteString(s)
		b.WriteByte('"')
	case models.KindInt:
		n, _ := v.Int()
		b.WriteString(strconv.FormatInt(n, 10))
	case models.KindBool:
		t, _ := v.Bool()
		b.WriteString(strconv.FormatBool(t))
	case models.KindNull:
		b.WriteString("null")
	}
	return nil
}
