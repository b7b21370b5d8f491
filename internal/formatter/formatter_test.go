package formatter

import (
	"testing"

	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Scalars(t *testing.T) {
	formatter := NewFormatter("  ")

	tests := []struct {
		value    models.Value
		expected string
	}{
		{models.IntValue(-12), "-12"},
		{models.BoolValue(true), "true"},
		{models.StringValue(`x\y`), `"x\y"`},
		{models.NullValue(), "null"},
		{models.Value{}, ""},
		{models.ArrayValue(nil), "[]"},
		{models.ObjectValue(nil), "{}"},
	}

	for _, tt := range tests {
		formatted, err := formatter.Format(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, formatted)
	}
}

func TestFormat_Nested(t *testing.T) {
	items := models.NewArray(0)
	require.NoError(t, items.Append(models.IntValue(1)))
	require.NoError(t, items.Append(models.StringValue("two")))
	require.NoError(t, items.Append(models.ObjectValue(nil)))

	inner := models.NewObject(0)
	require.NoError(t, inner.Append("ok", models.BoolValue(false)))

	root := models.NewObject(0)
	require.NoError(t, root.Append("items", models.ArrayValue(items)))
	require.NoError(t, root.Append("inner", models.ObjectValue(inner)))
	require.NoError(t, root.Append("none", models.NullValue()))

	formatted, err := NewFormatter("  ").Format(models.ObjectValue(root))
	require.NoError(t, err)

	expected := `{
  "items": [
    1,
    "two",
    {}
  ],
  "inner": {
    "ok": false
  },
  "none": null
}`
	assert.Equal(t, expected, formatted)
}

func TestFormat_TabIndent(t *testing.T) {
	arr := models.NewArray(0)
	require.NoError(t, arr.Append(models.IntValue(1)))

	formatted, err := NewFormatter("\t").Format(models.ArrayValue(arr))
	require.NoError(t, err)
	assert.Equal(t, "[\n\t1\n]", formatted)
}

func TestFormat_DepthBudget(t *testing.T) {
	v := models.ArrayValue(nil)
	for i := 0; i < 3; i++ {
		outer := models.NewArray(1)
		require.NoError(t, outer.Append(v))
		v = models.ArrayValue(outer)
	}

	cfg := config.NewConfig()
	cfg.Limits.MaxDepth = 3
	_, err := NewFormatterWithConfig(cfg).Format(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeFormat})

	cfg.Limits.MaxDepth = 4
	formatted, err := NewFormatterWithConfig(cfg).Format(v)
	require.NoError(t, err)
	assert.Equal(t, "[\n  [\n    [\n      []\n    ]\n  ]\n]", formatted)
}
