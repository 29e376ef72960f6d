package refiner

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestPlaygroundValidator_Valid(t *testing.T) {
	v := NewValidator()

	input := map[string]any{
		"name":     "desk",
		"empty":    "",
		"optional": "",
		"missing":  nil,
		"nullable": nil,
		"ids":      []any{"1"},
		"notList":  "1",
		"count":    float64(3),
		"ratio":    1.5,
		"short":    "ab",
		"unruled":  "x",
	}
	rules := map[string]Rules{
		"name":     {"required", "string"},
		"empty":    {"required"},
		"optional": {"string"},
		"missing":  {"required"},
		"nullable": {"nullable", "string"},
		"ids":      {"required", "array"},
		"notList":  {"array"},
		"count":    {"integer"},
		"ratio":    {"integer"},
		"short":    {"string", "min:3"},
		"absent":   {"required"},
	}

	assert.Equal(t, map[string]any{
		"name":     "desk",
		"optional": "",
		"nullable": nil,
		"ids":      []any{"1"},
		"count":    float64(3),
	}, v.Valid(context.Background(), input, rules))
}

func TestPlaygroundValidator_NilWithoutRules(t *testing.T) {
	v := NewValidator()

	got := v.Valid(context.Background(),
		map[string]any{"a": nil, "b": nil},
		map[string]Rules{"a": {}, "b": {"string"}})
	assert.Equal(t, map[string]any{"a": nil}, got)
}

func TestPlaygroundValidator_UnknownRule(t *testing.T) {
	v := NewValidator()

	assert.NotPanics(t, func() {
		got := v.Valid(context.Background(), map[string]any{"a": "x"}, map[string]Rules{"a": {"not_a_rule"}})
		assert.Empty(t, got)
	})
}

func TestPlaygroundValidator_Engine(t *testing.T) {
	v := NewValidator()
	err := v.Engine().RegisterValidation("desk", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "desk"
	})
	assert.NoError(t, err)

	got := v.Valid(context.Background(),
		map[string]any{"a": "desk", "b": "chair"},
		map[string]Rules{"a": {"desk"}, "b": {"desk"}})
	assert.Equal(t, map[string]any{"a": "desk"}, got)
}

func TestWithValidator(t *testing.T) {
	r := New[ops](recorder{}, defs(Define[ops]("name").Search()), WithValidator(rejectAll{}))

	q, err := r.Apply(context.Background(), nil, Input{Search: map[string]any{"name": "desk"}})
	assert.NoError(t, err)
	assert.Empty(t, q)
}

type rejectAll struct{}

func (rejectAll) Valid(context.Context, map[string]any, map[string]Rules) map[string]any {
	return map[string]any{}
}
