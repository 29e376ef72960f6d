package refiner

import (
	"context"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"refiner/pkg/logger"
)

// Rule names understood by the default validator in addition to any
// go-playground/validator tag.
const (
	RuleRequired = "required"
	RuleNullable = "nullable"
	RuleArray    = "array"
	RuleString   = "string"
	RuleInteger  = "integer"
)

// Validator returns the subset of input whose keys have rules and satisfy them.
// Keys without rules and invalid keys are dropped without error.
type Validator interface {
	Valid(ctx context.Context, input map[string]any, rules map[string]Rules) map[string]any
}

// PlaygroundValidator implements Validator on top of go-playground/validator.
//
// "required" and "nullable" are presence rules evaluated here: a required key
// must hold a non-empty value, a nullable key may hold nil. Every other rule is
// passed to validator.Var as a tag; "min:5" is accepted as "min=5".
type PlaygroundValidator struct {
	validate *validator.Validate
}

// NewValidator creates the default validator with the array, string and
// integer tags registered.
func NewValidator() *PlaygroundValidator {
	v := validator.New()
	// Registration only fails for empty or reserved tag names.
	_ = v.RegisterValidation(RuleArray, isArray)
	_ = v.RegisterValidation(RuleString, isString)
	_ = v.RegisterValidation(RuleInteger, isInteger)
	return &PlaygroundValidator{validate: v}
}

// Engine exposes the underlying validator for registering extra tags.
func (v *PlaygroundValidator) Engine() *validator.Validate {
	return v.validate
}

func (v *PlaygroundValidator) Valid(ctx context.Context, input map[string]any, rules map[string]Rules) map[string]any {
	valid := make(map[string]any, len(input))
	for key, value := range input {
		set, ok := rules[key]
		if !ok {
			continue
		}
		if v.passes(ctx, key, value, set) {
			valid[key] = value
		}
	}
	return valid
}

func (v *PlaygroundValidator) passes(ctx context.Context, key string, value any, rules Rules) (ok bool) {
	var (
		required, nullable bool
		tags               []string
	)
	for _, r := range rules {
		switch r {
		case RuleRequired:
			required = true
		case RuleNullable:
			nullable = true
		default:
			tags = append(tags, normalizeTag(r))
		}
	}

	if value == nil {
		return !required && (nullable || len(tags) == 0)
	}
	if isEmptyValue(value) {
		return !required
	}
	if len(tags) == 0 {
		return true
	}

	// validator panics on undefined tags.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "refiner validation rule rejected", "key", key, "rules", rules, "panic", r)
			ok = false
		}
	}()
	return v.validate.Var(value, strings.Join(tags, ",")) == nil
}

func normalizeTag(rule string) string {
	if strings.Contains(rule, "=") {
		return rule
	}
	return strings.Replace(rule, ":", "=", 1)
}

func isEmptyValue(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func isComposite(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func isArray(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isInteger(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		return f.Float() == math.Trunc(f.Float())
	case reflect.String:
		_, err := strconv.ParseInt(strings.TrimSpace(f.String()), 10, 64)
		return err == nil
	}
	return false
}
