package refiner

import (
	"fmt"
	"reflect"
	"sort"
)

// Filter is a search strategy. The set of strategies is closed:
// equality, membership, pattern match and custom callback.
type Filter[Q any] interface {
	// Apply constrains q with value for the field described by d.
	Apply(b Builder[Q], q Q, d *Definition[Q], value any) (Q, error)

	sealed()
}

type equalsFilter[Q any] struct{}

func (equalsFilter[Q]) sealed() {}

func (equalsFilter[Q]) Apply(b Builder[Q], q Q, d *Definition[Q], value any) (Q, error) {
	return b.Equals(q, d.ColumnName(), value), nil
}

type inFilter[Q any] struct{}

func (inFilter[Q]) sealed() {}

func (inFilter[Q]) Apply(b Builder[Q], q Q, d *Definition[Q], value any) (Q, error) {
	return b.In(q, d.ColumnName(), toValues(value)), nil
}

type likeFilter[Q any] struct {
	mode LikeMode
}

func (likeFilter[Q]) sealed() {}

func (f likeFilter[Q]) Apply(b Builder[Q], q Q, d *Definition[Q], value any) (Q, error) {
	return b.Like(q, d.ColumnName(), f.mode.Pattern(stringify(value))), nil
}

type customFilter[Q any] struct {
	fn CustomFunc[Q]
}

func (customFilter[Q]) sealed() {}

func (f customFilter[Q]) Apply(_ Builder[Q], q Q, d *Definition[Q], value any) (Q, error) {
	if f.fn == nil {
		return q, notConfigured("a callback must be defined for a custom search").
			WithDetail("definition", d.Name())
	}
	return f.fn(q, value), nil
}

// toValues flattens value into the list of a membership test. A nil value
// yields an empty list and a scalar a single-element one. Nested slices are
// flattened and maps contribute their values in key order.
func toValues(value any) []any {
	if value == nil {
		return []any{}
	}
	return appendValues(make([]any, 0), reflect.ValueOf(value))
}

func appendValues(out []any, rv reflect.Value) []any {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return append(out, nil)
		}
		return appendValues(out, rv.Elem())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return append(out, rv.Interface())
		}
		for i := 0; i < rv.Len(); i++ {
			out = appendValues(out, rv.Index(i))
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			out = appendValues(out, rv.MapIndex(k))
		}
		return out
	default:
		return append(out, rv.Interface())
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
