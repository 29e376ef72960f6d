package refiner

import (
	"fmt"
	"strings"
)

// Rules is a rule-set for one input field, e.g. {"required", "string"}.
type Rules []string

// Definition declares how one field may be searched and sorted.
// Definitions are built once with the chainable setters and are read-only afterwards.
type Definition[Q any] struct {
	name      string
	column    string
	filter    Filter[Q]
	alwaysRun bool
	trim      bool
	sort      bool
	rules     map[string]Rules
	err       error
}

// Define starts a definition for the field name. Trimming is enabled by default.
func Define[Q any](name string) *Definition[Q] {
	return &Definition[Q]{name: name, trim: true}
}

// AlwaysRun applies the search even when the field is absent from the input,
// passing a nil value to the strategy.
func (d *Definition[Q]) AlwaysRun(alwaysRun bool) *Definition[Q] {
	d.alwaysRun = alwaysRun
	return d
}

// Column overrides the database column, which otherwise is the definition name.
// For example a definition named "created" may map to "created_at".
func (d *Definition[Q]) Column(column string) *Definition[Q] {
	d.column = column
	return d
}

// Search enables exact-match search: column = value.
func (d *Definition[Q]) Search() *Definition[Q] {
	d.filter = equalsFilter[Q]{}
	return d
}

// SearchCustom enables search through a caller-supplied callback. A nil
// callback records a not configured error, see Err.
func (d *Definition[Q]) SearchCustom(fn CustomFunc[Q]) *Definition[Q] {
	if fn == nil {
		d.err = notConfigured("a callback must be defined for a custom search").
			WithDetail("definition", d.name)
	}
	d.filter = customFilter[Q]{fn: fn}
	return d
}

// SearchIn enables membership search: column IN (values).
// The input may carry several values, i.e. search[name][]=Alan&search[name][]=Bob.
func (d *Definition[Q]) SearchIn() *Definition[Q] {
	d.filter = inFilter[Q]{}
	return d
}

// SearchLike enables pattern search. An unknown mode leaves the current strategy
// untouched and records an invalid configuration error, see Err.
func (d *Definition[Q]) SearchLike(mode LikeMode) *Definition[Q] {
	if !mode.Valid() {
		d.err = invalidConfiguration(fmt.Sprintf(
			"definition %q: LIKE mode %q must be one of %q, %q, %q", d.name, mode, LikeBoth, LikeStart, LikeEnd))
		return d
	}
	d.filter = likeFilter[Q]{mode: mode}
	return d
}

// Sort toggles whether the definition may be used for sorting.
func (d *Definition[Q]) Sort(allow bool) *Definition[Q] {
	d.sort = allow
	return d
}

// Trim toggles trimming of string input before it is validated and used.
func (d *Definition[Q]) Trim(enable bool) *Definition[Q] {
	d.trim = enable
	return d
}

// Validation sets a single rule-set validated under the definition name.
// Each argument may hold several rules separated by "|", so
// Validation("required|string") equals Validation("required", "string").
// Calling it without arguments restores the generated rules.
func (d *Definition[Q]) Validation(rules ...string) *Definition[Q] {
	var set Rules
	for _, r := range rules {
		for _, part := range strings.Split(r, "|") {
			if part = strings.TrimSpace(part); part != "" {
				set = append(set, part)
			}
		}
	}
	if len(set) == 0 {
		d.rules = nil
		return d
	}
	d.rules = map[string]Rules{d.name: set}
	return d
}

// ValidationFields sets rule-sets for several input keys, used verbatim.
// The resolved search value is then the map of the validated keys.
func (d *Definition[Q]) ValidationFields(fields map[string]Rules) *Definition[Q] {
	if len(fields) == 0 {
		d.rules = nil
		return d
	}
	d.rules = make(map[string]Rules, len(fields))
	for k, v := range fields {
		d.rules[k] = append(Rules(nil), v...)
	}
	return d
}

// Err returns the configuration error recorded while building, if any.
func (d *Definition[Q]) Err() error { return d.err }

func (d *Definition[Q]) Name() string { return d.name }

// ColumnName returns the configured column or the definition name.
func (d *Definition[Q]) ColumnName() string {
	if d.column != "" {
		return d.column
	}
	return d.name
}

func (d *Definition[Q]) CanSearch() bool        { return d.filter != nil }
func (d *Definition[Q]) CanAlwaysRun() bool     { return d.alwaysRun }
func (d *Definition[Q]) CanSort() bool          { return d.sort }
func (d *Definition[Q]) ShouldTrimSearch() bool { return d.trim }

func (d *Definition[Q]) IsCustomSearch() bool {
	_, ok := d.filter.(customFilter[Q])
	return ok
}

func (d *Definition[Q]) IsMultipleAllowed() bool {
	_, ok := d.filter.(inFilter[Q])
	return ok
}

// SearchFilter returns the configured strategy.
func (d *Definition[Q]) SearchFilter() (Filter[Q], error) {
	if d.filter == nil {
		return nil, notConfigured("cannot fetch the search filter of a definition that does not have one").
			WithDetail("definition", d.name)
	}
	return d.filter, nil
}

// ValidationRules returns the rule-sets keyed by input key. Definitions that
// cannot search have none; without explicit rules a presence rule is generated.
func (d *Definition[Q]) ValidationRules() map[string]Rules {
	if !d.CanSearch() {
		return map[string]Rules{}
	}
	if len(d.rules) > 0 {
		out := make(map[string]Rules, len(d.rules))
		for k, v := range d.rules {
			out[k] = append(Rules(nil), v...)
		}
		return out
	}

	set := Rules{RuleRequired}
	if d.alwaysRun {
		set = Rules{RuleNullable}
	}
	if d.IsMultipleAllowed() {
		set = append(set, RuleArray)
	}
	return map[string]Rules{d.name: set}
}
