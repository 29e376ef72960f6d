package refiner

import (
	"context"
	"strings"
	"sync"

	"refiner/pkg/logger"
)

// Options configures resolution.
type Options struct {
	Keys      Keys
	Validator Validator
}

// Option mutates Options.
type Option func(*Options)

// WithKeys overrides the search and sort parameter names.
func WithKeys(keys Keys) Option {
	return func(o *Options) { o.Keys = keys }
}

// WithValidator replaces the default go-playground based validator.
func WithValidator(v Validator) Option {
	return func(o *Options) { o.Validator = v }
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     Validator
)

func newOptions(opts []Option) Options {
	defaultValidatorOnce.Do(func() { defaultValidator = NewValidator() })

	o := Options{Keys: DefaultKeys(), Validator: defaultValidator}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RefinedRequest is the outcome of one resolution pass: the searches in
// definition order and the sorts in input (or default list) order.
// It is read-only once built.
type RefinedRequest[Q any] struct {
	keys     Keys
	searches []*Search[Q]
	sorts    []*Sort[Q]
}

// NewRefinedRequest validates in against the definitions and resolves the
// searches and sorts to apply. defaultSorts are used only when no sort from
// the input survives resolution.
func NewRefinedRequest[Q any](
	ctx context.Context,
	in Input,
	definitions []*Definition[Q],
	defaultSorts []SortParam,
	opts ...Option,
) *RefinedRequest[Q] {
	return newRefinedRequest(ctx, in, definitions, defaultSorts, newOptions(opts))
}

func newRefinedRequest[Q any](
	ctx context.Context,
	in Input,
	definitions []*Definition[Q],
	defaultSorts []SortParam,
	o Options,
) *RefinedRequest[Q] {
	r := &RefinedRequest[Q]{keys: o.Keys}
	r.searches = identifySearches(ctx, in.Search, definitions, o.Validator)
	r.sorts = identifySorts(ctx, in.Sort, definitions, defaultSorts)
	return r
}

// Search returns the resolved search for name, or nil.
func (r *RefinedRequest[Q]) Search(name string) *Search[Q] {
	for _, s := range r.searches {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Sort returns the resolved sort for name, or nil.
func (r *RefinedRequest[Q]) Sort(name string) *Sort[Q] {
	for _, s := range r.sorts {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func (r *RefinedRequest[Q]) Searches() []*Search[Q] { return r.searches }

func (r *RefinedRequest[Q]) Sorts() []*Sort[Q] { return r.sorts }

// Query returns the validated parameters, suitable for building a new request.
func (r *RefinedRequest[Q]) Query() Query {
	q := Query{Keys: r.keys}
	for _, s := range r.searches {
		q.Search = append(q.Search, SearchParam{Name: s.Name(), Value: s.Value()})
	}
	for _, s := range r.sorts {
		q.Sort = append(q.Sort, SortParam{Name: s.Name(), Direction: string(s.Direction())})
	}
	return q
}

func identifySearches[Q any](
	ctx context.Context,
	input map[string]any,
	definitions []*Definition[Q],
	validator Validator,
) []*Search[Q] {
	var searchable []*Definition[Q]
	seen := make(map[string]bool, len(definitions))
	for _, d := range definitions {
		if !d.CanSearch() || seen[d.Name()] {
			continue
		}
		seen[d.Name()] = true
		searchable = append(searchable, d)
	}

	rules := make(map[string]Rules)
	trimmed := make(map[string]bool)
	for _, d := range searchable {
		for key, set := range d.ValidationRules() {
			if _, ok := rules[key]; ok {
				continue
			}
			rules[key] = set
			trimmed[key] = d.ShouldTrimSearch()
		}
	}

	raw := make(map[string]any, len(input))
	for key, value := range input {
		if trimmed[key] {
			value = trimValue(value)
		}
		raw[key] = value
	}
	valid := validator.Valid(ctx, raw, rules)

	log := logger.FromContext(ctx)
	var searches []*Search[Q]
	for _, d := range searchable {
		value, ok := searchValue(d, valid)
		if !ok {
			if !d.CanAlwaysRun() {
				if _, present := input[d.Name()]; present {
					log.Debugw("refiner search discarded", "name", d.Name())
				}
				continue
			}
			value = nil
		}

		s, err := NewSearch(d, value)
		if err != nil {
			continue
		}
		searches = append(searches, s)
	}
	return searches
}

// searchValue picks the validated value for d. A definition with a single
// rule key resolves to that key's value; with several keys it resolves to the
// map of validated keys. Composite values are only accepted by membership and
// custom strategies.
func searchValue[Q any](d *Definition[Q], valid map[string]any) (any, bool) {
	rules := d.ValidationRules()

	matched := make(map[string]any, len(rules))
	for key := range rules {
		if v, ok := valid[key]; ok {
			matched[key] = v
		}
	}
	if len(matched) == 0 {
		return nil, false
	}

	var value any = matched
	if len(rules) == 1 {
		for _, v := range matched {
			value = v
		}
	}

	if isComposite(value) && !d.IsMultipleAllowed() && !d.IsCustomSearch() {
		return nil, false
	}
	return value, true
}

func identifySorts[Q any](
	ctx context.Context,
	input []SortParam,
	definitions []*Definition[Q],
	defaultSorts []SortParam,
) []*Sort[Q] {
	byName := make(map[string]*Definition[Q], len(definitions))
	for _, d := range definitions {
		if _, ok := byName[d.Name()]; !ok {
			byName[d.Name()] = d
		}
	}

	log := logger.FromContext(ctx)
	resolve := func(params []SortParam, defaults bool) []*Sort[Q] {
		var sorts []*Sort[Q]
		seen := make(map[string]bool, len(params))
		for _, p := range params {
			direction := p.Direction
			if defaults && direction == "" {
				direction = string(Asc)
			}

			d, ok := byName[strings.ToLower(p.Name)]
			if !ok || !d.CanSort() {
				log.Debugw("refiner sort discarded", "name", p.Name, "reason", "not sortable")
				continue
			}
			dir, ok := ParseDirection(direction)
			if !ok {
				log.Debugw("refiner sort discarded", "name", p.Name, "reason", "invalid direction", "direction", p.Direction)
				continue
			}
			if seen[d.Name()] {
				continue
			}
			seen[d.Name()] = true
			sorts = append(sorts, NewSort(d, dir))
		}
		return sorts
	}

	if sorts := resolve(input, false); len(sorts) > 0 {
		return sorts
	}
	return resolve(defaultSorts, true)
}

func trimValue(value any) any {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = trimValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = strings.TrimSpace(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = trimValue(item)
		}
		return out
	default:
		return value
	}
}
