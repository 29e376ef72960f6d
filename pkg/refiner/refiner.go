// Package refiner turns whitelisted search and sort request parameters into
// filter and ordering operations on a query builder.
//
// A resource declares its fields once:
//
//	type ProductRefiner struct{}
//
//	func (ProductRefiner) Definitions() []*refiner.Definition[squirrel.SelectBuilder] {
//		return []*refiner.Definition[squirrel.SelectBuilder]{
//			sqlbuilder.Define("name").SearchLike(refiner.LikeBoth).Sort(true),
//			sqlbuilder.Define("category").SearchIn(),
//			sqlbuilder.Define("created").Sort(true).Column("created_at"),
//		}
//	}
//
// and every request is refined with
//
//	r := refiner.New(sqlbuilder.Select{}, ProductRefiner{})
//	q, err := r.Apply(ctx, baseQuery, input)
//
// Malformed or disallowed parameters never fail the request: they are simply
// not applied. Errors are reserved for mistakes in the definitions.
package refiner

import (
	"context"
	"fmt"

	"refiner/pkg/logger"
)

// Definer declares the fields of one resource, in application order.
type Definer[Q any] interface {
	Definitions() []*Definition[Q]
}

// DefaultSorter is implemented by definers that sort when the request does not.
type DefaultSorter interface {
	DefaultSorts() []SortParam
}

// Introspector exposes resolved state independently of the query type,
// which is what the Registry stores.
type Introspector interface {
	Type() string
	HasSearch(name string) (bool, error)
	SearchValue(name string) (any, error)
	HasSort(name string) (bool, error)
	SortDirection(name string) (Direction, error)
	InverseSortDirection(name string) (Direction, error)
	Query() (Query, error)
}

// Refiner applies the definitions of one resource to a query.
// A Refiner holds the state of a single request and must not be shared
// between requests.
type Refiner[Q any] struct {
	builder Builder[Q]
	definer Definer[Q]
	opts    Options
	refined *RefinedRequest[Q]
}

var _ Introspector = (*Refiner[any])(nil)

// New creates a refiner issuing operations through b.
func New[Q any](b Builder[Q], definer Definer[Q], opts ...Option) *Refiner[Q] {
	return &Refiner[Q]{
		builder: b,
		definer: definer,
		opts:    newOptions(opts),
	}
}

// TypeOf returns the identifier used for a definer in the Registry.
func TypeOf(definer any) string {
	return fmt.Sprintf("%T", definer)
}

// Type identifies the kind of refiner, see TypeOf.
func (r *Refiner[Q]) Type() string {
	return TypeOf(r.definer)
}

// Apply resolves in and applies every search, then every sort, to q.
// The resolved request is kept for the introspection methods.
func (r *Refiner[Q]) Apply(ctx context.Context, q Q, in Input) (Q, error) {
	if err := r.opts.Keys.Validate(); err != nil {
		return q, err
	}

	definitions := r.definer.Definitions()
	for _, d := range definitions {
		if err := d.Err(); err != nil {
			return q, err
		}
	}

	var defaults []SortParam
	if ds, ok := r.definer.(DefaultSorter); ok {
		defaults = ds.DefaultSorts()
	}

	r.refined = newRefinedRequest(ctx, in, definitions, defaults, r.opts)

	var err error
	for _, s := range r.refined.Searches() {
		if q, err = s.Apply(r.builder, q); err != nil {
			return q, err
		}
	}
	for _, s := range r.refined.Sorts() {
		q = s.Apply(r.builder, q)
	}

	logger.FromContext(ctx).Debugw("refiner applied",
		"refiner", r.Type(),
		"searches", len(r.refined.Searches()),
		"sorts", len(r.refined.Sorts()),
	)
	return q, nil
}

// Resolved returns the request resolved by the last Apply.
func (r *Refiner[Q]) Resolved() (*RefinedRequest[Q], error) {
	if r.refined == nil {
		return nil, notInitialized()
	}
	return r.refined, nil
}

func (r *Refiner[Q]) HasSearch(name string) (bool, error) {
	rr, err := r.Resolved()
	if err != nil {
		return false, err
	}
	return rr.Search(name) != nil, nil
}

// SearchValue returns the resolved value, nil when the search is absent.
func (r *Refiner[Q]) SearchValue(name string) (any, error) {
	rr, err := r.Resolved()
	if err != nil {
		return nil, err
	}
	if s := rr.Search(name); s != nil {
		return s.Value(), nil
	}
	return nil, nil
}

func (r *Refiner[Q]) HasSort(name string) (bool, error) {
	rr, err := r.Resolved()
	if err != nil {
		return false, err
	}
	return rr.Sort(name) != nil, nil
}

// SortDirection returns the resolved direction, empty when the sort is absent.
func (r *Refiner[Q]) SortDirection(name string) (Direction, error) {
	rr, err := r.Resolved()
	if err != nil {
		return "", err
	}
	if s := rr.Sort(name); s != nil {
		return s.Direction(), nil
	}
	return "", nil
}

// InverseSortDirection returns the flipped direction, empty when the sort is absent.
func (r *Refiner[Q]) InverseSortDirection(name string) (Direction, error) {
	rr, err := r.Resolved()
	if err != nil {
		return "", err
	}
	if s := rr.Sort(name); s != nil {
		return s.InverseDirection(), nil
	}
	return "", nil
}

func (r *Refiner[Q]) Query() (Query, error) {
	rr, err := r.Resolved()
	if err != nil {
		return Query{}, err
	}
	return rr.Query(), nil
}
