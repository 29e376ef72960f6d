package product

import (
	"github.com/Masterminds/squirrel"

	"refiner/pkg/refiner"
	"refiner/pkg/refiner/sqlbuilder"
)

// Refiner declares how product lists may be searched and sorted:
//
//	search[id][]=...        id IN (...)
//	search[code]=A-1        code = 'A-1'
//	search[name]=desk       name ILIKE '%desk%'
//	search[category][]=...  category IN (...)
//	search[price-min]=10    price >= 10
//	search[q]=lamp          name or code contains "lamp"
//	sort[code|name|created]=asc|desc
type Refiner struct{}

var _ refiner.DefaultSorter = Refiner{}

func (Refiner) Definitions() []*sqlbuilder.Definition {
	return []*sqlbuilder.Definition{
		sqlbuilder.Define("id").SearchIn(),
		sqlbuilder.Define("code").Search().Sort(true).Validation("required|string|max:64"),
		sqlbuilder.Define("name").SearchLike(refiner.LikeBoth).Sort(true),
		sqlbuilder.Define("category").SearchIn(),
		sqlbuilder.Define("price-min").
			SearchCustom(func(q sqlbuilder.Query, v any) sqlbuilder.Query {
				return q.Where(squirrel.GtOrEq{"price": v})
			}).
			Validation("required|numeric"),
		sqlbuilder.Define("q").
			SearchCustom(func(q sqlbuilder.Query, v any) sqlbuilder.Query {
				pattern := refiner.LikeBoth.Pattern(v.(string))
				return q.Where(squirrel.Or{
					squirrel.ILike{"name": pattern},
					squirrel.ILike{"code": pattern},
				})
			}).
			Validation("required|string|min:2"),
		sqlbuilder.Define("created").Column("created_at").Sort(true),
	}
}

func (Refiner) DefaultSorts() []refiner.SortParam {
	return []refiner.SortParam{{Name: "name", Direction: string(refiner.Asc)}}
}

// NewFactory creates the default refiner factory with the product refiner
// registered.
func NewFactory(namespace string, opts ...refiner.Option) (*refiner.Factory[sqlbuilder.Query], error) {
	f := refiner.NewFactory[sqlbuilder.Query](sqlbuilder.Select{CaseInsensitive: true}, namespace, opts...)
	if err := f.Register(Resource, func() refiner.Definer[sqlbuilder.Query] { return Refiner{} }); err != nil {
		return nil, err
	}
	return f, nil
}
