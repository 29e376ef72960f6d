package sqlbuilder

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refiner/pkg/refiner"
)

type productRefiner struct{}

func (productRefiner) Definitions() []*Definition {
	return []*Definition{
		Define("id").SearchIn(),
		Define("code").Search().Sort(true),
		Define("name").SearchLike(refiner.LikeBoth).Sort(true),
		Define("created").Column("created_at").Sort(true),
		Define("price-min").
			SearchCustom(func(q Query, v any) Query {
				return q.Where(squirrel.GtOrEq{"price": v})
			}).
			Validation("numeric"),
	}
}

func (productRefiner) DefaultSorts() []refiner.SortParam {
	return []refiner.SortParam{{Name: "name", Direction: "asc"}}
}

func baseQuery() Query {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).Select("id").From("products")
}

func TestSelect_Apply(t *testing.T) {
	tests := []struct {
		name     string
		builder  Select
		input    refiner.Input
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "default sort only",
			wantSQL: "SELECT id FROM products ORDER BY name ASC",
		},
		{
			name: "search and sort",
			input: refiner.Input{
				Search: map[string]any{"name": "desk", "id": []any{"1", "2"}, "code": "A1"},
				Sort:   []refiner.SortParam{{Name: "created", Direction: "desc"}, {Name: "code", Direction: "asc"}},
			},
			wantSQL:  "SELECT id FROM products WHERE id IN ($1,$2) AND code = $3 AND name LIKE $4 ORDER BY created_at DESC, code ASC",
			wantArgs: []any{"1", "2", "A1", "%desk%"},
		},
		{
			name:     "in with keyed map",
			input:    refiner.Input{Search: map[string]any{"id": map[string]any{"b": "2", "a": "1"}}},
			wantSQL:  "SELECT id FROM products WHERE id IN ($1,$2) ORDER BY name ASC",
			wantArgs: []any{"1", "2"},
		},
		{
			name:     "case insensitive like",
			builder:  Select{CaseInsensitive: true},
			input:    refiner.Input{Search: map[string]any{"name": "desk"}},
			wantSQL:  "SELECT id FROM products WHERE name ILIKE $1 ORDER BY name ASC",
			wantArgs: []any{"%desk%"},
		},
		{
			name:     "custom",
			input:    refiner.Input{Search: map[string]any{"price-min": "10"}},
			wantSQL:  "SELECT id FROM products WHERE price >= $1 ORDER BY name ASC",
			wantArgs: []any{"10"},
		},
		{
			name:    "invalid custom value",
			input:   refiner.Input{Search: map[string]any{"price-min": "cheap"}},
			wantSQL: "SELECT id FROM products ORDER BY name ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.builder, productRefiner{})
			q, err := r.Apply(context.Background(), baseQuery(), tt.input)
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestSelect_InEmpty(t *testing.T) {
	sql, _, err := Select{}.In(baseQuery(), "id", nil).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM products WHERE (1=0)", sql)
}
