package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refiner/pkg/refiner"
	"refiner/pkg/refiner/sqlbuilder"
)

type fakeRepo struct {
	items []Product
	err   error

	sql  string
	args []any
}

func (r *fakeRepo) Select() sqlbuilder.Query {
	return builder().Select("id", "name").From("products")
}

func (r *fakeRepo) Find(_ context.Context, q sqlbuilder.Query) ([]Product, error) {
	var err error
	r.sql, r.args, err = q.ToSql()
	if err != nil {
		return nil, err
	}
	return r.items, r.err
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()

	f, err := NewFactory("")
	require.NoError(t, err)
	return NewService(repo, f)
}

func TestService_ListRegistersDefaultRefiner(t *testing.T) {
	repo := &fakeRepo{items: []Product{{Code: "A-1", Name: "Desk"}}}
	svc := newTestService(t, repo)

	reg := refiner.NewRegistry()
	ctx := refiner.WithRegistry(context.Background(), reg)

	items, err := svc.List(ctx, refiner.Input{
		Search: map[string]any{"name": "desk", "price-min": "10"},
		Sort:   []refiner.SortParam{{Name: "created", Direction: "desc"}},
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t,
		"SELECT id, name FROM products WHERE name ILIKE $1 AND price >= $2 ORDER BY created_at DESC",
		repo.sql)
	assert.Equal(t, []any{"%desk%", "10"}, repo.args)

	ref, ok := reg.Shift(refiner.TypeOf(Refiner{}), Resource)
	require.True(t, ok)

	dir, err := ref.SortDirection("created")
	require.NoError(t, err)
	assert.Equal(t, refiner.Desc, dir)
}

func TestService_ListRepositoryError(t *testing.T) {
	boom := errors.New("boom")
	svc := newTestService(t, &fakeRepo{err: boom})

	_, err := svc.List(context.Background(), refiner.Input{})
	assert.ErrorIs(t, err, boom)
}
