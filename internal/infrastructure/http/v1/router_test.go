package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refiner/internal/core/apperror"
	"refiner/internal/core/id"
	"refiner/internal/domain/product"
	"refiner/pkg/logger"
	"refiner/pkg/refiner"
	"refiner/pkg/refiner/sqlbuilder"
)

type memoryRepo struct {
	items []product.Product
	err   error
	sql   string
}

func (r *memoryRepo) Select() sqlbuilder.Query {
	return squirrel.Select("*").From("products")
}

func (r *memoryRepo) Find(_ context.Context, q sqlbuilder.Query) ([]product.Product, error) {
	sql, _, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.sql = sql
	return r.items, r.err
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, repo *memoryRepo, keys refiner.Keys) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	factory, err := product.NewFactory("", refiner.WithKeys(keys))
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Logger:   logger.Nop(),
		Keys:     keys,
		DB:       pinger{},
		Products: product.NewService(repo, factory),
	})
}

type listBody struct {
	Items []map[string]any `json:"items"`
	Query struct {
		Params      map[string]any    `json:"params"`
		QueryString string            `json:"queryString"`
		Toggles     map[string]string `json:"toggles"`
	} `json:"query"`
}

func TestProducts_List(t *testing.T) {
	repo := &memoryRepo{items: []product.Product{{
		ID:        id.New(),
		Code:      "A-1",
		Name:      "Desk",
		Category:  "office",
		Price:     decimal.RequireFromString("120.5"),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}}
	router := newTestRouter(t, repo, refiner.DefaultKeys())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?search[name]=desk&search[unknown]=x&sort[created]=desc&sort[price]=asc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SELECT * FROM products WHERE name ILIKE ? ORDER BY created_at DESC", repo.sql)

	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "120.50", body.Items[0]["price"])
	assert.Equal(t, map[string]any{
		"search": map[string]any{"name": "desk"},
		"sort":   map[string]any{"created": "desc"},
	}, body.Query.Params)
	assert.Equal(t, "search%5Bname%5D=desk&sort%5Bcreated%5D=desc", body.Query.QueryString)
	assert.Equal(t, map[string]string{"created": "asc"}, body.Query.Toggles)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProducts_ListCustomKeysAndJSONBody(t *testing.T) {
	repo := &memoryRepo{}
	router := newTestRouter(t, repo, refiner.Keys{Search: "filter", Sort: "order"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/search",
		strings.NewReader(`{"filter":{"category":["office","home"]},"order":{"code":"desc","name":"asc"}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SELECT * FROM products WHERE category IN (?,?) ORDER BY code DESC, name ASC", repo.sql)

	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
	assert.Equal(t, "filter%5Bcategory%5D%5B%5D=office&filter%5Bcategory%5D%5B%5D=home&order%5Bcode%5D=desc&order%5Bname%5D=asc",
		body.Query.QueryString)
}

func TestProducts_ListDefaultSort(t *testing.T) {
	repo := &memoryRepo{}
	router := newTestRouter(t, repo, refiner.DefaultKeys())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort[name]=sideways", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SELECT * FROM products ORDER BY name ASC", repo.sql)
}

func TestProducts_ListIgnoresMalformedParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		sql   string
	}{
		{"unrelated bad escape", "utm=100%", "SELECT * FROM products ORDER BY name ASC"},
		{"unrelated invalid hex", "page=%zz&search[name]=desk", "SELECT * FROM products WHERE name ILIKE ? ORDER BY name ASC"},
		{"escaped percent in search", "search[name]=50%25&x=%", "SELECT * FROM products WHERE name ILIKE ? ORDER BY name ASC"},
		{"bad escape in search", "search[name]=%zz", "SELECT * FROM products WHERE name ILIKE ? ORDER BY name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{}
			router := newTestRouter(t, repo, refiner.DefaultKeys())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.sql, repo.sql)
		})
	}
}

func TestProducts_ListRepositoryError(t *testing.T) {
	repo := &memoryRepo{err: apperror.NewDatabase("list products", errors.New("connection refused"))}
	router := newTestRouter(t, repo, refiner.DefaultKeys())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeDatabase)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{}, refiner.DefaultKeys())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
