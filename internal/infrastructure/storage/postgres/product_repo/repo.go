// Package product_repo provides the PostgreSQL product repository.
package product_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"refiner/internal/core/apperror"
	"refiner/internal/domain/product"
	"refiner/internal/infrastructure/storage/postgres"
	"refiner/pkg/refiner/sqlbuilder"
)

var tracer = otel.Tracer("refiner/product_repo")

const tableName = "products"

var selectCols = postgres.ExtractDBColumns[product.Product]()

var _ product.Repository = (*Repo)(nil)

// Repo reads products through a pgx querier (pool, connection or transaction).
type Repo struct {
	db pgxscan.Querier
}

func NewRepo(db pgxscan.Querier) *Repo {
	return &Repo{db: db}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) Select() sqlbuilder.Query {
	return r.Builder().
		Select(selectCols...).
		From(tableName)
}

func (r *Repo) Find(ctx context.Context, q sqlbuilder.Query) ([]product.Product, error) {
	ctx, span := tracer.Start(ctx, "product_repo.Find")
	defer span.End()

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("op", "build product query")
	}
	span.SetAttributes(attribute.String("db.statement", sql))

	items := make([]product.Product, 0)
	if err := pgxscan.Select(ctx, r.db, &items, sql, args...); err != nil {
		span.RecordError(err)
		return nil, apperror.NewDatabase("list products", err)
	}
	return items, nil
}
