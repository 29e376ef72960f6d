package product

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"refiner/pkg/logger"
	"refiner/pkg/refiner"
	"refiner/pkg/refiner/sqlbuilder"
)

var tracer = otel.Tracer("refiner/product")

// Service lists products.
type Service struct {
	repo    Repository
	factory *refiner.Factory[sqlbuilder.Query]
}

func NewService(repo Repository, factory *refiner.Factory[sqlbuilder.Query]) *Service {
	return &Service{repo: repo, factory: factory}
}

// List returns the products matching in. The default product refiner is
// created implicitly and pushed to the registry carried by ctx, where the
// caller finds it to read the resolved search and sort state.
func (s *Service) List(ctx context.Context, in refiner.Input) ([]Product, error) {
	ctx, span := tracer.Start(ctx, "product.List")
	defer span.End()

	q, ref, err := s.factory.Refine(ctx, s.repo.Select(), Resource, nil, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "refine failed")
		return nil, err
	}
	if query, err := ref.Query(); err == nil {
		span.SetAttributes(
			attribute.Int("refiner.searches", len(query.Search)),
			attribute.Int("refiner.sorts", len(query.Sort)),
		)
	}

	items, err := s.repo.Find(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find failed")
		return nil, err
	}

	logger.Debug(ctx, "products listed", "count", len(items))
	return items, nil
}
