package ports

import (
	"context"

	"akiya-analysis-service/internal/core/domain"
)

// CatalogRepository serves the area and business catalog. Implementations
// are immutable after construction; list order is catalog order.
type CatalogRepository interface {
	ListAreas(ctx context.Context) ([]*domain.Area, error)
	GetAreaByCode(ctx context.Context, code string) (*domain.Area, error)
	ListBusinesses(ctx context.Context) ([]*domain.Business, error)
	GetBusinessByCode(ctx context.Context, code string) (*domain.Business, error)
}
