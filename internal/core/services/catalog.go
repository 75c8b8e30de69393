package services

import (
	"context"

	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/ports/output"
)

// CatalogService exposes the area and business catalog to the primary
// adapters.
type CatalogService struct {
	catalog ports.CatalogRepository
}

func NewCatalogService(catalog ports.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	return s.catalog.ListAreas(ctx)
}

func (s *CatalogService) GetArea(ctx context.Context, code string) (*domain.Area, error) {
	return s.catalog.GetAreaByCode(ctx, code)
}

func (s *CatalogService) ListBusinesses(ctx context.Context) ([]*domain.Business, error) {
	return s.catalog.ListBusinesses(ctx)
}

func (s *CatalogService) GetBusiness(ctx context.Context, code string) (*domain.Business, error) {
	return s.catalog.GetBusinessByCode(ctx, code)
}
