package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/ports/output"
)

// MockCatalogRepo is a mock of CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Area), args.Error(1)
}

func (m *MockCatalogRepo) GetAreaByCode(ctx context.Context, code string) (*domain.Area, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockCatalogRepo) ListBusinesses(ctx context.Context) ([]*domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Business), args.Error(1)
}

func (m *MockCatalogRepo) GetBusinessByCode(ctx context.Context, code string) (*domain.Business, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

// MockAnalysisRunRepo is a mock of AnalysisRunRepository.
type MockAnalysisRunRepo struct {
	mock.Mock
}

func (m *MockAnalysisRunRepo) Create(ctx context.Context, run *domain.AnalysisRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockAnalysisRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRun), args.Error(1)
}

func (m *MockAnalysisRunRepo) List(ctx context.Context, filter ports.AnalysisListFilter) ([]*domain.AnalysisRun, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.AnalysisRun), args.Int(1), args.Error(2)
}

func (m *MockAnalysisRunRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
