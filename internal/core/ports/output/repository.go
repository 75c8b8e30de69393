package ports

import (
	"context"

	"github.com/google/uuid"

	"akiya-analysis-service/internal/core/domain"
)

// AnalysisListFilter narrows and pages the analysis history.
type AnalysisListFilter struct {
	AreaCode string
	Limit    int
	Offset   int
}

// AnalysisRunRepository persists executed analyses. List returns runs newest
// first together with the total match count.
type AnalysisRunRepository interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error)
	List(ctx context.Context, filter AnalysisListFilter) ([]*domain.AnalysisRun, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
