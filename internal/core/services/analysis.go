package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/ports/output"
)

type AnalysisService struct {
	catalog ports.CatalogRepository
	runs    ports.AnalysisRunRepository // nil when history is disabled
}

func NewAnalysisService(catalog ports.CatalogRepository, runs ports.AnalysisRunRepository) *AnalysisService {
	return &AnalysisService{catalog: catalog, runs: runs}
}

// HistoryEnabled reports whether analysis runs are persisted.
func (s *AnalysisService) HistoryEnabled() bool {
	return s.runs != nil
}

type ScoreRequest struct {
	AreaCode     string
	BusinessCode string
	Factors      *domain.MarketFactors // nil: use the area's default factors
	Epsilon      *float64              // nil: use the area's preset epsilon
}

type ScoreResult struct {
	AreaCode     string
	AreaName     string
	BusinessCode string
	BusinessName string
	Factors      domain.MarketFactors
	Epsilon      float64
	Score        float64
	Breakdown    []domain.FactorContribution
}

// Score computes the market potential of a single (area, business) pair.
func (s *AnalysisService) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	area, err := s.catalog.GetAreaByCode(ctx, req.AreaCode)
	if err != nil {
		return nil, err
	}

	business, err := s.catalog.GetBusinessByCode(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}

	factors, epsilon, err := resolveInputs(area, req.Factors, req.Epsilon)
	if err != nil {
		return nil, err
	}

	score, breakdown, err := area.PotentialScore(business.Code, factors, epsilon)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		AreaCode:     area.Code,
		AreaName:     area.Name,
		BusinessCode: business.Code,
		BusinessName: business.Name,
		Factors:      factors,
		Epsilon:      epsilon,
		Score:        score,
		Breakdown:    breakdown,
	}, nil
}

type AnalyzeRequest struct {
	AreaCode      string
	Factors       *domain.MarketFactors
	Epsilon       *float64
	BusinessCodes []string // empty: analyze the whole catalog in catalog order
}

// Analyze scores every requested business in the area and projects its
// monthly P&L. The run is persisted when history is enabled; a failed write
// fails the operation.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.AnalysisRun, error) {
	area, err := s.catalog.GetAreaByCode(ctx, req.AreaCode)
	if err != nil {
		return nil, err
	}

	factors, epsilon, err := resolveInputs(area, req.Factors, req.Epsilon)
	if err != nil {
		return nil, err
	}

	businesses, err := s.resolveBusinesses(ctx, req.BusinessCodes)
	if err != nil {
		return nil, err
	}

	results := make([]domain.BusinessResult, 0, len(businesses))
	for _, b := range businesses {
		score, _, err := area.PotentialScore(b.Code, factors, epsilon)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.BusinessResult{
			BusinessCode: b.Code,
			BusinessName: b.Name,
			Summary:      b.Summarize(score),
		})
	}

	run := &domain.AnalysisRun{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		AreaCode:  area.Code,
		AreaName:  area.Name,
		Factors:   factors,
		Epsilon:   epsilon,
		Results:   results,
	}

	if s.runs != nil {
		if err := s.runs.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("persist analysis run: %w", err)
		}
	}

	return run, nil
}

func (s *AnalysisService) GetRun(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error) {
	if s.runs == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return s.runs.GetByID(ctx, id)
}

func (s *AnalysisService) ListRuns(ctx context.Context, filter ports.AnalysisListFilter) ([]*domain.AnalysisRun, int, error) {
	if s.runs == nil {
		return nil, 0, domain.ErrHistoryDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.runs.List(ctx, filter)
}

func (s *AnalysisService) DeleteRun(ctx context.Context, id uuid.UUID) error {
	if s.runs == nil {
		return domain.ErrHistoryDisabled
	}
	return s.runs.Delete(ctx, id)
}

// resolveInputs fills factors and epsilon from the area presets where the
// request left them out, then validates them.
func resolveInputs(area *domain.Area, factors *domain.MarketFactors, epsilon *float64) (domain.MarketFactors, float64, error) {
	f := area.DefaultFactors
	if factors != nil {
		f = *factors
	}
	if err := f.Validate(); err != nil {
		return domain.MarketFactors{}, 0, err
	}

	eps := area.Epsilon
	if epsilon != nil {
		eps = *epsilon
	}
	if eps < 0 {
		return domain.MarketFactors{}, 0, domain.ErrNegativeEpsilon
	}

	return f, eps, nil
}

func (s *AnalysisService) resolveBusinesses(ctx context.Context, codes []string) ([]*domain.Business, error) {
	if len(codes) == 0 {
		return s.catalog.ListBusinesses(ctx)
	}

	businesses := make([]*domain.Business, 0, len(codes))
	for _, code := range codes {
		b, err := s.catalog.GetBusinessByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}
