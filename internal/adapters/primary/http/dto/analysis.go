package dto

import (
	"math"
	"time"

	"github.com/google/uuid"

	"akiya-analysis-service/internal/core/domain"
)

// ============================================================================
// Score DTOs
// ============================================================================

type ScoreRequest struct {
	AreaCode     string            `json:"area_code" binding:"required"`
	BusinessCode string            `json:"business_code" binding:"required"`
	Factors      *MarketFactorsDTO `json:"factors"`
	Epsilon      *float64          `json:"epsilon"`
}

type FactorContributionDTO struct {
	Factor     string  `json:"factor"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

type ScoreResponse struct {
	AreaCode     string                  `json:"area_code"`
	AreaName     string                  `json:"area_name"`
	BusinessCode string                  `json:"business_code"`
	BusinessName string                  `json:"business_name"`
	Factors      MarketFactorsDTO        `json:"factors"`
	Epsilon      float64                 `json:"epsilon"`
	Score        float64                 `json:"score"`
	ScoreDisplay string                  `json:"score_display"`
	Breakdown    []FactorContributionDTO `json:"breakdown"`
}

// ============================================================================
// Analysis DTOs
// ============================================================================

type CreateAnalysisRequest struct {
	AreaCode      string            `json:"area_code" binding:"required"`
	Factors       *MarketFactorsDTO `json:"factors"`
	Epsilon       *float64          `json:"epsilon"`
	BusinessCodes []string          `json:"business_codes"`
}

type ProfitSummaryDTO struct {
	MarketScore       float64  `json:"market_score"`
	InitialInvestment int64    `json:"initial_investment"`
	MonthlyRevenue    int64    `json:"monthly_revenue"`
	MonthlyCost       int64    `json:"monthly_cost"`
	MonthlyProfit     int64    `json:"monthly_profit"`
	ProfitRatio       float64  `json:"profit_ratio"`
	PaybackYears      *float64 `json:"payback_years"`
}

// ResultDisplayDTO is the report-ready rendering of one result, formatted
// the way the figures are shown to planners.
type ResultDisplayDTO struct {
	MarketScore       string `json:"market_score"`
	InitialInvestment string `json:"initial_investment"`
	MonthlyRevenue    string `json:"monthly_revenue"`
	MonthlyCost       string `json:"monthly_cost"`
	MonthlyProfit     string `json:"monthly_profit"`
	ProfitRatio       string `json:"profit_ratio"`
	PaybackPeriod     string `json:"payback_period"`
}

type BusinessResultResponse struct {
	BusinessCode string           `json:"business_code"`
	BusinessName string           `json:"business_name"`
	Summary      ProfitSummaryDTO `json:"summary"`
	Display      ResultDisplayDTO `json:"display"`
}

type AnalysisRunResponse struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	AreaCode  string                   `json:"area_code"`
	AreaName  string                   `json:"area_name"`
	Factors   MarketFactorsDTO         `json:"factors"`
	Epsilon   float64                  `json:"epsilon"`
	Results   []BusinessResultResponse `json:"results"`
	Persisted bool                     `json:"persisted"`
}

type ListAnalysisRunsResponse struct {
	Items      []AnalysisRunResponse `json:"items"`
	Total      int                   `json:"total"`
	PageSize   int                   `json:"page_size"`
	NextOffset int                   `json:"next_offset"`
}

func ToProfitSummaryDTO(s domain.ProfitSummary) ProfitSummaryDTO {
	out := ProfitSummaryDTO{
		MarketScore:       s.MarketScore,
		InitialInvestment: s.InitialInvestment,
		MonthlyRevenue:    s.MonthlyRevenue,
		MonthlyCost:       s.MonthlyCost,
		MonthlyProfit:     s.MonthlyProfit,
		ProfitRatio:       s.ProfitRatio,
	}
	if !math.IsInf(s.PaybackYears, 0) {
		payback := s.PaybackYears
		out.PaybackYears = &payback
	}
	return out
}

func ToResultDisplayDTO(s domain.ProfitSummary) ResultDisplayDTO {
	return ResultDisplayDTO{
		MarketScore:       domain.FormatScore(s.MarketScore),
		InitialInvestment: domain.FormatYen(s.InitialInvestment),
		MonthlyRevenue:    domain.FormatYen(s.MonthlyRevenue),
		MonthlyCost:       domain.FormatYen(s.MonthlyCost),
		MonthlyProfit:     domain.FormatYen(s.MonthlyProfit),
		ProfitRatio:       domain.FormatRatio(s.ProfitRatio),
		PaybackPeriod:     domain.FormatPayback(s.PaybackYears),
	}
}

func ToBusinessResultResponse(r domain.BusinessResult) BusinessResultResponse {
	return BusinessResultResponse{
		BusinessCode: r.BusinessCode,
		BusinessName: r.BusinessName,
		Summary:      ToProfitSummaryDTO(r.Summary),
		Display:      ToResultDisplayDTO(r.Summary),
	}
}

func ToAnalysisRunResponse(run *domain.AnalysisRun, persisted bool) AnalysisRunResponse {
	results := make([]BusinessResultResponse, 0, len(run.Results))
	for _, r := range run.Results {
		results = append(results, ToBusinessResultResponse(r))
	}
	return AnalysisRunResponse{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		AreaCode:  run.AreaCode,
		AreaName:  run.AreaName,
		Factors:   ToMarketFactorsDTO(run.Factors),
		Epsilon:   run.Epsilon,
		Results:   results,
		Persisted: persisted,
	}
}

func ToFactorBreakdownDTO(breakdown []domain.FactorContribution) []FactorContributionDTO {
	contribs := make([]FactorContributionDTO, 0, len(breakdown))
	for _, c := range breakdown {
		contribs = append(contribs, FactorContributionDTO{
			Factor:     c.Factor,
			Value:      c.Value,
			Normalized: c.Normalized,
			Weight:     c.Weight,
			Weighted:   c.Weighted,
		})
	}
	return contribs
}
