package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessResult is the outcome of one business type within an analysis run.
type BusinessResult struct {
	BusinessCode string        `json:"business_code"`
	BusinessName string        `json:"business_name"`
	Summary      ProfitSummary `json:"summary"`
}

// AnalysisRun is one executed market analysis: the inputs it ran with and
// the per-business results, in catalog order (or request order when the
// request named specific businesses).
type AnalysisRun struct {
	ID        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	AreaCode  string           `json:"area_code"`
	AreaName  string           `json:"area_name"`
	Factors   MarketFactors    `json:"factors"`
	Epsilon   float64          `json:"epsilon"`
	Results   []BusinessResult `json:"results"`
}
