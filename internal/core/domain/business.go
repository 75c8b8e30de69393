package domain

import (
	"encoding/json"
	"math"
)

// CostItem is one labeled line of a business's monthly cost table.
type CostItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Business is one candidate reuse business with its revenue assumptions and
// itemized monthly costs. All money fields are yen.
type Business struct {
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	InitialInvestment int64      `json:"initial_investment"`
	MonthlyUsers      int64      `json:"monthly_users"`
	UnitPrice         int64      `json:"unit_price"`
	OtherRevenue      int64      `json:"other_revenue"`
	Costs             []CostItem `json:"costs"`
}

// MonthlyRevenue projects revenue at the given market score. The fractional
// yen from the score multiplication are truncated.
func (b *Business) MonthlyRevenue(marketScore float64) int64 {
	return int64(float64(b.MonthlyUsers*b.UnitPrice)*marketScore + float64(b.OtherRevenue))
}

// MonthlyCost sums the cost table.
func (b *Business) MonthlyCost() int64 {
	var total int64
	for _, c := range b.Costs {
		total += c.Amount
	}
	return total
}

// ProfitSummary is the projected monthly P&L of one business at one market
// score. PaybackYears is +Inf when monthly profit is exactly zero; a loss
// yields a negative payback.
type ProfitSummary struct {
	MarketScore       float64
	InitialInvestment int64
	MonthlyRevenue    int64
	MonthlyCost       int64
	MonthlyProfit     int64
	ProfitRatio       float64
	PaybackYears      float64
}

// Summarize projects the business's monthly P&L at the given market score.
func (b *Business) Summarize(marketScore float64) ProfitSummary {
	revenue := b.MonthlyRevenue(marketScore)
	cost := b.MonthlyCost()
	profit := revenue - cost

	ratio := 0.0
	if cost != 0 {
		ratio = float64(profit) / float64(cost) * 100
	}

	payback := math.Inf(1)
	if profit != 0 {
		payback = (float64(b.InitialInvestment) / float64(profit)) / 12
	}

	return ProfitSummary{
		MarketScore:       marketScore,
		InitialInvestment: b.InitialInvestment,
		MonthlyRevenue:    revenue,
		MonthlyCost:       cost,
		MonthlyProfit:     profit,
		ProfitRatio:       ratio,
		PaybackYears:      payback,
	}
}

// profitSummaryJSON is the wire form of ProfitSummary. JSON has no Inf, so
// an infinite payback travels as null.
type profitSummaryJSON struct {
	MarketScore       float64  `json:"market_score"`
	InitialInvestment int64    `json:"initial_investment"`
	MonthlyRevenue    int64    `json:"monthly_revenue"`
	MonthlyCost       int64    `json:"monthly_cost"`
	MonthlyProfit     int64    `json:"monthly_profit"`
	ProfitRatio       float64  `json:"profit_ratio"`
	PaybackYears      *float64 `json:"payback_years"`
}

func (p ProfitSummary) MarshalJSON() ([]byte, error) {
	out := profitSummaryJSON{
		MarketScore:       p.MarketScore,
		InitialInvestment: p.InitialInvestment,
		MonthlyRevenue:    p.MonthlyRevenue,
		MonthlyCost:       p.MonthlyCost,
		MonthlyProfit:     p.MonthlyProfit,
		ProfitRatio:       p.ProfitRatio,
	}
	if !math.IsInf(p.PaybackYears, 0) {
		out.PaybackYears = &p.PaybackYears
	}
	return json.Marshal(out)
}

func (p *ProfitSummary) UnmarshalJSON(data []byte) error {
	var in profitSummaryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.MarketScore = in.MarketScore
	p.InitialInvestment = in.InitialInvestment
	p.MonthlyRevenue = in.MonthlyRevenue
	p.MonthlyCost = in.MonthlyCost
	p.MonthlyProfit = in.MonthlyProfit
	p.ProfitRatio = in.ProfitRatio
	if in.PaybackYears != nil {
		p.PaybackYears = *in.PaybackYears
	} else {
		p.PaybackYears = math.Inf(1)
	}
	return nil
}
