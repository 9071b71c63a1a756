// Package savings projects bill savings and investment returns from the
// energy split and the final investment amount.
package savings

import (
	"math"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

// Inputs for one projection. Energy figures are annual kWh.
type Inputs struct {
	AnnualSelfConsumedKwh float64
	AnnualExportedKwh     float64
	FinalInvestmentCents  int64
}

// Calculator projects savings under the configured tariffs and financial
// assumptions.
type Calculator struct {
	tariffs config.TariffConfig
	cfg     config.SavingsConfig
}

func NewCalculator(tariffs config.TariffConfig, cfg config.SavingsConfig) *Calculator {
	return &Calculator{tariffs: tariffs, cfg: cfg}
}

// Project computes first-year savings and the multi-year outlook. Tariffs
// escalate and panel output degrades year on year. Payback is nil when the
// system saves nothing, never infinity.
func (c *Calculator) Project(in Inputs) models.SavingsProjection {
	annualDollars := in.AnnualSelfConsumedKwh*c.tariffs.ImportRatePerKwh +
		in.AnnualExportedKwh*c.tariffs.FeedInRatePerKwh
	annualCents := int64(math.Round(annualDollars * 100))

	p := models.SavingsProjection{
		AnnualCents: annualCents,
	}

	var cumulative, npv float64
	for year := 1; year <= 25; year++ {
		escalation := math.Pow(1+c.cfg.EscalationRate, float64(year-1))
		degradation := math.Pow(1-c.cfg.DegradationRate, float64(year-1))
		yearSavings := annualDollars * escalation * degradation

		cumulative += yearSavings
		npv += yearSavings / math.Pow(1+c.cfg.DiscountRate, float64(year))

		if year == 10 {
			p.Year10Cents = int64(math.Round(cumulative * 100))
		}
	}
	p.Year25Cents = int64(math.Round(cumulative * 100))

	investment := float64(in.FinalInvestmentCents) / 100
	if annualCents > 0 {
		payback := investment / annualDollars
		p.PaybackYears = &payback
	}
	if investment > 0 {
		p.ROIPercent = (cumulative - investment) / investment * 100
	}
	p.NPVCents = int64(math.Round((npv - investment) * 100))

	return p
}
