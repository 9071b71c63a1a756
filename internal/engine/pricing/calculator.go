// Package pricing computes equipment hardware costs from resolved catalog
// products. All amounts are integer cents.
package pricing

import (
	"math"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/errors"
	"quote-engine/internal/models"
)

// Selection is a fully resolved equipment pick. Battery may be nil.
type Selection struct {
	Panel      *models.Product
	PanelCount int
	Inverter   *models.Product
	Battery    *models.Product
}

// Result is the priced hardware breakdown.
type Result struct {
	PanelsCents   int64
	InverterCents int64
	BatteryCents  int64
	BatteryKwh    float64
	SystemKw      float64 // full precision, feeds downstream calculators
	DisplayKw     float64 // rounded to one decimal for presentation
}

// Calculator prices equipment selections against the configured bounds.
type Calculator struct {
	cfg config.PricingConfig
}

func NewCalculator(cfg config.PricingConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate validates the selection and sums hardware costs. Out-of-range
// panel counts are rejected, never clamped.
func (c *Calculator) Calculate(sel Selection) (*Result, error) {
	if sel.Inverter == nil {
		return nil, errors.NewMissingInverterError()
	}
	if sel.Panel == nil {
		return nil, errors.NewValidationError(
			errors.ErrCodeMissingPanelProduct,
			"Equipment selection has no panel product",
			"",
		)
	}
	if sel.PanelCount < c.cfg.MinPanelCount || sel.PanelCount > c.cfg.MaxPanelCount {
		return nil, errors.NewInvalidPanelCountError(sel.PanelCount, c.cfg.MinPanelCount, c.cfg.MaxPanelCount)
	}
	if sel.Panel.WattageW <= 0 {
		return nil, errors.NewValidationError(
			errors.ErrCodeInvalidInput,
			"Panel product has no positive wattage",
			"productId: "+sel.Panel.ID,
		)
	}
	if sel.Panel.UnitPriceCents < 0 {
		return nil, errors.NewNegativePriceError("panel.unitPriceCents", sel.Panel.UnitPriceCents)
	}
	if sel.Inverter.UnitPriceCents < 0 {
		return nil, errors.NewNegativePriceError("inverter.unitPriceCents", sel.Inverter.UnitPriceCents)
	}

	res := &Result{
		PanelsCents:   int64(sel.PanelCount) * sel.Panel.UnitPriceCents,
		InverterCents: sel.Inverter.UnitPriceCents,
	}

	if sel.Battery != nil {
		if sel.Battery.UnitPriceCents < 0 {
			return nil, errors.NewNegativePriceError("battery.unitPriceCents", sel.Battery.UnitPriceCents)
		}
		res.BatteryCents = sel.Battery.UnitPriceCents
		res.BatteryKwh = sel.Battery.CapacityKwh
	}

	res.SystemKw = float64(sel.PanelCount) * sel.Panel.WattageW / 1000.0
	res.DisplayKw = math.Round(res.SystemKw*10) / 10

	return res, nil
}
