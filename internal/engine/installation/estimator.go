// Package installation estimates labor and logistics costs for a system
// configuration. Components accumulate in a fixed order so the itemized
// breakdown always reconciles with the total.
package installation

import (
	"fmt"
	"math"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

// Job describes one installation to estimate.
type Job struct {
	SystemKw         float64
	PanelCount       int
	HasBattery       bool
	BatteryKwh       float64
	Site             models.SiteComplexity
	AddonInstallCents int64
}

// Estimator applies the configured rate card to a job.
type Estimator struct {
	cfg config.InstallationPricing
}

func NewEstimator(cfg config.InstallationPricing) *Estimator {
	return &Estimator{cfg: cfg}
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

// Estimate computes the full installation breakdown. Percentage adjustments
// apply to the running subtotal in order: roof type, then storeys, then
// access. Scaffolding and asbestos are flat fees added after all multipliers.
func (e *Estimator) Estimate(job Job) *models.InstallationBreakdown {
	b := &models.InstallationBreakdown{
		BaseCalloutCents:     e.cfg.BaseCalloutFeeCents,
		PanelInstallCents:    int64(job.PanelCount) * e.cfg.PanelInstallPerUnitCents,
		RailingCents:         roundCents(job.SystemKw * e.cfg.AvgRailingMetersPerKw * float64(e.cfg.RailingPerMeterCents)),
		InverterInstallCents: e.cfg.InverterInstallCents,
		CablingCents:         roundCents(job.SystemKw * e.cfg.AvgCablingMetersPerKw * float64(e.cfg.CablingPerMeterCents)),
		CommissioningCents:   e.cfg.CommissioningFeeCents,
		AddonInstallCents:    job.AddonInstallCents,
	}

	if job.HasBattery {
		b.BatteryInstallCents = e.cfg.BatteryInstallBaseCents +
			roundCents(job.BatteryKwh*float64(e.cfg.BatteryInstallPerKwhCents))
	}

	b.SolarSubtotalCents = b.BaseCalloutCents + b.PanelInstallCents + b.RailingCents +
		b.InverterInstallCents + b.BatteryInstallCents + b.CablingCents + b.CommissioningCents
	b.BaseSubtotalCents = b.SolarSubtotalCents + b.AddonInstallCents

	b.RoofTypeMultiplier = e.roofMultiplier(job.Site.RoofType)
	b.RoofTypeAdjustmentCents = roundCents(float64(b.BaseSubtotalCents) * (b.RoofTypeMultiplier - 1))

	b.StoryMultiplier = 1.0
	if job.Site.Storeys >= 2 {
		b.StoryMultiplier = e.cfg.MultiStoryMultiplier
	}
	afterRoof := b.BaseSubtotalCents + b.RoofTypeAdjustmentCents
	b.StoryAdjustmentCents = roundCents(float64(afterRoof) * (b.StoryMultiplier - 1))

	b.AccessMultiplier = 1.0
	if job.Site.DifficultAccess {
		b.AccessMultiplier = e.cfg.DifficultAccessMultiplier
	}
	afterStory := afterRoof + b.StoryAdjustmentCents
	b.AccessAdjustmentCents = roundCents(float64(afterStory) * (b.AccessMultiplier - 1))

	if job.Site.RequiresScaffolding {
		b.ScaffoldingCents = e.cfg.ScaffoldingCents
	}
	if job.Site.HasAsbestos {
		b.AsbestosCents = e.cfg.AsbestosRemovalCents
	}

	b.TotalCents = afterStory + b.AccessAdjustmentCents + b.ScaffoldingCents + b.AsbestosCents

	b.Items = e.itemize(job, b)
	return b
}

func (e *Estimator) roofMultiplier(roofType models.RoofType) float64 {
	switch roofType {
	case models.RoofTile:
		return e.cfg.TileRoofMultiplier
	case models.RoofFlat:
		return e.cfg.FlatRoofMultiplier
	case models.RoofMetal:
		return e.cfg.MetalRoofMultiplier
	default:
		return 1.0
	}
}

func (e *Estimator) itemize(job Job, b *models.InstallationBreakdown) []models.InstallationLine {
	items := []models.InstallationLine{
		{Category: "labor", Description: "Site callout and setup", TotalCents: b.BaseCalloutCents},
		{
			Category:    "labor",
			Description: "Panel mounting",
			Quantity:    float64(job.PanelCount),
			UnitCents:   e.cfg.PanelInstallPerUnitCents,
			TotalCents:  b.PanelInstallCents,
		},
		{Category: "materials", Description: "Mounting rails", TotalCents: b.RailingCents},
		{Category: "labor", Description: "Inverter installation", TotalCents: b.InverterInstallCents},
	}

	if job.HasBattery {
		items = append(items, models.InstallationLine{
			Category:    "labor",
			Description: fmt.Sprintf("Battery installation (%.1f kWh)", job.BatteryKwh),
			TotalCents:  b.BatteryInstallCents,
		})
	}

	items = append(items,
		models.InstallationLine{Category: "materials", Description: "Cabling and conduit", TotalCents: b.CablingCents},
		models.InstallationLine{Category: "labor", Description: "System commissioning", TotalCents: b.CommissioningCents},
	)

	if b.AddonInstallCents > 0 {
		items = append(items, models.InstallationLine{
			Category: "labor", Description: "Add-on installation", TotalCents: b.AddonInstallCents,
		})
	}
	if b.RoofTypeAdjustmentCents != 0 {
		items = append(items, models.InstallationLine{
			Category:    "adjustment",
			Description: fmt.Sprintf("Roof type (%s) surcharge", job.Site.RoofType),
			TotalCents:  b.RoofTypeAdjustmentCents,
		})
	}
	if b.StoryAdjustmentCents != 0 {
		items = append(items, models.InstallationLine{
			Category:    "adjustment",
			Description: fmt.Sprintf("Multi-storey surcharge (%d storeys)", job.Site.Storeys),
			TotalCents:  b.StoryAdjustmentCents,
		})
	}
	if b.AccessAdjustmentCents != 0 {
		items = append(items, models.InstallationLine{
			Category:    "adjustment",
			Description: "Difficult access surcharge",
			TotalCents:  b.AccessAdjustmentCents,
		})
	}
	if b.ScaffoldingCents > 0 {
		items = append(items, models.InstallationLine{
			Category: "safety", Description: "Scaffolding hire", TotalCents: b.ScaffoldingCents,
		})
	}
	if b.AsbestosCents > 0 {
		items = append(items, models.InstallationLine{
			Category: "safety", Description: "Asbestos removal", TotalCents: b.AsbestosCents,
		})
	}

	return items
}
