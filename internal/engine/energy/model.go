// Package energy models solar production, household consumption, and the
// split of generated energy between self-consumption, export, and grid
// import.
package energy

import (
	"math"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

// Model derives production figures and the energy split.
type Model struct {
	cfg config.EnergyAssumptions
}

func NewModel(cfg config.EnergyAssumptions) *Model {
	return &Model{cfg: cfg}
}

// AnnualYieldKwhPerKw returns the per-kW annual yield. Sunshine hours from
// a roof analysis take precedence over the configured regional default.
func (m *Model) AnnualYieldKwhPerKw(annualSunshineHours float64) float64 {
	if annualSunshineHours > 0 {
		return annualSunshineHours
	}
	return m.cfg.AnnualKwhPerKw
}

// AnnualProduction returns estimated annual generation in kWh.
func (m *Model) AnnualProduction(systemKw float64) float64 {
	return systemKw * m.cfg.AnnualKwhPerKw
}

// DailyProduction returns average daily generation in kWh.
func (m *Model) DailyProduction(systemKw float64) float64 {
	return m.AnnualProduction(systemKw) / 365.0
}

// MonthlyProduction distributes annual production across twelve months by
// the seasonal factors, normalized so the months always sum to the annual
// figure.
func (m *Model) MonthlyProduction(systemKw float64) []float64 {
	return m.distributeMonthly(m.AnnualProduction(systemKw))
}

func (m *Model) distributeMonthly(annual float64) []float64 {
	months := make([]float64, len(m.cfg.SeasonalFactors))

	var factorSum float64
	for _, f := range m.cfg.SeasonalFactors {
		factorSum += f
	}
	if factorSum == 0 {
		return months
	}

	for i, f := range m.cfg.SeasonalFactors {
		months[i] = annual * f / factorSum
	}
	return months
}

// UsableBatteryKwh returns the effective daily storage after depth of
// discharge and round-trip losses.
func (m *Model) UsableBatteryKwh(batteryKwh float64) float64 {
	return batteryKwh * m.cfg.BatteryDepthOfDischarge * m.cfg.BatteryRoundTripEfficiency
}

// SelfConsumptionRate picks the rate tier for the usable-storage-to-production
// ratio. Tiers are ordered by descending MinRatio; the loader rejects any
// other ordering. Without storage the base rate applies.
func (m *Model) SelfConsumptionRate(usableBatteryKwh, dailyProductionKwh float64) float64 {
	if usableBatteryKwh <= 0 || dailyProductionKwh <= 0 {
		return m.cfg.SelfConsumptionBase
	}
	ratio := usableBatteryKwh / dailyProductionKwh
	for _, tier := range m.cfg.SelfConsumptionTiers {
		if ratio >= tier.MinRatio && ratio > 0 {
			return tier.Rate
		}
	}
	return m.cfg.SelfConsumptionBase
}

// Split balances daily production against daily consumption. Battery capacity
// is nameplate kWh; the tier lookup uses the usable figure. The result
// always satisfies selfConsumed + gridImport == consumption and
// selfConsumed + exported == production.
func (m *Model) Split(systemKw, annualSunshineHours, batteryKwh, dailyConsumptionKwh float64) models.EnergySplit {
	annual := systemKw * m.AnnualYieldKwhPerKw(annualSunshineHours)
	production := annual / 365.0
	rate := m.SelfConsumptionRate(m.UsableBatteryKwh(batteryKwh), production)

	selfConsumed := math.Min(production*rate, dailyConsumptionKwh)
	if selfConsumed < 0 {
		selfConsumed = 0
	}

	return models.EnergySplit{
		DailyProductionKwh:   production,
		DailyConsumptionKwh:  dailyConsumptionKwh,
		SelfConsumedKwh:      selfConsumed,
		ExportedKwh:          production - selfConsumed,
		GridImportKwh:        dailyConsumptionKwh - selfConsumed,
		SelfConsumptionRate:  rate,
		MonthlyProductionKwh: m.distributeMonthly(annual),
	}
}
