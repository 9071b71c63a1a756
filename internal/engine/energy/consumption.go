package energy

import (
	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

// ConsumptionEstimator derives daily household demand from the intake
// profile using the configured assumption tables.
type ConsumptionEstimator struct {
	cfg config.ConsumptionAssumptions
}

func NewConsumptionEstimator(cfg config.ConsumptionAssumptions) *ConsumptionEstimator {
	return &ConsumptionEstimator{cfg: cfg}
}

// perSize reads a per-household-size table. Sizes beyond the table use the
// last entry.
func perSize(table []float64, size int) float64 {
	if len(table) == 0 {
		return 0
	}
	if size < 1 {
		size = 1
	}
	idx := size - 1
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

// Estimate sums the demand components and splits the total across tariff
// windows. EV charging is added to the window matching the stated charging
// time rather than spread proportionally.
func (e *ConsumptionEstimator) Estimate(profile models.EnergyProfile) models.ConsumptionEstimate {
	est := models.ConsumptionEstimate{
		BaselineKwh: perSize(e.cfg.BaselineKwhPerDay, profile.HouseholdSize),
		ACKwh:       e.cfg.ACKwhPerDay[profile.ACUsage],
		OfficeKwh:   float64(profile.HomeOfficeCount) * e.cfg.HomeOfficeKwhPerDay,
	}

	if profile.HasElectricHotWater {
		est.HotWaterKwh = perSize(e.cfg.HotWaterKwhPerDay, profile.HouseholdSize)
	}

	switch profile.PoolType {
	case models.PoolHeated:
		est.PoolKwh = e.cfg.PoolHeatedKwhPerDay
	case models.PoolUnheated:
		est.PoolKwh = e.cfg.PoolUnheatedKwhPerDay
	}

	if profile.EVCount > 0 {
		perVehicle := e.cfg.EVKwhPerDayPerVehicle
		if profile.EVChargerKw > 0 && profile.EVChargingHours > 0 {
			perVehicle = profile.EVChargerKw * profile.EVChargingHours
		}
		est.EVKwh = float64(profile.EVCount) * perVehicle
	}

	nonEV := est.BaselineKwh + est.ACKwh + est.HotWaterKwh + est.PoolKwh + est.OfficeKwh
	est.DailyKwh = nonEV + est.EVKwh
	est.AnnualKwh = est.DailyKwh * 365

	est.TimeOfUse = models.TimeOfUseSplit{
		DaytimeKwh: nonEV * e.cfg.DaytimeShare,
		EveningKwh: nonEV * e.cfg.EveningShare,
		NightKwh:   nonEV * e.cfg.NightShare,
	}
	switch profile.EVChargingTime {
	case "daytime":
		est.TimeOfUse.DaytimeKwh += est.EVKwh
	case "evening":
		est.TimeOfUse.EveningKwh += est.EVKwh
	default:
		est.TimeOfUse.NightKwh += est.EVKwh
	}

	return est
}
