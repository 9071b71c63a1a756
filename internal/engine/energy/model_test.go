package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/common/config"
)

func createTestAssumptions() config.EnergyAssumptions {
	return config.EnergyAssumptions{
		AnnualKwhPerKw: 1400,
		SeasonalFactors: []float64{
			0.095, 0.090, 0.088, 0.080, 0.070, 0.065,
			0.068, 0.075, 0.082, 0.090, 0.095, 0.102,
		},
		BatteryDepthOfDischarge:    0.9,
		BatteryRoundTripEfficiency: 0.85,
		SelfConsumptionBase:        0.35,
		SelfConsumptionTiers: []config.SelfConsumptionTier{
			{MinRatio: 0.5, Rate: 0.80},
			{MinRatio: 0.3, Rate: 0.75},
			{MinRatio: 0.0, Rate: 0.65},
		},
	}
}

func TestAnnualAndDailyProduction(t *testing.T) {
	m := NewModel(createTestAssumptions())

	assert.InDelta(t, 9240, m.AnnualProduction(6.6), 1e-9)
	assert.InDelta(t, 9240.0/365, m.DailyProduction(6.6), 1e-9)
}

func TestMonthlyProduction_SumsToAnnual(t *testing.T) {
	m := NewModel(createTestAssumptions())

	months := m.MonthlyProduction(10)
	require.Len(t, months, 12)

	var sum float64
	for _, v := range months {
		sum += v
	}
	assert.InDelta(t, m.AnnualProduction(10), sum, 1e-6)

	// December carries the highest factor, June the lowest
	assert.Greater(t, months[11], months[5])
}

func TestUsableBatteryKwh(t *testing.T) {
	m := NewModel(createTestAssumptions())

	// 13.5 x 0.9 DoD x 0.85 round trip
	assert.InDelta(t, 10.3275, m.UsableBatteryKwh(13.5), 1e-9)
}

func TestSelfConsumptionRate_Tiers(t *testing.T) {
	m := NewModel(createTestAssumptions())

	// daily production for 6.6kW is ~25.3 kWh
	daily := m.DailyProduction(6.6)

	tests := []struct {
		name      string
		usableKwh float64
		want      float64
	}{
		{"no storage", 0, 0.35},
		{"small storage", 5, 0.65},     // ratio ~0.20
		{"medium storage", 10, 0.75},   // ratio ~0.40
		{"large storage", 13.5, 0.80},  // ratio ~0.53
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.SelfConsumptionRate(tt.usableKwh, daily))
		})
	}
}

func TestAnnualYield_SunshineHoursOverride(t *testing.T) {
	m := NewModel(createTestAssumptions())

	assert.Equal(t, 1400.0, m.AnnualYieldKwhPerKw(0))
	assert.Equal(t, 1250.0, m.AnnualYieldKwhPerKw(1250))
}

func TestSplit_SunshineHoursDriveProduction(t *testing.T) {
	m := NewModel(createTestAssumptions())

	overridden := m.Split(6.6, 1200, 0, 18)
	assert.InDelta(t, 6.6*1200/365, overridden.DailyProductionKwh, 1e-9)

	// months redistribute the overridden annual figure
	var monthSum float64
	for _, v := range overridden.MonthlyProductionKwh {
		monthSum += v
	}
	assert.InDelta(t, 6.6*1200, monthSum, 1e-6)

	fallback := m.Split(6.6, 0, 0, 18)
	assert.InDelta(t, 6.6*1400/365, fallback.DailyProductionKwh, 1e-9)
}

func TestSplit_TierUsesUsableCapacity(t *testing.T) {
	m := NewModel(createTestAssumptions())

	// nameplate 13.5 kWh against ~25.3 kWh/day would land in the 0.5 tier,
	// but usable capacity (13.5 x 0.9 x 0.85 = 10.3275) gives ratio ~0.41
	split := m.Split(6.6, 0, 13.5, 30)

	assert.Equal(t, 0.75, split.SelfConsumptionRate)
}

func TestSplit_ConservationInvariants(t *testing.T) {
	m := NewModel(createTestAssumptions())

	tests := []struct {
		name        string
		systemKw    float64
		batteryKwh  float64
		consumption float64
	}{
		{"typical solar only", 6.6, 0, 18},
		{"battery household", 10, 13.5, 30},
		{"production exceeds demand", 13, 0, 8},
		{"zero consumption", 6.6, 0, 0},
		{"zero system", 0, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := m.Split(tt.systemKw, 0, tt.batteryKwh, tt.consumption)

			assert.InDelta(t, split.DailyConsumptionKwh, split.SelfConsumedKwh+split.GridImportKwh, 1e-9)
			assert.InDelta(t, split.DailyProductionKwh, split.SelfConsumedKwh+split.ExportedKwh, 1e-9)
			assert.GreaterOrEqual(t, split.SelfConsumedKwh, 0.0)
			assert.GreaterOrEqual(t, split.ExportedKwh, 0.0)
			assert.GreaterOrEqual(t, split.GridImportKwh, 0.0)
		})
	}
}

func TestSplit_SelfConsumedCappedByDemand(t *testing.T) {
	m := NewModel(createTestAssumptions())

	// big array, tiny household: self-consumption is capped by demand,
	// the rest exports
	split := m.Split(13, 0, 0, 5)

	assert.Equal(t, 5.0, split.SelfConsumedKwh)
	assert.Equal(t, 0.0, split.GridImportKwh)
	assert.InDelta(t, split.DailyProductionKwh-5, split.ExportedKwh, 1e-9)
}

func TestSplit_ZeroSystemImportsEverything(t *testing.T) {
	m := NewModel(createTestAssumptions())

	split := m.Split(0, 0, 0, 22)

	assert.Equal(t, 0.0, split.DailyProductionKwh)
	assert.Equal(t, 0.0, split.SelfConsumedKwh)
	assert.Equal(t, 0.0, split.ExportedKwh)
	assert.Equal(t, 22.0, split.GridImportKwh)
}
