package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

func createTestConsumption() config.ConsumptionAssumptions {
	return config.ConsumptionAssumptions{
		BaselineKwhPerDay:     []float64{8, 11, 14, 17, 20, 22, 24},
		ACKwhPerDay:           map[string]float64{"none": 0, "minimal": 4, "moderate": 10, "heavy": 18},
		HotWaterKwhPerDay:     []float64{3, 4.5, 6, 7, 8, 9, 10},
		PoolHeatedKwhPerDay:   25,
		PoolUnheatedKwhPerDay: 7,
		HomeOfficeKwhPerDay:   1.5,
		EVKwhPerDayPerVehicle: 9,
		DaytimeShare:          0.30,
		EveningShare:          0.45,
		NightShare:            0.25,
	}
}

func TestEstimate_BasicHousehold(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	out := est.Estimate(models.EnergyProfile{
		HouseholdSize: 4,
		ACUsage:       "moderate",
	})

	assert.Equal(t, 17.0, out.BaselineKwh)
	assert.Equal(t, 10.0, out.ACKwh)
	assert.Equal(t, 0.0, out.HotWaterKwh)
	assert.Equal(t, 27.0, out.DailyKwh)
	assert.Equal(t, 27.0*365, out.AnnualKwh)
}

func TestEstimate_AllComponents(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	out := est.Estimate(models.EnergyProfile{
		HouseholdSize:       3,
		ACUsage:             "heavy",
		HasElectricHotWater: true,
		PoolType:            models.PoolHeated,
		HomeOfficeCount:     2,
	})

	assert.Equal(t, 14.0, out.BaselineKwh)
	assert.Equal(t, 18.0, out.ACKwh)
	assert.Equal(t, 6.0, out.HotWaterKwh)
	assert.Equal(t, 25.0, out.PoolKwh)
	assert.Equal(t, 3.0, out.OfficeKwh)
	assert.Equal(t, 66.0, out.DailyKwh)
}

func TestEstimate_LargeHouseholdClampsToLastEntry(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	size7 := est.Estimate(models.EnergyProfile{HouseholdSize: 7})
	size12 := est.Estimate(models.EnergyProfile{HouseholdSize: 12})

	assert.Equal(t, 24.0, size7.BaselineKwh)
	assert.Equal(t, size7.BaselineKwh, size12.BaselineKwh)
}

func TestEstimate_EVFromChargerSpecs(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	out := est.Estimate(models.EnergyProfile{
		HouseholdSize:   2,
		EVCount:         2,
		EVChargerKw:     7,
		EVChargingHours: 2,
		EVChargingTime:  "evening",
	})

	// 2 vehicles x 7kW x 2h
	assert.Equal(t, 28.0, out.EVKwh)
}

func TestEstimate_EVFallbackPerVehicle(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	out := est.Estimate(models.EnergyProfile{
		HouseholdSize: 2,
		EVCount:       1,
	})

	assert.Equal(t, 9.0, out.EVKwh)
}

func TestEstimate_TimeOfUseSplit(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	tests := []struct {
		name         string
		chargingTime string
		wantDay      float64
		wantEvening  float64
		wantNight    float64
	}{
		// non-EV load is 11 kWh (size 2 baseline), EV adds 9
		{"daytime charging", "daytime", 11*0.30 + 9, 11 * 0.45, 11 * 0.25},
		{"evening charging", "evening", 11 * 0.30, 11*0.45 + 9, 11 * 0.25},
		{"night charging", "night", 11 * 0.30, 11 * 0.45, 11*0.25 + 9},
		{"unspecified defaults to night", "", 11 * 0.30, 11 * 0.45, 11*0.25 + 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := est.Estimate(models.EnergyProfile{
				HouseholdSize:  2,
				EVCount:        1,
				EVChargingTime: tt.chargingTime,
			})

			assert.InDelta(t, tt.wantDay, out.TimeOfUse.DaytimeKwh, 1e-9)
			assert.InDelta(t, tt.wantEvening, out.TimeOfUse.EveningKwh, 1e-9)
			assert.InDelta(t, tt.wantNight, out.TimeOfUse.NightKwh, 1e-9)

			sum := out.TimeOfUse.DaytimeKwh + out.TimeOfUse.EveningKwh + out.TimeOfUse.NightKwh
			assert.InDelta(t, out.DailyKwh, sum, 1e-9)
		})
	}
}

func TestEstimate_UnknownACUsageContributesNothing(t *testing.T) {
	est := NewConsumptionEstimator(createTestConsumption())

	out := est.Estimate(models.EnergyProfile{HouseholdSize: 1, ACUsage: "extreme"})

	assert.Equal(t, 0.0, out.ACKwh)
	assert.Equal(t, 8.0, out.DailyKwh)
}
