package installation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

func createTestConfig() config.InstallationPricing {
	return config.InstallationPricing{
		BaseCalloutFeeCents:       25000,
		PanelInstallPerUnitCents:  8500,
		AvgRailingMetersPerKw:     4,
		RailingPerMeterCents:      2500,
		InverterInstallCents:      35000,
		BatteryInstallBaseCents:   40000,
		BatteryInstallPerKwhCents: 3000,
		AvgCablingMetersPerKw:     6,
		CablingPerMeterCents:      1200,
		CommissioningFeeCents:     18000,
		TileRoofMultiplier:        1.15,
		MetalRoofMultiplier:       1.05,
		FlatRoofMultiplier:        1.10,
		MultiStoryMultiplier:      1.12,
		DifficultAccessMultiplier: 1.10,
		ScaffoldingCents:          80000,
		AsbestosRemovalCents:      150000,
	}
}

func TestEstimate_SimpleSolarOnly(t *testing.T) {
	est := NewEstimator(createTestConfig())

	b := est.Estimate(Job{
		SystemKw:   6.6,
		PanelCount: 15,
		Site: models.SiteComplexity{
			RoofType: models.RoofMetal,
			Storeys:  1,
		},
	})

	assert.Equal(t, int64(25000), b.BaseCalloutCents)
	assert.Equal(t, int64(15*8500), b.PanelInstallCents)
	// 6.6 kW x 4 m/kW x 2500 c/m = 66000
	assert.Equal(t, int64(66000), b.RailingCents)
	assert.Equal(t, int64(35000), b.InverterInstallCents)
	assert.Equal(t, int64(0), b.BatteryInstallCents)
	// 6.6 kW x 6 m/kW x 1200 c/m = 47520
	assert.Equal(t, int64(47520), b.CablingCents)
	assert.Equal(t, int64(18000), b.CommissioningCents)

	wantSolar := int64(25000 + 127500 + 66000 + 35000 + 47520 + 18000)
	assert.Equal(t, wantSolar, b.SolarSubtotalCents)
	assert.Equal(t, wantSolar, b.BaseSubtotalCents)

	// metal roof: 1.05 surcharge on base subtotal
	assert.Equal(t, 1.05, b.RoofTypeMultiplier)
	assert.Equal(t, int64(15951), b.RoofTypeAdjustmentCents) // round(319020 * 0.05)
	assert.Equal(t, 1.0, b.StoryMultiplier)
	assert.Equal(t, int64(0), b.StoryAdjustmentCents)
	assert.Equal(t, 1.0, b.AccessMultiplier)
	assert.Equal(t, int64(0), b.AccessAdjustmentCents)

	assert.Equal(t, wantSolar+15951, b.TotalCents)
}

func TestEstimate_BatteryAndAllSurcharges(t *testing.T) {
	est := NewEstimator(createTestConfig())

	b := est.Estimate(Job{
		SystemKw:   10,
		PanelCount: 25,
		HasBattery: true,
		BatteryKwh: 13.5,
		Site: models.SiteComplexity{
			RoofType:            models.RoofTile,
			Storeys:             2,
			DifficultAccess:     true,
			RequiresScaffolding: true,
			HasAsbestos:         true,
		},
		AddonInstallCents: 20000,
	})

	// battery: 40000 base + 13.5 x 3000 = 80500
	assert.Equal(t, int64(80500), b.BatteryInstallCents)
	assert.Equal(t, int64(20000), b.AddonInstallCents)
	assert.Equal(t, b.SolarSubtotalCents+20000, b.BaseSubtotalCents)

	// adjustments compound on the running subtotal
	afterRoof := b.BaseSubtotalCents + b.RoofTypeAdjustmentCents
	afterStory := afterRoof + b.StoryAdjustmentCents
	wantTotal := afterStory + b.AccessAdjustmentCents + 80000 + 150000
	assert.Equal(t, wantTotal, b.TotalCents)

	assert.Equal(t, 1.15, b.RoofTypeMultiplier)
	assert.Equal(t, 1.12, b.StoryMultiplier)
	assert.Equal(t, 1.10, b.AccessMultiplier)
	assert.Equal(t, int64(80000), b.ScaffoldingCents)
	assert.Equal(t, int64(150000), b.AsbestosCents)
}

func TestEstimate_ItemsReconcileWithTotal(t *testing.T) {
	est := NewEstimator(createTestConfig())

	b := est.Estimate(Job{
		SystemKw:   8,
		PanelCount: 20,
		HasBattery: true,
		BatteryKwh: 10,
		Site: models.SiteComplexity{
			RoofType:            models.RoofFlat,
			Storeys:             3,
			DifficultAccess:     true,
			RequiresScaffolding: true,
		},
		AddonInstallCents: 15000,
	})

	var sum int64
	for _, item := range b.Items {
		sum += item.TotalCents
	}
	assert.Equal(t, b.TotalCents, sum)
}

func TestEstimate_SingleStoreyNoStorySurcharge(t *testing.T) {
	est := NewEstimator(createTestConfig())

	b := est.Estimate(Job{
		SystemKw:   5,
		PanelCount: 12,
		Site: models.SiteComplexity{
			RoofType: models.RoofMetal,
			Storeys:  1,
		},
	})

	assert.Equal(t, 1.0, b.StoryMultiplier)
	assert.Equal(t, int64(0), b.StoryAdjustmentCents)

	for _, item := range b.Items {
		assert.NotContains(t, item.Description, "storey")
	}
}

func TestEstimate_UnknownRoofTypeNoSurcharge(t *testing.T) {
	est := NewEstimator(createTestConfig())

	b := est.Estimate(Job{
		SystemKw:   5,
		PanelCount: 12,
		Site:       models.SiteComplexity{RoofType: "", Storeys: 1},
	})

	require.Equal(t, 1.0, b.RoofTypeMultiplier)
	assert.Equal(t, int64(0), b.RoofTypeAdjustmentCents)
}
