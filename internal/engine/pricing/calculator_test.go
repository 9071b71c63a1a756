package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/errors"
	"quote-engine/internal/models"
)

func createTestCalculator() *Calculator {
	return NewCalculator(config.PricingConfig{
		MinPanelCount: 1,
		MaxPanelCount: 200,
	})
}

func createPanel(wattage float64, priceCents int64) *models.Product {
	return &models.Product{
		ID:             "panel-440",
		Name:           "440W Mono Panel",
		Type:           models.ProductPanel,
		WattageW:       wattage,
		UnitPriceCents: priceCents,
	}
}

func createInverter(priceCents int64) *models.Product {
	return &models.Product{
		ID:             "inv-5kw",
		Name:           "5kW Hybrid Inverter",
		Type:           models.ProductInverter,
		RatedKw:        5,
		UnitPriceCents: priceCents,
	}
}

func createBattery(kwh float64, priceCents int64) *models.Product {
	return &models.Product{
		ID:             "bat-13",
		Name:           "13.5kWh Battery",
		Type:           models.ProductBattery,
		CapacityKwh:    kwh,
		UnitPriceCents: priceCents,
	}
}

func TestCalculate_SolarOnly(t *testing.T) {
	calc := createTestCalculator()

	res, err := calc.Calculate(Selection{
		Panel:      createPanel(440, 28000),
		PanelCount: 15,
		Inverter:   createInverter(180000),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15*28000), res.PanelsCents)
	assert.Equal(t, int64(180000), res.InverterCents)
	assert.Equal(t, int64(0), res.BatteryCents)
	assert.InDelta(t, 6.6, res.SystemKw, 1e-9)
	assert.Equal(t, 6.6, res.DisplayKw)
}

func TestCalculate_WithBattery(t *testing.T) {
	calc := createTestCalculator()

	res, err := calc.Calculate(Selection{
		Panel:      createPanel(400, 25000),
		PanelCount: 25,
		Inverter:   createInverter(200000),
		Battery:    createBattery(13.5, 1250000),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1250000), res.BatteryCents)
	assert.Equal(t, 13.5, res.BatteryKwh)
	assert.InDelta(t, 10.0, res.SystemKw, 1e-9)
}

func TestCalculate_DisplayRounding(t *testing.T) {
	calc := createTestCalculator()

	// 13 x 415W = 5.395 kW, displays as 5.4 but downstream math keeps
	// full precision.
	res, err := calc.Calculate(Selection{
		Panel:      createPanel(415, 26000),
		PanelCount: 13,
		Inverter:   createInverter(150000),
	})

	require.NoError(t, err)
	assert.InDelta(t, 5.395, res.SystemKw, 1e-9)
	assert.Equal(t, 5.4, res.DisplayKw)
}

func TestCalculate_Validation(t *testing.T) {
	calc := createTestCalculator()

	tests := []struct {
		name     string
		sel      Selection
		wantCode errors.ErrorCode
	}{
		{
			name: "missing inverter",
			sel: Selection{
				Panel:      createPanel(440, 28000),
				PanelCount: 10,
			},
			wantCode: errors.ErrCodeMissingInverter,
		},
		{
			name: "missing panel product",
			sel: Selection{
				PanelCount: 10,
				Inverter:   createInverter(150000),
			},
			wantCode: errors.ErrCodeMissingPanelProduct,
		},
		{
			name: "panel count zero",
			sel: Selection{
				Panel:      createPanel(440, 28000),
				PanelCount: 0,
				Inverter:   createInverter(150000),
			},
			wantCode: errors.ErrCodeInvalidPanelCount,
		},
		{
			name: "panel count above max",
			sel: Selection{
				Panel:      createPanel(440, 28000),
				PanelCount: 201,
				Inverter:   createInverter(150000),
			},
			wantCode: errors.ErrCodeInvalidPanelCount,
		},
		{
			name: "negative panel price",
			sel: Selection{
				Panel:      createPanel(440, -1),
				PanelCount: 10,
				Inverter:   createInverter(150000),
			},
			wantCode: errors.ErrCodeNegativePrice,
		},
		{
			name: "negative battery price",
			sel: Selection{
				Panel:      createPanel(440, 28000),
				PanelCount: 10,
				Inverter:   createInverter(150000),
				Battery:    createBattery(10, -500),
			},
			wantCode: errors.ErrCodeNegativePrice,
		},
		{
			name: "zero wattage panel",
			sel: Selection{
				Panel:      createPanel(0, 28000),
				PanelCount: 10,
				Inverter:   createInverter(150000),
			},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(tt.sel)
			require.Error(t, err)
			assert.Nil(t, res)

			stdErr, ok := errors.AsStandard(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestCalculate_BoundaryCounts(t *testing.T) {
	calc := createTestCalculator()

	for _, count := range []int{1, 200} {
		res, err := calc.Calculate(Selection{
			Panel:      createPanel(440, 28000),
			PanelCount: count,
			Inverter:   createInverter(150000),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(count)*28000, res.PanelsCents)
	}
}
