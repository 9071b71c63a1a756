// Package assembler orchestrates the calculators into one complete quote
// calculation. Every input change recomputes the full result; nothing is
// patched incrementally.
package assembler

import (
	"context"
	"fmt"
	"math"
	"time"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/engine/energy"
	"quote-engine/internal/engine/installation"
	"quote-engine/internal/engine/pricing"
	"quote-engine/internal/engine/rebates"
	"quote-engine/internal/engine/savings"
	"quote-engine/internal/models"
)

// ProductSource resolves catalog references to products.
type ProductSource interface {
	Panel(ctx context.Context, id string) (*models.Product, error)
	Inverter(ctx context.Context, id string) (*models.Product, error)
	Battery(ctx context.Context, id string) (*models.Product, error)
	Addons(ctx context.Context, ids []string) ([]models.Addon, error)
}

// Assembler wires the calculators together over a product source.
type Assembler struct {
	catalog      ProductSource
	pricing      *pricing.Calculator
	installation *installation.Estimator
	rebates      *rebates.Calculator
	energy       *energy.Model
	consumption  *energy.ConsumptionEstimator
	savings      *savings.Calculator
	deposit      config.DepositConfig
	logger       logger.Logger
}

func New(catalog ProductSource, engineCfg config.EngineConfig, log logger.Logger) *Assembler {
	return &Assembler{
		catalog:      catalog,
		pricing:      pricing.NewCalculator(engineCfg.Pricing),
		installation: installation.NewEstimator(engineCfg.Installation),
		rebates:      rebates.NewCalculator(engineCfg.Rebates),
		energy:       energy.NewModel(engineCfg.Energy),
		consumption:  energy.NewConsumptionEstimator(engineCfg.Consumption),
		savings:      savings.NewCalculator(engineCfg.Tariffs, engineCfg.Savings),
		deposit:      engineCfg.Deposit,
		logger:       log,
	}
}

// Calculate produces a complete quote for the input snapshot. The same input
// always yields an identical result.
func (a *Assembler) Calculate(ctx context.Context, input *models.QuoteInput) (*models.CalculationResult, error) {
	start := time.Now()

	result, err := a.calculate(ctx, input)

	if err != nil {
		if stdErr, ok := errors.AsStandard(err); ok {
			metrics.QuoteCalculationsFailed.WithLabelValues("calculate", string(stdErr.Code)).Inc()
		} else {
			metrics.QuoteCalculationsFailed.WithLabelValues("calculate", "UNKNOWN").Inc()
		}
		a.logger.WithError(err).Error("Quote calculation failed", map[string]interface{}{
			"panel_count": input.Equipment.PanelCount,
		})
		return nil, err
	}

	metrics.QuoteCalculationsCompleted.WithLabelValues("calculate").Inc()
	metrics.QuoteCalculationDuration.WithLabelValues("calculate").Observe(time.Since(start).Seconds())
	a.logger.Debug("Quote calculated", map[string]interface{}{
		"system_kw":        result.SystemSpecs.SolarKw,
		"final_investment": result.FinalInvestmentCents,
		"duration_ms":      time.Since(start).Milliseconds(),
	})

	return result, nil
}

func (a *Assembler) calculate(ctx context.Context, input *models.QuoteInput) (*models.CalculationResult, error) {
	if input == nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidInput, "Quote input is required", "")
	}
	if input.Equipment.InverterProductID == "" {
		return nil, errors.NewMissingInverterError()
	}
	if input.Equipment.PanelProductID == "" {
		return nil, errors.NewValidationError(
			errors.ErrCodeMissingPanelProduct, "Equipment selection has no panel product", "")
	}

	sel, err := a.resolveSelection(ctx, input.Equipment)
	if err != nil {
		return nil, err
	}

	priced, err := a.pricing.Calculate(*sel)
	if err != nil {
		return nil, err
	}

	if input.Roof.MaxPanelCount > 0 && input.Equipment.PanelCount > input.Roof.MaxPanelCount {
		return nil, errors.NewRoofCapacityExceededError(input.Equipment.PanelCount, input.Roof.MaxPanelCount)
	}

	addons, err := a.catalog.Addons(ctx, input.Addons.AddonIDs)
	if err != nil {
		return nil, err
	}
	var addonRetail, addonInstall int64
	for _, addon := range addons {
		if addon.RetailPriceCents < 0 {
			return nil, errors.NewNegativePriceError("addon.retailPriceCents", addon.RetailPriceCents)
		}
		if addon.InstallCostCents < 0 {
			return nil, errors.NewNegativePriceError("addon.installCostCents", addon.InstallCostCents)
		}
		addonRetail += addon.RetailPriceCents
		addonInstall += addon.InstallCostCents
	}

	install := a.installation.Estimate(installation.Job{
		SystemKw:          priced.SystemKw,
		PanelCount:        input.Equipment.PanelCount,
		HasBattery:        sel.Battery != nil,
		BatteryKwh:        priced.BatteryKwh,
		Site:              input.Site,
		AddonInstallCents: addonInstall,
	})

	rebateBreakdown := a.rebates.Calculate(priced.SystemKw, priced.BatteryKwh)

	consumption := a.consumption.Estimate(input.Profile)
	split := a.energy.Split(priced.SystemKw, input.Roof.AnnualSunshineHours, priced.BatteryKwh, consumption.DailyKwh)

	subtotal := priced.PanelsCents + priced.BatteryCents + priced.InverterCents + install.TotalCents
	finalInvestment := subtotal - rebateBreakdown.TotalCents
	if finalInvestment < 0 {
		finalInvestment = 0
	}

	projection := a.savings.Project(savings.Inputs{
		AnnualSelfConsumedKwh: split.SelfConsumedKwh * 365,
		AnnualExportedKwh:     split.ExportedKwh * 365,
		FinalInvestmentCents:  finalInvestment,
	})

	coverage := 0.0
	if consumption.DailyKwh > 0 {
		coverage = split.DailyProductionKwh / consumption.DailyKwh * 100
	}

	result := &models.CalculationResult{
		SystemSpecs: models.SystemSpecs{
			SolarKw:            priced.DisplayKw,
			PanelCount:         input.Equipment.PanelCount,
			BatteryKwh:         priced.BatteryKwh,
			DailyGenerationKwh: split.DailyProductionKwh,
			CoveragePercent:    coverage,
		},
		Costs: models.CostBreakdown{
			PanelsCents:       priced.PanelsCents,
			BatteryCents:      priced.BatteryCents,
			InverterCents:     priced.InverterCents,
			InstallationCents: install.TotalCents,
			SubtotalCents:     subtotal,
			Installation:      *install,
		},
		Rebates:              rebateBreakdown,
		FinalInvestmentCents: finalInvestment,
		AddonRetailCents:     addonRetail,
		DepositCents:         int64(math.Round(float64(finalInvestment) * a.deposit.Percent)),
		Consumption:          consumption,
		Energy:               split,
		Savings:              projection,
	}

	if err := a.verify(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Assembler) resolveSelection(ctx context.Context, eq models.EquipmentSelection) (*pricing.Selection, error) {
	panel, err := a.catalog.Panel(ctx, eq.PanelProductID)
	if err != nil {
		return nil, err
	}
	inverter, err := a.catalog.Inverter(ctx, eq.InverterProductID)
	if err != nil {
		return nil, err
	}

	sel := &pricing.Selection{
		Panel:      panel,
		PanelCount: eq.PanelCount,
		Inverter:   inverter,
	}
	if eq.BatteryProductID != "" {
		battery, err := a.catalog.Battery(ctx, eq.BatteryProductID)
		if err != nil {
			return nil, err
		}
		sel.Battery = battery
	}
	return sel, nil
}

// verify checks the result's internal consistency before it leaves the
// engine. A failure here is a bug, not bad input.
func (a *Assembler) verify(r *models.CalculationResult) error {
	c := r.Costs
	if c.PanelsCents+c.BatteryCents+c.InverterCents+c.InstallationCents != c.SubtotalCents {
		return errors.NewInvariantError(errors.ErrCodeSubtotalMismatch,
			"Cost subtotal does not equal the sum of its components",
			fmt.Sprintf("subtotal: %d", c.SubtotalCents))
	}

	wantInvestment := c.SubtotalCents - r.Rebates.TotalCents
	if wantInvestment < 0 {
		wantInvestment = 0
	}
	if r.FinalInvestmentCents != wantInvestment {
		return errors.NewInvariantError(errors.ErrCodeInvestmentMismatch,
			"Final investment does not equal subtotal minus rebates",
			fmt.Sprintf("final: %d, expected: %d", r.FinalInvestmentCents, wantInvestment))
	}

	e := r.Energy
	if math.Abs(e.SelfConsumedKwh+e.GridImportKwh-e.DailyConsumptionKwh) > 1e-6 ||
		math.Abs(e.SelfConsumedKwh+e.ExportedKwh-e.DailyProductionKwh) > 1e-6 {
		return errors.NewInvariantError(errors.ErrCodeEnergyImbalance,
			"Energy split does not balance",
			fmt.Sprintf("selfConsumed: %f, exported: %f, import: %f", e.SelfConsumedKwh, e.ExportedKwh, e.GridImportKwh))
	}

	for field, cents := range map[string]int64{
		"costs.subtotalCents":  c.SubtotalCents,
		"finalInvestmentCents": r.FinalInvestmentCents,
		"rebates.totalCents":   r.Rebates.TotalCents,
		"depositCents":         r.DepositCents,
	} {
		if cents < 0 {
			return errors.NewNumericAnomalyError(field, cents)
		}
	}
	for field, v := range map[string]float64{
		"systemSpecs.solarKw":         r.SystemSpecs.SolarKw,
		"systemSpecs.coveragePercent": r.SystemSpecs.CoveragePercent,
		"energy.selfConsumedKwh":      e.SelfConsumedKwh,
		"energy.exportedKwh":          e.ExportedKwh,
		"energy.gridImportKwh":        e.GridImportKwh,
		"savings.roiPercent":          r.Savings.ROIPercent,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || (field != "savings.roiPercent" && v < 0) {
			return errors.NewNumericAnomalyError(field, v)
		}
	}

	return nil
}
