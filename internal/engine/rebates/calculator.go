// Package rebates computes federal and state incentives for a system
// configuration under the configured scheme parameters.
package rebates

import (
	"math"

	"quote-engine/internal/common/config"
	"quote-engine/internal/models"
)

// Calculator applies the configured rebate scheme.
type Calculator struct {
	scheme config.RebateScheme
}

func NewCalculator(scheme config.RebateScheme) *Calculator {
	return &Calculator{scheme: scheme}
}

// Calculate returns the rebate breakdown for the given system size and
// battery capacity. A zero battery yields exactly zero battery rebates and
// the combined-cap interaction is never evaluated.
//
// When the federal battery and state battery rebates together exceed the
// combined cap, the state rebate drops to its reduced fixed amount. The
// federal rebate is never reduced.
func (c *Calculator) Calculate(systemKw, batteryKwh float64) models.RebateBreakdown {
	var b models.RebateBreakdown

	eligibleKw := systemKw
	if c.scheme.SolarCapKw > 0 && eligibleKw > c.scheme.SolarCapKw {
		eligibleKw = c.scheme.SolarCapKw
	}
	solarCertificates := eligibleKw * c.scheme.SolarZoneRating * c.scheme.SolarDeemingYears
	b.FederalSolarCents = int64(math.Round(solarCertificates * float64(c.scheme.CertificatePriceCents)))

	if batteryKwh > 0 {
		eligibleKwh := math.Min(batteryKwh, c.scheme.BatteryMaxKwh)
		b.FederalBatteryCents = int64(math.Round(eligibleKwh * c.scheme.BatteryFactor * float64(c.scheme.CertificatePriceCents)))

		state := int64(math.Round(batteryKwh * float64(c.scheme.StateBatteryPerKwhCents)))
		if state > c.scheme.StateBatteryCapCents {
			state = c.scheme.StateBatteryCapCents
		}
		b.StateBatteryCents = state

		if b.FederalBatteryCents+b.StateBatteryCents > c.scheme.CombinedCapCents {
			b.StateBatteryCents = c.scheme.StateReducedCents
		}
	}

	b.TotalCents = b.FederalSolarCents + b.FederalBatteryCents + b.StateBatteryCents
	return b
}
