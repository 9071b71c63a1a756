// Package models defines the typed inputs and the calculation result shared
// across the engine. The result is a fixed record with named fields; no
// open-ended maps cross the engine boundary.
package models

// RoofType identifies the roof construction for installation complexity.
type RoofType string

const (
	RoofTile  RoofType = "tile"
	RoofMetal RoofType = "metal"
	RoofFlat  RoofType = "flat"
)

// PoolType identifies pool ownership for consumption derivation.
type PoolType string

const (
	PoolNone     PoolType = "none"
	PoolUnheated PoolType = "unheated"
	PoolHeated   PoolType = "heated"
)

// EnergyProfile describes the household's energy use as captured during
// intake. Immutable once a quote is generated; re-running intake creates a
// new profile.
type EnergyProfile struct {
	HouseholdSize       int      `json:"householdSize"`
	BimonthlyBill       float64  `json:"bimonthlyBill"` // dollars, confidence check only
	ACUsage             string   `json:"acUsage"`       // none, minimal, moderate, heavy
	HasElectricHotWater bool     `json:"hasElectricHotWater"`
	EVCount             int      `json:"evCount"`
	EVChargerKw         float64  `json:"evChargerKw"`
	EVChargingHours     float64  `json:"evChargingHours"`
	EVChargingTime      string   `json:"evChargingTime"` // daytime, evening, night
	PoolType            PoolType `json:"poolType"`
	HomeOfficeCount     int      `json:"homeOfficeCount"`
}

// RoofCapacity is the roof-analysis collaborator's output. Read-only input.
type RoofCapacity struct {
	MaxPanelCount       int     `json:"maxPanelCount"`
	UsableAreaSqm       float64 `json:"usableAreaSqm"`
	AnnualSunshineHours float64 `json:"annualSunshineHours"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
}

// EquipmentSelection references catalog products by id. Mutable during the
// customize phase; every mutation triggers a full recompute.
type EquipmentSelection struct {
	PanelProductID    string `json:"panelProductId"`
	PanelCount        int    `json:"panelCount"`
	InverterProductID string `json:"inverterProductId"`
	BatteryProductID  string `json:"batteryProductId,omitempty"` // empty means no battery
}

// SiteComplexity captures installation difficulty factors, fixed at intake.
type SiteComplexity struct {
	RoofType            RoofType `json:"roofType"`
	Storeys             int      `json:"storeys"`
	DifficultAccess     bool     `json:"difficultAccess"`
	RequiresScaffolding bool     `json:"requiresScaffolding"`
	HasAsbestos         bool     `json:"hasAsbestos"`
}

// AddonSelection lists selected add-on product ids. Add-ons are summed
// separately and never affect rebate eligibility.
type AddonSelection struct {
	AddonIDs []string `json:"addonIds,omitempty"`
}

// QuoteInput is the complete immutable snapshot one calculation consumes.
type QuoteInput struct {
	Profile   EnergyProfile      `json:"profile"`
	Roof      RoofCapacity       `json:"roof"`
	Equipment EquipmentSelection `json:"equipment"`
	Site      SiteComplexity     `json:"site"`
	Addons    AddonSelection     `json:"addons"`
}

// --- Calculation Result ---
//
// All currency fields are integer cents so repeated calculations over the
// same input are byte-identical.

// SystemSpecs summarizes the configured system.
type SystemSpecs struct {
	SolarKw            float64 `json:"solarKw"` // rounded to one decimal for display
	PanelCount         int     `json:"panelCount"`
	BatteryKwh         float64 `json:"batteryKwh"`
	DailyGenerationKwh float64 `json:"dailyGenerationKwh"`
	CoveragePercent    float64 `json:"coveragePercent"`
}

// InstallationLine is one display row of the installation breakdown.
type InstallationLine struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitCents   int64   `json:"unitCents,omitempty"`
	TotalCents  int64   `json:"totalCents"`
}

// InstallationBreakdown itemizes every component and every effective
// adjustment amount of the installation estimate.
type InstallationBreakdown struct {
	BaseCalloutCents     int64 `json:"baseCalloutCents"`
	PanelInstallCents    int64 `json:"panelInstallCents"`
	RailingCents         int64 `json:"railingCents"`
	InverterInstallCents int64 `json:"inverterInstallCents"`
	BatteryInstallCents  int64 `json:"batteryInstallCents"`
	CablingCents         int64 `json:"cablingCents"`
	CommissioningCents   int64 `json:"commissioningCents"`
	AddonInstallCents    int64 `json:"addonInstallCents"`

	SolarSubtotalCents int64 `json:"solarSubtotalCents"`
	BaseSubtotalCents  int64 `json:"baseSubtotalCents"`

	RoofTypeMultiplier      float64 `json:"roofTypeMultiplier"`
	RoofTypeAdjustmentCents int64   `json:"roofTypeAdjustmentCents"`
	StoryMultiplier         float64 `json:"storyMultiplier"`
	StoryAdjustmentCents    int64   `json:"storyAdjustmentCents"`
	AccessMultiplier        float64 `json:"accessMultiplier"`
	AccessAdjustmentCents   int64   `json:"accessAdjustmentCents"`

	ScaffoldingCents int64 `json:"scaffoldingCents"`
	AsbestosCents    int64 `json:"asbestosCents"`

	TotalCents int64              `json:"totalCents"`
	Items      []InstallationLine `json:"items"`
}

// CostBreakdown is the hardware and installation cost section.
type CostBreakdown struct {
	PanelsCents       int64                 `json:"panelsCents"`
	BatteryCents      int64                 `json:"batteryCents"`
	InverterCents     int64                 `json:"inverterCents"`
	InstallationCents int64                 `json:"installationCents"`
	SubtotalCents     int64                 `json:"subtotalCents"`
	Installation      InstallationBreakdown `json:"installation"`
}

// RebateBreakdown is the incentive section.
type RebateBreakdown struct {
	FederalSolarCents   int64 `json:"federalSolarCents"`
	FederalBatteryCents int64 `json:"federalBatteryCents"`
	StateBatteryCents   int64 `json:"stateBatteryCents"`
	TotalCents          int64 `json:"totalCents"`
}

// TimeOfUseSplit allocates daily consumption across tariff windows.
type TimeOfUseSplit struct {
	DaytimeKwh float64 `json:"daytimeKwh"`
	EveningKwh float64 `json:"eveningKwh"`
	NightKwh   float64 `json:"nightKwh"`
}

// ConsumptionEstimate is the derived household demand with its breakdown.
type ConsumptionEstimate struct {
	DailyKwh     float64        `json:"dailyKwh"`
	AnnualKwh    float64        `json:"annualKwh"`
	BaselineKwh  float64        `json:"baselineKwh"`
	ACKwh        float64        `json:"acKwh"`
	HotWaterKwh  float64        `json:"hotWaterKwh"`
	EVKwh        float64        `json:"evKwh"`
	PoolKwh      float64        `json:"poolKwh"`
	OfficeKwh    float64        `json:"officeKwh"`
	TimeOfUse    TimeOfUseSplit `json:"timeOfUse"`
}

// EnergySplit is the balanced production/consumption allocation.
// selfConsumed + gridImport == dailyConsumption and
// selfConsumed + exported == dailyProduction.
type EnergySplit struct {
	DailyProductionKwh   float64   `json:"dailyProductionKwh"`
	DailyConsumptionKwh  float64   `json:"dailyConsumptionKwh"`
	SelfConsumedKwh      float64   `json:"selfConsumedKwh"`
	ExportedKwh          float64   `json:"exportedKwh"`
	GridImportKwh        float64   `json:"gridImportKwh"`
	SelfConsumptionRate  float64   `json:"selfConsumptionRate"`
	MonthlyProductionKwh []float64 `json:"monthlyProductionKwh"`
}

// SavingsProjection is the financial outlook. PaybackYears is nil when
// annual savings is zero.
type SavingsProjection struct {
	AnnualCents  int64    `json:"annualCents"`
	PaybackYears *float64 `json:"paybackYears,omitempty"`
	Year10Cents  int64    `json:"year10Cents"`
	Year25Cents  int64    `json:"year25Cents"`
	ROIPercent   float64  `json:"roiPercent"`
	NPVCents     int64    `json:"npvCents"`
}

// CalculationResult is the engine's sole output, recomputed fresh on every
// input change and never partially patched.
type CalculationResult struct {
	SystemSpecs          SystemSpecs         `json:"systemSpecs"`
	Costs                CostBreakdown       `json:"costs"`
	Rebates              RebateBreakdown     `json:"rebates"`
	FinalInvestmentCents int64               `json:"finalInvestmentCents"`
	AddonRetailCents     int64               `json:"addonRetailCents"`
	DepositCents         int64               `json:"depositCents"`
	Consumption          ConsumptionEstimate `json:"consumption"`
	Energy               EnergySplit         `json:"energy"`
	Savings              SavingsProjection   `json:"savings"`
}
