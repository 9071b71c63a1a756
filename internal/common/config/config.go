// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Catalog       CatalogConfig      `mapstructure:"catalog"`
	RoofAnalysis  RoofAnalysisConfig `mapstructure:"roof_analysis"`
	Engine        EngineConfig       `mapstructure:"engine"`
	Recompute     RecomputeConfig    `mapstructure:"recompute"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	ListenAddress  string `mapstructure:"listen_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CatalogConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // seconds
}

type RoofAnalysisConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type RecomputeConfig struct {
	DebounceWindow int `mapstructure:"debounce_window"` // milliseconds
}

// --- Engine Parameters ---
//
// Every rate, multiplier, and assumption the calculators use lives here.
// Nothing numeric is hardcoded inside a calculator.

type EngineConfig struct {
	Pricing      PricingConfig          `mapstructure:"pricing"`
	Installation InstallationPricing    `mapstructure:"installation"`
	Rebates      RebateScheme           `mapstructure:"rebates"`
	Energy       EnergyAssumptions      `mapstructure:"energy"`
	Consumption  ConsumptionAssumptions `mapstructure:"consumption"`
	Tariffs      TariffConfig           `mapstructure:"tariffs"`
	Savings      SavingsConfig          `mapstructure:"savings"`
	Deposit      DepositConfig          `mapstructure:"deposit"`
}

type PricingConfig struct {
	MinPanelCount int `mapstructure:"min_panel_count"`
	MaxPanelCount int `mapstructure:"max_panel_count"`
}

// InstallationPricing holds the labor/logistics rate card.
type InstallationPricing struct {
	BaseCalloutFeeCents       int64   `mapstructure:"base_callout_fee_cents"`
	PanelInstallPerUnitCents  int64   `mapstructure:"panel_install_per_unit_cents"`
	AvgRailingMetersPerKw     float64 `mapstructure:"avg_railing_meters_per_kw"`
	RailingPerMeterCents      int64   `mapstructure:"railing_per_meter_cents"`
	InverterInstallCents      int64   `mapstructure:"inverter_install_cents"`
	BatteryInstallBaseCents   int64   `mapstructure:"battery_install_base_cents"`
	BatteryInstallPerKwhCents int64   `mapstructure:"battery_install_per_kwh_cents"`
	AvgCablingMetersPerKw     float64 `mapstructure:"avg_cabling_meters_per_kw"`
	CablingPerMeterCents      int64   `mapstructure:"cabling_per_meter_cents"`
	CommissioningFeeCents     int64   `mapstructure:"commissioning_fee_cents"`
	TileRoofMultiplier        float64 `mapstructure:"tile_roof_multiplier"`
	MetalRoofMultiplier       float64 `mapstructure:"metal_roof_multiplier"`
	FlatRoofMultiplier        float64 `mapstructure:"flat_roof_multiplier"`
	MultiStoryMultiplier      float64 `mapstructure:"multi_story_multiplier"`
	DifficultAccessMultiplier float64 `mapstructure:"difficult_access_multiplier"`
	ScaffoldingCents          int64   `mapstructure:"scaffolding_cents"`
	AsbestosRemovalCents      int64   `mapstructure:"asbestos_removal_cents"`
}

// RebateScheme holds the federal and state incentive parameters.
type RebateScheme struct {
	// Federal solar: certificate count is kW x zone rating x deeming years.
	SolarZoneRating       float64 `mapstructure:"solar_zone_rating"`
	SolarDeemingYears     float64 `mapstructure:"solar_deeming_years"`
	CertificatePriceCents int64   `mapstructure:"certificate_price_cents"`
	SolarCapKw            float64 `mapstructure:"solar_cap_kw"`

	// Federal battery: certificates per eligible kWh.
	BatteryFactor float64 `mapstructure:"battery_factor"`
	BatteryMaxKwh float64 `mapstructure:"battery_max_kwh"`

	// State battery scheme plus the combined-cap interaction.
	StateBatteryPerKwhCents int64 `mapstructure:"state_battery_per_kwh_cents"`
	StateBatteryCapCents    int64 `mapstructure:"state_battery_cap_cents"`
	CombinedCapCents        int64 `mapstructure:"combined_cap_cents"`
	StateReducedCents       int64 `mapstructure:"state_reduced_cents"`
}

// SelfConsumptionTier maps a battery-to-production ratio band to a rate.
type SelfConsumptionTier struct {
	MinRatio float64 `mapstructure:"min_ratio"`
	Rate     float64 `mapstructure:"rate"`
}

// EnergyAssumptions holds the production and self-consumption model inputs.
type EnergyAssumptions struct {
	AnnualKwhPerKw             float64               `mapstructure:"annual_kwh_per_kw"`
	SeasonalFactors            []float64             `mapstructure:"seasonal_factors"`
	BatteryDepthOfDischarge    float64               `mapstructure:"battery_depth_of_discharge"`
	BatteryRoundTripEfficiency float64               `mapstructure:"battery_round_trip_efficiency"`
	SelfConsumptionBase        float64               `mapstructure:"self_consumption_base"`
	SelfConsumptionTiers       []SelfConsumptionTier `mapstructure:"self_consumption_tiers"`
}

// ConsumptionAssumptions holds the household demand derivation tables.
// Per-size slices are indexed by household size - 1 and the last entry
// applies to any larger household.
type ConsumptionAssumptions struct {
	BaselineKwhPerDay     []float64          `mapstructure:"baseline_kwh_per_day"`
	ACKwhPerDay           map[string]float64 `mapstructure:"ac_kwh_per_day"`
	HotWaterKwhPerDay     []float64          `mapstructure:"hot_water_kwh_per_day"`
	PoolHeatedKwhPerDay   float64            `mapstructure:"pool_heated_kwh_per_day"`
	PoolUnheatedKwhPerDay float64            `mapstructure:"pool_unheated_kwh_per_day"`
	HomeOfficeKwhPerDay   float64            `mapstructure:"home_office_kwh_per_day"`
	EVKwhPerDayPerVehicle float64            `mapstructure:"ev_kwh_per_day_per_vehicle"`
	DaytimeShare          float64            `mapstructure:"daytime_share"`
	EveningShare          float64            `mapstructure:"evening_share"`
	NightShare            float64            `mapstructure:"night_share"`
}

type TariffConfig struct {
	ImportRatePerKwh float64 `mapstructure:"import_rate_per_kwh"` // dollars
	FeedInRatePerKwh float64 `mapstructure:"feed_in_rate_per_kwh"`
}

type SavingsConfig struct {
	EscalationRate  float64 `mapstructure:"escalation_rate"`
	DegradationRate float64 `mapstructure:"degradation_rate"`
	DiscountRate    float64 `mapstructure:"discount_rate"`
}

type DepositConfig struct {
	Percent float64 `mapstructure:"percent"`
}

// --- Integrations ---

// NotificationConfig holds settings for quote-ready notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
