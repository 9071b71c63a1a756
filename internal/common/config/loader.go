// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DB_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("Loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf(".env file not found in any location, using system environment variables\n")
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.RoofAnalysis.BaseURL == "" {
		if val := os.Getenv("ROOF_ANALYSIS_URL"); val != "" {
			cfg.RoofAnalysis.BaseURL = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields.
// Engine defaults are the current WA residential rate card and scheme
// parameters; they are configuration, not constants baked into calculators.
func applyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = ":8080"
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = ":9090"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 15000
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Catalog.CacheTTL == 0 {
		cfg.Catalog.CacheTTL = 300
	}

	if cfg.RoofAnalysis.Timeout == 0 {
		cfg.RoofAnalysis.Timeout = 10000
	}

	if cfg.Recompute.DebounceWindow == 0 {
		cfg.Recompute.DebounceWindow = 300
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	applyEngineDefaults(&cfg.Engine)
}

func applyEngineDefaults(e *EngineConfig) {
	if e.Pricing.MinPanelCount == 0 {
		e.Pricing.MinPanelCount = 1
	}
	if e.Pricing.MaxPanelCount == 0 {
		e.Pricing.MaxPanelCount = 200
	}

	inst := &e.Installation
	if inst.BaseCalloutFeeCents == 0 {
		inst.BaseCalloutFeeCents = 25000
	}
	if inst.PanelInstallPerUnitCents == 0 {
		inst.PanelInstallPerUnitCents = 8500
	}
	if inst.AvgRailingMetersPerKw == 0 {
		inst.AvgRailingMetersPerKw = 4
	}
	if inst.RailingPerMeterCents == 0 {
		inst.RailingPerMeterCents = 2500
	}
	if inst.InverterInstallCents == 0 {
		inst.InverterInstallCents = 35000
	}
	if inst.BatteryInstallBaseCents == 0 {
		inst.BatteryInstallBaseCents = 40000
	}
	if inst.BatteryInstallPerKwhCents == 0 {
		inst.BatteryInstallPerKwhCents = 3000
	}
	if inst.AvgCablingMetersPerKw == 0 {
		inst.AvgCablingMetersPerKw = 6
	}
	if inst.CablingPerMeterCents == 0 {
		inst.CablingPerMeterCents = 1200
	}
	if inst.CommissioningFeeCents == 0 {
		inst.CommissioningFeeCents = 18000
	}
	if inst.TileRoofMultiplier == 0 {
		inst.TileRoofMultiplier = 1.15
	}
	if inst.MetalRoofMultiplier == 0 {
		inst.MetalRoofMultiplier = 1.05
	}
	if inst.FlatRoofMultiplier == 0 {
		inst.FlatRoofMultiplier = 1.10
	}
	if inst.MultiStoryMultiplier == 0 {
		inst.MultiStoryMultiplier = 1.12
	}
	if inst.DifficultAccessMultiplier == 0 {
		inst.DifficultAccessMultiplier = 1.10
	}
	if inst.ScaffoldingCents == 0 {
		inst.ScaffoldingCents = 80000
	}
	if inst.AsbestosRemovalCents == 0 {
		inst.AsbestosRemovalCents = 150000
	}

	reb := &e.Rebates
	if reb.SolarZoneRating == 0 {
		reb.SolarZoneRating = 1.382
	}
	if reb.SolarDeemingYears == 0 {
		reb.SolarDeemingYears = 6
	}
	if reb.CertificatePriceCents == 0 {
		reb.CertificatePriceCents = 3800
	}
	if reb.SolarCapKw == 0 {
		reb.SolarCapKw = 100
	}
	if reb.BatteryFactor == 0 {
		reb.BatteryFactor = 9.3
	}
	if reb.BatteryMaxKwh == 0 {
		reb.BatteryMaxKwh = 50
	}
	if reb.StateBatteryPerKwhCents == 0 {
		reb.StateBatteryPerKwhCents = 13000
	}
	if reb.StateBatteryCapCents == 0 {
		reb.StateBatteryCapCents = 500000
	}
	if reb.CombinedCapCents == 0 {
		reb.CombinedCapCents = 500000
	}
	if reb.StateReducedCents == 0 {
		reb.StateReducedCents = 130000
	}

	en := &e.Energy
	if en.AnnualKwhPerKw == 0 {
		en.AnnualKwhPerKw = 1400
	}
	if len(en.SeasonalFactors) != 12 {
		en.SeasonalFactors = []float64{
			0.095, 0.090, 0.088, 0.080, 0.070, 0.065,
			0.068, 0.075, 0.082, 0.090, 0.095, 0.102,
		}
	}
	if en.BatteryDepthOfDischarge == 0 {
		en.BatteryDepthOfDischarge = 0.9
	}
	if en.BatteryRoundTripEfficiency == 0 {
		en.BatteryRoundTripEfficiency = 0.85
	}
	if en.SelfConsumptionBase == 0 {
		en.SelfConsumptionBase = 0.35
	}
	if len(en.SelfConsumptionTiers) == 0 {
		en.SelfConsumptionTiers = []SelfConsumptionTier{
			{MinRatio: 0.5, Rate: 0.80},
			{MinRatio: 0.3, Rate: 0.75},
			{MinRatio: 0.0, Rate: 0.65},
		}
	}

	cons := &e.Consumption
	if len(cons.BaselineKwhPerDay) == 0 {
		cons.BaselineKwhPerDay = []float64{8, 11, 14, 17, 20, 22, 24}
	}
	if len(cons.ACKwhPerDay) == 0 {
		cons.ACKwhPerDay = map[string]float64{
			"none": 0, "minimal": 4, "moderate": 10, "heavy": 18,
		}
	}
	if len(cons.HotWaterKwhPerDay) == 0 {
		cons.HotWaterKwhPerDay = []float64{3, 4.5, 6, 7, 8, 9, 10}
	}
	if cons.PoolHeatedKwhPerDay == 0 {
		cons.PoolHeatedKwhPerDay = 25
	}
	if cons.PoolUnheatedKwhPerDay == 0 {
		cons.PoolUnheatedKwhPerDay = 7
	}
	if cons.HomeOfficeKwhPerDay == 0 {
		cons.HomeOfficeKwhPerDay = 1.5
	}
	if cons.EVKwhPerDayPerVehicle == 0 {
		cons.EVKwhPerDayPerVehicle = 9
	}
	if cons.DaytimeShare == 0 {
		cons.DaytimeShare = 0.30
	}
	if cons.EveningShare == 0 {
		cons.EveningShare = 0.45
	}
	if cons.NightShare == 0 {
		cons.NightShare = 0.25
	}

	if e.Tariffs.ImportRatePerKwh == 0 {
		e.Tariffs.ImportRatePerKwh = 0.3237
	}
	if e.Tariffs.FeedInRatePerKwh == 0 {
		e.Tariffs.FeedInRatePerKwh = 0.03
	}

	if e.Savings.EscalationRate == 0 {
		e.Savings.EscalationRate = 0.03
	}
	if e.Savings.DegradationRate == 0 {
		e.Savings.DegradationRate = 0.005
	}
	if e.Savings.DiscountRate == 0 {
		e.Savings.DiscountRate = 0.05
	}

	if e.Deposit.Percent == 0 {
		e.Deposit.Percent = 0.10
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if len(cfg.Engine.Energy.SeasonalFactors) != 12 {
		return fmt.Errorf("engine.energy.seasonal_factors must have 12 entries")
	}
	if cfg.Engine.Pricing.MinPanelCount < 1 || cfg.Engine.Pricing.MaxPanelCount < cfg.Engine.Pricing.MinPanelCount {
		return fmt.Errorf("engine.pricing panel count range is invalid")
	}

	// tier lookup takes the first match, so descending order is load-bearing
	tiers := cfg.Engine.Energy.SelfConsumptionTiers
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinRatio >= tiers[i-1].MinRatio {
			return fmt.Errorf("engine.energy.self_consumption_tiers must be ordered by descending min_ratio")
		}
	}

	shares := cfg.Engine.Consumption.DaytimeShare +
		cfg.Engine.Consumption.EveningShare +
		cfg.Engine.Consumption.NightShare
	if shares < 0.999 || shares > 1.001 {
		return fmt.Errorf("engine.consumption time-of-use shares must sum to 1.0")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
