package config

// NewDefaultConfig creates a configuration with default values.
// The desk defaults match the seeded window of the IBOR backend.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4200,
			Host: "localhost",
		},
		API: APIConfig{
			URL:     "http://localhost:8080",
			Timeout: "10s",
		},
		Desk: DeskConfig{
			Portfolios: []PortfolioRow{
				{Code: "ALPHA", Name: "Global Growth", Benchmark: "SPX", MV: 1200000, TWRR: 0.23},
				{Code: "BETA", Name: "Balanced Fund", Benchmark: "SPX", MV: 950000, TWRR: 0.12},
			},
			DefaultPortfolio: "ALPHA",
			DefaultBenchmark: "SPX",
			StartDate:        "2025-09-24",
			EndDate:          "2025-09-26",
		},
		Panels: PanelsConfig{
			Debounce: "120ms",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/ibor-portal",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console"},
		},
	}
}
