package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Dan9191/library-fees/internal/report"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port           string
	LogLevel       string
	DataDir        string
	LedgerFile     string
	ReportFile     string
	ReportFormat   string
	FeeRate        decimal.Decimal
	SentinelRows   int
	JWTSecret      string
	ReportSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataDir:        getEnv("DATA_DIR", "data"),
		LedgerFile:     getEnv("LEDGER_FILE", "book_returns.csv"),
		ReportFile:     getEnv("REPORT_FILE", "book_fees.csv"),
		ReportFormat:   getEnv("REPORT_FORMAT", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "0 6 * * *"),
	}

	rate, err := decimal.NewFromString(getEnv("FEE_RATE", "0.25"))
	if err != nil {
		return nil, fmt.Errorf("FEE_RATE is not a decimal: %w", err)
	}
	cfg.FeeRate = rate

	sentinel, err := strconv.Atoi(getEnv("SENTINEL_ROWS", "1"))
	if err != nil {
		return nil, fmt.Errorf("SENTINEL_ROWS is not an integer: %w", err)
	}
	cfg.SentinelRows = sentinel

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.FeeRate.IsNegative() {
		return fmt.Errorf("FEE_RATE must be non-negative, got %s", c.FeeRate)
	}
	if c.SentinelRows < 0 {
		return fmt.Errorf("SENTINEL_ROWS must be non-negative, got %d", c.SentinelRows)
	}
	if c.LedgerFile == "" {
		return fmt.Errorf("LEDGER_FILE is required")
	}
	if c.ReportFile == "" {
		return fmt.Errorf("REPORT_FILE is required")
	}
	if _, err := report.ForPath(c.ReportFormat, c.ReportFile); err != nil {
		return fmt.Errorf("REPORT_FORMAT is invalid: %w", err)
	}
	if _, err := cron.ParseStandard(c.ReportSchedule); err != nil {
		return fmt.Errorf("REPORT_SCHEDULE is invalid: %w", err)
	}
	return nil
}

// ResolvePath maps a logical file name to a path under DataDir.
// Absolute paths are returned unchanged.
func (c *Config) ResolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LedgerPath is the resolved path of the configured ledger
func (c *Config) LedgerPath() string {
	return c.ResolvePath(c.LedgerFile)
}

// ReportPath is the resolved path of the configured report
func (c *Config) ReportPath() string {
	return c.ResolvePath(c.ReportFile)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
