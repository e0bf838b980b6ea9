package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "LEDGER_FILE", "REPORT_FILE", "REPORT_FORMAT", "FEE_RATE", "SENTINEL_ROWS", "JWT_SECRET", "REPORT_SCHEDULE"} {
		unsetEnv(t, key)
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.FeeRate.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, 1, cfg.SentinelRows)
	assert.Equal(t, filepath.Join("data", "book_returns.csv"), cfg.LedgerPath())
	assert.Equal(t, filepath.Join("data", "book_fees.csv"), cfg.ReportPath())
}

func TestNewConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "fee rate not decimal", key: "FEE_RATE", value: "abc", wantErr: "FEE_RATE is not a decimal"},
		{name: "negative fee rate", key: "FEE_RATE", value: "-0.25", wantErr: "FEE_RATE must be non-negative"},
		{name: "sentinel rows not integer", key: "SENTINEL_ROWS", value: "one", wantErr: "SENTINEL_ROWS is not an integer"},
		{name: "negative sentinel rows", key: "SENTINEL_ROWS", value: "-1", wantErr: "SENTINEL_ROWS must be non-negative"},
		{name: "bad schedule", key: "REPORT_SCHEDULE", value: "every day", wantErr: "REPORT_SCHEDULE is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_ReportFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		file    string
		wantErr string
	}{
		{name: "matches extension", format: "xml", file: "book_fees.xml"},
		{name: "extension picks format", file: "book_fees.xlsx"},
		{name: "xml into csv file", format: "xml", file: "book_fees.csv", wantErr: "report format does not match file extension"},
		{name: "unknown format", format: "pdf", file: "book_fees.pdf", wantErr: "unknown report format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REPORT_FORMAT", tt.format)
			t.Setenv("REPORT_FILE", tt.file)

			cfg, err := NewConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "REPORT_FORMAT is invalid")
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, cfg.ReportFormat)
		})
	}
}

func TestResolvePath(t *testing.T) {
	cfg := &Config{DataDir: "/srv/library"}

	assert.Equal(t, filepath.Join("/srv/library", "returns.csv"), cfg.ResolvePath("returns.csv"))

	abs := filepath.Join(t.TempDir(), "fees.csv")
	assert.Equal(t, abs, cfg.ResolvePath(abs))
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		}
	})
}
