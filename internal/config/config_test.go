package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "stock.csv", cfg.Files.Stock)
	assert.Equal(t, "orders.csv", cfg.Files.Orders)
	assert.Equal(t, "additions.csv", cfg.Files.Additions)
	assert.Equal(t, 15, cfg.Report.LowStockLimit)
	assert.Equal(t, "client_secret.json", cfg.Drive.CredentialsPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKCTL_STOCK_FILE", "/data/stock.csv")
	t.Setenv("STOCKCTL_LOW_STOCK_LIMIT", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "/data/stock.csv", cfg.Files.Stock)
	assert.Equal(t, 5, cfg.Report.LowStockLimit)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STOCKCTL_ORDERS_FILE=o.csv\n"), 0o644))
	// godotenv writes into the process environment; keep it out of
	// later tests.
	t.Cleanup(func() { os.Unsetenv("STOCKCTL_ORDERS_FILE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "o.csv", cfg.Files.Orders)
}

func TestLoad_BadLowStockLimit(t *testing.T) {
	for _, raw := range []string{"zero", "0", "-3"} {
		t.Setenv("STOCKCTL_LOW_STOCK_LIMIT", raw)
		_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		assert.Error(t, err, "limit %q must be rejected", raw)
	}
}
