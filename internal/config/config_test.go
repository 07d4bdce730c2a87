package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.WebSocket.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultGameSettings(), cfg.Game)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	source := `
server:
  websocket:
    address: ":9999"
logging:
  level: debug
  format: json
game:
  starting_balance: 2000
  free_parking_collects_taxes: true
  rent_while_jailed: false
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.WebSocket.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2000, cfg.Game.StartingBalance)
	assert.True(t, cfg.Game.FreeParkingCollectsTaxes)
	assert.False(t, cfg.Game.RentWhileJailed)

	// Unspecified values keep their defaults.
	assert.Equal(t, 200, cfg.Game.PassGoAmount)
	assert.True(t, cfg.Game.AuctionOnDecline)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  starting_balance: -5\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "monopoly",
		Password: "secret",
		Database: "games",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=monopoly password=secret dbname=games sslmode=require",
		cfg.DSN())
}
