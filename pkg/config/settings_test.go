package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SOLANA_NETWORK", "SOLANA_RPC_URL", "SOLANA_WS_URL", "WALLET_PRIVATE_KEY", "SIMULATION_MODE",
		"TOKEN_MINT_ADDRESS", "TOKEN_NAME", "TOKEN_SYMBOL", "TOKEN_DECIMALS", "TOKEN_SUPPLY",
		"CONFIRM_TIMEOUT", "RABBITMQ_HOST", "DB_HOST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	clearEnv(t)

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "testnet", s.Network)
	assert.False(t, s.SimulationMode)
	assert.Equal(t, DefaultTokenName, s.TokenName)
	assert.Equal(t, DefaultTokenSymbol, s.TokenSymbol)
	assert.Equal(t, uint8(9), s.TokenDecimals)
	assert.Equal(t, uint64(1000000000), s.TokenSupply)
	assert.Equal(t, 90*time.Second, s.ConfirmTimeout)
	assert.False(t, s.RabbitMQEnabled())
	assert.False(t, s.DatabaseEnabled())
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOLANA_NETWORK", "devnet")
	t.Setenv("SIMULATION_MODE", "true")
	t.Setenv("TOKEN_DECIMALS", "6")
	t.Setenv("TOKEN_SUPPLY", "500")
	t.Setenv("TOKEN_SYMBOL", "abc")
	t.Setenv("CONFIRM_TIMEOUT", "15s")

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "devnet", s.Network)
	assert.True(t, s.SimulationMode)
	assert.Equal(t, uint8(6), s.TokenDecimals)
	assert.Equal(t, uint64(500), s.TokenSupply)
	assert.Equal(t, "abc", s.TokenSymbol)
	assert.Equal(t, 15*time.Second, s.ConfirmTimeout)
}

func TestLoadSettingsSimulationNeedsExactTrue(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIMULATION_MODE", "yes")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.False(t, s.SimulationMode)
}

func TestLoadSettingsEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_NAME", "FromEnv")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN_NAME=FromFile\n#TOKEN_MINT_ADDRESS=old\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", s.TokenName)
	assert.Empty(t, s.MintAddress)
}

func TestLoadSettingsRejectsHugeDecimals(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_DECIMALS", "300")

	_, err := LoadSettings("")
	assert.Error(t, err)
}
