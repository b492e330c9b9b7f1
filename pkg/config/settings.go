package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default token parameters used by the mint command
const (
	DefaultTokenName     = "DefaultToken"
	DefaultTokenSymbol   = "DFLT"
	DefaultTokenDecimals = 9
	DefaultTokenSupply   = 1000000000
)

// Settings holds everything read from the environment and the .env file
type Settings struct {
	EnvFile string

	Network        string
	RPCURL         string
	WSURL          string
	WalletPath     string
	SimulationMode bool
	MintAddress    string
	ConfirmTimeout time.Duration
	LogLevel       string

	TokenName     string
	TokenSymbol   string
	TokenDecimals uint8
	TokenSupply   uint64

	RabbitMQHost string
	DBHost       string
	Port         string
	SnapshotCron string
}

// LoadSettings loads envFile (when it exists) into the process environment and
// reads the settings from it. Variables already set in the environment win.
func LoadSettings(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SOLANA_NETWORK", "testnet")
	v.SetDefault("TOKEN_NAME", DefaultTokenName)
	v.SetDefault("TOKEN_SYMBOL", DefaultTokenSymbol)
	v.SetDefault("CONFIRM_TIMEOUT", 90*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SNAPSHOT_CRON", "@every 10m")

	s := &Settings{
		EnvFile:        envFile,
		Network:        v.GetString("SOLANA_NETWORK"),
		RPCURL:         v.GetString("SOLANA_RPC_URL"),
		WSURL:          v.GetString("SOLANA_WS_URL"),
		WalletPath:     v.GetString("WALLET_PRIVATE_KEY"),
		SimulationMode: strings.TrimSpace(v.GetString("SIMULATION_MODE")) == "true",
		MintAddress:    strings.TrimSpace(v.GetString("TOKEN_MINT_ADDRESS")),
		ConfirmTimeout: v.GetDuration("CONFIRM_TIMEOUT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		TokenName:      v.GetString("TOKEN_NAME"),
		TokenSymbol:    v.GetString("TOKEN_SYMBOL"),
		RabbitMQHost:   v.GetString("RABBITMQ_HOST"),
		DBHost:         v.GetString("DB_HOST"),
		Port:           v.GetString("PORT"),
		SnapshotCron:   v.GetString("SNAPSHOT_CRON"),
	}
	if s.TokenName == "" {
		s.TokenName = DefaultTokenName
	}
	if s.TokenSymbol == "" {
		s.TokenSymbol = DefaultTokenSymbol
	}

	// zero or unparsable values fall back to the defaults
	decimals := v.GetUint("TOKEN_DECIMALS")
	if decimals == 0 {
		decimals = DefaultTokenDecimals
	}
	if decimals > 255 {
		return nil, fmt.Errorf("TOKEN_DECIMALS out of range: %d", decimals)
	}
	s.TokenDecimals = uint8(decimals)

	s.TokenSupply = v.GetUint64("TOKEN_SUPPLY")
	if s.TokenSupply == 0 {
		s.TokenSupply = DefaultTokenSupply
	}

	return s, nil
}

// RabbitMQEnabled reports whether event publishing is configured
func (s *Settings) RabbitMQEnabled() bool {
	return s.RabbitMQHost != ""
}

// DatabaseEnabled reports whether the token registry database is configured
func (s *Settings) DatabaseEnabled() bool {
	return s.DBHost != ""
}
