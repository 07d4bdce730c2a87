// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameSettings   `mapstructure:"game"`
}

// ServerConfig holds the transport settings.
type ServerConfig struct {
	WebSocket       WebSocketConfig `mapstructure:"websocket"`
	MaxGames        int             `mapstructure:"max_games"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
}

// WebSocketConfig holds the WebSocket listener settings.
type WebSocketConfig struct {
	Address      string        `mapstructure:"address"`
	Path         string        `mapstructure:"path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the PostgreSQL connection settings for the
// savegame store.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// DSN renders the config as a pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// GameSettings are the per-game house rules. A game captures these at
// creation time, so later config changes do not affect running games.
type GameSettings struct {
	// StartingBalance is each player's opening cash.
	StartingBalance int `mapstructure:"starting_balance"`
	// PassGoAmount is credited when a player passes Go, scaled by
	// PassGoMultiplier.
	PassGoAmount     int `mapstructure:"pass_go_amount"`
	PassGoMultiplier int `mapstructure:"pass_go_multiplier"`
	// JailReleaseFee is the bail charged to leave jail without a double.
	JailReleaseFee int `mapstructure:"jail_release_fee"`
	// AuctionOnDecline puts a declined property purchase up for auction.
	AuctionOnDecline bool `mapstructure:"auction_on_decline"`
	// FreeParkingCollectsTaxes pools tax payments and pays them out to
	// whoever lands on free parking.
	FreeParkingCollectsTaxes bool `mapstructure:"free_parking_collects_taxes"`
	// RentWhileJailed lets jailed owners keep collecting rent.
	RentWhileJailed bool `mapstructure:"rent_while_jailed"`
	// UnevenConstruction drops the even-building rule for houses.
	UnevenConstruction bool `mapstructure:"uneven_construction"`
	// LimitedSupply enforces the bank's stock of 32 houses and 12 hotels.
	LimitedSupply bool `mapstructure:"limited_supply"`
	// ShuffleDecks randomises the card decks once at game start.
	ShuffleDecks bool `mapstructure:"shuffle_decks"`
	// ShuffleSeating randomises the seating order at game start.
	ShuffleSeating bool `mapstructure:"shuffle_seating"`
}

// DefaultGameSettings returns the standard rule set.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		StartingBalance:          1500,
		PassGoAmount:             200,
		PassGoMultiplier:         1,
		JailReleaseFee:           50,
		AuctionOnDecline:         true,
		FreeParkingCollectsTaxes: false,
		RentWhileJailed:          true,
		UnevenConstruction:       false,
		LimitedSupply:            true,
		ShuffleDecks:             true,
		ShuffleSeating:           true,
	}
}

// Load reads the configuration file at path and applies environment
// overrides with the MONOPOLY_ prefix. A missing file is not an error;
// defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.websocket.path", "/ws")
	v.SetDefault("server.websocket.read_timeout", 60*time.Second)
	v.SetDefault("server.websocket.write_timeout", 10*time.Second)
	v.SetDefault("server.max_games", 100)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "monopoly")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "monopoly")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 4)

	defaults := DefaultGameSettings()
	v.SetDefault("game.starting_balance", defaults.StartingBalance)
	v.SetDefault("game.pass_go_amount", defaults.PassGoAmount)
	v.SetDefault("game.pass_go_multiplier", defaults.PassGoMultiplier)
	v.SetDefault("game.jail_release_fee", defaults.JailReleaseFee)
	v.SetDefault("game.auction_on_decline", defaults.AuctionOnDecline)
	v.SetDefault("game.free_parking_collects_taxes", defaults.FreeParkingCollectsTaxes)
	v.SetDefault("game.rent_while_jailed", defaults.RentWhileJailed)
	v.SetDefault("game.uneven_construction", defaults.UnevenConstruction)
	v.SetDefault("game.limited_supply", defaults.LimitedSupply)
	v.SetDefault("game.shuffle_decks", defaults.ShuffleDecks)
	v.SetDefault("game.shuffle_seating", defaults.ShuffleSeating)

	v.SetEnvPrefix("MONOPOLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.StartingBalance < 0 {
		return fmt.Errorf("game.starting_balance must not be negative")
	}
	if c.Game.PassGoMultiplier < 0 {
		return fmt.Errorf("game.pass_go_multiplier must not be negative")
	}
	if c.Server.MaxGames < 1 {
		return fmt.Errorf("server.max_games must be at least 1")
	}
	return nil
}
