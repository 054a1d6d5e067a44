package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"videopoker-server/internal/util"
)

// storage types
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config provides configuration for the video poker server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Economy struct {
		StartingWallet     int64 `yaml:"startingWallet" envconfig:"starting_wallet"`
		InitialWinPool     int64 `yaml:"initialWinPool" envconfig:"initial_win_pool"`
		InitialHouseProfit int64 `yaml:"initialHouseProfit" envconfig:"initial_house_profit"`
	} `yaml:"economy"`
	Storage struct {
		// Type is either memory or redis
		Type      string `yaml:"type" envconfig:"type"`
		RedisURL  string `yaml:"redisUrl" envconfig:"redis_url"`
		KeyPrefix string `yaml:"keyPrefix" envconfig:"key_prefix"`
	} `yaml:"storage"`
	JWT struct {
		Secret string        `yaml:"secret" envconfig:"secret"`
		TTL    time.Duration `yaml:"ttl" envconfig:"ttl"`
		// RequireToken rejects round requests that don't carry a bearer token
		RequireToken bool `yaml:"requireToken" envconfig:"require_token"`
	} `yaml:"jwt"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
	BcryptCost int `yaml:"bcryptCost" envconfig:"bcrypt_cost"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Economy.StartingWallet = 1000
	cfg.Economy.InitialWinPool = 50000
	cfg.Storage.Type = StorageMemory
	cfg.Storage.RedisURL = "redis://localhost:6379/0"
	cfg.Storage.KeyPrefix = "vpoker"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.BcryptCost = 10

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The defaults are overlaid by the config file, if it exists, and then by VP_* environment variables
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("VP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("vp", &cfg); err != nil {
		return err
	}

	if cfg.Storage.Type != StorageMemory && cfg.Storage.Type != StorageRedis {
		return errors.New("storage type must be memory or redis")
	}

	cfg.loaded = true
	config = cfg
	return nil
}
