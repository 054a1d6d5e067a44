package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"videopoker-server/internal/util"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("VP_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("VP_JWT_SECRET", "from-env")()

	a := assert.New(t)
	config = Config{}
	cfg := Instance()
	a.Equal(":8080", cfg.Addr)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("json", cfg.Log.Format)
	a.Equal(int64(100000), cfg.Economy.InitialWinPool)
	a.Equal(int64(1000), cfg.Economy.StartingWallet, "default survives a partial file")
	a.Equal(StorageRedis, cfg.Storage.Type)
	a.Equal("test", cfg.Storage.KeyPrefix)
	a.Equal(time.Hour, cfg.JWT.TTL)
	a.Equal("from-env", cfg.JWT.Secret)

	// ensure that it's only loaded once
	_ = os.Setenv("VP_JWT_SECRET", "changed")
	// ensure we aren't using a pointer
	cfg.JWT.Secret = "bad"
	cfg = Instance()
	a.Equal("from-env", cfg.JWT.Secret)
}

func TestLoad_defaults(t *testing.T) {
	defer util.SetEnv("VP_CONFIG_FILE", "testdata/missing.yaml")()

	assert.NoError(t, Load())
	cfg := Instance()

	expected := DefaultConfig()
	expected.loaded = true
	assert.Equal(t, expected, cfg)
}

func TestLoad_env(t *testing.T) {
	defer util.SetEnv("VP_CONFIG_FILE", "testdata/missing.yaml")()
	defer util.SetEnv("VP_ECONOMY_STARTING_WALLET", "250")()
	defer util.SetEnv("VP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")()
	defer util.SetEnv("VP_JWT_REQUIRE_TOKEN", "true")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, int64(250), cfg.Economy.StartingWallet)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.JWT.RequireToken)
}

func TestLoad_badStorage(t *testing.T) {
	defer util.SetEnv("VP_CONFIG_FILE", "testdata/bad_storage.yaml")()
	assert.EqualError(t, Load(), "storage type must be memory or redis")
}

func TestLoad_zeroStartingWallet(t *testing.T) {
	defer util.SetEnv("VP_CONFIG_FILE", "testdata/missing.yaml")()
	defer util.SetEnv("VP_ECONOMY_STARTING_WALLET", "0")()

	assert.NoError(t, Load())
	assert.Equal(t, int64(0), Instance().Economy.StartingWallet)
}
