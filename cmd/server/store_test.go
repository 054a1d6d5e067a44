package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videopoker-server/internal/config"
	"videopoker-server/pkg/economy/memory"
	"videopoker-server/pkg/economy/redisstore"
)

func Test_newStore_memory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Economy.InitialWinPool = 777

	store, closeStore, err := newStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &memory.Store{}, store)

	pools, err := store.GetPools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(777), pools.WinPool)
}

func Test_newStore_redis(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := config.DefaultConfig()
	cfg.Storage.Type = config.StorageRedis
	cfg.Storage.RedisURL = "redis://" + mini.Addr()
	cfg.Storage.KeyPrefix = "srv"
	cfg.BcryptCost = 4

	store, closeStore, err := newStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &redisstore.Store{}, store)
	assert.Equal(t, "50000", mini.HGet("srv:pools", "win_pool"))
}

func Test_newStore_unknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Type = "postgres"

	_, _, err := newStore(context.Background(), cfg)
	assert.EqualError(t, err, "unknown storage type: postgres")
}

func Test_newStore_zeroStartingWallet(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Economy.StartingWallet = 0
	cfg.BcryptCost = 4

	store, closeStore, err := newStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	u, err := store.CreateUserIfUnique(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(0), u.Wallet)
}
