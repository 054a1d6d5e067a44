package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"videopoker-server/internal/config"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/economy/memory"
	"videopoker-server/pkg/economy/redisstore"
)

// newStore opens the store named by the config
// The returned func releases it.
func newStore(ctx context.Context, cfg config.Config) (economy.Store, func(), error) {
	opts := economy.Options{
		StartingWallet:     cfg.Economy.StartingWallet,
		InitialWinPool:     cfg.Economy.InitialWinPool,
		InitialHouseProfit: cfg.Economy.InitialHouseProfit,
		Credentials:        economy.BcryptCredentials{Cost: cfg.BcryptCost},
	}

	switch cfg.Storage.Type {
	case config.StorageMemory:
		return memory.New(opts), func() {}, nil

	case config.StorageRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		if cfg.Storage.KeyPrefix != "" {
			redisCfg.KeyPrefix = cfg.Storage.KeyPrefix
		}

		store, err := redisstore.New(ctx, redisCfg, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		return store, func() {
			if err := store.Close(); err != nil {
				logrus.WithError(err).Warn("could not close redis store")
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
