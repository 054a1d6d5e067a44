package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"videopoker-server/internal/config"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/economy/redisstore"
)

var command = flag.String("c", "pools", "specifies the command (user, fund, pools)")
var amount = flag.Int64("amount", 0, "the amount to add to the win pool (fund)")

func main() {
	flag.Parse()

	cfg := config.Instance()
	if cfg.Storage.Type != config.StorageRedis {
		logrus.Fatal("admin only works against a shared redis store, set storage.type to redis")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer store.Close()

	switch *command {
	case "user":
		name, err := getInput("Name")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if name == "" {
			os.Exit(1)
		}

		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		user, err := store.CreateUserIfUnique(ctx, name, password)
		if err != nil {
			logrus.WithError(err).Fatal("could not create user")
		}

		fmt.Printf("Created user %s with wallet %d\n", user.ID, user.Wallet)

	case "fund":
		if *amount <= 0 {
			logrus.Fatal("-amount must be greater than zero")
		}

		pools, err := store.AdjustPools(ctx, *amount, 0)
		if err != nil {
			logrus.WithError(err).Fatal("could not fund win pool")
		}

		printPools(pools)

	case "pools":
		pools, err := store.GetPools(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("could not get pools")
		}

		printPools(pools)

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func openStore(ctx context.Context, cfg config.Config) (*redisstore.Store, error) {
	redisCfg := redisstore.DefaultConfig()
	redisCfg.URL = cfg.Storage.RedisURL
	if cfg.Storage.KeyPrefix != "" {
		redisCfg.KeyPrefix = cfg.Storage.KeyPrefix
	}

	return redisstore.New(ctx, redisCfg, economy.Options{
		StartingWallet:     cfg.Economy.StartingWallet,
		InitialWinPool:     cfg.Economy.InitialWinPool,
		InitialHouseProfit: cfg.Economy.InitialHouseProfit,
		Credentials:        economy.BcryptCredentials{Cost: cfg.BcryptCost},
	})
}

func printPools(pools economy.Pools) {
	fmt.Printf("Win pool:     %d\n", pools.WinPool)
	fmt.Printf("House profit: %d\n", pools.HouseProfit)
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
