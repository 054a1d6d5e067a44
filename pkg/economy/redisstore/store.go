package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
)

// Store is a Redis-backed implementation of economy.Store
// Every check-then-mutate operation runs as a single Lua script, so it is atomic
// across every server sharing the Redis instance.
type Store struct {
	client *redis.Client
	keys   keys
	opts   economy.Options
}

// Ensure Store implements the interface
var _ economy.Store = (*Store)(nil)

// New connects to Redis and seeds the pools if they don't exist yet
func New(ctx context.Context, cfg Config, opts economy.Options) (*Store, error) {
	redisOpts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.PoolSize > 0 {
		redisOpts.PoolSize = cfg.PoolSize
	}
	redisOpts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(redisOpts)

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(ctx, client, cfg, opts)
}

// NewWithClient creates a Redis store with an existing client
func NewWithClient(ctx context.Context, client *redis.Client, cfg Config, opts economy.Options) (*Store, error) {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}

	s := &Store{
		client: client,
		keys:   keys{prefix: prefix},
		opts:   opts.WithDefaults(),
	}

	// the first server to start seeds the pools, the rest join them
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, s.keys.pools(), "win_pool", s.opts.InitialWinPool)
		pipe.HSetNX(ctx, s.keys.pools(), "house_profit", s.opts.InitialHouseProfit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not seed pools: %w", err)
	}

	return s, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// User operations

// CreateUserIfUnique claims the name index and writes the user hash in one script
func (s *Store) CreateUserIfUnique(ctx context.Context, name, credential string) (*economy.User, error) {
	hash, err := s.opts.Credentials.Hash(credential)
	if err != nil {
		return nil, fmt.Errorf("could not hash credential: %w", err)
	}

	u := &economy.User{
		ID:         uuid.New().String(),
		Name:       name,
		Credential: hash,
		Wallet:     s.opts.StartingWallet,
	}

	code, err := createUserScript.Run(ctx, s.client,
		[]string{s.keys.nameIndex(name), s.keys.user(u.ID)},
		u.ID, u.Name, u.Credential, u.Wallet,
	).Int64()
	if err != nil {
		return nil, err
	}

	if code == codeRejected {
		return nil, economy.ErrDuplicateName
	}

	return u, nil
}

// Authenticate resolves the name index and verifies the credential
func (s *Store) Authenticate(ctx context.Context, name, credential string) (*economy.User, error) {
	id, err := s.client.Get(ctx, s.keys.nameIndex(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, economy.ErrInvalidCredentials
		}
		return nil, err
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("name index points at a missing user: %w", err)
	}

	if !s.opts.Credentials.Verify(u.Credential, credential) {
		return nil, economy.ErrInvalidCredentials
	}

	return u, nil
}

// GetUser reads the user hash
func (s *Store) GetUser(ctx context.Context, userID string) (*economy.User, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.user(userID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, economy.ErrUserNotFound
	}

	wallet, err := strconv.ParseInt(fields["wallet"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt wallet for user %s: %w", userID, err)
	}

	return &economy.User{
		ID:         fields["id"],
		Name:       fields["name"],
		Credential: fields["credential"],
		Wallet:     wallet,
	}, nil
}

// DebitWallet checks and debits the balance in one script
func (s *Store) DebitWallet(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, economy.ErrInvalidAmount
	}

	res, err := debitWalletScript.Run(ctx, s.client,
		[]string{s.keys.user(userID)},
		amount, -amount,
	).Int64Slice()
	if err != nil {
		return 0, err
	}

	switch res[0] {
	case codeNotFound:
		return 0, economy.ErrUserNotFound
	case codeRejected:
		return res[1], economy.ErrInsufficientFunds
	}

	return res[1], nil
}

// CreditWallet increments the balance of an existing user
func (s *Store) CreditWallet(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, economy.ErrInvalidAmount
	}

	res, err := creditWalletScript.Run(ctx, s.client,
		[]string{s.keys.user(userID)},
		amount,
	).Int64Slice()
	if err != nil {
		return 0, err
	}

	if res[0] == codeNotFound {
		return 0, economy.ErrUserNotFound
	}

	return res[1], nil
}

// Round operations

// CreateRound writes an active round hash
func (s *Store) CreateRound(ctx context.Context, userID string, ante int64, cards []deck.Card) (string, error) {
	id := uuid.New().String()

	err := s.client.HSet(ctx, s.keys.round(id),
		"id", id,
		"user_id", userID,
		"ante", ante,
		"cards", deck.CardsToString(cards),
		"status", string(economy.RoundActive),
	).Err()
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetRound reads the round hash
func (s *Store) GetRound(ctx context.Context, roundID string) (*economy.Round, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.round(roundID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, economy.ErrRoundNotFound
	}

	return parseRound(roundID, fields["user_id"], fields["ante"], fields["cards"], fields["status"])
}

// ReplaceRoundCards overwrites the cards if the round is still active
func (s *Store) ReplaceRoundCards(ctx context.Context, roundID string, cards []deck.Card) error {
	code, err := replaceCardsScript.Run(ctx, s.client,
		[]string{s.keys.round(roundID)},
		deck.CardsToString(cards),
	).Int64()
	if err != nil {
		return err
	}

	switch code {
	case codeNotFound:
		return economy.ErrRoundNotFound
	case codeRejected:
		return economy.ErrRoundNotActive
	}

	return nil
}

// ClaimRoundForReveal flips an active round to revealed and returns it as it was
func (s *Store) ClaimRoundForReveal(ctx context.Context, roundID string) (*economy.Round, error) {
	res, err := claimRoundScript.Run(ctx, s.client, []string{s.keys.round(roundID)}).StringSlice()
	if err != nil {
		return nil, err
	}

	switch res[0] {
	case strconv.Itoa(codeNotFound):
		return nil, economy.ErrRoundNotFound
	case strconv.Itoa(codeRejected):
		return nil, economy.ErrRoundNotActive
	}

	if len(res) != 4 {
		return nil, fmt.Errorf("unexpected claim reply for round %s: %v", roundID, res)
	}

	return parseRound(roundID, res[1], res[2], res[3], string(economy.RoundActive))
}

func parseRound(id, userID, ante, cards, status string) (*economy.Round, error) {
	a, err := strconv.ParseInt(ante, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt ante for round %s: %w", id, err)
	}

	c, err := deck.ParseCards(cards)
	if err != nil {
		return nil, fmt.Errorf("corrupt cards for round %s: %w", id, err)
	}

	return &economy.Round{
		ID:     id,
		UserID: userID,
		Cards:  c,
		Ante:   a,
		Status: economy.RoundStatus(status),
	}, nil
}

// Pool operations

// GetPools reads both pools. A missing field reads as zero.
func (s *Store) GetPools(ctx context.Context) (economy.Pools, error) {
	vals, err := s.client.HMGet(ctx, s.keys.pools(), "win_pool", "house_profit").Result()
	if err != nil {
		return economy.Pools{}, err
	}

	var pools economy.Pools
	for i, dst := range []*int64{&pools.WinPool, &pools.HouseProfit} {
		str, ok := vals[i].(string)
		if !ok {
			continue
		}

		if *dst, err = strconv.ParseInt(str, 10, 64); err != nil {
			return economy.Pools{}, fmt.Errorf("corrupt pools: %w", err)
		}
	}

	return pools, nil
}

// AdjustPools applies both deltas in one script, or neither
func (s *Store) AdjustPools(ctx context.Context, winDelta, houseDelta int64) (economy.Pools, error) {
	res, err := adjustPoolsScript.Run(ctx, s.client,
		[]string{s.keys.pools()},
		winDelta, houseDelta,
	).Int64Slice()
	if err != nil {
		return economy.Pools{}, err
	}

	return poolsReply(res, economy.ErrPoolInsufficient)
}

// DebitWinPool subtracts amount from the win pool if it can cover it
func (s *Store) DebitWinPool(ctx context.Context, amount int64) (economy.Pools, error) {
	if amount < 0 {
		return economy.Pools{}, economy.ErrInvalidAmount
	}

	res, err := debitWinPoolScript.Run(ctx, s.client,
		[]string{s.keys.pools()},
		amount, -amount,
	).Int64Slice()
	if err != nil {
		return economy.Pools{}, err
	}

	return poolsReply(res, economy.ErrPoolInsufficient)
}

func poolsReply(res []int64, rejected error) (economy.Pools, error) {
	if len(res) != 3 {
		return economy.Pools{}, fmt.Errorf("unexpected pools reply: %v", res)
	}

	pools := economy.Pools{WinPool: res[1], HouseProfit: res[2]}
	if res[0] == codeRejected {
		return pools, rejected
	}

	return pools, nil
}
