package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
)

// Store is an in-memory implementation of economy.Store
//
// The map level locks only guard the shape of the maps. Every user and every round
// carries its own mutex, so operations on unrelated entities never wait on each other.
type Store struct {
	opts economy.Options

	usersMu sync.RWMutex
	users   map[string]*userEntry
	names   map[string]string

	roundsMu sync.RWMutex
	rounds   map[string]*roundEntry

	poolsMu sync.Mutex
	pools   economy.Pools
}

type userEntry struct {
	mu   sync.Mutex
	user economy.User
}

type roundEntry struct {
	mu    sync.Mutex
	round economy.Round
}

// New creates a new in-memory store
func New(opts economy.Options) *Store {
	opts = opts.WithDefaults()

	return &Store{
		opts:   opts,
		users:  make(map[string]*userEntry),
		names:  make(map[string]string),
		rounds: make(map[string]*roundEntry),
		pools: economy.Pools{
			WinPool:     opts.InitialWinPool,
			HouseProfit: opts.InitialHouseProfit,
		},
	}
}

// Ensure Store implements the interface
var _ economy.Store = (*Store)(nil)

func (s *Store) user(id string) (*userEntry, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	entry, ok := s.users[id]
	if !ok {
		return nil, economy.ErrUserNotFound
	}

	return entry, nil
}

func (s *Store) round(id string) (*roundEntry, error) {
	s.roundsMu.RLock()
	defer s.roundsMu.RUnlock()

	entry, ok := s.rounds[id]
	if !ok {
		return nil, economy.ErrRoundNotFound
	}

	return entry, nil
}

// User operations

// CreateUserIfUnique hashes the credential and adds the user under the names lock
func (s *Store) CreateUserIfUnique(ctx context.Context, name, credential string) (*economy.User, error) {
	// hashing is slow, keep it out of the critical section
	hash, err := s.opts.Credentials.Hash(credential)
	if err != nil {
		return nil, fmt.Errorf("could not hash credential: %w", err)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, taken := s.names[name]; taken {
		return nil, economy.ErrDuplicateName
	}

	entry := &userEntry{
		user: economy.User{
			ID:         uuid.New().String(),
			Name:       name,
			Credential: hash,
			Wallet:     s.opts.StartingWallet,
		},
	}

	s.users[entry.user.ID] = entry
	s.names[name] = entry.user.ID

	u := entry.user
	return &u, nil
}

// Authenticate looks the name up in the index and verifies the credential
func (s *Store) Authenticate(ctx context.Context, name, credential string) (*economy.User, error) {
	s.usersMu.RLock()
	id, ok := s.names[name]
	s.usersMu.RUnlock()

	if !ok {
		return nil, economy.ErrInvalidCredentials
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

// GetUser returns a copy of the user
func (s *Store) GetUser(ctx context.Context, userID string) (*economy.User, error) {
	entry, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	u := entry.user
	return &u, nil
}

// DebitWallet checks and debits the balance under the user's lock
func (s *Store) DebitWallet(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, economy.ErrInvalidAmount
	}

	entry, err := s.user(userID)
	if err != nil {
		return 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.user.Wallet < amount {
		return entry.user.Wallet, economy.ErrInsufficientFunds
	}

	entry.user.Wallet -= amount
	return entry.user.Wallet, nil
}

// CreditWallet adds amount under the user's lock
func (s *Store) CreditWallet(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, economy.ErrInvalidAmount
	}

	entry, err := s.user(userID)
	if err != nil {
		return 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.user.Wallet += amount
	return entry.user.Wallet, nil
}

// Round operations

// CreateRound stores an active round holding a copy of cards
func (s *Store) CreateRound(ctx context.Context, userID string, ante int64, cards []deck.Card) (string, error) {
	r := economy.Round{
		ID:     uuid.New().String(),
		UserID: userID,
		Ante:   ante,
		Status: economy.RoundActive,
	}
	r.Cards = make([]deck.Card, len(cards))
	copy(r.Cards, cards)

	s.roundsMu.Lock()
	defer s.roundsMu.Unlock()

	s.rounds[r.ID] = &roundEntry{round: r}
	return r.ID, nil
}

// GetRound returns a snapshot of the round
func (s *Store) GetRound(ctx context.Context, roundID string) (*economy.Round, error) {
	entry, err := s.round(roundID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.round.Clone(), nil
}

// ReplaceRoundCards swaps the cards of an active round under the round's lock
func (s *Store) ReplaceRoundCards(ctx context.Context, roundID string, cards []deck.Card) error {
	entry, err := s.round(roundID)
	if err != nil {
		return err
	}

	newCards := make([]deck.Card, len(cards))
	copy(newCards, cards)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.round.Status != economy.RoundActive {
		return economy.ErrRoundNotActive
	}

	entry.round.Cards = newCards
	return nil
}

// ClaimRoundForReveal moves an active round to revealed under the round's lock
func (s *Store) ClaimRoundForReveal(ctx context.Context, roundID string) (*economy.Round, error) {
	entry, err := s.round(roundID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.round.Status != economy.RoundActive {
		return nil, economy.ErrRoundNotActive
	}

	claimed := entry.round.Clone()
	entry.round.Status = economy.RoundRevealed
	return claimed, nil
}

// Pool operations

// GetPools returns the current pools
func (s *Store) GetPools(ctx context.Context) (economy.Pools, error) {
	s.poolsMu.Lock()
	defer s.poolsMu.Unlock()

	return s.pools, nil
}

// AdjustPools applies both deltas or neither
func (s *Store) AdjustPools(ctx context.Context, winDelta, houseDelta int64) (economy.Pools, error) {
	s.poolsMu.Lock()
	defer s.poolsMu.Unlock()

	if s.pools.WinPool+winDelta < 0 || s.pools.HouseProfit+houseDelta < 0 {
		return s.pools, economy.ErrPoolInsufficient
	}

	s.pools.WinPool += winDelta
	s.pools.HouseProfit += houseDelta
	return s.pools, nil
}

// DebitWinPool subtracts amount from the win pool if it can cover it
func (s *Store) DebitWinPool(ctx context.Context, amount int64) (economy.Pools, error) {
	if amount < 0 {
		return economy.Pools{}, economy.ErrInvalidAmount
	}

	s.poolsMu.Lock()
	defer s.poolsMu.Unlock()

	if s.pools.WinPool < amount {
		return s.pools, economy.ErrPoolInsufficient
	}

	s.pools.WinPool -= amount
	return s.pools, nil
}
