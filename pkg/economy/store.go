package economy

import (
	"context"

	"videopoker-server/pkg/deck"
)

// Store is the only component allowed to mutate users, rounds, and pools
// Every method is atomic with respect to the entity it touches. A method that
// checks a balance or a status does so at the moment of the mutation.
type Store interface {
	// CreateUserIfUnique creates a user with the starting wallet
	// Returns ErrDuplicateName if the name is taken
	CreateUserIfUnique(ctx context.Context, name, credential string) (*User, error)

	// Authenticate returns the user matching both name and credential
	// Returns ErrInvalidCredentials otherwise
	Authenticate(ctx context.Context, name, credential string) (*User, error)

	GetUser(ctx context.Context, userID string) (*User, error)
	GetRound(ctx context.Context, roundID string) (*Round, error)
	GetPools(ctx context.Context) (Pools, error)

	// DebitWallet subtracts amount and returns the new balance
	// Returns ErrInsufficientFunds if the live balance is below amount
	DebitWallet(ctx context.Context, userID string, amount int64) (int64, error)

	// CreditWallet adds amount and returns the new balance
	CreditWallet(ctx context.Context, userID string, amount int64) (int64, error)

	// CreateRound stores an active round and returns its id
	CreateRound(ctx context.Context, userID string, ante int64, cards []deck.Card) (string, error)

	// ReplaceRoundCards overwrites the cards of an active round
	// Returns ErrRoundNotFound or ErrRoundNotActive
	ReplaceRoundCards(ctx context.Context, roundID string, cards []deck.Card) error

	// ClaimRoundForReveal moves an active round to revealed and returns the round
	// as it was before the transition. Only one caller can ever succeed per round.
	// Returns ErrRoundNotFound or ErrRoundNotActive
	ClaimRoundForReveal(ctx context.Context, roundID string) (*Round, error)

	// AdjustPools applies both deltas together and returns the new pools
	// Returns ErrPoolInsufficient if either pool would become negative
	AdjustPools(ctx context.Context, winDelta, houseDelta int64) (Pools, error)

	// DebitWinPool subtracts amount from the win pool and returns the new pools
	// Returns ErrPoolInsufficient if the win pool is below amount
	DebitWinPool(ctx context.Context, amount int64) (Pools, error)
}

// Options configure a store
type Options struct {
	StartingWallet     int64
	InitialWinPool     int64
	InitialHouseProfit int64
	Credentials        CredentialVerifier
}

// WithDefaults fills in the credential verifier
// Amounts are taken as given, so a zero starting wallet stays zero.
func (o Options) WithDefaults() Options {
	if o.Credentials == nil {
		o.Credentials = BcryptCredentials{}
	}

	return o
}
