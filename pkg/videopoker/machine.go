// Package videopoker runs the round lifecycle: start, discard, and reveal
package videopoker

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"videopoker-server/internal/rng"
	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/poker"
)

// HouseCutPercent is the share of a losing ante kept as house profit
// The rest of the ante goes to the win pool.
const HouseCutPercent = 25

// Machine is a video poker machine backed by a store
// A Machine holds no state of its own and is safe for concurrent use.
type Machine struct {
	store economy.Store
	gen   rng.Generator
	log   logrus.FieldLogger
}

// Option configures a Machine
type Option func(m *Machine)

// WithGenerator sets the random source used to shuffle decks
func WithGenerator(gen rng.Generator) Option {
	return func(m *Machine) {
		m.gen = gen
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// New returns a new machine
func New(store economy.Store, opts ...Option) *Machine {
	m := &Machine{
		store: store,
		gen:   rng.Crypto{},
		log:   logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SignUp creates a new account
func (m *Machine) SignUp(ctx context.Context, name, credential string) (*Account, error) {
	if name == "" {
		return nil, economy.ErrInvalidName
	}

	u, err := m.store.CreateUserIfUnique(ctx, name, credential)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"userID": u.ID,
		"name":   u.Name,
	}).Info("user signed up")

	return newAccount(u), nil
}

// SignIn returns the account matching name and credential
func (m *Machine) SignIn(ctx context.Context, name, credential string) (*Account, error) {
	u, err := m.store.Authenticate(ctx, name, credential)
	if err != nil {
		return nil, err
	}

	return newAccount(u), nil
}

func newAccount(u *economy.User) *Account {
	return &Account{
		ID:     u.ID,
		Name:   u.Name,
		Wallet: u.Wallet,
	}
}

// Status returns the user's wallet and the current pools
func (m *Machine) Status(ctx context.Context, userID string) (*Status, error) {
	u, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pools, err := m.store.GetPools(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		Wallet:      u.Wallet,
		WinPool:     pools.WinPool,
		HouseProfit: pools.HouseProfit,
	}, nil
}

// Start antes and deals a new round
func (m *Machine) Start(ctx context.Context, userID string, ante int64) (*Started, error) {
	u, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if ante <= 0 {
		return nil, economy.ErrInvalidAnte
	}

	if ante > u.Wallet {
		return nil, economy.ErrInsufficientFunds
	}

	pools, err := m.store.GetPools(ctx)
	if err != nil {
		return nil, err
	}

	// the pool must cover the best hand this ante can win
	if maxAnte := pools.WinPool / poker.MaxMultiplier; ante > maxAnte {
		return nil, economy.PoolTooSmall(maxAnte)
	}

	wallet, err := m.store.DebitWallet(ctx, userID, ante)
	if err != nil {
		return nil, err
	}

	// the ante is taken, so the round or its refund must land even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	log := m.log.WithFields(logrus.Fields{
		"userID": userID,
		"ante":   ante,
	})

	cards, err := deck.Deal(m.gen, poker.HandSize)
	if err != nil {
		_ = m.refund(ctx, log, userID, ante)
		return nil, fmt.Errorf("could not deal: %w", err)
	}

	roundID, err := m.store.CreateRound(ctx, userID, ante, cards)
	if err != nil {
		_ = m.refund(ctx, log, userID, ante)
		return nil, fmt.Errorf("could not create round: %w", err)
	}

	log.WithFields(logrus.Fields{
		"roundID": roundID,
		"cards":   deck.Hand(cards).String(),
	}).Info("round started")

	return &Started{
		RoundID: roundID,
		Cards:   cards,
		Wallet:  wallet,
		WinPool: pools.WinPool,
	}, nil
}

// DiscardCost returns what it costs to replace count cards in a round with the given ante
// Each card costs half the ante, truncated.
func DiscardCost(ante int64, count int) int64 {
	return ante * int64(count) / 2
}

// Discard pays to replace the cards at the given positions
// Positions outside the hand are paid for but change nothing. A repeated
// position is replaced again.
func (m *Machine) Discard(ctx context.Context, userID, roundID string, indices []int) (*Discarded, error) {
	round, err := m.store.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.UserID != userID {
		return nil, economy.ErrOwnerMismatch
	}

	if round.Status != economy.RoundActive {
		return nil, economy.ErrRoundNotActive
	}

	if len(indices) > poker.HandSize {
		return nil, economy.InvalidDiscard(fmt.Sprintf("at most %d cards can be discarded", poker.HandSize))
	}

	for _, idx := range indices {
		if idx < 0 {
			return nil, economy.InvalidDiscard(fmt.Sprintf("negative index %d", idx))
		}
	}

	cost := DiscardCost(round.Ante, len(indices))
	wallet, err := m.store.DebitWallet(ctx, userID, cost)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	log := m.log.WithFields(logrus.Fields{
		"userID":  userID,
		"roundID": roundID,
		"cost":    cost,
	})

	replacements, err := deck.Deal(m.gen, len(indices))
	if err != nil {
		_ = m.refund(ctx, log, userID, cost)
		return nil, fmt.Errorf("could not deal: %w", err)
	}

	cards := deck.Hand(round.Cards).Replace(indices, replacements)
	if err := m.store.ReplaceRoundCards(ctx, roundID, cards); err != nil {
		// revealed or gone since it was read
		_ = m.refund(ctx, log, userID, cost)
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"indices": indices,
		"cards":   cards.String(),
	}).Info("cards discarded")

	return &Discarded{
		Cards:    cards,
		Wallet:   wallet,
		TotalBet: round.Ante,
	}, nil
}

// Reveal evaluates the round's hand and settles it
// A round can only be revealed once.
func (m *Machine) Reveal(ctx context.Context, userID, roundID string) (*Revealed, error) {
	// ownership never changes, so checking it before the claim keeps a
	// stranger's request from consuming the round
	round, err := m.store.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.UserID != userID {
		return nil, economy.ErrOwnerMismatch
	}

	claimed, err := m.store.ClaimRoundForReveal(ctx, roundID)
	if err != nil {
		return nil, err
	}

	// the round is consumed, settlement must finish even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	rank, err := poker.Evaluate(claimed.Cards)
	if err != nil {
		return nil, fmt.Errorf("round %s holds an invalid hand: %w", roundID, err)
	}

	mult := poker.Multiplier(rank)
	log := m.log.WithFields(logrus.Fields{
		"userID":  userID,
		"roundID": roundID,
		"hand":    rank.String(),
	})

	if mult == 0 {
		return m.settleLoss(ctx, log, claimed, rank)
	}

	return m.settleWin(ctx, log, claimed, rank, mult)
}

func (m *Machine) settleLoss(ctx context.Context, log logrus.FieldLogger, round *economy.Round, rank poker.HandRank) (*Revealed, error) {
	house := round.Ante * HouseCutPercent / 100
	pools, err := m.store.AdjustPools(ctx, round.Ante-house, house)
	if err != nil {
		return nil, fmt.Errorf("could not split ante: %w", err)
	}

	u, err := m.store.GetUser(ctx, round.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not get user after reveal: %w", err)
	}

	log.Info("round lost")

	return &Revealed{
		Wallet:      u.Wallet,
		WinPool:     pools.WinPool,
		HouseProfit: pools.HouseProfit,
		HandRank:    rank.String(),
	}, nil
}

func (m *Machine) settleWin(ctx context.Context, log logrus.FieldLogger, round *economy.Round, rank poker.HandRank, mult int64) (*Revealed, error) {
	payout := round.Ante * mult
	log = log.WithField("payout", payout)

	pools, err := m.store.DebitWinPool(ctx, payout)
	if errors.Is(err, economy.ErrPoolInsufficient) {
		if err := m.refund(ctx, log, round.UserID, round.Ante); err != nil {
			// not an *economy.Error, so the player sees an internal error rather than a refund
			return nil, fmt.Errorf("could not refund ante after win pool shortfall: %v", err)
		}

		log.Warn("win pool could not cover payout, ante refunded")
		return nil, economy.ErrPoolShortfall
	} else if err != nil {
		return nil, err
	}

	wallet, err := m.store.CreditWallet(ctx, round.UserID, payout)
	if err != nil {
		return nil, fmt.Errorf("could not pay out %d: %w", payout, err)
	}

	log.Info("round won")

	return &Revealed{
		Wallet:      wallet,
		WinPool:     pools.WinPool,
		HouseProfit: pools.HouseProfit,
		HandRank:    rank.String(),
		Multiplier:  mult,
		Payout:      payout,
	}, nil
}

// refund credits amount back to the user
// A failed refund is logged here, callers already returning an error may ignore it.
func (m *Machine) refund(ctx context.Context, log logrus.FieldLogger, userID string, amount int64) error {
	if _, err := m.store.CreditWallet(ctx, userID, amount); err != nil {
		log.WithError(err).WithField("amount", amount).Error("could not refund")
		return err
	}

	return nil
}

// PayTable returns the multipliers paid by the machine
func (m *Machine) PayTable() []poker.PayTableRow {
	return poker.PayTable()
}
