// Package storetest holds the behavior every economy.Store must share
package storetest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/economy"
)

// InitialWinPool is the win pool every store under test starts with
const InitialWinPool int64 = 50_000

// Options returns store options that keep hashing cheap
func Options() economy.Options {
	return economy.Options{
		StartingWallet: economy.DefaultStartingWallet,
		InitialWinPool: InitialWinPool,
		Credentials:    economy.BcryptCredentials{Cost: bcrypt.MinCost},
	}
}

// Suite runs the store contract against the store returned by NewStore
// NewStore is called before each test and must return an empty store built with Options()
type Suite struct {
	suite.Suite
	NewStore func() economy.Store

	store economy.Store
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *Suite) createUser(name string) *economy.User {
	u, err := s.store.CreateUserIfUnique(s.ctx, name, "secret")
	s.Require().NoError(err)
	return u
}

func (s *Suite) createRound(userID string, ante int64) string {
	id, err := s.store.CreateRound(s.ctx, userID, ante, deck.CardsFromString("2c,3d,4h,5s,14c"))
	s.Require().NoError(err)
	return id
}

// User tests

func (s *Suite) TestCreateUserIfUnique() {
	u := s.createUser("alice")
	s.NotEmpty(u.ID)
	s.Equal("alice", u.Name)
	s.Equal(economy.DefaultStartingWallet, u.Wallet)
	s.NotEqual("secret", u.Credential)

	_, err := s.store.CreateUserIfUnique(s.ctx, "alice", "other")
	s.ErrorIs(err, economy.ErrDuplicateName)

	other := s.createUser("bob")
	s.NotEqual(u.ID, other.ID)
}

func (s *Suite) TestCreateUserIfUnique_concurrent() {
	var wg sync.WaitGroup
	var created int32

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.store.CreateUserIfUnique(s.ctx, "racer", "secret"); err == nil {
				atomic.AddInt32(&created, 1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created)
}

func (s *Suite) TestAuthenticate() {
	u := s.createUser("alice")

	got, err := s.store.Authenticate(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal(u.Wallet, got.Wallet)

	_, err = s.store.Authenticate(s.ctx, "alice", "wrong")
	s.ErrorIs(err, economy.ErrInvalidCredentials)

	_, err = s.store.Authenticate(s.ctx, "nobody", "secret")
	s.ErrorIs(err, economy.ErrInvalidCredentials)
}

func (s *Suite) TestGetUser() {
	u := s.createUser("alice")

	got, err := s.store.GetUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(*u, *got)

	_, err = s.store.GetUser(s.ctx, "missing")
	s.ErrorIs(err, economy.ErrUserNotFound)
}

// Wallet tests

func (s *Suite) TestDebitWallet() {
	u := s.createUser("alice")

	wallet, err := s.store.DebitWallet(s.ctx, u.ID, 10)
	s.Require().NoError(err)
	s.Equal(int64(990), wallet)

	_, err = s.store.DebitWallet(s.ctx, u.ID, 991)
	s.ErrorIs(err, economy.ErrInsufficientFunds)

	wallet, err = s.store.DebitWallet(s.ctx, u.ID, 990)
	s.Require().NoError(err)
	s.Equal(int64(0), wallet)

	_, err = s.store.DebitWallet(s.ctx, u.ID, -1)
	s.ErrorIs(err, economy.ErrInvalidAmount)

	_, err = s.store.DebitWallet(s.ctx, "missing", 1)
	s.ErrorIs(err, economy.ErrUserNotFound)
}

func (s *Suite) TestDebitWallet_concurrent() {
	u := s.createUser("alice")

	var wg sync.WaitGroup
	var succeeded int32
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.store.DebitWallet(s.ctx, u.ID, 100); err == nil {
				atomic.AddInt32(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(10), succeeded)

	got, err := s.store.GetUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), got.Wallet)
}

func (s *Suite) TestCreditWallet() {
	u := s.createUser("alice")

	wallet, err := s.store.CreditWallet(s.ctx, u.ID, 250)
	s.Require().NoError(err)
	s.Equal(int64(1250), wallet)

	_, err = s.store.CreditWallet(s.ctx, "missing", 1)
	s.ErrorIs(err, economy.ErrUserNotFound)

	_, err = s.store.CreditWallet(s.ctx, u.ID, -1)
	s.ErrorIs(err, economy.ErrInvalidAmount)
}

// Round tests

func (s *Suite) TestCreateAndGetRound() {
	u := s.createUser("alice")
	id := s.createRound(u.ID, 10)

	r, err := s.store.GetRound(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, r.ID)
	s.Equal(u.ID, r.UserID)
	s.Equal(int64(10), r.Ante)
	s.Equal(economy.RoundActive, r.Status)
	s.Equal(deck.CardsFromString("2c,3d,4h,5s,14c"), r.Cards)

	_, err = s.store.GetRound(s.ctx, "missing")
	s.ErrorIs(err, economy.ErrRoundNotFound)
}

func (s *Suite) TestGetRound_snapshot() {
	u := s.createUser("alice")
	id := s.createRound(u.ID, 10)

	r, err := s.store.GetRound(s.ctx, id)
	s.Require().NoError(err)
	r.Cards[0] = deck.CardFromString("14s")

	again, err := s.store.GetRound(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(deck.CardFromString("2c"), again.Cards[0])
}

func (s *Suite) TestReplaceRoundCards() {
	u := s.createUser("alice")
	id := s.createRound(u.ID, 10)

	err := s.store.ReplaceRoundCards(s.ctx, id, deck.CardsFromString("10h,11h,12h,13h,14h"))
	s.Require().NoError(err)

	r, err := s.store.GetRound(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("10h,11h,12h,13h,14h", deck.CardsToString(r.Cards))
	s.Equal(int64(10), r.Ante)

	s.ErrorIs(s.store.ReplaceRoundCards(s.ctx, "missing", r.Cards), economy.ErrRoundNotFound)

	_, err = s.store.ClaimRoundForReveal(s.ctx, id)
	s.Require().NoError(err)
	s.ErrorIs(s.store.ReplaceRoundCards(s.ctx, id, r.Cards), economy.ErrRoundNotActive)
}

func (s *Suite) TestClaimRoundForReveal() {
	u := s.createUser("alice")
	id := s.createRound(u.ID, 10)

	claimed, err := s.store.ClaimRoundForReveal(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(economy.RoundActive, claimed.Status, "returns the pre-transition snapshot")
	s.Equal(u.ID, claimed.UserID)
	s.Equal(int64(10), claimed.Ante)
	s.Len(claimed.Cards, 5)

	r, err := s.store.GetRound(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(economy.RoundRevealed, r.Status)

	_, err = s.store.ClaimRoundForReveal(s.ctx, id)
	s.ErrorIs(err, economy.ErrRoundNotActive)

	_, err = s.store.ClaimRoundForReveal(s.ctx, "missing")
	s.ErrorIs(err, economy.ErrRoundNotFound)
}

func (s *Suite) TestClaimRoundForReveal_concurrent() {
	u := s.createUser("alice")
	id := s.createRound(u.ID, 10)

	var wg sync.WaitGroup
	var claimed, rejected int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.ClaimRoundForReveal(s.ctx, id)
			switch {
			case err == nil:
				atomic.AddInt32(&claimed, 1)
			case economy.KindOf(err) == economy.KindValidation:
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), claimed)
	s.Equal(int32(19), rejected)
}

// Pool tests

func (s *Suite) TestGetPools() {
	pools, err := s.store.GetPools(s.ctx)
	s.Require().NoError(err)
	s.Equal(economy.Pools{WinPool: InitialWinPool}, pools)
}

func (s *Suite) TestAdjustPools() {
	pools, err := s.store.AdjustPools(s.ctx, 75, 25)
	s.Require().NoError(err)
	s.Equal(economy.Pools{WinPool: InitialWinPool + 75, HouseProfit: 25}, pools)

	pools, err = s.store.AdjustPools(s.ctx, 0, -26)
	s.ErrorIs(err, economy.ErrPoolInsufficient)
	s.Equal(economy.Pools{WinPool: InitialWinPool + 75, HouseProfit: 25}, pools)

	got, err := s.store.GetPools(s.ctx)
	s.Require().NoError(err)
	s.Equal(pools, got)
}

func (s *Suite) TestDebitWinPool() {
	pools, err := s.store.DebitWinPool(s.ctx, 1000)
	s.Require().NoError(err)
	s.Equal(InitialWinPool-1000, pools.WinPool)

	_, err = s.store.DebitWinPool(s.ctx, InitialWinPool)
	s.ErrorIs(err, economy.ErrPoolInsufficient)

	got, err := s.store.GetPools(s.ctx)
	s.Require().NoError(err)
	s.Equal(InitialWinPool-1000, got.WinPool)

	_, err = s.store.DebitWinPool(s.ctx, -1)
	s.ErrorIs(err, economy.ErrInvalidAmount)
}

func (s *Suite) TestDebitWinPool_concurrent() {
	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.store.DebitWinPool(s.ctx, 1000)
		}()
	}
	wg.Wait()

	pools, err := s.store.GetPools(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), pools.WinPool)
}
