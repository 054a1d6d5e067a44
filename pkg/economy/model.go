package economy

import (
	"videopoker-server/pkg/deck"
)

// DefaultStartingWallet is the balance a new user receives
const DefaultStartingWallet int64 = 1000

// User is a player account
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Credential is the hashed secret, never the secret itself
	Credential string `json:"-"`
	Wallet     int64  `json:"wallet"`
}

// RoundStatus is the lifecycle state of a round
type RoundStatus string

// round statuses
const (
	RoundActive   RoundStatus = "active"
	RoundRevealed RoundStatus = "revealed"
)

// Round is a single hand of video poker
type Round struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	Cards  []deck.Card `json:"cards"`
	Ante   int64       `json:"ante"`
	Status RoundStatus `json:"status"`
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	cp := *r
	cp.Cards = make([]deck.Card, len(r.Cards))
	copy(cp.Cards, r.Cards)
	return &cp
}

// Pools are the shared house balances
type Pools struct {
	WinPool     int64 `json:"winPool"`
	HouseProfit int64 `json:"houseProfit"`
}
