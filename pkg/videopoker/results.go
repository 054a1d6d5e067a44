package videopoker

import (
	"videopoker-server/pkg/deck"
)

// Account is the public view of a user
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Wallet int64  `json:"wallet"`
}

// Status is a user's wallet next to the shared pools
type Status struct {
	Wallet      int64 `json:"wallet"`
	WinPool     int64 `json:"win_pool"`
	HouseProfit int64 `json:"house_profit"`
}

// Started is the result of starting a round
type Started struct {
	RoundID string      `json:"round_id"`
	Cards   []deck.Card `json:"cards"`
	Wallet  int64       `json:"wallet"`
	WinPool int64       `json:"win_pool"`
}

// Discarded is the result of a discard
// TotalBet is the ante. The discard cost only comes out of the wallet.
type Discarded struct {
	Cards    []deck.Card `json:"cards"`
	Wallet   int64       `json:"wallet"`
	TotalBet int64       `json:"total_bet"`
}

// Revealed is the result of revealing a round
type Revealed struct {
	Wallet      int64  `json:"wallet"`
	WinPool     int64  `json:"win_pool"`
	HouseProfit int64  `json:"house_profit"`
	HandRank    string `json:"hand_rank"`
	Multiplier  int64  `json:"multiplier"`
	Payout      int64  `json:"payout"`
}
