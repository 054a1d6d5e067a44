package poker

import "videopoker-server/pkg/deck"

// MaxMultiplier is the largest multiplier in the pay table
const MaxMultiplier int64 = 50

// JacksOrBetter is the lowest pair rank that pays
const JacksOrBetter = deck.Jack

var multipliers = map[Hand]int64{
	HighCard:      0,
	OnePair:       1,
	TwoPair:       2,
	ThreeOfAKind:  3,
	Straight:      5,
	Flush:         6,
	FullHouse:     9,
	FourOfAKind:   25,
	StraightFlush: 50,
}

// Multiplier returns the payout multiplier for the hand rank
// Zero means the hand lost
func Multiplier(r HandRank) int64 {
	if r.Hand == OnePair && r.PairRank < JacksOrBetter {
		return 0
	}

	return multipliers[r.Hand]
}

// PayTableRow is a single line of the pay table
type PayTableRow struct {
	Hand       string `json:"hand"`
	Multiplier int64  `json:"multiplier"`
}

// PayTable returns the pay table from the best hand to the worst
func PayTable() []PayTableRow {
	rows := make([]PayTableRow, 0, len(multipliers))
	for h := StraightFlush; h >= HighCard; h-- {
		name := h.String()
		if h == OnePair {
			name = "Jacks or better"
		}

		rows = append(rows, PayTableRow{
			Hand:       name,
			Multiplier: multipliers[h],
		})
	}

	return rows
}
