package poker

import (
	"fmt"
)

// Hand is a poker hand tier, i.e., full house
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the string representation of a hand
func (h Hand) String() string {
	switch h {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// label is the compact identifier used on the wire
func (h Hand) label() string {
	switch h {
	case HighCard:
		return "HighCard"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "TwoPair"
	case ThreeOfAKind:
		return "Trips"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "FullHouse"
	case FourOfAKind:
		return "FourKind"
	case StraightFlush:
		return "StraightFlush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// HandRank is the classification of five cards
// PairRank is only set for OnePair and holds the rank of the paired cards
type HandRank struct {
	Hand     Hand
	PairRank int
}

// String returns the wire label of the rank, i.e., Pair(11) or FullHouse
func (r HandRank) String() string {
	if r.Hand == OnePair {
		return fmt.Sprintf("%s(%d)", r.Hand.label(), r.PairRank)
	}

	return r.Hand.label()
}
