package poker

import (
	"errors"
	"fmt"
	"sort"

	"videopoker-server/pkg/deck"
)

// HandSize is the number of cards in a video poker hand
const HandSize = 5

// ErrHandSize is returned when a hand does not hold exactly five cards
var ErrHandSize = errors.New("a hand must have exactly five cards")

// ErrInvalidCard is returned when a hand holds a card outside the deck, or the same card twice
var ErrInvalidCard = errors.New("invalid card in hand")

// shape is the count of cards per rank, sorted from most to least
type shape []int

func (s shape) is(counts ...int) bool {
	if len(s) != len(counts) {
		return false
	}

	for i, c := range counts {
		if s[i] != c {
			return false
		}
	}

	return true
}

// Evaluate classifies exactly five cards into a HandRank
func Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) != HandSize {
		return HandRank{}, ErrHandSize
	}

	seen := make(deck.Hand, 0, HandSize)
	for _, card := range cards {
		if !card.Valid() || seen.HasCard(card) {
			return HandRank{}, fmt.Errorf("%w: %s", ErrInvalidCard, card)
		}

		seen = append(seen, card)
	}

	counts := make(map[int]int, HandSize)
	flush := true
	for _, card := range cards {
		counts[card.Rank]++
		if card.Suit != cards[0].Suit {
			flush = false
		}
	}

	ranks := make([]int, 0, len(counts))
	s := make(shape, 0, len(counts))
	for rank, n := range counts {
		ranks = append(ranks, rank)
		s = append(s, n)
	}
	sort.Ints(ranks)
	sort.Sort(sort.Reverse(sort.IntSlice(s)))

	straight := isStraight(ranks)

	// the order of these checks matters
	switch {
	case straight && flush:
		return HandRank{Hand: StraightFlush}, nil
	case s.is(4, 1):
		return HandRank{Hand: FourOfAKind}, nil
	case s.is(3, 2):
		return HandRank{Hand: FullHouse}, nil
	case flush:
		return HandRank{Hand: Flush}, nil
	case straight:
		return HandRank{Hand: Straight}, nil
	case s.is(3, 1, 1):
		return HandRank{Hand: ThreeOfAKind}, nil
	case s.is(2, 2, 1):
		return HandRank{Hand: TwoPair}, nil
	case s.is(2, 1, 1, 1):
		for rank, n := range counts {
			if n == 2 {
				return HandRank{Hand: OnePair, PairRank: rank}, nil
			}
		}
	}

	return HandRank{Hand: HighCard}, nil
}
