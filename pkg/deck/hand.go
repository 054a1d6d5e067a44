package deck

import (
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Replace returns a copy of the hand where position indices[i] holds replacements[i]
// Indices outside the hand are skipped. A repeated index is overwritten again by the
// later replacement.
func (h Hand) Replace(indices []int, replacements []Card) Hand {
	newHand := make(Hand, len(h))
	copy(newHand, h)

	for i, idx := range indices {
		if i >= len(replacements) {
			break
		}

		if idx < 0 || idx >= len(newHand) {
			continue
		}

		newHand[idx] = replacements[i]
	}

	return newHand
}

func (h Hand) String() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}
