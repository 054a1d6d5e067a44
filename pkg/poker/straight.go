package poker

import "videopoker-server/pkg/deck"

// wheel is the only straight where the ace plays low
var wheel = [HandSize]int{2, 3, 4, 5, deck.Ace}

// isStraight expects the distinct ranks of a hand sorted ascending
// A hand with a repeated rank never forms a straight
func isStraight(ranks []int) bool {
	if len(ranks) != HandSize {
		return false
	}

	if ranks[HandSize-1]-ranks[0] == HandSize-1 {
		return true
	}

	for i, rank := range ranks {
		if wheel[i] != rank {
			return false
		}
	}

	return true
}
