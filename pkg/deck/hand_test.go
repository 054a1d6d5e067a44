package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_HasCard(t *testing.T) {
	hand := Hand(CardsFromString("2c,3c,4d"))
	assert.True(t, hand.HasCard(CardFromString("3c")))
	assert.False(t, hand.HasCard(CardFromString("3s")))
}

func TestHand_Replace(t *testing.T) {
	a := assert.New(t)
	hand := Hand(CardsFromString("2c,3c,4d,5h,6s"))

	replaced := hand.Replace([]int{0, 4}, CardsFromString("14s,13s"))
	a.Equal("14s,3c,4d,5h,13s", CardsToString(replaced))
	a.Equal("2c,3c,4d,5h,6s", CardsToString(hand), "original hand is not modified")

	// repeated index keeps the last replacement
	replaced = hand.Replace([]int{1, 1}, CardsFromString("10h,11h"))
	a.Equal("2c,11h,4d,5h,6s", CardsToString(replaced))

	// out of range indices are skipped
	replaced = hand.Replace([]int{7, -1, 2}, CardsFromString("10h,11h,12h"))
	a.Equal("2c,3c,12h,5h,6s", CardsToString(replaced))

	// missing replacements stop the loop
	replaced = hand.Replace([]int{0, 1}, CardsFromString("10h"))
	a.Equal("10h,3c,4d,5h,6s", CardsToString(replaced))
}

func TestHand_String(t *testing.T) {
	hand := Hand(CardsFromString("3s,2c,14c,10d,11h"))
	assert.Equal(t, "3♠ 2♣ A♣ 10♢ J♡", hand.String())
	assert.Equal(t, "", Hand{}.String())
}
