package cli

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/videopoker"
)

func TestOutput_hand(t *testing.T) {
	pterm.DisableColor()

	var buf bytes.Buffer
	NewOutput("text", &buf).Print(&videopoker.Started{
		RoundID: "r-1",
		Cards:   deck.CardsFromString("10h,11h,12h,13h,14h"),
		Wallet:  990,
		WinPool: 500,
	})

	out := buf.String()
	assert.Contains(t, out, "ROUND r-1")
	assert.Contains(t, out, "10♡")
	assert.Contains(t, out, "A♡")
	assert.Contains(t, out, "Wallet: 990   Win pool: 500")
}

func TestOutput_revealed(t *testing.T) {
	pterm.DisableColor()

	var buf bytes.Buffer
	NewOutput("text", &buf).Print(&videopoker.Revealed{HandRank: "TwoPair", Multiplier: 2, Payout: 20, Wallet: 1010})
	assert.Contains(t, buf.String(), "TwoPair pays 2x, won 20")

	buf.Reset()
	NewOutput("text", &buf).Print(&videopoker.Revealed{HandRank: "HighCard"})
	assert.Contains(t, buf.String(), "HighCard, no payout")
}

func TestOutput_jsonFallback(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(map[string]int{"a": 1})
	assert.JSONEq(t, `{"a":1}`, buf.String())
}
