package deck

import (
	"errors"

	"videopoker-server/internal/rng"
)

// ErrEndOfDeck is an error when more cards are requested than the deck holds
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle performs a Fisher-Yates shuffle over the remaining cards
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// Deal removes n cards from the top of the deck
// The deck is left untouched if it cannot supply n cards
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || !d.CanDraw(n) {
		return nil, ErrEndOfDeck
	}

	cards := make([]Card, n)
	copy(cards, d.Cards[:n])
	d.Cards = d.Cards[n:]

	return cards, nil
}

// Deal shuffles a fresh deck and deals n cards from it
func Deal(gen rng.Generator, n int) ([]Card, error) {
	d := New()
	d.Shuffle(gen)
	return d.Deal(n)
}
