package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// Suits lists every suit in deck order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Card is an individual playing card
// Cards are values and are never mutated once dealt
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// rank bounds
const (
	MinRank = 2
	MaxRank = Ace
)

func (c Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// Valid returns true if the rank and suit are a real card
func (c Card) Valid() bool {
	if c.Rank < MinRank || c.Rank > MaxRank {
		return false
	}

	switch c.Suit {
	case Clubs, Diamonds, Hearts, Spades:
		return true
	}

	return false
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// ParseCard returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	// the regexp guarantees a number
	rank, _ := strconv.Atoi(match[1])

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a comma separated list of cards, i.e., 2c,3h,14s
func ParseCards(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		card, err := ParseCard(part)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardFromString is like ParseCard, but panics on a bad card
// It is intended for tests and fixtures
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString is like ParseCards, but panics on a bad card
func CardsFromString(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
