package poker

import (
	"fmt"
	"strings"
)

type Suit uint8

const (
	Spade Suit = iota
	Club
	Heart
	Diamond
)

type Value uint8

const (
	Two Value = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	valueChars = "23456789TJQKA"
	suitChars  = "schd"
)

// DeckSize is the number of distinct cards, and so the number of card edges a
// chance node can have.
const DeckSize = 52

// Card packs value and suit into a single byte: value*4 + suit.
type Card uint8

func NewCard(value Value, suit Suit) Card {
	return Card(uint8(value)*4 + uint8(suit))
}

func (c Card) Value() Value { return Value(c / 4) }

func (c Card) Suit() Suit { return Suit(c % 4) }

// Index is the card's position in a sorted deck, 0..51.
func (c Card) Index() int { return int(c) }

func (c Card) String() string {
	if int(c) >= DeckSize {
		return "??"
	}
	return string(valueChars[c.Value()]) + string(suitChars[c.Suit()])
}

// ParseCard reads cards written like "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	v := strings.IndexByte(valueChars, strings.ToUpper(s[:1])[0])
	u := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if v < 0 || u < 0 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	return NewCard(Value(v), Suit(u)), nil
}

// NewDeck returns all 52 cards in index order.
func NewDeck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}
