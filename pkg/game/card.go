package game

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Suit represents a card suit
type Suit string

// suit constants, matching the labels used by the deck provider
const (
	Hearts   Suit = "HEARTS"
	Clubs    Suit = "CLUBS"
	Diamonds Suit = "DIAMONDS"
	Spades   Suit = "SPADES"
)

// Rank represents a card rank as labeled by the deck provider
type Rank string

// rank constants
const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "JACK"
	Queen Rank = "QUEEN"
	King  Rank = "KING"
	Ace   Rank = "ACE"
)

// WildcardRank can be played on any card, and any card can be played on it
const WildcardRank = Six

// ClearRank discards the played pile and grants the player an extra turn
const ClearRank = Ten

// Card is an identity of a playing card as supplied by the deck source.
// A Card is immutable once created.
type Card struct {
	// Code uniquely identifies the card, e.g. "6H" or "0D" (ten of diamonds)
	Code string `json:"code"`
	Rank Rank   `json:"rank"`
	Suit Suit   `json:"suit"`
	// Image is an opaque display reference passed through to clients
	Image string `json:"image"`
}

// Value returns the comparison value of the rank.
// Note a ten outranks everything since it clears the pile.
func (r Rank) Value() int {
	switch r {
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return int(r[0] - '0')
	case Ten:
		return 15
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}

	panic(fmt.Sprintf("unknown rank: %s", r))
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, strings.Title(strings.ToLower(string(c.Suit))))
}

var cardRx = regexp.MustCompile(`(?i)^([02-9JQKA])([CDHS])\z`)

// CardFromCode returns a Card from a two-character code in the deck
// provider's format: rank character ("0" means ten) followed by suit initial.
func CardFromCode(code string) (Card, error) {
	match := cardRx.FindStringSubmatch(code)
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card code: %q", code)
	}

	var rank Rank
	switch r := strings.ToUpper(match[1]); r {
	case "0":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		rank = Rank(r)
	}

	var suit Suit
	switch strings.ToUpper(match[2]) {
	case "C":
		suit = Clubs
	case "D":
		suit = Diamonds
	case "H":
		suit = Hearts
	case "S":
		suit = Spades
	}

	return Card{
		Code: strings.ToUpper(code),
		Rank: rank,
		Suit: suit,
	}, nil
}

// CardInstance is a physical card in a single game. There are exactly 52 per
// game; instances are only ever moved between piles, never destroyed.
type CardInstance struct {
	Card Card `json:"card"`
	// OwnerID is non-zero iff Pile is one of Hand, FaceUp or FaceDown
	OwnerID int64 `json:"ownerId,omitempty"`
	Pile    Pile  `json:"pile"`
	// Seq orders the played pile; the top card has the highest Seq
	Seq          int64     `json:"seq"`
	LastModified time.Time `json:"lastModified"`
}
