package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromCode(t *testing.T) {
	card, err := CardFromCode("6H")
	assert.NoError(t, err)
	assert.Equal(t, Card{Code: "6H", Rank: Six, Suit: Hearts}, card)

	card, err = CardFromCode("0D")
	assert.NoError(t, err)
	assert.Equal(t, Card{Code: "0D", Rank: Ten, Suit: Diamonds}, card)

	card, err = CardFromCode("as")
	assert.NoError(t, err)
	assert.Equal(t, Card{Code: "AS", Rank: Ace, Suit: Spades}, card)

	for _, bad := range []string{"", "1H", "10D", "6X", "66", "AHH"} {
		_, err := CardFromCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestRank_Value(t *testing.T) {
	expected := map[Rank]int{
		Two:   2,
		Three: 3,
		Four:  4,
		Five:  5,
		Six:   6,
		Seven: 7,
		Eight: 8,
		Nine:  9,
		Jack:  11,
		Queen: 12,
		King:  13,
		Ace:   14,
		Ten:   15,
	}

	for rank, value := range expected {
		assert.Equal(t, value, rank.Value(), string(rank))
	}

	assert.Panics(t, func() {
		Rank("JOKER").Value()
	})
}

func TestCard_String(t *testing.T) {
	card, _ := CardFromCode("QS")
	assert.Equal(t, "QUEEN of Spades", card.String())
}
