package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_bookkeeping(t *testing.T) {
	six, _ := CardFromCode("6H")
	seven, _ := CardFromCode("7D")
	king, _ := CardFromCode("KS")

	cards := []*CardInstance{
		{Card: six, OwnerID: 1, Pile: PileHand},
		{Card: seven, OwnerID: 1, Pile: PileFaceUp},
		{Card: king, Pile: PileDeck},
	}

	r := NewRegistry(cards)

	assert.Equal(t, 3, r.Size())
	assert.Equal(t, 1, r.CountIn(1, PileHand))
	assert.Equal(t, 0, r.CountIn(2, PileHand))
	assert.Len(t, r.CardsOf(1, PileFaceUp), 1)
	assert.Len(t, r.CardsIn(PileDeck), 1)
	assert.Nil(t, r.TopOfPlayedPile())

	// cards in the deck are not findable as owned cards
	assert.Nil(t, r.Find(1, "KS"))
	assert.Equal(t, cards[0], r.Find(1, "6H"))
}

func TestRegistry_MoveCard(t *testing.T) {
	six, _ := CardFromCode("6H")
	seven, _ := CardFromCode("7D")

	a := &CardInstance{Card: six, OwnerID: 1, Pile: PileHand}
	b := &CardInstance{Card: seven, OwnerID: 1, Pile: PileHand}
	r := NewRegistry([]*CardInstance{a, b})

	r.MoveCard(a, PilePlayed, 1)
	assert.Equal(t, PilePlayed, a.Pile)
	assert.Equal(t, int64(0), a.OwnerID, "shared piles clear the owner")
	assert.Equal(t, a, r.TopOfPlayedPile())

	r.MoveCard(b, PilePlayed, 0)
	assert.Equal(t, b, r.TopOfPlayedPile(), "most recent move is on top")
	assert.Greater(t, b.Seq, a.Seq)

	r.MoveCard(a, PileHand, 2)
	assert.Equal(t, int64(2), a.OwnerID)
}

// the sequence counter must survive a save/load round trip so the played
// pile keeps its order
func TestRegistry_restoreSequence(t *testing.T) {
	six, _ := CardFromCode("6H")
	seven, _ := CardFromCode("7D")

	a := &CardInstance{Card: six, Pile: PilePlayed, Seq: 10}
	b := &CardInstance{Card: seven, OwnerID: 1, Pile: PileHand, Seq: 4}
	r := NewRegistry([]*CardInstance{a, b})

	r.MoveCard(b, PilePlayed, 0)
	assert.Equal(t, int64(11), b.Seq)
	assert.Equal(t, b, r.TopOfPlayedPile())
}
