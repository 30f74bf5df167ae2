package game

import (
	"testing"

	"pickupsixes-server/pkg/snapshot"
)

func TestGame_State_snapshot(t *testing.T) {
	g := buildGame(t, []int64{1, 2}, []pileSpec{
		{1, PileHand, []string{"7H", "6C"}},
		{1, PileFaceUp, []string{"QD"}},
		{2, PileHand, []string{"2C"}},
		{0, PilePlayed, []string{"3S", "5H"}},
		{0, PileDeck, []string{"AD"}},
	}, 1)

	snapshot.Validate(t, g.State())
}
