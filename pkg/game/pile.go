package game

// Pile is one of the six locations a card instance can be in
type Pile string

// pile constants, stored as-is in the cards table
const (
	PileDeck      Pile = "in_deck"
	PileHand      Pile = "hand"
	PileFaceUp    Pile = "face_up"
	PileFaceDown  Pile = "face_down"
	PilePlayed    Pile = "played"
	PileDiscarded Pile = "discarded"
)

// IsOwned returns true if cards in the pile belong to a player
func (p Pile) IsOwned() bool {
	return p == PileHand || p == PileFaceUp || p == PileFaceDown
}

// playablePiles is the order piles must be exhausted in before the next
// becomes eligible for play
var playablePiles = []Pile{PileHand, PileFaceUp, PileFaceDown}
