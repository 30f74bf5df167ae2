package game

// CanPlayOn returns true if the card may legally be played on top of the
// current top of the played pile. A nil top means the pile is empty, which is
// always legal. A six is a wildcard in both directions: it can be played on
// anything, and anything can be played on it. Otherwise the card must have a
// value at least as high as the top card.
func CanPlayOn(card Card, top *CardInstance) bool {
	if top == nil {
		return true
	}

	if card.Rank == WildcardRank || top.Card.Rank == WildcardRank {
		return true
	}

	return card.Rank.Value() >= top.Card.Rank.Value()
}
