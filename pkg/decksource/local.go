package decksource

import (
	"context"
	"fmt"

	"pickupsixes-server/internal/rng"
	"pickupsixes-server/pkg/game"
)

// Local builds and shuffles a standard 52-card deck in process. It is used
// when no deck provider is configured, and as a deterministic source in
// tests when given a seeded generator.
type Local struct {
	rand rng.Generator
}

// NewLocal returns a local deck source
func NewLocal(generator rng.Generator) *Local {
	return &Local{rand: generator}
}

// ShuffledDeck returns a freshly shuffled standard deck
func (l *Local) ShuffledDeck(_ context.Context) ([]game.Card, error) {
	cards := make([]game.Card, 0, deckSize)
	for _, suit := range []string{"C", "D", "H", "S"} {
		for _, rank := range []string{"2", "3", "4", "5", "6", "7", "8", "9", "0", "J", "Q", "K", "A"} {
			card, err := game.CardFromCode(rank + suit)
			if err != nil {
				return nil, err
			}

			card.Image = fmt.Sprintf("https://deckofcardsapi.com/static/img/%s.png", card.Code)
			cards = append(cards, card)
		}
	}

	for j := len(cards) - 1; j > 0; j-- {
		i := l.rand.Intn(j + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return cards, nil
}
