package decksource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"pickupsixes-server/pkg/game"
)

// Source provides a freshly shuffled 52-card sequence for a new game
type Source interface {
	// ShuffledDeck returns the shuffled cards in draw order
	ShuffledDeck(ctx context.Context) ([]game.Card, error)
}

const deckSize = 52

// API fetches shuffled decks from a deckofcardsapi.com compatible provider
type API struct {
	baseURL string
	client  *http.Client
}

// NewAPI returns a deck source backed by the remote provider at baseURL
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Second * 10},
	}
}

type newDeckResponse struct {
	Success bool   `json:"success"`
	DeckID  string `json:"deck_id"`
}

type drawResponse struct {
	Success bool `json:"success"`
	Cards   []struct {
		Code  string `json:"code"`
		Image string `json:"image"`
		Value string `json:"value"`
		Suit  string `json:"suit"`
	} `json:"cards"`
}

// ShuffledDeck creates a new shuffled deck on the provider and draws all 52
// cards from it
func (a *API) ShuffledDeck(ctx context.Context) ([]game.Card, error) {
	var deck newDeckResponse
	if err := a.getJSON(ctx, fmt.Sprintf("%s/api/deck/new/shuffle/", a.baseURL), &deck); err != nil {
		return nil, err
	}

	if !deck.Success || deck.DeckID == "" {
		return nil, fmt.Errorf("deck provider could not create a deck")
	}

	var draw drawResponse
	url := fmt.Sprintf("%s/api/deck/%s/draw/?count=%d", a.baseURL, deck.DeckID, deckSize)
	if err := a.getJSON(ctx, url, &draw); err != nil {
		return nil, err
	}

	if !draw.Success || len(draw.Cards) < deckSize {
		return nil, fmt.Errorf("deck provider returned %d cards; expected %d", len(draw.Cards), deckSize)
	}

	cards := make([]game.Card, len(draw.Cards))
	for i, c := range draw.Cards {
		cards[i] = game.Card{
			Code:  c.Code,
			Rank:  game.Rank(c.Value),
			Suit:  game.Suit(c.Suit),
			Image: c.Image,
		}
	}

	logrus.WithField("deckId", deck.DeckID).Debug("fetched shuffled deck")
	return cards, nil
}

func (a *API) getJSON(ctx context.Context, url string, payload interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deck provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(payload)
}
