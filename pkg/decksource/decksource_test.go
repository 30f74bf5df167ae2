package decksource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pickupsixes-server/internal/rng"
	"pickupsixes-server/pkg/game"
)

func deckProviderStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/deck/new/shuffle/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"deck_id":"abc123","shuffled":true,"remaining":52}`)
	})
	mux.HandleFunc("/api/deck/abc123/draw/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52", r.URL.Query().Get("count"))

		cards, err := NewLocal(rng.NewSeeded(1)).ShuffledDeck(r.Context())
		assert.NoError(t, err)

		fmt.Fprint(w, `{"success":true,"cards":[`)
		for i, c := range cards {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"code":%q,"image":%q,"value":%q,"suit":%q}`, c.Code, c.Image, c.Rank, c.Suit)
		}
		fmt.Fprint(w, `]}`)
	})

	return httptest.NewServer(mux)
}

func TestAPI_ShuffledDeck(t *testing.T) {
	ts := deckProviderStub(t)
	defer ts.Close()

	cards, err := NewAPI(ts.URL).ShuffledDeck(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cards, 52)

	seen := make(map[string]bool)
	for _, card := range cards {
		assert.False(t, seen[card.Code], card.Code)
		seen[card.Code] = true
	}
}

func TestAPI_ShuffledDeck_badProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := NewAPI(ts.URL).ShuffledDeck(context.Background())
	assert.Error(t, err)
}

func TestLocal_ShuffledDeck(t *testing.T) {
	cards, err := NewLocal(rng.NewSeeded(1)).ShuffledDeck(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cards, 52)

	ranks := make(map[game.Rank]int)
	seen := make(map[string]bool)
	for _, card := range cards {
		assert.False(t, seen[card.Code], card.Code)
		seen[card.Code] = true
		ranks[card.Rank]++
	}

	assert.Equal(t, 4, ranks[game.Six])
	assert.Equal(t, 4, ranks[game.Ten])

	// same seed, same order
	again, err := NewLocal(rng.NewSeeded(1)).ShuffledDeck(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cards, again)

	// different seed, almost certainly a different order
	other, err := NewLocal(rng.NewSeeded(2)).ShuffledDeck(context.Background())
	assert.NoError(t, err)
	assert.NotEqual(t, cards, other)
}
