package mux

import (
	"net/http"

	"pickupsixes-server/pkg/game"
	"pickupsixes-server/pkg/lobby"
)

// postGame deals the cards and starts the game. Only the lobby creator may
// start; a second start request is a no-op.
func (m *Mux) postGame() http.HandlerFunc {
	type response struct {
		Status string      `json:"status"`
		State  *game.State `json:"state"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*lobby.Player)
		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		if l.PlayerID != player.ID {
			writeJSONError(w, http.StatusForbidden, lobby.ErrNotLobbyCreator)
			return
		}

		// fetch the deck before taking the session lock; the deal is
		// idempotent so a wasted fetch on a replayed request is harmless
		cards, err := m.deck.ShuffledDeck(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusBadGateway, nil)
			return
		}

		var alreadyDealt bool
		var state *game.State
		err = m.store.WithGame(r.Context(), l.UUID, func(g *game.Game) error {
			var err error
			alreadyDealt, err = g.Deal(cards)
			if err != nil {
				return err
			}

			state = g.State()
			return nil
		})

		if err != nil {
			writeGameError(w, err)
			return
		}

		status := "dealt"
		statusCode := http.StatusCreated
		if alreadyDealt {
			status = "alreadyDealt"
			statusCode = http.StatusOK
		} else {
			m.broadcastState(l.UUID, state)
		}

		writeJSON(w, statusCode, response{
			Status: status,
			State:  state,
		})
	}
}

func (m *Mux) postGamePlay() http.HandlerFunc {
	type payload struct {
		Card string `json:"card"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*lobby.Player)
		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		var result *game.PlayResult
		var state *game.State
		err := m.store.WithGame(r.Context(), l.UUID, func(g *game.Game) error {
			var err error
			result, err = g.PlayCard(player.ID, p.Card)
			if err != nil {
				return err
			}

			state = g.State()
			return nil
		})

		if err != nil {
			writeGameError(w, err)
			return
		}

		m.broadcastState(l.UUID, state)
		writeJSON(w, http.StatusOK, result)
	}
}

func (m *Mux) postGamePickup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*lobby.Player)
		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		var result *game.PickupResult
		var state *game.State
		err := m.store.WithGame(r.Context(), l.UUID, func(g *game.Game) error {
			var err error
			result, err = g.CheckForcedPickup(player.ID)
			if err != nil {
				return err
			}

			state = g.State()
			return nil
		})

		if err != nil {
			writeGameError(w, err)
			return
		}

		if result.MustPickUp || result.Winner > 0 {
			m.broadcastState(l.UUID, state)
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (m *Mux) getGameTurn() http.HandlerFunc {
	type response struct {
		Status              game.Status `json:"status"`
		CurrentTurnPlayerID int64       `json:"currentTurnPlayerId,omitempty"`
		Winner              int64       `json:"winner,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)
		g, err := m.store.ReadGame(r.Context(), l.UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, response{
			Status:              g.Status(),
			CurrentTurnPlayerID: g.CurrentTurnPlayerID(),
			Winner:              g.Winner(),
		})
	}
}

func (m *Mux) getGameCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)
		g, err := m.store.ReadGame(r.Context(), l.UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, g.State())
	}
}

func (m *Mux) broadcastState(lobbyUUID string, state *game.State) {
	m.hub.Broadcast(lobbyUUID, map[string]interface{}{
		"event": "gameState",
		"state": state,
	})
}

// writeGameError maps rule-engine errors onto response codes. Rule
// violations are 400s; contention on the session lock is a retryable 409.
func writeGameError(w http.ResponseWriter, err error) {
	switch err {
	case game.ErrCardNotFound,
		game.ErrInvalidPileSource,
		game.ErrInvalidCardRank,
		game.ErrNotPlayersTurn,
		game.ErrPlayerNotInGame,
		game.ErrGameNotStarted,
		game.ErrGameIsOver:
		writeJSONError(w, http.StatusBadRequest, err)
		return
	case lobby.ErrConcurrencyConflict:
		writeJSONError(w, http.StatusConflict, err)
		return
	}

	switch err.(type) {
	case game.PlayerCountError:
		writeJSONError(w, http.StatusBadRequest, err)
		return
	case game.InsufficientDeckError:
		// the deck source short-changed us; not the client's fault
		writeJSONError(w, http.StatusBadGateway, err)
		return
	}

	writeMaybeNotFoundError(w, err)
}
