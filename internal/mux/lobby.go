package mux

import (
	"net/http"

	"pickupsixes-server/internal/util"
	"pickupsixes-server/pkg/lobby"
)

func (m *Mux) getLobby() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		lobbies, err := lobby.GetLobbies(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, lobbies)
	}
}

func (m *Mux) postLobby() http.HandlerFunc {
	type payload struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*lobby.Player)

		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		name := p.Name
		if name == "" {
			name = util.RandomLobbyName()
		}

		l, err := player.CreateLobby(r.Context(), name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, l)
	}
}

type lobbyWithMembers struct {
	*lobby.Lobby
	Members []*lobby.Member `json:"members"`
}

func (m *Mux) getLobbyUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		members, err := l.GetMembers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, &lobbyWithMembers{
			Lobby:   l,
			Members: members,
		})
	}
}

func (m *Mux) postLobbyUUIDJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*lobby.Player)
		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		if err := player.Join(r.Context(), l); err != nil {
			switch err {
			case lobby.ErrDuplicateKey:
				writeJSONError(w, http.StatusBadRequest, lobby.UserError("you already joined this lobby"))
			case lobby.ErrLobbyNotJoinable:
				writeJSONError(w, http.StatusConflict, err)
			default:
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		m.hub.Broadcast(l.UUID, map[string]interface{}{
			"event":    "playerJoined",
			"playerId": player.ID,
		})

		writeJSON(w, http.StatusCreated, statusOK)
	}
}
