package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"

	"pickupsixes-server/internal/config"
	"pickupsixes-server/internal/jwt"
	"pickupsixes-server/internal/rng"
	"pickupsixes-server/pkg/decksource"
	"pickupsixes-server/pkg/lobby"
	"pickupsixes-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxLobbyKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	recaptcha recaptcha
	store     *lobby.Store
	deck      decksource.Source
	hub       *room.Hub

	// store for testing purposes
	authRouter  *gmux.Router
	lobbyRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	var deck decksource.Source
	if url := config.Instance().DeckAPIURL; url != "" {
		deck = decksource.NewAPI(url)
	} else {
		deck = decksource.NewLocal(rng.Crypto{})
	}

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		recaptcha: newRecaptcha(),
		store:     lobby.NewStore(),
		deck:      deck,
		hub:       room.NewHub(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/lobby").Handler(this.getLobby())
		r.Methods(http.MethodPost).Path("/lobby").Handler(this.postLobby())

		lr := r.PathPrefix("/lobby/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		lr.Use(this.lobbyMiddleware)
		this.lobbyRouter = lr

		lr.Methods(http.MethodGet).Path("").Handler(this.getLobbyUUID())
		lr.Methods(http.MethodPost).Path("/join").Handler(this.postLobbyUUIDJoin())
		lr.Methods(http.MethodGet).Path("/ws").Handler(this.getLobbyUUIDWS())

		lr.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
		lr.Methods(http.MethodPost).Path("/game/play").Handler(this.postGamePlay())
		lr.Methods(http.MethodPost).Path("/game/pickup").Handler(this.postGamePickup())
		lr.Methods(http.MethodGet).Path("/game/turn").Handler(this.getGameTurn())
		lr.Methods(http.MethodGet).Path("/game/cards").Handler(this.getGameCards())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := lobby.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("PickUpSixes-PlayerID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// lobbyMiddleware requires authMiddleware to execute first
func (m *Mux) lobbyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		l, err := lobby.GetLobbyByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxLobbyKey, l)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// requireMember writes an error and returns false if the player has not
// joined the lobby
func requireMember(w http.ResponseWriter, r *http.Request) bool {
	player := r.Context().Value(ctxPlayerKey).(*lobby.Player)
	l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

	isMember, err := l.IsMember(r.Context(), player.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return false
	}

	if !isMember {
		writeJSONError(w, http.StatusForbidden, lobby.ErrNotLobbyMember)
		return false
	}

	return true
}
