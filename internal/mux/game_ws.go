package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pickupsixes-server/pkg/lobby"
)

const pongWait = time.Second * 60

// getLobbyUUIDWS upgrades the connection and streams board state to the
// client after every mutation. The socket is read-only for the client; plays
// happen over the normal HTTP endpoints.
func (m *Mux) getLobbyUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMember(w, r) {
			return
		}

		l := r.Context().Value(ctxLobbyKey).(*lobby.Lobby)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		// the subscriber's write loop owns all writes to the connection
		sub := m.hub.Subscribe(l.UUID, conn)
		defer func() {
			m.hub.Unsubscribe(l.UUID, sub)
			_ = conn.Close()
		}()

		go sub.WriteLoop()
		readLoop(conn)
	}
}

// readLoop discards inbound frames; it exists to process pongs and to notice
// the client going away
func readLoop(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("websocket closed unexpectedly")
			}

			return
		}
	}
}
