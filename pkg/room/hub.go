package room

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pingPeriod = time.Second * 54

// sendBuffer bounds how far a slow consumer can fall behind before the hub
// drops it
const sendBuffer = 16

// Subscriber is one websocket connection watching a lobby. All writes to the
// connection go through WriteLoop; gorilla/websocket allows only a single
// concurrent writer.
type Subscriber struct {
	conn *websocket.Conn
	send chan interface{}
}

// WriteLoop serializes pings and broadcast messages onto the connection.
// It returns when the send channel closes or a write fails, and closes the
// connection on the way out.
func (s *Subscriber) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-s.send:
			if !ok {
				_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).Debug("could not write to websocket subscriber")
				return
			}
		}
	}
}

// Hub tracks the websocket subscribers for each lobby and pushes board
// state to them after every mutation
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscriber]bool
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscriber]bool),
	}
}

// Subscribe registers the connection for the lobby's state updates. The
// caller must run the returned subscriber's WriteLoop.
func (h *Hub) Subscribe(lobbyUUID string, conn *websocket.Conn) *Subscriber {
	s := &Subscriber{
		conn: conn,
		send: make(chan interface{}, sendBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[lobbyUUID] == nil {
		h.subs[lobbyUUID] = make(map[*Subscriber]bool)
	}

	h.subs[lobbyUUID][s] = true
	return s
}

// Unsubscribe removes the subscriber and closes its send channel, which
// shuts down its WriteLoop. Unsubscribing twice is fine.
func (h *Hub) Unsubscribe(lobbyUUID string, s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(lobbyUUID, s)
}

// Subscribers returns the number of connections watching the lobby
func (h *Hub) Subscribers(lobbyUUID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs[lobbyUUID])
}

// Broadcast queues the message for every subscriber of the lobby. A
// subscriber whose send buffer is full is dropped.
func (h *Hub) Broadcast(lobbyUUID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs[lobbyUUID] {
		select {
		case s.send <- message:
		default:
			logrus.Debug("dropping slow websocket subscriber")
			h.remove(lobbyUUID, s)
		}
	}
}

// remove must be called with the mutex held
func (h *Hub) remove(lobbyUUID string, s *Subscriber) {
	if !h.subs[lobbyUUID][s] {
		return
	}

	delete(h.subs[lobbyUUID], s)
	if len(h.subs[lobbyUUID]) == 0 {
		delete(h.subs, lobbyUUID)
	}

	close(s.send)
}
