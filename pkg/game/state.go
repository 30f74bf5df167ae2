package game

// State is the full board state of a session, safe to serialize for clients
// and for the websocket push
type State struct {
	LobbyID             string          `json:"lobbyId"`
	Status              Status          `json:"status"`
	CurrentTurnPlayerID int64           `json:"currentTurnPlayerId"`
	Winner              int64           `json:"winner,omitempty"`
	Players             []*Player       `json:"players"`
	Cards               []*CardInstance `json:"cards"`
}

// State returns a snapshot of the game
func (g *Game) State() *State {
	return &State{
		LobbyID:             g.lobbyID,
		Status:              g.status,
		CurrentTurnPlayerID: g.currentTurn,
		Winner:              g.winner,
		Players:             g.players,
		Cards:               g.registry.Instances(),
	}
}
