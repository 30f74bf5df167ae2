package lobby

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"pickupsixes-server/pkg/db"
	"pickupsixes-server/pkg/game"
)

const lobbyColumns = `
lobbies.uuid,
lobbies.name,
lobbies.player_id,
lobbies.status,
lobbies.current_turn_player_id,
lobbies.winner_id,
lobbies.created`

// Lobby is a record in the `lobbies` table
// A lobby has many players and hosts a single game of pick up 6s
type Lobby struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// PlayerID is who created the lobby
	PlayerID            int64       `json:"playerId"`
	Status              game.Status `json:"status"`
	CurrentTurnPlayerID int64       `json:"currentTurnPlayerId,omitempty"`
	WinnerID            int64       `json:"winnerId,omitempty"`
	Created             time.Time   `json:"created"`
}

// Member is a row in the `lobby_players` join table
type Member struct {
	PlayerID    int64  `json:"playerId"`
	DisplayName string `json:"displayName"`
	// TurnOrder is 0 until the game has been dealt
	TurnOrder int `json:"turnOrder,omitempty"`
}

func getLobbyByRow(row db.Scanner) (*Lobby, error) {
	var l Lobby
	var currentTurn, winner sql.NullInt64
	if err := row.Scan(&l.UUID, &l.Name, &l.PlayerID, &l.Status, &currentTurn, &winner, &l.Created); err != nil {
		return nil, err
	}

	l.CurrentTurnPlayerID = currentTurn.Int64
	l.WinnerID = winner.Int64
	return &l, nil
}

// CreateLobby creates a new lobby with the player as creator and first member
func (p *Player) CreateLobby(ctx context.Context, name string) (*Lobby, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO lobbies (uuid, name, player_id, status)
VALUES ($1, $2, $3, $4)
RETURNING created`

	var created time.Time
	row := tx.QueryRowContext(ctx, query, u, name, p.ID, game.StatusWaiting)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO lobby_players (lobby_uuid, player_id)
VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query2, u, p.ID); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Lobby{
		UUID:     u,
		Name:     name,
		PlayerID: p.ID,
		Status:   game.StatusWaiting,
		Created:  created,
	}, nil
}

// GetLobbyByUUID returns a lobby by its UUID
func GetLobbyByUUID(ctx context.Context, uuid string) (*Lobby, error) {
	const query = `
SELECT ` + lobbyColumns + `
FROM lobbies
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getLobbyByRow(row)
}

// GetLobbies returns lobbies, newest first
func GetLobbies(ctx context.Context, start int64, rows int) ([]*Lobby, error) {
	const query = `
SELECT ` + lobbyColumns + `
FROM lobbies
ORDER BY created DESC
OFFSET $1 LIMIT $2`

	res, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	lobbies := make([]*Lobby, 0)
	for res.Next() {
		l, err := getLobbyByRow(res)
		if err != nil {
			return nil, err
		}

		lobbies = append(lobbies, l)
	}

	return lobbies, nil
}

// Join adds the player to the lobby. Joining is only possible before the
// game is dealt.
func (p *Player) Join(ctx context.Context, l *Lobby) error {
	if l.Status != game.StatusWaiting {
		return ErrLobbyNotJoinable
	}

	const query = `
INSERT INTO lobby_players (lobby_uuid, player_id)
VALUES ($1, $2)`

	if _, err := db.Instance().ExecContext(ctx, query, l.UUID, p.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateKey
		}

		return err
	}

	return nil
}

// GetMembers returns all players in the lobby
func (l *Lobby) GetMembers(ctx context.Context) ([]*Member, error) {
	const query = `
SELECT lobby_players.player_id, players.display_name, COALESCE(lobby_players.turn_order, 0)
FROM lobby_players
INNER JOIN players ON lobby_players.player_id = players.id
WHERE lobby_players.lobby_uuid = $1
ORDER BY lobby_players.id`

	rows, err := db.Instance().QueryContext(ctx, query, l.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*Member, 0)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.PlayerID, &m.DisplayName, &m.TurnOrder); err != nil {
			return nil, err
		}

		members = append(members, &m)
	}

	return members, nil
}

// IsMember returns true if the player belongs to the lobby
func (l *Lobby) IsMember(ctx context.Context, playerID int64) (bool, error) {
	const query = `
SELECT COUNT(*)
FROM lobby_players
WHERE lobby_uuid = $1
  AND player_id = $2`

	var count int
	if err := db.Instance().QueryRowContext(ctx, query, l.UUID, playerID).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
