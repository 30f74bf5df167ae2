package lobby

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"pickupsixes-server/internal/rng"
	"pickupsixes-server/pkg/db"
	"pickupsixes-server/pkg/game"
)

// postgres error codes that mean "someone else holds the session"
const (
	pqLockNotAvailable     pq.ErrorCode = "55P03"
	pqSerializationFailure pq.ErrorCode = "40001"
	pqDeadlockDetected     pq.ErrorCode = "40P01"
)

// lockTimeout bounds how long a mutation waits on the session row lock
const lockTimeout = time.Second * 5

// Store loads game sessions from postgres and persists them back. Every
// mutation runs under an exclusive lock on the lobby row, so two concurrent
// requests can never both act on the same board state; the loser gets
// ErrConcurrencyConflict and may retry.
type Store struct {
	rand rng.Generator
}

// NewStore returns a store drawing cards with crypto randomness
func NewStore() *Store {
	return &Store{rand: rng.Crypto{}}
}

// NewStoreWithGenerator returns a store with an injected random source.
// This should only be used by tests.
func NewStoreWithGenerator(generator rng.Generator) *Store {
	return &Store{rand: generator}
}

// WithGame runs fn against the lobby's game under the session lock and
// persists the resulting state in the same transaction. If fn returns an
// error, nothing is persisted.
func (s *Store) WithGame(ctx context.Context, lobbyUUID string, fn func(*game.Game) error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const lockQuery = `
SELECT uuid
FROM lobbies
WHERE uuid = $1
FOR UPDATE NOWAIT`

	var locked string
	if err := tx.QueryRowContext(ctx, lockQuery, lobbyUUID).Scan(&locked); err != nil {
		rollback(tx)
		return maybeConflict(err)
	}

	g, err := s.loadGame(ctx, tx, lobbyUUID)
	if err != nil {
		rollback(tx)
		return err
	}

	if err := fn(g); err != nil {
		rollback(tx)
		return err
	}

	if err := saveGame(ctx, tx, g); err != nil {
		rollback(tx)
		return maybeConflict(err)
	}

	return tx.Commit()
}

// ReadGame loads the lobby's game without taking the session lock. Use for
// read-only state queries.
func (s *Store) ReadGame(ctx context.Context, lobbyUUID string) (*game.Game, error) {
	return s.loadGame(ctx, db.Instance(), lobbyUUID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *Store) loadGame(ctx context.Context, q querier, lobbyUUID string) (*game.Game, error) {
	const lobbyQuery = `
SELECT status, current_turn_player_id, winner_id
FROM lobbies
WHERE uuid = $1`

	var status string
	var currentTurn, winner sql.NullInt64
	if err := q.QueryRowContext(ctx, lobbyQuery, lobbyUUID).Scan(&status, &currentTurn, &winner); err != nil {
		return nil, err
	}

	const memberQuery = `
SELECT player_id, COALESCE(turn_order, 0)
FROM lobby_players
WHERE lobby_uuid = $1
ORDER BY id`

	rows, err := q.QueryContext(ctx, memberQuery, lobbyUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*game.Player, 0)
	for rows.Next() {
		var p game.Player
		if err := rows.Scan(&p.ID, &p.TurnOrder); err != nil {
			return nil, err
		}

		players = append(players, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cards, err := loadCards(ctx, q, lobbyUUID)
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		ids := make([]int64, len(players))
		for i, p := range players {
			ids[i] = p.ID
		}

		return game.NewGame(lobbyUUID, ids, s.rand)
	}

	return game.Restore(lobbyUUID, players, cards, game.Status(status), currentTurn.Int64, winner.Int64, s.rand), nil
}

func loadCards(ctx context.Context, q querier, lobbyUUID string) ([]*game.CardInstance, error) {
	const query = `
SELECT code, rank, suit, image, COALESCE(player_id, 0), pile, seq, last_modified
FROM cards
WHERE lobby_uuid = $1
ORDER BY seq`

	rows, err := q.QueryContext(ctx, query, lobbyUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]*game.CardInstance, 0, 52)
	for rows.Next() {
		var ci game.CardInstance
		if err := rows.Scan(&ci.Card.Code, &ci.Card.Rank, &ci.Card.Suit, &ci.Card.Image, &ci.OwnerID, &ci.Pile, &ci.Seq, &ci.LastModified); err != nil {
			return nil, err
		}

		cards = append(cards, &ci)
	}

	return cards, rows.Err()
}

func saveGame(ctx context.Context, tx *sql.Tx, g *game.Game) error {
	const lobbyQuery = `
UPDATE lobbies
SET status = $1,
    current_turn_player_id = NULLIF($2, 0),
    winner_id = NULLIF($3, 0)
WHERE uuid = $4`

	if _, err := tx.ExecContext(ctx, lobbyQuery, string(g.Status()), g.CurrentTurnPlayerID(), g.Winner(), g.LobbyID()); err != nil {
		return err
	}

	const orderQuery = `
UPDATE lobby_players
SET turn_order = $1
WHERE lobby_uuid = $2
  AND player_id = $3`

	for _, p := range g.Players() {
		if p.TurnOrder == 0 {
			continue
		}

		if _, err := tx.ExecContext(ctx, orderQuery, p.TurnOrder, g.LobbyID(), p.ID); err != nil {
			return err
		}
	}

	// rewrite the card rows wholesale; a game holds at most 52
	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE lobby_uuid = $1`, g.LobbyID()); err != nil {
		return err
	}

	const cardQuery = `
INSERT INTO cards (lobby_uuid, code, rank, suit, image, player_id, pile, seq, last_modified)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $9)`

	stmt, err := tx.PrepareContext(ctx, cardQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ci := range g.Registry().Instances() {
		lastModified := ci.LastModified
		if lastModified.IsZero() {
			lastModified = time.Now()
		}

		if _, err := stmt.ExecContext(ctx, g.LobbyID(), ci.Card.Code, string(ci.Card.Rank), string(ci.Card.Suit), ci.Card.Image, ci.OwnerID, string(ci.Pile), ci.Seq, lastModified); err != nil {
			return err
		}
	}

	return nil
}

func maybeConflict(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case pqLockNotAvailable, pqSerializationFailure, pqDeadlockDetected:
			return ErrConcurrencyConflict
		}
	}

	if err == context.DeadlineExceeded {
		return ErrConcurrencyConflict
	}

	return err
}
