package lobby

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"pickupsixes-server/pkg/db"
)

const playerColumns = `
players.id,
players.email,
players.display_name,
players.is_site_admin,
players.created,
players.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// Player is a record in the `players` table
type Player struct {
	ID          int64     `json:"id"`
	Email       string    `json:"-"`
	DisplayName string    `json:"displayName"`
	IsSiteAdmin bool      `json:"isSiteAdmin"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.Email, &player.DisplayName, &player.IsSiteAdmin, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player with the hashed password
func CreatePlayer(ctx context.Context, email, displayName, password string) (*Player, error) {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players (email, display_name, password_hash)
VALUES ($1, $2, $3)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, email, displayName, hash)
	player, err := getPlayerByRow(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns a player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// GetPlayerByEmailAndPassword returns a player if the email and password
// match a record. Callers always get ErrInvalidEmailOrPassword on a miss,
// regardless of whether the email exists.
func GetPlayerByEmailAndPassword(ctx context.Context, email, password string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `, players.password_hash
FROM players
WHERE email = $1`

	var player Player
	var passwordHash string
	row := db.Instance().QueryRowContext(ctx, query, email)
	if err := row.Scan(&player.ID, &player.Email, &player.DisplayName, &player.IsSiteAdmin, &player.Created, &player.Updated, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidEmailOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(passwordHash, password); err != nil {
		return nil, ErrInvalidEmailOrPassword
	}

	return &player, nil
}

// Save will persist any changes made to the player to the database
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET email = $1,
    display_name = $2,
    is_site_admin = $3,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4`

	_, err := db.Instance().ExecContext(ctx, query, p.Email, p.DisplayName, p.IsSiteAdmin, p.ID)
	return err
}

// SetIsSiteAdmin will set the site-admin flag for the player
func (p *Player) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	p.IsSiteAdmin = isSiteAdmin
	return p.Save(ctx)
}
