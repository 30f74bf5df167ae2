package lobby

import "errors"

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrDuplicateKey happens on a unique constraint violation, e.g. joining a
// lobby twice or reusing an email address
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrInvalidEmailOrPassword is an error for an invalid email or password
var ErrInvalidEmailOrPassword = errors.New("invalid email address and/or password")

// ErrConcurrencyConflict happens when another request holds the session
// lock. The operation made no changes and is safe to retry.
var ErrConcurrencyConflict = errors.New("another request is updating this game; try again")

// ErrNotLobbyMember happens when a player acts on a lobby they never joined
var ErrNotLobbyMember = errors.New("player is not a member of the lobby")

// ErrNotLobbyCreator happens when someone other than the creator tries to
// start the game
var ErrNotLobbyCreator = errors.New("only the lobby creator can start the game")

// ErrLobbyNotJoinable happens when a player tries to join after the deal
var ErrLobbyNotJoinable = UserError("the game has already started")
