package game

import (
	"errors"
	"fmt"
)

// ErrCardNotFound happens when the player tries to play a card they don't
// hold in any eligible pile
var ErrCardNotFound = errors.New("card not found in an eligible pile")

// ErrInvalidPileSource happens when a face-up or face-down card is played
// before the piles above it are empty
var ErrInvalidPileSource = errors.New("cards in an earlier pile must be played first")

// ErrInvalidCardRank happens when the card does not beat the top of the
// played pile
var ErrInvalidCardRank = errors.New("card rank is too low to play")

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = errors.New("not player's turn")

// ErrPlayerNotInGame happens when the acting player is not part of the game
var ErrPlayerNotInGame = errors.New("player is not in the game")

// ErrGameNotStarted is an error when an action is attempted before the deal
var ErrGameNotStarted = errors.New("game has not started")

// ErrGameIsOver is an error when an action is attempted on a finished game
var ErrGameIsOver = errors.New("game is over")

// InsufficientDeckError is a fatal configuration error when the deck source
// did not supply enough cards to deal the game
type InsufficientDeckError struct {
	Cards   int
	Players int
}

func (e InsufficientDeckError) Error() string {
	return fmt.Sprintf("deck has %d cards; need at least %d to deal %d players", e.Cards, e.Players*cardsPerPlayer, e.Players)
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected at least 2 players, got %d", int(p))
}
