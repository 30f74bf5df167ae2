package game

import (
	"sort"

	"github.com/sirupsen/logrus"

	"pickupsixes-server/internal/rng"
)

// Status is the lifecycle state of a game session
type Status string

// status constants
const (
	StatusWaiting  Status = "waiting"
	StatusDealing  Status = "dealing"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const cardsPerPile = 3
const cardsPerPlayer = cardsPerPile * 3 // hand, face-up, face-down

// Player is a participant with a fixed position in the turn rotation.
// TurnOrder is dense 1..N and assigned once, at deal time.
type Player struct {
	ID        int64 `json:"id"`
	TurnOrder int   `json:"turnOrder"`
}

// Game is a single session of pick up 6s. All methods are synchronous, pure
// state transitions; callers are responsible for serializing access to a
// session (see lobby.Store).
type Game struct {
	lobbyID  string
	players  []*Player
	registry *Registry

	currentTurn int64
	status      Status
	winner      int64

	rand   rng.Generator
	logger logrus.FieldLogger
}

// PlayResult is the outcome of a successful play
type PlayResult struct {
	Played *CardInstance   `json:"playedCard"`
	Drawn  []*CardInstance `json:"drawnCards"`
	// ExtraTurn is true when a ten cleared the pile; the turn did not advance
	ExtraTurn bool  `json:"extraTurn"`
	Winner    int64 `json:"winner,omitempty"`
}

// PickupResult is the outcome of a forced-pickup check
type PickupResult struct {
	MustPickUp bool            `json:"mustPickUp"`
	PickedUp   []*CardInstance `json:"pickedUpCards"`
	Winner     int64           `json:"winner,omitempty"`
}

// NewGame returns a new, undealt game for the given players
func NewGame(lobbyID string, playerIDs []int64, generator rng.Generator) (*Game, error) {
	if len(playerIDs) < 2 {
		return nil, PlayerCountError(len(playerIDs))
	}

	players := make([]*Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = &Player{ID: id}
	}

	return &Game{
		lobbyID:  lobbyID,
		players:  players,
		registry: NewRegistry(make([]*CardInstance, 0, 52)),
		status:   StatusWaiting,
		rand:     generator,
		logger:   logrus.WithField("lobbyId", lobbyID),
	}, nil
}

// Restore rebuilds a game from persisted state so a session survives a
// server restart
func Restore(lobbyID string, players []*Player, cards []*CardInstance, status Status, currentTurn, winner int64, generator rng.Generator) *Game {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TurnOrder < sorted[j].TurnOrder })

	return &Game{
		lobbyID:     lobbyID,
		players:     sorted,
		registry:    NewRegistry(cards),
		status:      status,
		currentTurn: currentTurn,
		winner:      winner,
		rand:        generator,
		logger:      logrus.WithField("lobbyId", lobbyID),
	}
}

// Deal distributes a shuffled card sequence into the per-player piles and
// the draw deck, and fixes the turn order. The player rotation is shuffled
// independently of the incoming card shuffle. Deal is idempotent: if cards
// were already dealt it reports so and changes nothing.
func (g *Game) Deal(cards []Card) (alreadyDealt bool, err error) {
	if g.registry.Size() > 0 {
		return true, nil
	}

	if len(cards) < len(g.players)*cardsPerPlayer {
		return false, InsufficientDeckError{Cards: len(cards), Players: len(g.players)}
	}

	g.status = StatusDealing

	// pick the seating order
	for j := len(g.players) - 1; j > 0; j-- {
		i := g.rand.Intn(j + 1)
		g.players[i], g.players[j] = g.players[j], g.players[i]
	}

	for i, p := range g.players {
		p.TurnOrder = i + 1
	}

	instances := make([]*CardInstance, 0, len(cards))
	next := 0
	for _, p := range g.players {
		for _, pile := range playablePiles {
			for i := 0; i < cardsPerPile; i++ {
				instances = append(instances, &CardInstance{
					Card:    cards[next],
					OwnerID: p.ID,
					Pile:    pile,
				})
				next++
			}
		}
	}

	for ; next < len(cards); next++ {
		instances = append(instances, &CardInstance{
			Card: cards[next],
			Pile: PileDeck,
		})
	}

	g.registry = NewRegistry(instances)
	g.currentTurn = g.players[0].ID
	g.status = StatusPlaying

	g.logger.WithFields(logrus.Fields{
		"players": len(g.players),
		"inDeck":  len(cards) - len(g.players)*cardsPerPlayer,
	}).Info("dealt game")

	return false, nil
}

// PlayCard validates and applies a play of the given card by the given
// player. Validation runs in full before any pile changes, so a rejected
// play never leaves partial state behind.
func (g *Game) PlayCard(playerID int64, cardCode string) (*PlayResult, error) {
	if err := g.ensureActing(playerID); err != nil {
		return nil, err
	}

	ci := g.registry.Find(playerID, cardCode)
	if ci == nil {
		return nil, ErrCardNotFound
	}

	if err := g.checkPileSource(playerID, ci.Pile); err != nil {
		return nil, err
	}

	if !CanPlayOn(ci.Card, g.registry.TopOfPlayedPile()) {
		return nil, ErrInvalidCardRank
	}

	g.registry.MoveCard(ci, PilePlayed, 0)

	extraTurn := false
	if ci.Card.Rank == ClearRank {
		for _, played := range g.registry.CardsIn(PilePlayed) {
			g.registry.MoveCard(played, PileDiscarded, 0)
		}
		extraTurn = true
	}

	drawn := g.replenish(playerID)

	result := &PlayResult{
		Played:    ci,
		Drawn:     drawn,
		ExtraTurn: extraTurn,
	}

	if g.playerIsOut(playerID) {
		g.declareWinner(playerID)
		result.Winner = playerID
		return result, nil
	}

	if !extraTurn {
		g.advanceTurn()
	}

	g.logger.WithFields(logrus.Fields{
		"playerId":  playerID,
		"card":      ci.Card.Code,
		"extraTurn": extraTurn,
	}).Debug("card played")

	return result, nil
}

// CheckForcedPickup determines whether the player has any legal play from
// their hand. If not, the entire played pile moves into their hand and their
// turn is consumed. A player whose piles are all empty is a winner, not a
// pickup candidate.
func (g *Game) CheckForcedPickup(playerID int64) (*PickupResult, error) {
	if err := g.ensureActing(playerID); err != nil {
		return nil, err
	}

	if g.playerIsOut(playerID) {
		g.declareWinner(playerID)
		return &PickupResult{Winner: playerID}, nil
	}

	top := g.registry.TopOfPlayedPile()
	if top == nil {
		return &PickupResult{}, nil
	}

	for _, ci := range g.registry.CardsOf(playerID, PileHand) {
		if CanPlayOn(ci.Card, top) {
			return &PickupResult{}, nil
		}
	}

	pickedUp := g.registry.CardsIn(PilePlayed)
	for _, ci := range pickedUp {
		g.registry.MoveCard(ci, PileHand, playerID)
	}

	g.advanceTurn()

	g.logger.WithFields(logrus.Fields{
		"playerId": playerID,
		"cards":    len(pickedUp),
	}).Debug("forced pickup")

	return &PickupResult{
		MustPickUp: true,
		PickedUp:   pickedUp,
	}, nil
}

// replenish draws the player's hand back up to three, first from the deck,
// then from the player's own face-up cards, then face-down. Draws are
// uniformly random within each source. Running every source dry is fine; the
// hand just stays short.
func (g *Game) replenish(playerID int64) []*CardInstance {
	drawn := make([]*CardInstance, 0, cardsPerPile)

	need := cardsPerPile - g.registry.CountIn(playerID, PileHand)
	for need > 0 {
		var pool []*CardInstance
		if pool = g.registry.CardsIn(PileDeck); len(pool) == 0 {
			if pool = g.registry.CardsOf(playerID, PileFaceUp); len(pool) == 0 {
				if pool = g.registry.CardsOf(playerID, PileFaceDown); len(pool) == 0 {
					break
				}
			}
		}

		ci := pool[g.rand.Intn(len(pool))]
		g.registry.MoveCard(ci, PileHand, playerID)
		drawn = append(drawn, ci)
		need--
	}

	return drawn
}

// checkPileSource enforces pile precedence: hand first, then face-up, then
// face-down
func (g *Game) checkPileSource(playerID int64, pile Pile) error {
	switch pile {
	case PileHand:
		return nil
	case PileFaceUp:
		if g.registry.CountIn(playerID, PileHand) > 0 {
			return ErrInvalidPileSource
		}
		return nil
	case PileFaceDown:
		if g.registry.CountIn(playerID, PileHand) > 0 || g.registry.CountIn(playerID, PileFaceUp) > 0 {
			return ErrInvalidPileSource
		}
		return nil
	}

	return ErrCardNotFound
}

func (g *Game) ensureActing(playerID int64) error {
	switch g.status {
	case StatusWaiting, StatusDealing:
		return ErrGameNotStarted
	case StatusFinished:
		return ErrGameIsOver
	}

	if g.playerByID(playerID) == nil {
		return ErrPlayerNotInGame
	}

	if g.currentTurn != playerID {
		return ErrNotPlayersTurn
	}

	return nil
}

func (g *Game) playerByID(playerID int64) *Player {
	for _, p := range g.players {
		if p.ID == playerID {
			return p
		}
	}

	return nil
}

// playerIsOut returns true when the player's hand, face-up and face-down
// piles are all empty
func (g *Game) playerIsOut(playerID int64) bool {
	for _, pile := range playablePiles {
		if g.registry.CountIn(playerID, pile) > 0 {
			return false
		}
	}

	return true
}

func (g *Game) declareWinner(playerID int64) {
	g.status = StatusFinished
	g.winner = playerID
	g.logger.WithField("playerId", playerID).Info("game won")
}

// advanceTurn moves the turn to the next player by turn order, wrapping from
// the last position back to the first
func (g *Game) advanceTurn() {
	current := g.playerByID(g.currentTurn)
	if current == nil {
		// deal assigns the turn before any action, so this is unreachable
		// outside of a corrupted restore
		g.currentTurn = g.players[0].ID
		return
	}

	nextOrder := current.TurnOrder%len(g.players) + 1
	for _, p := range g.players {
		if p.TurnOrder == nextOrder {
			g.currentTurn = p.ID
			return
		}
	}
}

// LobbyID returns the lobby hosting this game
func (g *Game) LobbyID() string {
	return g.lobbyID
}

// CurrentTurnPlayerID returns the player whose turn it is
func (g *Game) CurrentTurnPlayerID() int64 {
	return g.currentTurn
}

// Status returns the session lifecycle status
func (g *Game) Status() Status {
	return g.status
}

// Winner returns the winning player ID, or 0 if the game is still going
func (g *Game) Winner() int64 {
	return g.winner
}

// Players returns the participants in turn order
func (g *Game) Players() []*Player {
	return g.players
}

// Registry exposes the card bookkeeping for persistence and state reporting
func (g *Game) Registry() *Registry {
	return g.registry
}
