// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/thegame/internal/cache"
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/sirupsen/logrus"
)

// Status is the lifecycle stage of the game.
type Status int

const (
	StatusLobby Status = iota
	StatusInProgress
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusLobby:
		return "lobby"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

// Chat lines written by the server itself.
const (
	chatGameStarted = "System: The game has started!"
	chatGameWon     = "System: Congratulations, you won!"
	chatGameLost    = "System: Game Over. No more possible moves."
)

// ActionRecorder receives every applied action. Implemented by cache.Publisher.
type ActionRecorder interface {
	RecordAction(ctx context.Context, record cache.GameActionRecord) error
}

// Options configures a new Game. Zero values fall back to defaults.
type Options struct {
	Logger   *logrus.Logger
	Recorder ActionRecorder
	Rand     *rand.Rand
}

// Game holds the entire state of the single game this server runs.
// Every exported method takes Mu for its whole duration, including the broadcast that follows
// a mutation, so each client view is built from one consistent state.
type Game struct {
	ID uuid.UUID
	Mu sync.Mutex

	deck     *Deck
	piles    Piles
	players  registry
	turns    TurnLedger
	chat     []string
	lastMove *models.LastMove
	status   Status

	actionIndex int // increments for each recorded action
	recorder    ActionRecorder
	logger      *logrus.Entry
}

// NewGame builds a lobby with a freshly shuffled deck.
func NewGame(opts Options) *Game {
	id, _ := uuid.NewRandom()

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		ID:       id,
		deck:     NewDeck(r),
		piles:    NewPiles(),
		players:  newRegistry(),
		chat:     []string{},
		status:   StatusLobby,
		recorder: opts.Recorder,
		logger:   logger.WithField("game_id", id),
	}
	g.logger.Infof("Initialized and shuffled deck with %d cards.", g.deck.Len())
	return g
}

// Join seats a new player. Only allowed while the game is in the lobby.
func (g *Game) Join(id string, conn models.Conn) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.status != StatusLobby {
		g.logger.WithField("player", id).Info("Rejected join: game already started.")
		return ErrGameAlreadyStarted
	}
	if !g.players.add(models.NewPlayer(id, conn)) {
		return ErrPlayerAlreadyJoined
	}
	g.turns.Add(id)
	g.logger.WithField("player", id).Info("Player connected.")
	g.logAction(id, "player_join", nil)
	return nil
}

// SetName sets the player's display name and announces them in chat.
func (g *Game) SetName(id, name string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.get(id)
	if p == nil {
		g.logger.WithField("player", id).Warn("SetName for unknown player.")
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultName
	}
	p.Name = name
	g.chat = append(g.chat, fmt.Sprintf("System: %s has joined the game.", name))
	g.logger.WithField("player", id).Infof("Player set name to %s.", name)
	g.logAction(id, "set_name", map[string]interface{}{"name": name})
	g.broadcast()
}

// Start deals the hands and opens the first turn. Returns false if the game was not in the
// lobby or nobody has joined.
func (g *Game) Start() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.status != StatusLobby || g.players.len() == 0 {
		return false
	}

	handSize := HandSize(g.players.len())
	for _, id := range g.turns.Order() {
		p := g.players.get(id)
		p.Hand = make([]int, 0, handSize)
		for i := 0; i < handSize; i++ {
			card, ok := g.deck.Draw()
			if !ok {
				break
			}
			p.Hand = append(p.Hand, card)
		}
		p.SortHand()
	}

	g.status = StatusInProgress
	g.chat = append(g.chat, chatGameStarted)
	g.logger.WithFields(logrus.Fields{
		"players":   g.players.len(),
		"hand_size": handSize,
	}).Info("Game has started.")
	g.logAction("", "game_start", map[string]interface{}{"hand_size": handSize, "players": g.turns.Order()})
	g.broadcast()
	return true
}

// Play puts card from the player's hand onto pile. The outcome, success or the reason for
// rejection, is queued for the player and everyone gets a fresh view.
func (g *Game) Play(id string, card, pile int) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.get(id)
	if p == nil {
		g.logger.WithField("player", id).Warn("Play from unknown player.")
		return
	}
	if err := g.play(p, card, PileID(pile)); err != nil {
		g.logger.WithFields(logrus.Fields{"player": id, "card": card, "pile": pile}).Debugf("Play rejected: %v", err)
		p.Notify(err.Error())
	}
	g.broadcast()
}

// play applies one card. Assumes lock is held.
func (g *Game) play(p *models.Player, card int, pile PileID) error {
	if err := g.checkTurn(p.ID); err != nil {
		return err
	}
	if !p.HasCard(card) {
		return ErrCardNotInHand
	}
	if !pile.Valid() {
		return ErrInvalidPile
	}
	old := g.piles.Top(pile)
	if !g.piles.Accepts(pile, card) {
		return ErrInvalidMove
	}

	g.piles.Set(pile, card)
	p.RemoveCard(card)
	g.turns.RecordPlay()
	g.lastMove = &models.LastMove{
		PlayerName:   p.Name,
		Card:         card,
		PileNum:      int(pile),
		OldPileValue: old,
	}
	p.Notify(fmt.Sprintf("Played %d on pile %d (%d -> %d).", card, pile, old, card))
	g.logAction(p.ID, "play", map[string]interface{}{"card": card, "pile": int(pile), "old_pile_value": old})
	return nil
}

// EndTurn refills the current player's hand, passes the turn and checks for a win or loss.
func (g *Game) EndTurn(id string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.get(id)
	if p == nil {
		g.logger.WithField("player", id).Warn("EndTurn from unknown player.")
		return
	}
	if err := g.endTurn(p); err != nil {
		g.logger.WithField("player", id).Debugf("End turn rejected: %v", err)
		p.Notify(err.Error())
	}
	g.broadcast()
}

// endTurn applies the end of a turn. Assumes lock is held.
func (g *Game) endTurn(p *models.Player) error {
	if err := g.checkTurn(p.ID); err != nil {
		return err
	}
	played := g.turns.Played()
	if required := MinimumPlays(g.deck.Len(), len(p.Hand)); played < required {
		return MinimumPlaysError{Required: required}
	}

	drawn := 0
	for i := 0; i < played; i++ {
		card, ok := g.deck.Draw()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, card)
		drawn++
	}
	p.SortHand()
	g.turns.Advance()
	p.Notify("Turn ended.")
	g.logAction(p.ID, "end_turn", map[string]interface{}{"played": played, "drawn": drawn, "deck_size": g.deck.Len()})

	g.evaluateTerminal()
	return nil
}

// checkTurn verifies the game is running and id holds the turn. Assumes lock is held.
func (g *Game) checkTurn(id string) error {
	switch g.status {
	case StatusLobby:
		return ErrGameNotStarted
	case StatusWon, StatusLost:
		return ErrGameOver
	}
	current, ok := g.turns.Current()
	if !ok || current != id {
		return ErrNotYourTurn
	}
	return nil
}

// evaluateTerminal ends the game when every card is out or nobody can move.
// A win is checked first. Assumes lock is held.
func (g *Game) evaluateTerminal() {
	switch {
	case g.deck.Empty() && g.players.handsEmpty():
		g.status = StatusWon
		g.chat = append(g.chat, chatGameWon)
		g.logger.Info("Game won.")
		g.logAction("", "game_won", nil)
	case !g.players.anyPlayable(&g.piles):
		g.status = StatusLost
		g.chat = append(g.chat, chatGameLost)
		g.logger.WithFields(logrus.Fields{
			"deck_size":      g.deck.Len(),
			"cards_in_hands": g.players.cardsInHands(),
		}).Info("Game lost.")
		g.logAction("", "game_lost", map[string]interface{}{"deck_size": g.deck.Len(), "cards_in_hands": g.players.cardsInHands()})
	}
}

// Chat appends "<name>: <text>" to the shared history. Allowed in every state.
func (g *Game) Chat(id, text string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.get(id)
	if p == nil {
		g.logger.WithField("player", id).Warn("Chat from unknown player.")
		return
	}
	if strings.TrimSpace(text) != "" {
		g.chat = append(g.chat, fmt.Sprintf("%s: %s", p.Name, text))
		g.logAction(id, "chat", map[string]interface{}{"text": text})
	}
	g.broadcast()
}

// Help queues the rules and command list for the player.
func (g *Game) Help(id string) {
	g.Notify(id, RulesText)
}

// Notify queues a one-shot message for a player and broadcasts so it is delivered.
func (g *Game) Notify(id, msg string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.get(id)
	if p == nil {
		return
	}
	p.Notify(msg)
	g.broadcast()
}

// Leave removes a disconnected player and returns how many players remain.
// Leaving the lobby is silent; leaving a running game is announced and rebroadcast.
func (g *Game) Leave(id string) int {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.players.remove(id)
	if p == nil {
		return g.players.len()
	}
	_, heldTurn := g.turns.Remove(id)
	remaining := g.turns.Len()

	g.logger.WithFields(logrus.Fields{
		"player":    id,
		"held_turn": heldTurn,
		"remaining": remaining,
	}).Info("Player connection closed.")
	g.logAction(id, "player_leave", map[string]interface{}{"held_turn": heldTurn, "cards_lost": len(p.Hand)})

	if g.status == StatusInProgress && remaining > 0 {
		g.chat = append(g.chat, fmt.Sprintf("System: %s has left the game.", p.Name))
		g.broadcast()
	}
	return remaining
}

// Status returns the lifecycle stage.
func (g *Game) Status() Status {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.status
}

// Started reports whether hands have been dealt.
func (g *Game) Started() bool {
	return g.Status() != StatusLobby
}

// Over reports whether the game reached a win or a loss.
func (g *Game) Over() bool {
	s := g.Status()
	return s == StatusWon || s == StatusLost
}

// Summary is a one-line operator view of the game.
func (g *Game) Summary() string {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	return fmt.Sprintf("status=%s players=%d deck=%d piles=%v current=%s",
		g.status, g.players.len(), g.deck.Len(), g.piles.ByKey(), g.currentTurnName())
}

// logAction sends the action details to the recorder for the historian.
// Assumes lock is held by caller.
func (g *Game) logAction(actorID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if g.recorder == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	// Publish off the lock; the historian orders by action index.
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.recorder.RecordAction(ctx, rec); err != nil {
			g.logger.WithError(err).Warnf("Failed to record action %d (%s).", rec.ActionIndex, rec.ActionType)
		}
	}(record)
}
