// internal/game/sync_state.go
package game

import (
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/sirupsen/logrus"
)

// noCurrentTurn is shown as the current player before the game starts.
const noCurrentTurn = "N/A"

// PlayerInfo is the public view of one player: everything except the cards.
type PlayerInfo struct {
	Name     string `json:"name"`
	HandSize int    `json:"hand_size"`
}

// StateView is the per-player snapshot pushed after every state change. Only the
// recipient's own hand is revealed; other players appear as hand sizes.
type StateView struct {
	Piles       map[string]int        `json:"piles"`
	MyHand      []int                 `json:"my_hand"`
	PlayersInfo map[string]PlayerInfo `json:"players_info"`
	DeckSize    int                   `json:"deck_size"`
	CurrentTurn string                `json:"current_turn"`
	MyPlayerID  string                `json:"my_player_id"`
	MyName      string                `json:"my_name"`
	Message     string                `json:"message"`
	GameOver    bool                  `json:"game_over"`
	ChatHistory []string              `json:"chat_history"`
	LastMove    *models.LastMove      `json:"last_move,omitempty"`
}

// buildStateView generates a snapshot of the game for p and drains p's pending messages.
// Assumes lock is held.
func (g *Game) buildStateView(p *models.Player) StateView {
	hand := make([]int, len(p.Hand))
	copy(hand, p.Hand)

	chat := make([]string, len(g.chat))
	copy(chat, g.chat)

	info := make(map[string]PlayerInfo, g.players.len())
	for id, other := range g.players.players {
		info[id] = PlayerInfo{Name: other.Name, HandSize: len(other.Hand)}
	}

	var lastMove *models.LastMove
	if g.lastMove != nil {
		lm := *g.lastMove
		lastMove = &lm
	}

	return StateView{
		Piles:       g.piles.ByKey(),
		MyHand:      hand,
		PlayersInfo: info,
		DeckSize:    g.deck.Len(),
		CurrentTurn: g.currentTurnName(),
		MyPlayerID:  p.ID,
		MyName:      p.Name,
		Message:     p.DrainMessages(),
		GameOver:    g.status == StatusWon || g.status == StatusLost,
		ChatHistory: chat,
		LastMove:    lastMove,
	}
}

// currentTurnName is the display name of the player holding the turn. Assumes lock is held.
func (g *Game) currentTurnName() string {
	if g.status == StatusLobby {
		return noCurrentTurn
	}
	id, ok := g.turns.Current()
	if !ok {
		if g.status == StatusInProgress {
			g.logger.Error("Turn order is empty while the game is in progress.")
		}
		return noCurrentTurn
	}
	p := g.players.get(id)
	if p == nil {
		g.logger.WithField("player", id).Error("Current turn belongs to an unregistered player.")
		return noCurrentTurn
	}
	return p.Name
}

// broadcast sends every registered player their own view, in seating order.
// A failed delivery is logged and skipped. Assumes lock is held.
func (g *Game) broadcast() {
	for _, id := range g.turns.Order() {
		p := g.players.get(id)
		if p == nil {
			continue
		}
		view := g.buildStateView(p)
		if p.Conn == nil {
			continue
		}
		if err := p.Conn.Send(view); err != nil {
			g.logger.WithFields(logrus.Fields{
				"player": id,
			}).WithError(err).Warn("Player seems to have disconnected; skipping state delivery.")
		}
	}
}
