// internal/handlers/router.go
package handlers

import (
	"fmt"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/models"
)

// routeAction dispatches a gameplay message to the game. Every branch ends in a broadcast
// inside the game, so the sender always gets a fresh view.
func routeAction(g *game.Game, id string, msg models.ClientMessage) {
	switch msg.Action {
	case models.ActionSetName:
		g.SetName(id, msg.Name)
	case models.ActionPlay:
		g.Play(id, msg.Card, msg.Pile)
	case models.ActionEndTurn:
		g.EndTurn(id)
	case models.ActionChat:
		g.Chat(id, msg.Text)
	case models.ActionHelp:
		g.Help(id)
	default:
		g.Notify(id, fmt.Sprintf("Unknown action %q.", msg.Action))
	}
}
