// internal/handlers/session.go
package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/sirupsen/logrus"
)

// phase is where a session stands in its handshake.
type phase int

const (
	// phaseAwaitingName accepts only set_name.
	phaseAwaitingName phase = iota
	// phasePlaying accepts every gameplay action.
	phasePlaying
)

// session is the per-connection state machine shared by the TCP and WebSocket transports.
// It is driven from a single goroutine and needs no locking of its own.
type session struct {
	id     string
	phase  phase
	game   *game.Game
	logger *logrus.Entry
}

func newSession(id string, g *game.Game, logger *logrus.Logger) *session {
	return &session{
		id:     id,
		phase:  phaseAwaitingName,
		game:   g,
		logger: logger.WithField("player", id),
	}
}

// handleRaw decodes one client frame and applies it. A non-nil error means the session
// must be closed.
func (s *session) handleRaw(data []byte) error {
	var msg models.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("invalid client message: %w", err)
	}
	return s.handle(msg)
}

// handle applies one decoded client message.
func (s *session) handle(msg models.ClientMessage) error {
	switch s.phase {
	case phaseAwaitingName:
		if msg.Action != models.ActionSetName {
			return fmt.Errorf("expected %q as first message, got %q", models.ActionSetName, msg.Action)
		}
		s.game.SetName(s.id, msg.Name)
		s.phase = phasePlaying
		s.logger.Debug("Session entered play phase.")
		return nil
	default:
		s.logger.Debugf("Received action '%s'.", msg.Action)
		routeAction(s.game, s.id, msg)
		return nil
	}
}
