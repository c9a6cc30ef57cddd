// internal/handlers/game_server.go
package handlers

import (
	"sync"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/sirupsen/logrus"
)

// GameServer binds the transports to the single game this process hosts.
type GameServer struct {
	Game   *game.Game
	Logger *logrus.Logger

	done     chan struct{}
	doneOnce sync.Once
}

// NewGameServer wraps g for serving.
func NewGameServer(g *game.Game, logger *logrus.Logger) *GameServer {
	return &GameServer{
		Game:   g,
		Logger: logger,
		done:   make(chan struct{}),
	}
}

// Done is closed once the last player of a started game has left.
func (gs *GameServer) Done() <-chan struct{} {
	return gs.done
}

// admit seats a new connection in the game.
func (gs *GameServer) admit(id string, conn models.Conn) error {
	return gs.Game.Join(id, conn)
}

// release removes a closed connection from the game. When nobody is left at a started table
// the server is told to stop.
func (gs *GameServer) release(id string) {
	remaining := gs.Game.Leave(id)
	if remaining == 0 && gs.Game.Started() {
		gs.doneOnce.Do(func() {
			gs.Logger.WithField("game_id", gs.Game.ID).Info("All players have left; shutting down.")
			close(gs.done)
		})
	}
}
