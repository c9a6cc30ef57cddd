// internal/handlers/console.go
package handlers

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/sirupsen/logrus"
)

// RunConsole reads operator commands, one per line, until r is exhausted or ctx is done.
// "start" deals the hands; "status" logs a one-line summary.
func RunConsole(ctx context.Context, r io.Reader, g *game.Game, logger *logrus.Logger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		switch cmd := strings.ToLower(strings.TrimSpace(scanner.Text())); cmd {
		case "":
		case "start":
			if g.Start() {
				logger.Info("Game started by operator.")
			} else {
				logger.Warn("Cannot start: the game is already running or nobody has joined.")
			}
		case "status":
			logger.Info(g.Summary())
		default:
			logger.Warnf("Unknown console command %q (expected start or status).", cmd)
		}
	}
	return scanner.Err()
}
