package handlers

import (
	"io"
	"math/rand"
	"testing"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestServer(t *testing.T) *GameServer {
	t.Helper()
	logger := quietLogger()
	g := game.NewGame(game.Options{Logger: logger, Rand: rand.New(rand.NewSource(7))})
	return NewGameServer(g, logger)
}
