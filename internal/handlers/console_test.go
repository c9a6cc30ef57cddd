package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConsole(t *testing.T) {
	gs := newTestServer(t)
	logger, hook := test.NewNullLogger()

	// Nobody has joined yet, so the first start is refused.
	input := "start\n"
	require.NoError(t, RunConsole(context.Background(), strings.NewReader(input), gs.Game, logger))
	assert.False(t, gs.Game.Started())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	require.NoError(t, gs.admit("10.0.0.1:1001", nopConn{}))
	hook.Reset()

	input = "status\n\n  START \nstart\nshuffle\n"
	require.NoError(t, RunConsole(context.Background(), strings.NewReader(input), gs.Game, logger))
	assert.True(t, gs.Game.Started())

	entries := hook.AllEntries()
	require.Len(t, entries, 4)
	assert.Contains(t, entries[0].Message, "status=lobby")
	assert.Equal(t, "Game started by operator.", entries[1].Message)
	assert.Equal(t, logrus.WarnLevel, entries[2].Level)
	assert.Contains(t, entries[3].Message, `"shuffle"`)
}
