package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerOutboxIsOneShot(t *testing.T) {
	p := NewPlayer("127.0.0.1:5000", nil)
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, "", p.DrainMessages())

	p.Notify("Invalid move.")
	p.Notify("")
	p.Notify("Turn ended.")
	require.Equal(t, 2, p.PendingMessages())

	assert.Equal(t, "Invalid move.\nTurn ended.", p.DrainMessages())
	assert.Equal(t, 0, p.PendingMessages())
	assert.Equal(t, "", p.DrainMessages())
}

func TestPlayerHandBookkeeping(t *testing.T) {
	p := NewPlayer("a", nil)
	p.Hand = []int{42, 7, 93}
	p.SortHand()
	assert.Equal(t, []int{7, 42, 93}, p.Hand)

	assert.True(t, p.HasCard(42))
	assert.False(t, p.HasCard(43))

	assert.True(t, p.RemoveCard(42))
	assert.False(t, p.RemoveCard(42))
	assert.Equal(t, []int{7, 93}, p.Hand)
}
