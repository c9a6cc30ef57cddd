package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHoldsEveryCardOnce(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)))
	require.Equal(t, DeckSize, d.Len())
	assert.Equal(t, 98, DeckSize)

	seen := make(map[int]bool)
	for !d.Empty() {
		c, ok := d.Draw()
		require.True(t, ok)
		require.GreaterOrEqual(t, c, LowestCard)
		require.LessOrEqual(t, c, HighestCard)
		require.False(t, seen[c], "card %d drawn twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, DeckSize)

	_, ok := d.Draw()
	assert.False(t, ok)
}

func TestNewDeckIsShuffled(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	inOrder := true
	prev, _ := d.Draw()
	for !d.Empty() {
		c, _ := d.Draw()
		if c != prev-1 {
			inOrder = false
			break
		}
		prev = c
	}
	assert.False(t, inOrder)
}
