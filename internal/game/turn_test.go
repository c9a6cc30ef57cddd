package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(ids ...string) *TurnLedger {
	t := &TurnLedger{}
	for _, id := range ids {
		t.Add(id)
	}
	return t
}

func TestTurnLedgerAdvanceWraps(t *testing.T) {
	l := newLedger("a", "b", "c")
	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur)

	l.RecordPlay()
	l.RecordPlay()
	assert.Equal(t, 2, l.Played())

	l.Advance()
	assert.Equal(t, 1, l.Index())
	assert.Equal(t, 0, l.Played())
	l.Advance()
	l.Advance()
	assert.Equal(t, 0, l.Index())
}

func TestTurnLedgerRemove(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		remove      string
		wantHeld    bool
		wantCurrent string
		wantIndex   int
	}{
		{name: "holder at end wraps to front", current: 2, remove: "c", wantHeld: true, wantCurrent: "a", wantIndex: 0},
		{name: "holder in middle passes to next", current: 1, remove: "b", wantHeld: true, wantCurrent: "c", wantIndex: 1},
		{name: "earlier seat keeps holder", current: 1, remove: "a", wantHeld: false, wantCurrent: "b", wantIndex: 0},
		{name: "later seat keeps holder", current: 0, remove: "c", wantHeld: false, wantCurrent: "a", wantIndex: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger("a", "b", "c")
			for i := 0; i < tt.current; i++ {
				l.Advance()
			}
			l.RecordPlay()

			removed, held := l.Remove(tt.remove)
			require.True(t, removed)
			assert.Equal(t, tt.wantHeld, held)
			cur, ok := l.Current()
			require.True(t, ok)
			assert.Equal(t, tt.wantCurrent, cur)
			assert.Equal(t, tt.wantIndex, l.Index())
			if held {
				assert.Equal(t, 0, l.Played())
			} else {
				assert.Equal(t, 1, l.Played())
			}
		})
	}
}

func TestTurnLedgerRemoveToEmpty(t *testing.T) {
	l := newLedger("a")
	removed, held := l.Remove("a")
	assert.True(t, removed)
	assert.True(t, held)
	_, ok := l.Current()
	assert.False(t, ok)

	removed, _ = l.Remove("a")
	assert.False(t, removed)
}
