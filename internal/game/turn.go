package game

// TurnLedger tracks seating order, whose turn it is, and how many cards the current
// player has put down this turn. Assumes the game lock is held for every call.
type TurnLedger struct {
	order   []string
	current int
	played  int
}

// Add seats a player at the end of the order.
func (t *TurnLedger) Add(id string) {
	t.order = append(t.order, id)
}

// Len is the number of seated players.
func (t *TurnLedger) Len() int {
	return len(t.order)
}

// Index is the position of the current player in the order.
func (t *TurnLedger) Index() int {
	return t.current
}

// Order returns a copy of the seating order.
func (t *TurnLedger) Order() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Current returns the id of the player holding the turn. ok is false when nobody is seated.
func (t *TurnLedger) Current() (id string, ok bool) {
	if len(t.order) == 0 {
		return "", false
	}
	return t.order[t.current], true
}

// Played is the number of cards put down so far this turn.
func (t *TurnLedger) Played() int {
	return t.played
}

// RecordPlay counts one more card put down this turn.
func (t *TurnLedger) RecordPlay() {
	t.played++
}

// Advance passes the turn to the next seat and resets the play counter.
func (t *TurnLedger) Advance() {
	t.played = 0
	if len(t.order) == 0 {
		t.current = 0
		return
	}
	t.current = (t.current + 1) % len(t.order)
}

// Remove unseats id. Seats ahead of the current player shift the index down so the same
// player keeps the turn; if id held the turn, the index is clamped onto the new order and
// the play counter restarts. Returns whether id was seated and whether it held the turn.
func (t *TurnLedger) Remove(id string) (removed, heldTurn bool) {
	idx := -1
	for i, pid := range t.order {
		if pid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, false
	}

	t.order = append(t.order[:idx], t.order[idx+1:]...)
	heldTurn = idx == t.current

	switch {
	case len(t.order) == 0:
		t.current = 0
		t.played = 0
	case idx < t.current:
		t.current--
	case heldTurn:
		t.played = 0
		t.current %= len(t.order)
	}
	return true, heldTurn
}
