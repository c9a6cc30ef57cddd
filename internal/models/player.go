package models

import (
	"sort"
	"strings"
)

// DefaultName is the display name a player carries until they send set_name.
const DefaultName = "Anonymous"

// Conn is the outbound half of a session. The game only ever writes to it; reading and
// closing stay with the transport that owns the connection.
type Conn interface {
	Send(v interface{}) error
}

// Player is one seat at the table, keyed by the endpoint of its connection.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hand []int  `json:"hand"`
	Conn Conn   `json:"-"`

	// outbox holds one-shot messages for this player until the next state view drains it.
	outbox []string
}

// NewPlayer builds a lobby player with an empty hand and the default name.
func NewPlayer(id string, conn Conn) *Player {
	return &Player{
		ID:   id,
		Name: DefaultName,
		Hand: []int{},
		Conn: conn,
	}
}

// Notify queues a one-shot message for the player.
func (p *Player) Notify(msg string) {
	if msg == "" {
		return
	}
	p.outbox = append(p.outbox, msg)
}

// DrainMessages returns every queued message joined by newlines and empties the queue.
func (p *Player) DrainMessages() string {
	if len(p.outbox) == 0 {
		return ""
	}
	msg := strings.Join(p.outbox, "\n")
	p.outbox = nil
	return msg
}

// PendingMessages reports how many one-shot messages are waiting for delivery.
func (p *Player) PendingMessages() int {
	return len(p.outbox)
}

// HasCard reports whether the card is in the player's hand.
func (p *Player) HasCard(card int) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard takes the first copy of card out of the hand. Returns false if it was not held.
func (p *Player) RemoveCard(card int) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// SortHand keeps the hand in ascending order for display.
func (p *Player) SortHand() {
	sort.Ints(p.Hand)
}
