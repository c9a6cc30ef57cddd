package game

import "github.com/jason-s-yu/thegame/internal/models"

// registry maps a connection identity to its player. Assumes the game lock is held.
type registry struct {
	players map[string]*models.Player
}

func newRegistry() registry {
	return registry{players: make(map[string]*models.Player)}
}

func (r registry) get(id string) *models.Player {
	return r.players[id]
}

func (r registry) add(p *models.Player) bool {
	if _, exists := r.players[p.ID]; exists {
		return false
	}
	r.players[p.ID] = p
	return true
}

func (r registry) remove(id string) *models.Player {
	p, ok := r.players[id]
	if !ok {
		return nil
	}
	delete(r.players, id)
	return p
}

func (r registry) len() int {
	return len(r.players)
}

// cardsInHands counts every card currently held by any player.
func (r registry) cardsInHands() int {
	n := 0
	for _, p := range r.players {
		n += len(p.Hand)
	}
	return n
}

func (r registry) handsEmpty() bool {
	return r.cardsInHands() == 0
}

// anyPlayable scans every hand against every pile.
func (r registry) anyPlayable(piles *Piles) bool {
	for _, p := range r.players {
		for _, c := range p.Hand {
			if piles.AcceptsAny(c) {
				return true
			}
		}
	}
	return false
}
