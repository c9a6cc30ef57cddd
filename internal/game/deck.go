package game

import "math/rand"

const (
	// LowestCard and HighestCard bound the numbered cards in the deck.
	LowestCard  = 2
	HighestCard = 99
	// DeckSize is the number of cards in a fresh deck.
	DeckSize = HighestCard - LowestCard + 1
)

// Deck is the shuffled draw pile. Cards are taken from the end only.
type Deck struct {
	cards []int
}

// NewDeck builds every card from LowestCard to HighestCard once, shuffled with r.
func NewDeck(r *rand.Rand) *Deck {
	cards := make([]int, 0, DeckSize)
	for c := LowestCard; c <= HighestCard; c++ {
		cards = append(cards, c)
	}
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw pops one card. ok is false when the deck is empty.
func (d *Deck) Draw() (card int, ok bool) {
	n := len(d.cards)
	if n == 0 {
		return 0, false
	}
	card = d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, true
}

// Len is the number of cards left to draw.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Empty reports whether the deck has run out.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}
