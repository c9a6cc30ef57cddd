package game

// RulesText is queued for a player who asks for help.
const RulesText = `
*** The Game: Rules ***
- Goal: Cooperatively play all cards from 2 to 99 into four piles.
- Piles:
  - 2 Ascending Piles (labeled 1, 2): Start at 1. Cards must be played in increasing order.
  - 2 Descending Piles (labeled 3, 4): Start at 100. Cards must be played in decreasing order.
- Turn:
  - On your turn, you MUST play at least 2 cards.
  - If the deck is empty, you only need to play 1 card.
- Backwards Trick (The "10 Rule"):
  - You can play a card that is exactly 10 lower on an ASCENDING pile.
  - You can play a card that is exactly 10 higher on a DESCENDING pile.

*** Commands ***
- play <card> <pile>: Play a card on a pile (e.g., play 25 1).
- end: End your turn.
- help: Show this help message.
- To chat, just type your message and press Enter.
`

const (
	smallTableHandSize = 7
	largeTableHandSize = 6
	// smallTableMax is the largest table that still gets the bigger hand.
	smallTableMax = 2

	minPlaysWithDeck  = 2
	minPlaysDeckEmpty = 1
)

// HandSize is the number of cards dealt to each player at a table of n players.
func HandSize(n int) int {
	if n <= smallTableMax {
		return smallTableHandSize
	}
	return largeTableHandSize
}

// MinimumPlays is how many cards the current player must put down before ending the turn.
// A player left with nothing in hand once the deck is gone owes nothing.
func MinimumPlays(deckSize, handSize int) int {
	if deckSize > 0 {
		return minPlaysWithDeck
	}
	if handSize == 0 {
		return 0
	}
	return minPlaysDeckEmpty
}
