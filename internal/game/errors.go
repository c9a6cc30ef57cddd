package game

import "fmt"

// GameError is a rule violation. Its text is shown to the offending player verbatim.
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

const (
	ErrGameAlreadyStarted  GameError = "Game already started."
	ErrPlayerAlreadyJoined GameError = "Player already joined."
	ErrPlayerNotFound      GameError = "Player not found."
	ErrGameNotStarted      GameError = "The game has not started yet."
	ErrGameOver            GameError = "The game is over."
	ErrNotYourTurn         GameError = "It's not your turn."
	ErrCardNotInHand       GameError = "Card not in your hand."
	ErrInvalidPile         GameError = "Invalid pile number."
	ErrInvalidMove         GameError = "Invalid move."
)

// MinimumPlaysError rejects an end of turn that came before enough cards were played.
type MinimumPlaysError struct {
	Required int
}

func (e MinimumPlaysError) Error() string {
	return fmt.Sprintf("You must play at least %d cards.", e.Required)
}
