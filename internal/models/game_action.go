package models

// Client actions accepted on the wire.
const (
	ActionSetName = "set_name"
	ActionPlay    = "play"
	ActionEndTurn = "end_turn"
	ActionChat    = "chat"
	ActionHelp    = "help"
)

// ClientMessage is one newline-delimited JSON object sent by a client.
// The action field selects the handler; the remaining fields are read per action.
type ClientMessage struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	Card   int    `json:"card,omitempty"`
	Pile   int    `json:"pile,omitempty"`
	Text   string `json:"text,omitempty"`
}

// ErrorMessage is the out-of-band shape sent right before the server drops a connection.
type ErrorMessage struct {
	Error string `json:"error"`
}
