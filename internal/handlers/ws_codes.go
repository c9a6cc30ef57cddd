// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes used by the game gateway.
// These provide more specific reasons for closure than standard codes.
const (
	BadSubprotocolError     websocket.StatusCode = 3000 // Client connected without the "thegame" subprotocol.
	GameAlreadyStartedError websocket.StatusCode = 3004 // Join refused because hands were already dealt.
	InvalidMessageError     websocket.StatusCode = 3005 // Frame was not a valid client message, or arrived out of phase.
)
