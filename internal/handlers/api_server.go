// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	"github.com/jason-s-yu/thegame/internal/middleware"
)

// NewMux builds the HTTP surface: the WebSocket gateway and a liveness probe.
func NewMux(gs *GameServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/game/ws", middleware.LogMiddleware(gs.Logger)(GameWSHandler(gs)))
	return mux
}
