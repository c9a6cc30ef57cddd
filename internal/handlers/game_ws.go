// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/middleware"
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/sirupsen/logrus"
)

// Subprotocol is the WebSocket subprotocol clients must request.
const Subprotocol = "thegame"

const wsWriteTimeout = 3 * time.Second

// GameWSHandler upgrades the HTTP connection to WebSocket, seats the caller in the game
// and then runs the same session state machine as the TCP transport, one text frame per message.
func GameWSHandler(gs *GameServer) http.HandlerFunc {
	logger := gs.Logger
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{Subprotocol},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error from %s: %v", r.RemoteAddr, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != Subprotocol {
			logger.Warnf("Client %s connected with invalid subprotocol: %q", r.RemoteAddr, c.Subprotocol())
			c.Close(BadSubprotocolError, "Client must use the 'thegame' subprotocol.")
			return
		}

		id := r.RemoteAddr
		conn := &wsConn{c: c}
		if err := gs.admit(id, conn); err != nil {
			logger.WithField("remote", id).Infof("Refusing connection: %v", err)
			conn.Send(models.ErrorMessage{Error: err.Error()})
			code := InvalidMessageError
			if errors.Is(err, game.ErrGameAlreadyStarted) {
				code = GameAlreadyStartedError
			}
			c.Close(code, err.Error())
			return
		}
		middleware.LogSessionConnect(logger, "ws", id)

		err = readFrames(r.Context(), c, newSession(id, gs.Game, logger), logger)
		gs.release(id)
		middleware.LogSessionDisconnect(logger, "ws", id, err)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// readFrames feeds text frames to the session. Normal closure by the peer returns nil.
func readFrames(ctx context.Context, c *websocket.Conn, s *session, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d from %s. Ignoring.", msgType, s.id)
			continue
		}
		if err := s.handleRaw(data); err != nil {
			c.Close(InvalidMessageError, "Invalid message.")
			return err
		}
	}
}

// wsConn delivers each value as one text frame.
type wsConn struct {
	c *websocket.Conn
}

func (w *wsConn) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), wsWriteTimeout)
	defer cancel()
	return w.c.Write(ctx, websocket.MessageText, data)
}
