// internal/handlers/game_tcp.go
package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jason-s-yu/thegame/internal/middleware"
	"github.com/jason-s-yu/thegame/internal/models"
)

const (
	// maxLineSize caps a single client message.
	maxLineSize = 64 * 1024
	// tcpWriteTimeout bounds how long one state view may block the broadcast.
	tcpWriteTimeout = 5 * time.Second
)

// ServeTCP accepts player connections until ctx is cancelled or the listener fails.
func (gs *GameServer) ServeTCP(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-stop:
		}
	}()

	gs.Logger.Infof("Server listening on %s", ln.Addr())
	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go gs.HandleConn(c)
	}
}

// HandleConn runs one TCP session. The player's identity is the remote endpoint.
func (gs *GameServer) HandleConn(c net.Conn) {
	gs.serveConn(c.RemoteAddr().String(), c)
}

func (gs *GameServer) serveConn(id string, c net.Conn) {
	defer c.Close()

	conn := newLineConn(c)
	if err := gs.admit(id, conn); err != nil {
		gs.Logger.WithField("remote", id).Infof("Refusing connection: %v", err)
		conn.Send(models.ErrorMessage{Error: err.Error()})
		return
	}
	middleware.LogSessionConnect(gs.Logger, "tcp", id)

	err := gs.readLines(id, c)
	gs.release(id)
	middleware.LogSessionDisconnect(gs.Logger, "tcp", id, err)
}

// readLines feeds newline-delimited JSON messages to the session until the peer goes away
// or sends something the session rejects.
func (gs *GameServer) readLines(id string, c net.Conn) error {
	s := newSession(id, gs.Game, gs.Logger)

	scanner := bufio.NewScanner(c)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := s.handleRaw(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// lineConn writes each value as one JSON line.
type lineConn struct {
	mu  sync.Mutex
	c   net.Conn
	enc *json.Encoder
}

func newLineConn(c net.Conn) *lineConn {
	enc := json.NewEncoder(c)
	enc.SetEscapeHTML(false)
	return &lineConn{c: c, enc: enc}
}

func (l *lineConn) Send(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.c.SetWriteDeadline(time.Now().Add(tcpWriteTimeout)); err != nil {
		return err
	}
	return l.enc.Encode(v)
}
