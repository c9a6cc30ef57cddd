package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient is the far end of a net.Pipe served by serveConn.
type testClient struct {
	conn  net.Conn
	lines chan string
}

func dialPipe(t *testing.T, gs *GameServer, id string) *testClient {
	t.Helper()
	server, client := net.Pipe()
	go gs.serveConn(id, server)

	tc := &testClient{conn: client, lines: make(chan string, 128)}
	go func() {
		defer close(tc.lines)
		scanner := bufio.NewScanner(client)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		for scanner.Scan() {
			tc.lines <- scanner.Text()
		}
	}()
	t.Cleanup(func() { client.Close() })
	return tc
}

func (tc *testClient) send(t *testing.T, line string) {
	t.Helper()
	_, err := tc.conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

func (tc *testClient) next(t *testing.T) (string, bool) {
	t.Helper()
	select {
	case line, ok := <-tc.lines:
		return line, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server output")
		return "", false
	}
}

func (tc *testClient) view(t *testing.T) game.StateView {
	t.Helper()
	line, ok := tc.next(t)
	require.True(t, ok, "connection closed")
	var v game.StateView
	require.NoError(t, json.Unmarshal([]byte(line), &v), line)
	return v
}

// waitView skips views until one satisfies match.
func (tc *testClient) waitView(t *testing.T, match func(game.StateView) bool) game.StateView {
	t.Helper()
	for {
		if v := tc.view(t); match(v) {
			return v
		}
	}
}

func (tc *testClient) waitClosed(t *testing.T) {
	t.Helper()
	for {
		if _, ok := tc.next(t); !ok {
			return
		}
	}
}

func hasMessage(v game.StateView) bool { return v.Message != "" }

func TestTCPSessionPlaysThroughGame(t *testing.T) {
	gs := newTestServer(t)

	alice := dialPipe(t, gs, "10.0.0.1:1001")
	alice.send(t, `{"action":"set_name","name":"alice"}`)
	v := alice.view(t)
	assert.Equal(t, "alice", v.MyName)
	assert.Equal(t, "10.0.0.1:1001", v.MyPlayerID)
	assert.Equal(t, "N/A", v.CurrentTurn)

	bob := dialPipe(t, gs, "10.0.0.2:1002")
	bob.send(t, `{"action":"set_name","name":"bob"}`)
	bob.view(t)
	v = alice.view(t)
	assert.Equal(t, []string{"System: alice has joined the game.", "System: bob has joined the game."}, v.ChatHistory)

	require.True(t, gs.Game.Start())
	v = alice.waitView(t, func(v game.StateView) bool { return v.CurrentTurn != "N/A" })
	require.Len(t, v.MyHand, 7)
	assert.Equal(t, "alice", v.CurrentTurn)

	bob.send(t, `{"action":"end_turn"}`)
	assert.Equal(t, "It's not your turn.", bob.waitView(t, hasMessage).Message)

	card := v.MyHand[0]
	alice.send(t, fmt.Sprintf(`{"action":"play","card":%d,"pile":1}`, card))
	v = alice.waitView(t, hasMessage)
	assert.Equal(t, fmt.Sprintf("Played %d on pile 1 (1 -> %d).", card, card), v.Message)
	require.NotNil(t, v.LastMove)
	assert.Equal(t, "alice", v.LastMove.PlayerName)

	alice.send(t, `{"action":"dance"}`)
	assert.Equal(t, `Unknown action "dance".`, alice.waitView(t, hasMessage).Message)

	bob.conn.Close()
	v = alice.waitView(t, func(v game.StateView) bool {
		return len(v.ChatHistory) > 0 && v.ChatHistory[len(v.ChatHistory)-1] == "System: bob has left the game."
	})
	assert.Len(t, v.PlayersInfo, 1)

	alice.conn.Close()
	select {
	case <-gs.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("server was not signalled after the last player left")
	}
}

func TestTCPFirstMessageMustBeSetName(t *testing.T) {
	gs := newTestServer(t)
	c := dialPipe(t, gs, "10.0.0.1:1001")

	c.send(t, `{"action":"chat","text":"hello?"}`)
	c.waitClosed(t)

	require.Eventually(t, func() bool {
		return strings.Contains(gs.Game.Summary(), "players=0")
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case <-gs.Done():
		t.Fatal("a lobby departure must not stop the server")
	default:
	}
}

func TestTCPMalformedJSONEndsSessionOnly(t *testing.T) {
	gs := newTestServer(t)
	good := dialPipe(t, gs, "10.0.0.1:1001")
	good.send(t, `{"action":"set_name","name":"alice"}`)
	good.view(t)

	bad := dialPipe(t, gs, "10.0.0.2:1002")
	bad.send(t, `{"action":"set_name","name":"bob"}`)
	bad.view(t)
	good.view(t)
	bad.send(t, `not json`)
	bad.waitClosed(t)

	good.send(t, `{"action":"chat","text":"still here"}`)
	v := good.view(t)
	assert.Equal(t, "alice: still here", v.ChatHistory[len(v.ChatHistory)-1])
}

func TestTCPJoinAfterStartIsRefused(t *testing.T) {
	gs := newTestServer(t)
	first := dialPipe(t, gs, "10.0.0.1:1001")
	first.send(t, `{"action":"set_name","name":"alice"}`)
	first.view(t)
	require.True(t, gs.Game.Start())

	late := dialPipe(t, gs, "10.0.0.2:1002")
	line, ok := late.next(t)
	require.True(t, ok)
	assert.JSONEq(t, `{"error":"Game already started."}`, line)

	var msg models.ErrorMessage
	require.NoError(t, json.Unmarshal([]byte(line), &msg))
	assert.Equal(t, game.ErrGameAlreadyStarted.Error(), msg.Error)
	late.waitClosed(t)
}

func TestServeTCPStopsOnCancel(t *testing.T) {
	gs := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- gs.ServeTCP(ctx, ln) }()

	c, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	_, err = c.Write([]byte(`{"action":"set_name","name":"remote"}` + "\n"))
	require.NoError(t, err)

	scanner := bufio.NewScanner(c)
	require.True(t, scanner.Scan())
	var v game.StateView
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &v))
	assert.Equal(t, "remote", v.MyName)
	assert.Equal(t, c.LocalAddr().String(), v.MyPlayerID)
	c.Close()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeTCP did not return after cancel")
	}
}
