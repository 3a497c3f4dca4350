package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	// Round-trip through JSON the way the socket would.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var msg ws.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return err
	}
	c.messages = append(c.messages, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) states(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []map[string]any
	for _, msg := range c.messages {
		require.Equal(t, ws.MessageTypeGameState, msg.Type)
		var state map[string]any
		require.NoError(t, json.Unmarshal(msg.Payload, &state))
		out = append(out, state)
	}
	return out
}

func TestRegisterSendsCurrentState(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()

	game, err := gs.CreateGame(ctx, "alice")
	require.NoError(t, err)

	conn := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", conn))

	states := conn.states(t)
	require.Len(t, states, 1)
	assert.Equal(t, "waiting_for_player", states[0]["status"])
	assert.Nil(t, states[0]["players"].(map[string]any)["black"])

	err = gs.RegisterConnection(ctx, 999, "alice", &fakeConn{})
	assert.Error(t, err)
}

func TestJoinAndMoveAreBroadcast(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()

	game, err := gs.CreateGame(ctx, "alice")
	require.NoError(t, err)
	white := &fakeConn{}
	spectator := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", white))
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "carol", spectator))

	_, err = gs.JoinGame(ctx, game.ID, "bob")
	require.NoError(t, err)
	_, err = gs.MakeMove(ctx, game.ID, "alice", MoveRequest{From: "e2", To: "e4"})
	require.NoError(t, err)

	for _, conn := range []*fakeConn{white, spectator} {
		states := conn.states(t)
		require.Len(t, states, 3)
		assert.Equal(t, "in_progress", states[1]["status"])
		assert.Equal(t, "white", states[1]["toMove"])
		assert.Equal(t, "black", states[2]["toMove"])
		last := states[2]["lastMove"].(map[string]any)
		assert.Equal(t, "e2", last["from"])
		assert.Equal(t, "e4", last["to"])
		assert.Len(t, states[2]["legalMoves"], 20)
	}

	// Rejected moves change nothing and send nothing.
	_, err = gs.MakeMove(ctx, game.ID, "alice", MoveRequest{From: "d2", To: "d4"})
	require.ErrorIs(t, err, model.ErrNotPlayersTurn)
	assert.Len(t, white.states(t), 3)
}

func TestDuplicateConnectionRejected(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()
	game := startedGame(t, gs)

	first := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", first))
	err := gs.RegisterConnection(ctx, game.ID, "alice", &fakeConn{})
	assert.ErrorIs(t, err, ErrDuplicateConnection)
	assert.Equal(t, 1, gs.connections.Count(game.ID))

	// A stale unregister from the rejected connection keeps the first.
	gs.UnregisterConnection(game.ID, "alice", &fakeConn{})
	assert.Equal(t, 1, gs.connections.Count(game.ID))

	gs.UnregisterConnection(game.ID, "alice", first)
	assert.Equal(t, 0, gs.connections.Count(game.ID))
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", &fakeConn{}))
}

func TestBroadcastDropsBrokenConnections(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()
	game := startedGame(t, gs)

	healthy := &fakeConn{}
	broken := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", healthy))
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "bob", broken))
	broken.mu.Lock()
	broken.fail = true
	broken.mu.Unlock()

	_, err := gs.MakeMove(ctx, game.ID, "alice", MoveRequest{From: "e2", To: "e4"})
	require.NoError(t, err)

	assert.Len(t, healthy.states(t), 2)
	assert.True(t, broken.closed)
	assert.Equal(t, 1, gs.connections.Count(game.ID))
}

func TestSendErrorReachesOnlyThePlayer(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()
	game := startedGame(t, gs)

	white := &fakeConn{}
	black := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "alice", white))
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "bob", black))

	require.NoError(t, gs.SendError(game.ID, "bob", "not your turn"))
	require.NoError(t, gs.SendError(game.ID, "nobody", "ignored"))

	assert.Len(t, white.messages, 1)
	require.Len(t, black.messages, 2)
	msg := black.messages[1]
	assert.Equal(t, ws.MessageTypeError, msg.Type)
	var payload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "not your turn", payload.Error)
}

// stalledConn accepts the first write and then blocks until released.
type stalledConn struct {
	fakeConn
	writes  int
	stalled chan struct{}
	release chan struct{}
}

func newStalledConn() *stalledConn {
	return &stalledConn{stalled: make(chan struct{}), release: make(chan struct{})}
}

func (c *stalledConn) WriteJSON(v interface{}) error {
	c.writes++
	if c.writes == 2 {
		close(c.stalled)
		<-c.release
	}
	return c.fakeConn.WriteJSON(v)
}

func TestSlowReaderDoesNotBlockMoves(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()
	game := startedGame(t, gs)

	slow := newStalledConn()
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "carol", slow))

	first := make(chan error, 1)
	go func() {
		_, err := gs.MakeMove(ctx, game.ID, "alice", MoveRequest{From: "e2", To: "e4"})
		first <- err
	}()
	<-slow.stalled

	second := make(chan error, 1)
	go func() {
		_, err := gs.MakeMove(ctx, game.ID, "bob", MoveRequest{From: "e7", To: "e5"})
		second <- err
	}()
	assert.Eventually(t, func() bool {
		stored, err := gs.GetGame(ctx, game.ID)
		return err == nil && len(stored.History) == 2
	}, 2*time.Second, 10*time.Millisecond, "second move must be saved while a broadcast is stalled")

	close(slow.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	// Only states that are newer than what the reader already has go out.
	states := slow.states(t)
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	assert.Equal(t, "white", last["toMove"])
	assert.Len(t, last["moveHistory"], 2)
}

func TestStaleStateIsNotSent(t *testing.T) {
	gs, _ := newTestService(t)
	ctx := context.Background()
	game := startedGame(t, gs)

	conn := &fakeConn{}
	require.NoError(t, gs.RegisterConnection(ctx, game.ID, "carol", conn))

	older, err := gs.GetGame(ctx, game.ID)
	require.NoError(t, err)
	_, err = gs.MakeMove(ctx, game.ID, "alice", MoveRequest{From: "e2", To: "e4"})
	require.NoError(t, err)

	gs.connections.Broadcast(older)
	states := conn.states(t)
	require.Len(t, states, 2)
	assert.Equal(t, "black", states[1]["toMove"])
}
