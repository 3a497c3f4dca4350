package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice PlayerID = "alice"
	bob   PlayerID = "bob"
)

func startedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(1, alice)
	require.NoError(t, g.JoinGame(bob))
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame(7, alice)
	assert.Equal(t, uint64(7), g.ID)
	assert.Equal(t, alice, g.White)
	assert.Equal(t, PlayerID(""), g.Black)
	assert.Equal(t, WaitingForPlayer, g.Status)
	assert.Equal(t, *NewBoard(), g.Board)
	assert.Nil(t, g.LastMove())
}

func TestJoinGame(t *testing.T) {
	g := NewGame(1, alice)
	assert.ErrorIs(t, g.JoinGame(alice), ErrCannotJoinOwnGame)
	assert.Equal(t, WaitingForPlayer, g.Status)

	require.NoError(t, g.JoinGame(bob))
	assert.Equal(t, bob, g.Black)
	assert.Equal(t, InProgress, g.Status)

	assert.ErrorIs(t, g.JoinGame("carol"), ErrAlreadyTwoPlayers)
	assert.ErrorIs(t, g.JoinGame(bob), ErrAlreadyTwoPlayers)
	assert.Equal(t, bob, g.Black)
}

func TestMoveBeforeOpponentJoins(t *testing.T) {
	g := NewGame(1, alice)
	assert.ErrorIs(t, g.MakeMove(alice, "e2", "e4", ""), ErrGameNotInProgress)
	assert.ErrorIs(t, g.MakeMove(bob, "e2", "e4", ""), ErrNotPlayersTurn)
	assert.ErrorIs(t, g.MakeMove("", "e2", "e4", ""), ErrNotPlayersTurn)
	assert.Equal(t, *NewBoard(), g.Board)
}

func TestMakeMoveErrors(t *testing.T) {
	tests := []struct {
		name      string
		actor     PlayerID
		from, to  string
		promotion string
		want      error
	}{
		{"black on white's turn", bob, "e7", "e5", "", ErrNotPlayersTurn},
		{"stranger", "mallory", "e2", "e4", "", ErrNotPlayersTurn},
		{"bad from", alice, "e9", "e4", "", ErrInvalidSquare},
		{"bad to", alice, "e2", "", "", ErrInvalidSquare},
		{"bad promotion", alice, "e2", "e4", "K", ErrInvalidPromotion},
		{"lowercase promotion", alice, "e2", "e4", "q", ErrInvalidPromotion},
		{"illegal shape", alice, "e2", "e5", "", ErrIllegalMove},
		{"opponent piece", alice, "e7", "e5", "", ErrIllegalMove},
		{"empty square", alice, "e4", "e5", "", ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := startedGame(t)
			err := g.MakeMove(tt.actor, tt.from, tt.to, tt.promotion)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, *NewBoard(), g.Board)
			assert.Empty(t, g.History)
			assert.Equal(t, InProgress, g.Status)
		})
	}
}

func TestMakeMoveRecordsHistory(t *testing.T) {
	g := startedGame(t)
	require.NoError(t, g.MakeMove(alice, "e2", "e4", ""))
	require.NoError(t, g.MakeMove(bob, "d7", "d5", ""))
	require.NoError(t, g.MakeMove(alice, "e4", "d5", ""))

	require.Len(t, g.History, 3)
	last := g.LastMove()
	require.NotNil(t, last)
	assert.Equal(t, wp(Pawn), last.Piece)
	assert.Equal(t, bp(Pawn), last.CapturedPiece)
	assert.Equal(t, "e4", last.From.String())
	assert.Equal(t, "d5", last.To.String())
	assert.Equal(t, Black, g.Board.ToMove)
	assert.Equal(t, InProgress, g.Status)
}

func TestMakeMoveRecordsCastleAndEnPassant(t *testing.T) {
	g := startedGame(t)
	for _, m := range [][2]string{
		{"e2", "e4"}, {"a7", "a6"}, {"e4", "e5"}, {"d7", "d5"},
	} {
		actor := alice
		if g.Board.ToMove == Black {
			actor = bob
		}
		require.NoError(t, g.MakeMove(actor, m[0], m[1], ""))
	}
	require.NoError(t, g.MakeMove(alice, "e5", "d6", ""))
	assert.Equal(t, bp(Pawn), g.LastMove().CapturedPiece)

	require.NoError(t, g.MakeMove(bob, "b8", "c6", ""))
	require.NoError(t, g.MakeMove(alice, "g1", "f3", ""))
	require.NoError(t, g.MakeMove(bob, "c8", "d7", ""))
	require.NoError(t, g.MakeMove(alice, "f1", "e2", ""))
	require.NoError(t, g.MakeMove(bob, "c6", "e5", ""))
	require.NoError(t, g.MakeMove(alice, "e1", "g1", ""))
	last := g.LastMove()
	require.NotNil(t, last.CastleRookMove)
	assert.Equal(t, "h1", last.CastleRookMove.From.String())
	assert.Equal(t, "f1", last.CastleRookMove.To.String())
}

func TestFoolsMateEndsGame(t *testing.T) {
	g := startedGame(t)
	require.NoError(t, g.MakeMove(alice, "f2", "f3", ""))
	require.NoError(t, g.MakeMove(bob, "e7", "e5", ""))
	require.NoError(t, g.MakeMove(alice, "g2", "g4", ""))
	require.NoError(t, g.MakeMove(bob, "d8", "h4", ""))

	assert.Equal(t, BlackWins, g.Status)
	assert.True(t, g.Status.IsTerminal())
	assert.True(t, g.InCheck())

	assert.ErrorIs(t, g.MakeMove(alice, "e1", "f2", ""), ErrGameNotInProgress)
	assert.ErrorIs(t, g.JoinGame("carol"), ErrAlreadyTwoPlayers)
	assert.Equal(t, BlackWins, g.Status)
}

func TestScholarsMateWhiteWins(t *testing.T) {
	g := startedGame(t)
	moves := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"f1", "c4"}, {"b8", "c6"}, {"d1", "h5"}, {"g8", "f6"}, {"h5", "f7"}}
	for i, m := range moves {
		actor := alice
		if i%2 == 1 {
			actor = bob
		}
		require.NoError(t, g.MakeMove(actor, m[0], m[1], ""))
	}
	assert.Equal(t, WhiteWins, g.Status)
}

func TestStalemateIsDraw(t *testing.T) {
	g := startedGame(t)
	g.Board = *setupBoard(t, White, map[string]Piece{
		"a8": bp(King), "c6": wp(King), "b5": wp(Queen),
	})
	require.NoError(t, g.MakeMove(alice, "b5", "b6", ""))
	assert.Equal(t, Draw, g.Status)
}

func TestInsufficientMaterialIsDraw(t *testing.T) {
	g := startedGame(t)
	g.Board = *setupBoard(t, White, map[string]Piece{
		"e1": wp(King), "e8": bp(King), "d4": wp(Bishop), "a7": bp(Pawn),
	})
	require.NoError(t, g.MakeMove(alice, "d4", "a7", ""))
	assert.Equal(t, Draw, g.Status)
}

func TestPromotionThroughGame(t *testing.T) {
	g := startedGame(t)
	g.Board = *setupBoard(t, White, map[string]Piece{
		"e7": wp(Pawn), "e1": wp(King), "a8": bp(King), "h7": bp(Pawn),
	})
	assert.ErrorIs(t, g.MakeMove(alice, "e7", "e8", ""), ErrIllegalMove)
	require.NoError(t, g.MakeMove(alice, "e7", "e8", "N"))
	assert.Equal(t, wp(Knight), g.Board.PieceAt(MustParseSquare("e8")))
	assert.Equal(t, Knight, g.LastMove().Promotion)
	assert.Equal(t, InProgress, g.Status)
}

func TestColorOf(t *testing.T) {
	g := startedGame(t)
	c, ok := g.ColorOf(alice)
	assert.True(t, ok)
	assert.Equal(t, White, c)
	c, ok = g.ColorOf(bob)
	assert.True(t, ok)
	assert.Equal(t, Black, c)
	assert.False(t, g.HasPlayer("carol"))
	assert.False(t, g.HasPlayer(""))
	assert.Len(t, g.Players(), 2)
}

func TestCloneIsIndependent(t *testing.T) {
	g := startedGame(t)
	require.NoError(t, g.MakeMove(alice, "e2", "e4", ""))
	c := g.Clone()
	require.NoError(t, c.MakeMove(bob, "e7", "e5", ""))
	assert.Len(t, g.History, 1)
	assert.Equal(t, "e3", g.Board.EnPassant.String())
	assert.Equal(t, "e6", c.Board.EnPassant.String())
}

func TestGameJSON(t *testing.T) {
	g := startedGame(t)
	require.NoError(t, g.MakeMove(alice, "e2", "e4", ""))
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, g.Board, decoded.Board)
	assert.Equal(t, InProgress, decoded.Status)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "in_progress", raw["status"])
	board := raw["board"].(map[string]any)
	assert.Equal(t, "black", board["toMove"])
	assert.Equal(t, "e3", board["enPassant"])
}
