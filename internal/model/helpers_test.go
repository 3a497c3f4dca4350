package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupBoard builds a position from square→piece placements. Castling rights
// start empty.
func setupBoard(t *testing.T, toMove Color, placements map[string]Piece) *Board {
	t.Helper()
	b := NewEmptyBoard()
	b.ToMove = toMove
	for s, p := range placements {
		sq, err := ParseSquare(s)
		require.NoError(t, err)
		b.SetPiece(sq, p)
	}
	return b
}

func wp(t PieceType) Piece { return Piece{Type: t, Color: White} }
func bp(t PieceType) Piece { return Piece{Type: t, Color: Black} }

func mv(from, to string) Move {
	return Move{From: MustParseSquare(from), To: MustParseSquare(to)}
}

func promo(from, to string, p PieceType) Move {
	m := mv(from, to)
	m.Promotion = p
	return m
}

func mustMove(t *testing.T, b *Board, moves ...Move) {
	t.Helper()
	for _, m := range moves {
		require.Truef(t, b.MakeMove(m), "move %s rejected", m)
	}
}
