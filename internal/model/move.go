package model

import "strings"

// Move is a request to move the piece on From to To. Promotion is
// NoPieceType unless a pawn promotion was asked for.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return m.From.String() + m.To.String() + strings.ToLower(m.Promotion.Code())
}

type CastleRookMove struct {
	From Square `json:"from" bson:"from"`
	To   Square `json:"to" bson:"to"`
}

// Ply is one accepted half-move as recorded in a game's history.
type Ply struct {
	Piece          Piece           `json:"piece" bson:"piece"`
	From           Square          `json:"from" bson:"from"`
	To             Square          `json:"to" bson:"to"`
	CapturedPiece  Piece           `json:"capturedPiece" bson:"captured_piece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove" bson:"castle_rook_move"`
	Promotion      PieceType       `json:"promotion,omitempty" bson:"promotion"`
}
