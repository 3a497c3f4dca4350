package model

import (
	"encoding/json"
	"fmt"
)

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var pieceTypeNames = map[PieceType]string{
	Pawn:   "pawn",
	Rook:   "rook",
	Knight: "knight",
	Bishop: "bishop",
	Queen:  "queen",
	King:   "king",
}

func (p PieceType) String() string {
	if name, ok := pieceTypeNames[p]; ok {
		return name
	}
	return ""
}

// Code is the single upper-case letter used for promotion input.
func (p PieceType) Code() string {
	switch p {
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case King:
		return "K"
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for t, name := range pieceTypeNames {
		if name == string(text) {
			*p = t
			return nil
		}
	}
	if len(text) == 0 {
		*p = NoPieceType
		return nil
	}
	return fmt.Errorf("unknown piece type %q", text)
}

// ParsePromotion maps a promotion letter to its piece type. The empty string
// means no promotion was requested.
func ParsePromotion(code string) (PieceType, error) {
	switch code {
	case "":
		return NoPieceType, nil
	case "Q":
		return Queen, nil
	case "R":
		return Rook, nil
	case "B":
		return Bishop, nil
	case "N":
		return Knight, nil
	}
	return NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPromotion, code)
}

var promotionPieces = [...]PieceType{Queen, Rook, Bishop, Knight}

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// homeRank is the back rank of the color, promotionRank the far one.
func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) promotionRank() int {
	return 7 - c.homeRank()
}

func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) pawnStartRank() int {
	if c == White {
		return 1
	}
	return 6
}

// Piece is a colored chessman. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType `json:"type" bson:"type"`
	Color Color     `json:"color" bson:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

func (p Piece) is(color Color, t PieceType) bool {
	return p.Type == t && p.Color == color
}

var glyphs = map[Piece]string{
	{King, White}:   "♔",
	{Queen, White}:  "♕",
	{Rook, White}:   "♖",
	{Bishop, White}: "♗",
	{Knight, White}: "♘",
	{Pawn, White}:   "♙",
	{King, Black}:   "♚",
	{Queen, Black}:  "♛",
	{Rook, Black}:   "♜",
	{Bishop, Black}: "♝",
	{Knight, Black}: "♞",
	{Pawn, Black}:   "♟",
}

// EmptyGlyph stands in for an unoccupied square in rendered boards.
const EmptyGlyph = "·"

func (p Piece) Glyph() string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return EmptyGlyph
}

func (p Piece) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	type piece Piece
	return json.Marshal(piece(p))
}

func (p *Piece) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Piece{}
		return nil
	}
	type piece Piece
	var v piece
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Piece(v)
	return nil
}
