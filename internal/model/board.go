package model

import "fmt"

// Board is a full position. It is a plain value: copying a Board yields an
// independent position, which is how hypothetical moves are probed.
type Board struct {
	// Squares is indexed [rank][file].
	Squares        [8][8]Piece    `json:"squares" bson:"squares"`
	ToMove         Color          `json:"toMove" bson:"to_move"`
	Castling       CastlingRights `json:"castling" bson:"castling"`
	EnPassant      *Square        `json:"enPassant" bson:"en_passant"`
	HalfmoveClock  int            `json:"halfmoveClock" bson:"halfmove_clock"`
	FullmoveNumber int            `json:"fullmoveNumber" bson:"fullmove_number"`
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard initial position with White to move.
func NewBoard() *Board {
	b := NewEmptyBoard()
	b.Castling = allCastlingRights()
	for file := 0; file < 8; file++ {
		b.Squares[0][file] = Piece{Type: backRank[file], Color: White}
		b.Squares[1][file] = Piece{Type: Pawn, Color: White}
		b.Squares[6][file] = Piece{Type: Pawn, Color: Black}
		b.Squares[7][file] = Piece{Type: backRank[file], Color: Black}
	}
	return b
}

// NewEmptyBoard returns a board with no pieces, no castling rights and White
// to move. Callers place pieces with SetPiece.
func NewEmptyBoard() *Board {
	return &Board{ToMove: White, FullmoveNumber: 1}
}

func (b *Board) PieceAt(sq Square) Piece {
	return b.Squares[sq.Rank][sq.File]
}

func (b *Board) SetPiece(sq Square, p Piece) {
	b.Squares[sq.Rank][sq.File] = p
}

func (b *Board) clone() *Board {
	c := *b
	return &c
}

func (b *Board) FindKing(color Color) (Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if b.Squares[rank][file].is(color, King) {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// MakeMove applies m if it is legal and reports whether it did. A rejected
// move leaves the board untouched.
func (b *Board) MakeMove(m Move) bool {
	if !b.IsValidMove(m) {
		return false
	}
	piece := b.PieceAt(m.From)
	captured, _ := b.capturedBy(m)

	if piece.Type == Pawn || !captured.IsEmpty() {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}

	if piece.Type == King {
		b.Castling.revokeAll(piece.Color)
	}
	b.Castling.revokeRookSquare(m.From)
	b.Castling.revokeRookSquare(m.To)

	b.place(m)

	b.EnPassant = nil
	if piece.Type == Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		b.EnPassant = &Square{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
	}

	b.ToMove = b.ToMove.Opposite()
	if b.ToMove == White {
		b.FullmoveNumber++
	}
	return true
}

// place moves the pieces for m without any legality checks: the en passant
// victim is removed, the rook follows a castling king and a pawn reaching the
// far rank becomes the promotion piece.
func (b *Board) place(m Move) {
	piece := b.PieceAt(m.From)

	if b.isEnPassantCapture(m) {
		b.SetPiece(Square{File: m.To.File, Rank: m.From.Rank}, Piece{})
	}

	if rook := castleRookMove(m, piece); rook != nil {
		b.SetPiece(rook.To, b.PieceAt(rook.From))
		b.SetPiece(rook.From, Piece{})
	}

	landing := piece
	if piece.Type == Pawn && m.Promotion != NoPieceType && m.To.Rank == piece.Color.promotionRank() {
		landing.Type = m.Promotion
	}

	b.SetPiece(m.From, Piece{})
	b.SetPiece(m.To, landing)
}

func (b *Board) isEnPassantCapture(m Move) bool {
	return b.EnPassant != nil && m.To == *b.EnPassant && b.PieceAt(m.From).Type == Pawn && m.From.File != m.To.File
}

// capturedBy reports the piece m would capture and where it stands.
func (b *Board) capturedBy(m Move) (Piece, Square) {
	if b.isEnPassantCapture(m) {
		sq := Square{File: m.To.File, Rank: m.From.Rank}
		return b.PieceAt(sq), sq
	}
	return b.PieceAt(m.To), m.To
}

// castleRookMove returns the rook relocation implied by a two-file king move.
func castleRookMove(m Move, piece Piece) *CastleRookMove {
	if piece.Type != King || m.From.Rank != m.To.Rank || abs(m.To.File-m.From.File) != 2 {
		return nil
	}
	if m.To.File > m.From.File {
		return &CastleRookMove{
			From: Square{File: 7, Rank: m.From.Rank},
			To:   Square{File: m.To.File - 1, Rank: m.From.Rank},
		}
	}
	return &CastleRookMove{
		From: Square{File: 0, Rank: m.From.Rank},
		To:   Square{File: m.To.File + 1, Rank: m.From.Rank},
	}
}

// IsInCheck reports whether color's king is attacked. A board without that
// king is corrupt and panics.
func (b *Board) IsInCheck(color Color) bool {
	king, ok := b.FindKing(color)
	if !ok {
		panic(fmt.Sprintf("model: no %s king on board", color))
	}
	return b.isAttacked(king, color.Opposite())
}

// isAttacked reports whether any piece of attacker could move onto sq under
// the basic probe.
func (b *Board) isAttacked(sq Square, attacker Color) bool {
	probe := b.clone()
	probe.ToMove = attacker
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := probe.Squares[rank][file]; p.IsEmpty() || p.Color != attacker {
				continue
			}
			if probe.isBasicMove(Move{From: Square{File: file, Rank: rank}, To: sq}, true) {
				return true
			}
		}
	}
	return false
}

// HasLegalMoves stops at the first legal move found for color. Only the side
// to move can have legal moves.
func (b *Board) HasLegalMoves(color Color) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			p := b.PieceAt(from)
			if p.IsEmpty() || p.Color != color {
				continue
			}
			for to := 0; to < 64; to++ {
				m := Move{From: from, To: Square{File: to % 8, Rank: to / 8}}
				if p.Type == Pawn {
					m.Promotion = Queen
				}
				if b.IsValidMove(m) {
					return true
				}
			}
		}
	}
	return false
}

// LegalMovesFrom lists every legal move of the piece on from. A pawn reaching
// the far rank yields one move per promotion piece.
func (b *Board) LegalMovesFrom(from Square) []Move {
	if !from.valid() {
		return nil
	}
	p := b.PieceAt(from)
	if p.IsEmpty() || p.Color != b.ToMove {
		return nil
	}
	var moves []Move
	for to := 0; to < 64; to++ {
		m := Move{From: from, To: Square{File: to % 8, Rank: to / 8}}
		if p.Type == Pawn && m.To.Rank == p.Color.promotionRank() {
			for _, promo := range promotionPieces {
				m.Promotion = promo
				if b.IsValidMove(m) {
					moves = append(moves, m)
				}
			}
			continue
		}
		if b.IsValidMove(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (b *Board) LegalMoves(color Color) []Move {
	var moves []Move
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.Squares[rank][file]; p.IsEmpty() || p.Color != color {
				continue
			}
			moves = append(moves, b.LegalMovesFrom(Square{File: file, Rank: rank})...)
		}
	}
	return moves
}

func (b *Board) IsCheckmate() bool {
	return b.IsInCheck(b.ToMove) && !b.HasLegalMoves(b.ToMove)
}

func (b *Board) IsStalemate() bool {
	return !b.IsInCheck(b.ToMove) && !b.HasLegalMoves(b.ToMove)
}

// IsInsufficientMaterial reports whether neither side can possibly mate:
// no pawns, rooks or queens anywhere, and each side holds at most a king
// with one minor piece or a king with two knights.
func (b *Board) IsInsufficientMaterial() bool {
	var counts [2]map[PieceType]int
	counts[White] = map[PieceType]int{}
	counts[Black] = map[PieceType]int{}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.Squares[rank][file]; !p.IsEmpty() {
				counts[p.Color][p.Type]++
			}
		}
	}
	return insufficient(counts[White]) && insufficient(counts[Black])
}

func insufficient(pieces map[PieceType]int) bool {
	if pieces[King] == 0 || pieces[Pawn] > 0 || pieces[Rook] > 0 || pieces[Queen] > 0 {
		return false
	}
	knights, bishops := pieces[Knight], pieces[Bishop]
	switch knights + bishops {
	case 0, 1:
		return true
	case 2:
		return knights == 2
	}
	return false
}
