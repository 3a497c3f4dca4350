package model

// IsValidMove reports whether m is legal for the side to move: the piece
// belongs to that side, its shape rule holds, the destination is not a
// friendly piece, and the mover's king is not left in check.
func (b *Board) IsValidMove(m Move) bool {
	if !b.isBasicMove(m, false) {
		return false
	}
	mover := b.PieceAt(m.From).Color
	after := b.clone()
	after.place(m)
	return !after.IsInCheck(mover)
}

// isBasicMove checks ownership, destination and shape only. With attack set
// it is the probe used for check detection: castling is never considered and
// a pawn reaching the far rank needs no promotion choice.
func (b *Board) isBasicMove(m Move, attack bool) bool {
	if !m.From.valid() || !m.To.valid() || m.From == m.To {
		return false
	}
	piece := b.PieceAt(m.From)
	if piece.IsEmpty() || piece.Color != b.ToMove {
		return false
	}
	if dest := b.PieceAt(m.To); !dest.IsEmpty() && dest.Color == piece.Color {
		return false
	}

	switch piece.Type {
	case Pawn:
		return b.isValidPawnMove(m, piece, attack)
	case Rook:
		return b.isValidRookMove(m)
	case Knight:
		return isValidKnightMove(m)
	case Bishop:
		return b.isValidBishopMove(m)
	case Queen:
		return b.isValidRookMove(m) || b.isValidBishopMove(m)
	case King:
		if isKingStep(m) {
			return true
		}
		return !attack && b.isValidCastle(m, piece.Color)
	}
	return false
}

// A promotion given for a move that does not reach the far rank is accepted
// here and ignored when the move is placed.
func (b *Board) isValidPawnMove(m Move, piece Piece, attack bool) bool {
	dir := piece.Color.pawnDirection()
	fileDiff := m.To.File - m.From.File
	rankDiff := m.To.Rank - m.From.Rank

	if !attack && m.To.Rank == piece.Color.promotionRank() && m.Promotion == NoPieceType {
		return false
	}

	switch {
	case fileDiff == 0 && rankDiff == dir:
		return b.PieceAt(m.To).IsEmpty()
	case fileDiff == 0 && rankDiff == 2*dir:
		between := Square{File: m.From.File, Rank: m.From.Rank + dir}
		return m.From.Rank == piece.Color.pawnStartRank() &&
			b.PieceAt(between).IsEmpty() &&
			b.PieceAt(m.To).IsEmpty()
	case abs(fileDiff) == 1 && rankDiff == dir:
		if !b.PieceAt(m.To).IsEmpty() {
			return true
		}
		return b.EnPassant != nil && m.To == *b.EnPassant
	}
	return false
}

func (b *Board) isValidRookMove(m Move) bool {
	if m.From.File != m.To.File && m.From.Rank != m.To.Rank {
		return false
	}
	return b.isPathClear(m.From, m.To)
}

func (b *Board) isValidBishopMove(m Move) bool {
	if abs(m.To.File-m.From.File) != abs(m.To.Rank-m.From.Rank) {
		return false
	}
	return b.isPathClear(m.From, m.To)
}

func isValidKnightMove(m Move) bool {
	df, dr := abs(m.To.File-m.From.File), abs(m.To.Rank-m.From.Rank)
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

func isKingStep(m Move) bool {
	return abs(m.To.File-m.From.File) <= 1 && abs(m.To.Rank-m.From.Rank) <= 1
}

// isPathClear walks unit steps from from toward to and fails on the first
// occupied square strictly between them.
func (b *Board) isPathClear(from, to Square) bool {
	df, dr := sign(to.File-from.File), sign(to.Rank-from.Rank)
	file, rank := from.File+df, from.Rank+dr
	for file != to.File || rank != to.Rank {
		if !b.Squares[rank][file].IsEmpty() {
			return false
		}
		file += df
		rank += dr
	}
	return true
}

// isValidCastle validates a two-file king move along the home rank. Only the
// king's legality is decided here; the rook moves in place.
func (b *Board) isValidCastle(m Move, color Color) bool {
	rank := color.homeRank()
	if m.From != (Square{File: 4, Rank: rank}) || m.To.Rank != rank || abs(m.To.File-m.From.File) != 2 {
		return false
	}
	kingside := m.To.File > m.From.File
	if !b.Castling.Allows(color, kingside) {
		return false
	}

	rookFile := 0
	if kingside {
		rookFile = 7
	}
	if !b.Squares[rank][rookFile].is(color, Rook) {
		return false
	}
	if !b.isPathClear(m.From, Square{File: rookFile, Rank: rank}) {
		return false
	}

	if b.IsInCheck(color) {
		return false
	}
	transit := Square{File: m.From.File + sign(m.To.File-m.From.File), Rank: rank}
	if b.withKingOn(m.From, transit).IsInCheck(color) {
		return false
	}
	return !b.withKingOn(m.From, m.To).IsInCheck(color)
}

// withKingOn returns a scratch copy with the king on from relocated to sq.
func (b *Board) withKingOn(from, sq Square) *Board {
	probe := b.clone()
	probe.SetPiece(sq, probe.PieceAt(from))
	probe.SetPiece(from, Piece{})
	return probe
}
