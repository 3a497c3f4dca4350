package model

// CastlingRights only ever lose flags during a game.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside" bson:"white_kingside"`
	WhiteQueenside bool `json:"whiteQueenside" bson:"white_queenside"`
	BlackKingside  bool `json:"blackKingside" bson:"black_kingside"`
	BlackQueenside bool `json:"blackQueenside" bson:"black_queenside"`
}

func allCastlingRights() CastlingRights {
	return CastlingRights{true, true, true, true}
}

func (cr CastlingRights) Allows(color Color, kingside bool) bool {
	switch {
	case color == White && kingside:
		return cr.WhiteKingside
	case color == White:
		return cr.WhiteQueenside
	case kingside:
		return cr.BlackKingside
	default:
		return cr.BlackQueenside
	}
}

func (cr *CastlingRights) revoke(color Color, kingside bool) {
	switch {
	case color == White && kingside:
		cr.WhiteKingside = false
	case color == White:
		cr.WhiteQueenside = false
	case kingside:
		cr.BlackKingside = false
	default:
		cr.BlackQueenside = false
	}
}

func (cr *CastlingRights) revokeAll(color Color) {
	cr.revoke(color, true)
	cr.revoke(color, false)
}

// revokeRookSquare clears the right tied to a rook home square, if sq is one.
func (cr *CastlingRights) revokeRookSquare(sq Square) {
	for _, color := range [...]Color{White, Black} {
		if sq.Rank != color.homeRank() {
			continue
		}
		switch sq.File {
		case 0:
			cr.revoke(color, false)
		case 7:
			cr.revoke(color, true)
		}
	}
}
