package model

import "fmt"

// Game is a two-player session around a Board. The creator plays White; the
// board only changes while the game is InProgress.
type Game struct {
	ID      uint64   `json:"id" bson:"_id"`
	White   PlayerID `json:"white" bson:"white"`
	Black   PlayerID `json:"black" bson:"black"`
	Board   Board    `json:"board" bson:"board"`
	Status  Status   `json:"status" bson:"status"`
	History []Ply    `json:"history" bson:"history"`
}

func NewGame(id uint64, creator PlayerID) *Game {
	return &Game{
		ID:      id,
		White:   creator,
		Board:   *NewBoard(),
		Status:  WaitingForPlayer,
		History: make([]Ply, 0),
	}
}

// JoinGame seats player as Black and starts the game.
func (g *Game) JoinGame(player PlayerID) error {
	if g.Black != "" {
		return ErrAlreadyTwoPlayers
	}
	if player == g.White {
		return ErrCannotJoinOwnGame
	}
	g.Black = player
	g.Status = InProgress
	return nil
}

func (g *Game) playerFor(c Color) PlayerID {
	if c == White {
		return g.White
	}
	return g.Black
}

// ColorOf returns the side player is seated on.
func (g *Game) ColorOf(player PlayerID) (Color, bool) {
	switch {
	case player == "":
		return White, false
	case player == g.White:
		return White, true
	case player == g.Black:
		return Black, true
	}
	return White, false
}

func (g *Game) HasPlayer(player PlayerID) bool {
	_, ok := g.ColorOf(player)
	return ok
}

func (g *Game) Players() []ClientPlayer {
	var players []ClientPlayer
	if g.White != "" {
		players = append(players, ClientPlayer{ID: g.White, Color: White})
	}
	if g.Black != "" {
		players = append(players, ClientPlayer{ID: g.Black, Color: Black})
	}
	return players
}

// MakeMove plays from→to for actor. promotion is "" or one of Q, R, B, N.
// On success the status is re-derived from the resulting position.
func (g *Game) MakeMove(actor PlayerID, from, to, promotion string) error {
	mover := g.Board.ToMove
	if p := g.playerFor(mover); p == "" || p != actor {
		return ErrNotPlayersTurn
	}
	if g.Status != InProgress {
		return ErrGameNotInProgress
	}

	fromSq, err := ParseSquare(from)
	if err != nil {
		return fmt.Errorf("from square: %w", err)
	}
	toSq, err := ParseSquare(to)
	if err != nil {
		return fmt.Errorf("to square: %w", err)
	}
	promo, err := ParsePromotion(promotion)
	if err != nil {
		return err
	}

	m := Move{From: fromSq, To: toSq, Promotion: promo}
	ply := g.plyFor(m)
	if !g.Board.MakeMove(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	if landed := g.Board.PieceAt(toSq); landed.Type != ply.Piece.Type {
		ply.Promotion = landed.Type
	}
	g.History = append(g.History, ply)

	switch {
	case g.Board.IsCheckmate():
		g.Status = winner(mover)
	case g.Board.IsStalemate(), g.Board.IsInsufficientMaterial():
		g.Status = Draw
	}
	return nil
}

func (g *Game) plyFor(m Move) Ply {
	piece := g.Board.PieceAt(m.From)
	captured, _ := g.Board.capturedBy(m)
	return Ply{
		Piece:          piece,
		From:           m.From,
		To:             m.To,
		CapturedPiece:  captured,
		CastleRookMove: castleRookMove(m, piece),
	}
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.Board.IsInCheck(g.Board.ToMove)
}

func (g *Game) LastMove() *Ply {
	if len(g.History) == 0 {
		return nil
	}
	return &g.History[len(g.History)-1]
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (g *Game) Clone() *Game {
	c := *g
	c.History = make([]Ply, len(g.History))
	copy(c.History, g.History)
	if g.Board.EnPassant != nil {
		ep := *g.Board.EnPassant
		c.Board.EnPassant = &ep
	}
	return &c
}
