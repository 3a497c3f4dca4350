package model

// GameState is the client-facing snapshot of a game.
type GameState struct {
	ID             uint64 `json:"id"`
	Status         Status `json:"status"`
	Board          *Board `json:"boardState"`
	ToMove         Color  `json:"toMove"`
	IsCheck        bool   `json:"isCheck"`
	FullmoveNumber int    `json:"fullmoveNumber"`
	MoveHistory    []Ply  `json:"moveHistory"`
	LastMove       *Ply   `json:"lastMove"`
	LegalMoves     []Move `json:"legalMoves"`
	Players        struct {
		White *ClientPlayer `json:"white"`
		Black *ClientPlayer `json:"black"`
	} `json:"players"`
}

// State builds a snapshot that shares nothing with g.
func (g *Game) State() GameState {
	c := g.Clone()
	state := GameState{
		ID:             c.ID,
		Status:         c.Status,
		Board:          &c.Board,
		ToMove:         c.Board.ToMove,
		FullmoveNumber: c.Board.FullmoveNumber,
		MoveHistory:    c.History,
		LastMove:       c.LastMove(),
		LegalMoves:     []Move{},
	}
	if c.Status == InProgress {
		state.IsCheck = c.InCheck()
		if moves := c.Board.LegalMoves(c.Board.ToMove); moves != nil {
			state.LegalMoves = moves
		}
	} else if c.Status.IsTerminal() {
		state.IsCheck = c.InCheck()
	}
	for _, p := range c.Players() {
		if p.Color == White {
			state.Players.White = &p
		} else {
			state.Players.Black = &p
		}
	}
	return state
}
