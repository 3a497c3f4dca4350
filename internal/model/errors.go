package model

import "errors"

var (
	ErrInvalidSquare     = errors.New("invalid square")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
	ErrNotPlayersTurn    = errors.New("not your turn")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrIllegalMove       = errors.New("illegal move")
	ErrAlreadyTwoPlayers = errors.New("game already has two players")
	ErrCannotJoinOwnGame = errors.New("cannot join your own game")
)
