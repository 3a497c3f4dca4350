package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/fatih/color"
)

const (
	whitePlayer model.PlayerID = "white"
	blackPlayer model.PlayerID = "black"
)

var (
	errorText  = color.New(color.FgRed)
	noticeText = color.New(color.FgYellow, color.Bold)
)

type session struct {
	in   *bufio.Reader
	out  render.Terminal
	game *model.Game
}

func newSession(r io.Reader, w io.Writer) *session {
	s := &session{
		in:  bufio.NewReader(r),
		out: render.Terminal{W: w},
	}
	s.reset()
	return s
}

func (s *session) reset() {
	s.game = model.NewGame(1, whitePlayer)
	if err := s.game.JoinGame(blackPlayer); err != nil {
		panic(err)
	}
}

// Run reads commands until quit or end of input.
func (s *session) Run() error {
	s.draw()
	for {
		s.prompt()
		cmd, err := s.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && cmd != "") {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		cmd = strings.TrimSpace(cmd)

		switch args := strings.Fields(cmd); {
		case len(args) == 0:
		case args[0] == "quit" || args[0] == "exit":
			return nil
		case args[0] == "help":
			s.help()
		case args[0] == "new":
			s.reset()
			s.draw()
		case args[0] == "board" || args[0] == "d":
			s.draw()
		case args[0] == "moves":
			s.commandMoves(args[1:])
		default:
			s.commandMove(args)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func (s *session) prompt() {
	if s.game.Status.IsTerminal() {
		fmt.Fprint(s.out.W, "> ")
		return
	}
	fmt.Fprintf(s.out.W, "%s> ", s.game.Board.ToMove)
}

func (s *session) help() {
	s.out.PrintLine("e2 e4 [Q|R|B|N]  move, with an optional promotion piece")
	s.out.PrintLine("moves [square]   list legal moves")
	s.out.PrintLine("board            redraw the board")
	s.out.PrintLine("new              start over")
	s.out.PrintLine("quit             leave")
}

func (s *session) draw() {
	var marked []model.Square
	if last := s.game.LastMove(); last != nil {
		marked = append(marked, last.From, last.To)
	}
	s.out.Board(&s.game.Board, marked...)
}

func (s *session) commandMove(args []string) {
	if len(args) < 2 || len(args) > 3 {
		s.fail(errors.New("usage: <from> <to> [promotion]"))
		return
	}
	promotion := ""
	if len(args) == 3 {
		promotion = strings.ToUpper(args[2])
	}
	// Hot seat: whoever is at the keyboard plays the side to move.
	actor := whitePlayer
	if s.game.Board.ToMove == model.Black {
		actor = blackPlayer
	}
	if err := s.game.MakeMove(actor, strings.ToLower(args[0]), strings.ToLower(args[1]), promotion); err != nil {
		s.fail(err)
		return
	}
	s.draw()
	switch {
	case s.game.Status.IsTerminal():
		s.notice(fmt.Sprintf("Game ended: %s", s.game.Status))
	case s.game.InCheck():
		s.notice("Check!")
	}
}

func (s *session) commandMoves(args []string) {
	var moves []model.Move
	if len(args) > 0 {
		sq, err := model.ParseSquare(strings.ToLower(args[0]))
		if err != nil {
			s.fail(err)
			return
		}
		moves = s.game.Board.LegalMovesFrom(sq)
	} else if s.game.Status == model.InProgress {
		moves = s.game.Board.LegalMoves(s.game.Board.ToMove)
	}
	if len(moves) == 0 {
		s.out.PrintLine("no legal moves")
		return
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	s.out.PrintLine(strings.Join(names, " "))
}

func (s *session) fail(err error) {
	s.out.PrintLine(errorText.Sprint(err.Error()))
}

func (s *session) notice(text string) {
	s.out.PrintLine(noticeText.Sprint(text))
}
