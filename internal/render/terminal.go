package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/fatih/color"
)

// Terminal writes lines to W. Its Board method shades light and dark squares
// when the output supports color.
type Terminal struct {
	W io.Writer
}

func (t Terminal) PrintLine(line string) {
	fmt.Fprintln(t.W, line)
}

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgGreen, color.FgBlack)
	highlight   = color.New(color.BgYellow, color.FgBlack)
)

// Board renders b with colored squares. Squares in marked are highlighted,
// typically the last move. With color disabled the output matches Lines.
func (t Terminal) Board(b *model.Board, marked ...model.Square) {
	if color.NoColor {
		Board(t, b)
		return
	}
	isMarked := func(sq model.Square) bool {
		for _, m := range marked {
			if m == sq {
				return true
			}
		}
		return false
	}
	t.PrintLine(fileHeader)
	for rank := 7; rank >= 0; rank-- {
		line := strconv.Itoa(rank+1) + " "
		for file := 0; file < 8; file++ {
			sq, _ := model.NewSquare(file, rank)
			paint := darkSquare
			if (file+rank)%2 == 1 {
				paint = lightSquare
			}
			if isMarked(sq) {
				paint = highlight
			}
			line += paint.Sprint(b.PieceAt(sq).Glyph() + " ")
		}
		t.PrintLine(line)
	}
	t.PrintLine("")
}
