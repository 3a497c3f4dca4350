package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/benbeisheim/chess-backend/internal/model"
)

const (
	squareSize = 60
	margin     = 24
	boardSize  = 8*squareSize + 2*margin
)

// SVG draws b as an image from White's side, with coordinates around the edge
// and the last move shaded.
func SVG(w io.Writer, b *model.Board, last *model.Ply) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize)
	canvas.Rect(0, 0, boardSize, boardSize, "fill:#312e2b")

	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := model.Square{File: file, Rank: rank}
			x := margin + file*squareSize
			y := margin + (7-rank)*squareSize
			fill := "#b58863"
			if (file+rank)%2 == 1 {
				fill = "#f0d9b5"
			}
			if last != nil && (last.From == sq || last.To == sq) {
				fill = "#cdd26a"
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)

			if p := b.PieceAt(sq); !p.IsEmpty() {
				canvas.Text(x+squareSize/2, y+squareSize*3/4, p.Glyph(),
					"text-anchor:middle;font-size:44px;font-family:serif;fill:#000")
			}
		}
	}

	label := "text-anchor:middle;font-size:14px;font-family:sans-serif;fill:#eee"
	for i := 0; i < 8; i++ {
		canvas.Text(margin+i*squareSize+squareSize/2, boardSize-6, string(rune('a'+i)), label)
		canvas.Text(margin/2, margin+i*squareSize+squareSize/2+5, fmt.Sprint(8-i), label)
	}
	canvas.End()
}
