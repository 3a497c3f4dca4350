// Package render turns boards into human-readable output: glyph lines for
// terminals and logs, and SVG images for browsers.
package render

import (
	"strconv"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// LineSink receives rendered output one line per call.
type LineSink interface {
	PrintLine(line string)
}

// SinkFunc adapts a plain function to LineSink.
type SinkFunc func(line string)

func (f SinkFunc) PrintLine(line string) { f(line) }

const fileHeader = "  a b c d e f g h"

// Lines renders b from White's side: a file header, then ranks 8 to 1 with
// the rank number and one glyph per square, then a blank line.
func Lines(b *model.Board) []string {
	lines := make([]string, 0, 10)
	lines = append(lines, fileHeader)
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteString(b.Squares[rank][file].Glyph())
			sb.WriteByte(' ')
		}
		lines = append(lines, sb.String())
	}
	return append(lines, "")
}

func Board(sink LineSink, b *model.Board) {
	for _, line := range Lines(b) {
		sink.PrintLine(line)
	}
}

// Game writes the state summary followed by the board.
func Game(sink LineSink, g *model.Game) {
	sink.PrintLine("=== Game " + strconv.FormatUint(g.ID, 10) + " State ===")
	sink.PrintLine("Status: " + g.Status.String())
	sink.PrintLine("White Player: " + playerName(g.White))
	sink.PrintLine("Black Player: " + playerName(g.Black))
	sink.PrintLine("Current Turn: " + g.Board.ToMove.String())
	sink.PrintLine("Move Count: " + strconv.Itoa(g.Board.FullmoveNumber))
	sink.PrintLine("")
	Board(sink, &g.Board)
}

func playerName(p model.PlayerID) string {
	if p == "" {
		return "none"
	}
	return string(p)
}
