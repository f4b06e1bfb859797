package textgrid

import (
    "strings"

    "github.com/logrusorgru/aurora"

    "github.com/jaminalder/codex-reversi/internal/domain"
)

// Renderer writes annotated boards. The zero value, or a Marker that is a cell
// character, renders plain text with MarkerChar.
type Renderer struct {
    Marker rune
    Color  bool
}

func (r Renderer) marker() rune {
    if r.Marker == 0 || CheckMarker(r.Marker) != nil {
        return MarkerChar
    }
    return r.Marker
}

// Render returns the annotated grid followed by the side line. b is not modified.
func (r Renderer) Render(b domain.Board, moves domain.MoveSet, side domain.Side) string {
    var sb strings.Builder
    sb.WriteString(r.grid(b, moves))
    sb.WriteByte('\n')
    sb.WriteRune(SideChar(side))
    return sb.String()
}

func (r Renderer) grid(b domain.Board, moves domain.MoveSet) string {
    marked := make(map[domain.Pos]bool, len(moves))
    for _, p := range moves {
        marked[p] = true
    }
    au := aurora.NewAurora(r.Color)
    var sb strings.Builder
    for row := 0; row < b.Height(); row++ {
        if row > 0 {
            sb.WriteByte('\n')
        }
        for col := 0; col < b.Width(); col++ {
            if marked[domain.Pos{Row: row, Col: col}] {
                sb.WriteString(au.Yellow(string(r.marker())).Bold().String())
                continue
            }
            c, _ := b.Cell(row, col)
            ch := string(charOf(c))
            switch c {
            case domain.BlackPiece:
                sb.WriteString(au.Cyan(ch).String())
            case domain.WhitePiece:
                sb.WriteString(au.White(ch).Bold().String())
            default:
                sb.WriteString(au.Faint(ch).String())
            }
        }
    }
    return sb.String()
}
