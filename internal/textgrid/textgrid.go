// Package textgrid reads and writes positions in the plain text grid format:
// one line per board row using '.', 'B' and 'W', followed by a line holding
// the side to move.
package textgrid

import (
    "bufio"
    "errors"
    "fmt"
    "io"
    "strings"

    "github.com/jaminalder/codex-reversi/internal/domain"
)

// Grid characters.
const (
    EmptyChar  = '.'
    BlackChar  = 'B'
    WhiteChar  = 'W'
    MarkerChar = '0'
)

// ErrInvalidMarker is returned for a legal-move marker that is also a cell character.
var ErrInvalidMarker = errors.New("marker must differ from '.', 'B' and 'W'")

// CheckMarker reports whether m can mark legal moves unambiguously.
func CheckMarker(m rune) error {
    if _, isCell := cellOf(m); isCell {
        return ErrInvalidMarker
    }
    return nil
}

// DataError describes a malformed board. It matches domain.ErrInvalidBoardData.
type DataError struct {
    Row    int
    Col    int
    Char   rune
    Reason string
}

func (e *DataError) Error() string {
    if e.Reason != "" {
        return fmt.Sprintf("invalid board data: %s", e.Reason)
    }
    return fmt.Sprintf("invalid board data: unexpected %q at row %d col %d", e.Char, e.Row, e.Col)
}

func (e *DataError) Unwrap() error { return domain.ErrInvalidBoardData }

func cellOf(ch rune) (domain.Cell, bool) {
    switch ch {
    case EmptyChar:
        return domain.Empty, true
    case BlackChar:
        return domain.BlackPiece, true
    case WhiteChar:
        return domain.WhitePiece, true
    }
    return domain.Empty, false
}

func charOf(c domain.Cell) rune {
    switch c {
    case domain.BlackPiece:
        return BlackChar
    case domain.WhitePiece:
        return WhiteChar
    default:
        return EmptyChar
    }
}

// SideChar returns the token for s.
func SideChar(s domain.Side) rune {
    if s == domain.Black {
        return BlackChar
    }
    return WhiteChar
}

// ParseBoard parses newline separated rows into a board.
func ParseBoard(s string) (domain.Board, error) {
    s = strings.ReplaceAll(s, "\r\n", "\n")
    s = strings.TrimRight(s, "\n")
    if s == "" {
        return domain.Board{}, &DataError{Reason: "empty board"}
    }
    lines := strings.Split(s, "\n")
    grid := make([][]domain.Cell, len(lines))
    for r, line := range lines {
        row := make([]domain.Cell, 0, len(line))
        c := 0
        for _, ch := range line {
            cell, ok := cellOf(ch)
            if !ok {
                return domain.Board{}, &DataError{Row: r, Col: c, Char: ch}
            }
            row = append(row, cell)
            c++
        }
        if r > 0 && len(row) != len(grid[0]) {
            return domain.Board{}, &DataError{Reason: fmt.Sprintf("row %d has %d cells, want %d", r, len(row), len(grid[0]))}
        }
        if len(row) == 0 {
            return domain.Board{}, &DataError{Reason: fmt.Sprintf("row %d is empty", r)}
        }
        grid[r] = row
    }
    return domain.NewBoard(grid)
}

// ParseSide parses a single side token.
func ParseSide(s string) (domain.Side, error) {
    switch strings.TrimSpace(s) {
    case string(BlackChar):
        return domain.Black, nil
    case string(WhiteChar):
        return domain.White, nil
    }
    return domain.Black, fmt.Errorf("%w: %q", domain.ErrInvalidSide, s)
}

// Read parses a whole position: board rows, then the side on the last line.
// Blank lines are ignored.
func Read(r io.Reader) (domain.Position, error) {
    var lines []string
    sc := bufio.NewScanner(r)
    for sc.Scan() {
        line := strings.TrimRight(sc.Text(), "\r")
        if strings.TrimSpace(line) == "" {
            continue
        }
        lines = append(lines, line)
    }
    if err := sc.Err(); err != nil {
        return domain.Position{}, err
    }
    if len(lines) < 2 {
        return domain.Position{}, &DataError{Reason: "need at least one board row and a side line"}
    }
    side, err := ParseSide(lines[len(lines)-1])
    if err != nil {
        return domain.Position{}, err
    }
    b, err := ParseBoard(strings.Join(lines[:len(lines)-1], "\n"))
    if err != nil {
        return domain.Position{}, err
    }
    return domain.Position{Board: b, ToMove: side}, nil
}

// FormatBoard writes b back into the grid format without a side line.
func FormatBoard(b domain.Board) string {
    return Renderer{}.grid(b, nil)
}

// Render returns the grid with every legal move replaced by MarkerChar,
// followed by the side line. There is no trailing newline.
func Render(b domain.Board, moves domain.MoveSet, side domain.Side) string {
    return Renderer{}.Render(b, moves, side)
}
