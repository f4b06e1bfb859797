package domain

import (
    "errors"
    "fmt"
)

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    BlackPiece
    WhitePiece
)

func (c Cell) valid() bool { return c <= WhitePiece }

// Side is one of the two players.
type Side uint8

const (
    Black Side = iota
    White
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
    if s == Black {
        return White
    }
    return Black
}

// Cell returns the cell state occupied by s.
func (s Side) Cell() Cell {
    if s == Black {
        return BlackPiece
    }
    return WhitePiece
}

func (s Side) String() string {
    if s == Black {
        return "Black"
    }
    return "White"
}

// Pos is a (row, column) coordinate on a board.
type Pos struct {
    Row int
    Col int
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Errors returned by domain operations.
var (
    ErrInvalidBoardData = errors.New("invalid board data")
    ErrOutOfRange       = errors.New("out of range")
    ErrInvalidSide      = errors.New("invalid side")
)

// Board is an immutable width x height grid stored row-major.
type Board struct {
    width  int
    height int
    cells  []Cell
}

// Position is a board together with the side to move.
type Position struct {
    Board  Board
    ToMove Side
}

// NewBoard validates grid and returns a board holding a copy of it.
func NewBoard(grid [][]Cell) (Board, error) {
    if len(grid) == 0 || len(grid[0]) == 0 {
        return Board{}, fmt.Errorf("%w: empty grid", ErrInvalidBoardData)
    }
    h, w := len(grid), len(grid[0])
    cells := make([]Cell, 0, w*h)
    for r, row := range grid {
        if len(row) != w {
            return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoardData, r, len(row), w)
        }
        for c, cell := range row {
            if !cell.valid() {
                return Board{}, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoardData, r, c, cell)
            }
        }
        cells = append(cells, row...)
    }
    return Board{width: w, height: h, cells: cells}, nil
}

// MustBoard is like NewBoard but panics on invalid input.
func MustBoard(grid [][]Cell) Board {
    b, err := NewBoard(grid)
    if err != nil {
        panic(err)
    }
    return b
}

// StandardBoard returns the 8x8 opening position.
func StandardBoard() Board {
    grid := make([][]Cell, 8)
    for r := range grid {
        grid[r] = make([]Cell, 8)
    }
    grid[3][3], grid[4][4] = BlackPiece, BlackPiece
    grid[3][4], grid[4][3] = WhitePiece, WhitePiece
    return MustBoard(grid)
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

// InBounds reports whether (row, col) lies on the board.
func (b Board) InBounds(row, col int) bool {
    return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Cell returns the state at (row, col).
func (b Board) Cell(row, col int) (Cell, error) {
    if !b.InBounds(row, col) {
        return Empty, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfRange, row, col, b.width, b.height)
    }
    return b.at(row, col), nil
}

// IsEmpty reports whether (row, col) holds no piece.
func (b Board) IsEmpty(row, col int) (bool, error) {
    c, err := b.Cell(row, col)
    if err != nil {
        return false, err
    }
    return c == Empty, nil
}

// at skips the bounds check; callers must check InBounds first.
func (b Board) at(row, col int) Cell { return b.cells[row*b.width+col] }

// Rows returns a copy of the grid.
func (b Board) Rows() [][]Cell {
    out := make([][]Cell, b.height)
    for r := range out {
        out[r] = append([]Cell(nil), b.cells[r*b.width:(r+1)*b.width]...)
    }
    return out
}

// Count returns the number of cells holding c.
func (b Board) Count(c Cell) int {
    n := 0
    for _, v := range b.cells {
        if v == c {
            n++
        }
    }
    return n
}
