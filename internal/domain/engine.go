package domain

import "sort"

// Direction is a unit step on the board.
type Direction struct {
    DR int
    DC int
}

func (d Direction) String() string {
    switch d {
    case Direction{-1, 0}:
        return "N"
    case Direction{-1, 1}:
        return "NE"
    case Direction{0, 1}:
        return "E"
    case Direction{1, 1}:
        return "SE"
    case Direction{1, 0}:
        return "S"
    case Direction{1, -1}:
        return "SW"
    case Direction{0, -1}:
        return "W"
    case Direction{-1, -1}:
        return "NW"
    default:
        return "?"
    }
}

var directions = [8]Direction{
    {-1, -1}, {-1, 0}, {-1, 1},
    {0, -1}, {0, 1},
    {1, -1}, {1, 0}, {1, 1},
}

// Directions returns the eight compass steps.
func Directions() [8]Direction { return directions }

// CapturesInDirection reports whether placing side at p brackets a run of
// opponent pieces in direction d.
func CapturesInDirection(b Board, side Side, p Pos, d Direction) bool {
    if d == (Direction{}) {
        return false
    }
    own, opp := side.Cell(), side.Opponent().Cell()
    r, c := p.Row+d.DR, p.Col+d.DC
    // at least one opponent piece must be adjacent
    if !b.InBounds(r, c) || b.at(r, c) != opp {
        return false
    }
    for {
        r, c = r+d.DR, c+d.DC
        if !b.InBounds(r, c) {
            return false
        }
        switch b.at(r, c) {
        case own:
            return true
        case Empty:
            return false
        }
    }
}

// IsLegalMove reports whether side may place a piece at p.
// Coordinates off the board are never legal.
func IsLegalMove(b Board, side Side, p Pos) bool {
    if !b.InBounds(p.Row, p.Col) || b.at(p.Row, p.Col) != Empty {
        return false
    }
    for _, d := range directions {
        if CapturesInDirection(b, side, p, d) {
            return true
        }
    }
    return false
}

// CaptureDirections returns every direction in which a placement at p
// would capture, evaluated exhaustively. It is empty when p is not legal.
func CaptureDirections(b Board, side Side, p Pos) []Direction {
    if !b.InBounds(p.Row, p.Col) || b.at(p.Row, p.Col) != Empty {
        return nil
    }
    var out []Direction
    for _, d := range directions {
        if CapturesInDirection(b, side, p, d) {
            out = append(out, d)
        }
    }
    return out
}

// MoveSet is a collection of legal moves in row-major order.
type MoveSet []Pos

// LegalMoves enumerates every legal move for side. The result is never nil.
func LegalMoves(b Board, side Side) MoveSet {
    moves := MoveSet{}
    for r := 0; r < b.height; r++ {
        for c := 0; c < b.width; c++ {
            p := Pos{Row: r, Col: c}
            if IsLegalMove(b, side, p) {
                moves = append(moves, p)
            }
        }
    }
    return moves
}

// Contains reports whether p is in the set.
func (m MoveSet) Contains(p Pos) bool {
    for _, q := range m {
        if q == p {
            return true
        }
    }
    return false
}

// Equal reports whether m and o hold the same moves, ignoring order.
func (m MoveSet) Equal(o MoveSet) bool {
    if len(m) != len(o) {
        return false
    }
    a, b := m.sorted(), o.sorted()
    for i := range a {
        if a[i] != b[i] {
            return false
        }
    }
    return true
}

func (m MoveSet) sorted() MoveSet {
    out := append(MoveSet(nil), m...)
    sort.Slice(out, func(i, j int) bool {
        if out[i].Row != out[j].Row {
            return out[i].Row < out[j].Row
        }
        return out[i].Col < out[j].Col
    })
    return out
}
