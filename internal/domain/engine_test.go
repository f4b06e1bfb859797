package domain

import (
    "sync"
    "testing"
)

var initialRows = []string{
    "........",
    "........",
    "........",
    "...BW...",
    "...WB...",
    "........",
    "........",
    "........",
}

func TestInitialPositionBlack(t *testing.T) {
    b := boardFrom(t, initialRows...)
    got := LegalMoves(b, Black)
    want := MoveSet{{2, 4}, {3, 5}, {4, 2}, {5, 3}}
    if !got.Equal(want) {
        t.Fatalf("expected %v, got %v", want, got)
    }
}

func TestInitialPositionWhite(t *testing.T) {
    b := boardFrom(t, initialRows...)
    got := LegalMoves(b, White)
    want := MoveSet{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
    if !got.Equal(want) {
        t.Fatalf("expected %v, got %v", want, got)
    }
}

func TestFullBoardHasNoMoves(t *testing.T) {
    rows := make([]string, 8)
    for i := range rows {
        rows[i] = "BBBBBBBB"
    }
    b := boardFrom(t, rows...)
    for _, s := range []Side{Black, White} {
        got := LegalMoves(b, s)
        if got == nil || len(got) != 0 {
            t.Fatalf("expected empty non-nil set for %v, got %#v", s, got)
        }
    }
}

func TestSingleRowCapture(t *testing.T) {
    b := boardFrom(t, "BW.")
    got := LegalMoves(b, Black)
    if !got.Equal(MoveSet{{0, 2}}) {
        t.Fatalf("expected {(0,2)}, got %v", got)
    }
    if moves := LegalMoves(b, White); len(moves) != 0 {
        t.Fatalf("expected no moves for White, got %v", moves)
    }
}

func TestCornerCapturesInThreeDirections(t *testing.T) {
    b := boardFrom(t,
        ".WB.....",
        "WW......",
        "B.B.....",
        "........",
        "........",
        "........",
        "........",
        "........",
    )
    p := Pos{0, 0}
    if !IsLegalMove(b, Black, p) {
        t.Fatalf("expected (0,0) legal for Black")
    }
    got := CaptureDirections(b, Black, p)
    want := map[Direction]bool{{0, 1}: true, {1, 0}: true, {1, 1}: true}
    if len(got) != len(want) {
        t.Fatalf("expected 3 capture directions, got %v", got)
    }
    for _, d := range got {
        if !want[d] {
            t.Fatalf("unexpected direction %v", d)
        }
    }
}

func TestDirectionScanRules(t *testing.T) {
    cases := []struct {
        name string
        row  string
        want bool
    }{
        {"bracketed", ".WB", true},
        {"long run", ".WWWWB", true},
        {"gap breaks run", ".W.B", false},
        {"runs off edge", ".WWW", false},
        {"own piece adjacent", ".BW", false},
        {"empty adjacent", "..WB", false},
    }
    for _, tc := range cases {
        b := boardFrom(t, tc.row)
        got := CapturesInDirection(b, Black, Pos{0, 0}, Direction{0, 1})
        if got != tc.want {
            t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
        }
    }
}

func TestZeroDirectionNeverCaptures(t *testing.T) {
    b := boardFrom(t, "WB")
    if CapturesInDirection(b, Black, Pos{0, 0}, Direction{}) {
        t.Fatalf("zero direction must not capture")
    }
}

func TestOccupiedCellsNeverLegal(t *testing.T) {
    b := boardFrom(t, initialRows...)
    for r := 0; r < b.Height(); r++ {
        for c := 0; c < b.Width(); c++ {
            if empty, _ := b.IsEmpty(r, c); empty {
                continue
            }
            for _, s := range []Side{Black, White} {
                if IsLegalMove(b, s, Pos{r, c}) {
                    t.Fatalf("occupied (%d,%d) reported legal for %v", r, c, s)
                }
            }
        }
    }
}

func TestOutOfRangeNeverLegal(t *testing.T) {
    b := boardFrom(t, initialRows...)
    for _, p := range []Pos{{-1, 0}, {8, 0}, {0, -1}, {0, 8}} {
        if IsLegalMove(b, Black, p) {
            t.Fatalf("off-board %v reported legal", p)
        }
        if d := CaptureDirections(b, Black, p); len(d) != 0 {
            t.Fatalf("off-board %v has directions %v", p, d)
        }
    }
}

func TestEdgesAndCornersScanSafely(t *testing.T) {
    b := boardFrom(t,
        "WWWWWWWW",
        "W......W",
        "W......W",
        "W......W",
        "W......W",
        "W......W",
        "W......W",
        "WWWWWWWW",
    )
    for r := 0; r < b.Height(); r++ {
        for c := 0; c < b.Width(); c++ {
            for _, d := range Directions() {
                // must not panic on any in-bounds start
                _ = CapturesInDirection(b, Black, Pos{r, c}, d)
            }
        }
    }
    if moves := LegalMoves(b, Black); len(moves) != 0 {
        t.Fatalf("expected no Black moves without own pieces, got %v", moves)
    }
}

func TestEnumerationIsDeterministicAndPure(t *testing.T) {
    b := boardFrom(t, initialRows...)
    before := b.Rows()
    first := LegalMoves(b, Black)

    var wg sync.WaitGroup
    results := make([]MoveSet, 16)
    for i := range results {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            results[i] = LegalMoves(b, Black)
        }(i)
    }
    wg.Wait()
    for i, got := range results {
        if !got.Equal(first) {
            t.Fatalf("run %d: expected %v, got %v", i, first, got)
        }
    }
    after := b.Rows()
    for r := range before {
        for c := range before[r] {
            if before[r][c] != after[r][c] {
                t.Fatalf("board mutated at (%d,%d)", r, c)
            }
        }
    }
}

func TestLegalMovesRowMajor(t *testing.T) {
    b := boardFrom(t, initialRows...)
    got := LegalMoves(b, Black)
    want := MoveSet{{2, 4}, {3, 5}, {4, 2}, {5, 3}}
    for i := range want {
        if got[i] != want[i] {
            t.Fatalf("expected row-major %v, got %v", want, got)
        }
    }
}

func TestDirectionNames(t *testing.T) {
    names := map[string]bool{}
    for _, d := range Directions() {
        names[d.String()] = true
    }
    for _, n := range []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"} {
        if !names[n] {
            t.Fatalf("missing direction %s", n)
        }
    }
}
