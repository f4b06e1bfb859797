// Command legalmoves reads a board and the side to move and prints the board
// with every legal move marked.
//
//	legalmoves < position.txt
//	legalmoves -workers 8 a.txt b.txt c.txt
package main

import (
    "context"
    "flag"
    "fmt"
    "io"
    "os"
    "unicode/utf8"

    "github.com/logrusorgru/aurora"
    "github.com/schollz/progressbar/v3"
    "github.com/zeromicro/go-zero/core/logx"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

func main() {
    os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
    logx.Disable()
    fs := flag.NewFlagSet("legalmoves", flag.ContinueOnError)
    fs.SetOutput(stderr)
    color := fs.Bool("color", false, "highlight legal moves with ANSI colors")
    marker := fs.String("marker", string(textgrid.MarkerChar), "legal move marker")
    workers := fs.Int("workers", 4, "parallel files in batch mode")
    quiet := fs.Bool("q", false, "no progress bar in batch mode")
    if err := fs.Parse(args); err != nil {
        return 2
    }
    if utf8.RuneCountInString(*marker) != 1 {
        fmt.Fprintln(stderr, "marker must be a single character")
        return 2
    }
    m, _ := utf8.DecodeRuneInString(*marker)
    if err := textgrid.CheckMarker(m); err != nil {
        fmt.Fprintln(stderr, err)
        return 2
    }
    au := aurora.NewAurora(*color)
    r := textgrid.Renderer{Marker: m, Color: *color}

    if fs.NArg() == 0 {
        pos, err := app.ReaderSource{R: stdin}.ReadPosition(context.Background())
        if err != nil {
            fmt.Fprintln(stderr, au.Red(err.Error()))
            return 1
        }
        res := app.Analyze(pos)
        fmt.Fprint(stdout, r.Render(pos.Board, res.Moves, pos.ToMove))
        return 0
    }

    files := fs.Args()
    sources := make([]app.Source, len(files))
    for i, f := range files {
        sources[i] = app.FileSource(f)
    }
    var done func()
    if !*quiet {
        bar := newBar(stderr, len(files))
        defer func() {
            _ = bar.Finish()
            _ = bar.Close()
        }()
        done = func() { _ = bar.Add(1) }
    }
    results, err := app.AnalyzeAll(context.Background(), sources, *workers, done)
    if err != nil {
        fmt.Fprintln(stderr, au.Red(err.Error()))
        return 1
    }
    for i, res := range results {
        if i > 0 {
            fmt.Fprintln(stdout)
        }
        fmt.Fprintf(stdout, "# %s\n", files[i])
        fmt.Fprintln(stdout, r.Render(res.Position.Board, res.Moves, res.Position.ToMove))
    }
    return 0
}

func newBar(w io.Writer, n int) *progressbar.ProgressBar {
    return progressbar.NewOptions(n,
        progressbar.OptionSetWriter(w),
        progressbar.OptionSetDescription("analysing"),
        progressbar.OptionSetWidth(50),
        progressbar.OptionSetTheme(progressbar.Theme{
            Saucer:        aurora.Yellow("█").String(),
            SaucerHead:    aurora.Yellow("█").String(),
            SaucerPadding: " ",
            BarStart:      "|",
            BarEnd:        "|",
        }),
    )
}
