package app

import (
    "context"
    "io"
    "os"

    "github.com/zeromicro/go-zero/core/logx"
    "golang.org/x/sync/errgroup"

    "github.com/jaminalder/codex-reversi/internal/domain"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

// Source is anything that can produce a position to analyse.
type Source interface {
    ReadPosition(ctx context.Context) (domain.Position, error)
}

// Result is a position and its legal moves.
type Result struct {
    Position domain.Position
    Moves    domain.MoveSet
}

// Analyze computes the legal moves for pos.
func Analyze(pos domain.Position) Result {
    return Result{Position: pos, Moves: domain.LegalMoves(pos.Board, pos.ToMove)}
}

// AnalyzeAll reads and analyses every source using at most workers
// goroutines. Results are returned in source order. The first error cancels
// the remaining work. done, if non-nil, is called once per finished source.
func AnalyzeAll(ctx context.Context, sources []Source, workers int, done func()) ([]Result, error) {
    if workers <= 0 {
        workers = 1
    }
    results := make([]Result, len(sources))
    g, ctx := errgroup.WithContext(ctx)
    g.SetLimit(workers)
    for i, src := range sources {
        i, src := i, src
        g.Go(func() error {
            if err := ctx.Err(); err != nil {
                return err
            }
            pos, err := src.ReadPosition(ctx)
            if err != nil {
                return err
            }
            results[i] = Analyze(pos)
            if done != nil {
                done()
            }
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        logx.WithContext(ctx).Errorf("batch analysis failed: %v", err)
        return nil, err
    }
    return results, nil
}

// ReaderSource reads a text grid from R.
type ReaderSource struct {
    R io.Reader
}

func (s ReaderSource) ReadPosition(ctx context.Context) (domain.Position, error) {
    return textgrid.Read(s.R)
}

// FileSource reads a text grid from the named file.
type FileSource string

func (f FileSource) ReadPosition(ctx context.Context) (domain.Position, error) {
    fh, err := os.Open(string(f))
    if err != nil {
        return domain.Position{}, err
    }
    defer fh.Close()
    pos, err := textgrid.Read(fh)
    if err != nil {
        return domain.Position{}, &SourceError{Name: string(f), Err: err}
    }
    return pos, nil
}

// TextSource parses separate board and side strings, as submitted by forms
// and API requests.
type TextSource struct {
    Board string
    Side  string
}

func (s TextSource) ReadPosition(ctx context.Context) (domain.Position, error) {
    side, err := textgrid.ParseSide(s.Side)
    if err != nil {
        return domain.Position{}, err
    }
    b, err := textgrid.ParseBoard(s.Board)
    if err != nil {
        return domain.Position{}, err
    }
    return domain.Position{Board: b, ToMove: side}, nil
}

// SourceError ties an input error to the source that produced it.
type SourceError struct {
    Name string
    Err  error
}

func (e *SourceError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }
