package web

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/zeromicro/go-zero/core/logx"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/domain"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

type handlers struct {
    svc       *app.Service
    tpl       *templates
    marker    rune
    heartbeat time.Duration
}

func (h *handlers) sessionView(ss app.Session, errMsg string) boardView {
    v := newBoardView(ss.Result, h.marker)
    v.ID = ss.ID
    v.Version = ss.Version
    v.Error = errMsg
    return v
}

func (h *handlers) renderBoard(ss app.Session, errMsg string) []byte {
    return renderTemplate(h.tpl.board, "board", h.sessionView(ss, errMsg))
}

func errorMessage(err error) string {
    switch {
    case errors.Is(err, app.ErrNotOwner):
        return "This board is read only"
    case errors.Is(err, app.ErrNotFound):
        return "Board not found"
    case errors.Is(err, domain.ErrInvalidBoardData):
        return err.Error()
    case errors.Is(err, domain.ErrInvalidSide):
        return "Side must be B or W"
    default:
        return "Invalid request"
    }
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    data := struct{ Board string }{Board: textgrid.FormatBoard(domain.StandardBoard())}
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.index, "base", data))
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    src := app.TextSource{Board: r.Form.Get("board"), Side: r.Form.Get("side")}
    var data boardView
    pos, err := src.ReadPosition(r.Context())
    if err != nil {
        data.Error = errorMessage(err)
    } else {
        data = newBoardView(app.Analyze(pos), h.marker)
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(renderTemplate(h.tpl.result, "result", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    pid := ensurePlayerCookie(w, r)
    pos := domain.Position{Board: domain.StandardBoard(), ToMove: domain.Black}
    ss, err := h.svc.CreateSession(r.Context(), pid, pos)
    if err != nil {
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    http.Redirect(w, r, "/session/"+ss.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    ensurePlayerCookie(w, r)

    ss, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    data := h.sessionView(*ss, "")
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.session, "base", data))
}

func (h *handlers) setPosition(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _ = r.ParseForm()
    src := app.TextSource{Board: r.Form.Get("board"), Side: r.Form.Get("side")}

    var ss *app.Session
    pos, err := src.ReadPosition(r.Context())
    if err == nil {
        ss, err = h.svc.SetPosition(r.Context(), id, pid, pos)
    }
    var errMsg string
    if err != nil {
        logx.WithContext(r.Context()).Infof("session %s: rejected update: %v", id, err)
        errMsg = errorMessage(err)
        if g, ok := h.svc.Get(id); ok {
            ss = g
        }
    }
    if ss == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*ss, errMsg))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // Non-EventSource requests only get the headers
    if !isEventStream(r) {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        http.NotFound(w, r)
        return
    }
    defer unsub()
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            writeEvent(w, "board", b)
            flusher.Flush()
        }
    }
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, event string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", event)
    for _, line := range bytes.Split(payload, []byte("\n")) {
        _, _ = fmt.Fprintf(w, "data: %s\n", bytes.TrimRight(line, "\r"))
    }
    _, _ = io.WriteString(w, "\n")
}
