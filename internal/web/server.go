package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

// Options tune the HTTP surface.
type Options struct {
    Marker    rune
    Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment renderer on s so session updates stream to subscribers.
func NewServer(s *app.Service, opts Options) http.Handler {
    if opts.Marker == 0 {
        opts.Marker = textgrid.MarkerChar
    }
    if opts.Heartbeat <= 0 {
        opts.Heartbeat = 15 * time.Second
    }
    h := &handlers{svc: s, tpl: loadTemplates(), marker: opts.Marker, heartbeat: opts.Heartbeat}
    s.SetRenderer(func(ss app.Session) []byte { return h.renderBoard(ss, "") })

    r := chi.NewRouter()
    r.Get("/", h.index)
    r.Post("/analyze", h.analyze)
    r.Post("/session", h.create)
    r.Route("/session/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/position", h.setPosition)
        r.Get("/events", h.events)
    })
    r.Route("/api", func(r chi.Router) {
        r.Post("/legal-moves", h.apiLegalMoves)
        r.Get("/session/{id}", h.apiSession)
    })
    return r
}
