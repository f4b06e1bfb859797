package web

import (
    "io"
    "net/http"

    "github.com/bytedance/sonic"
    "github.com/go-chi/chi/v5"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/domain"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

const maxBodyBytes = 1 << 16

type legalMovesRequest struct {
    Board string `json:"board"`
    Side  string `json:"side"`
}

type moveDTO struct {
    Row        int      `json:"row"`
    Col        int      `json:"col"`
    Directions []string `json:"directions"`
}

type legalMovesResponse struct {
    ID       string    `json:"id,omitempty"`
    Version  int       `json:"version,omitempty"`
    Side     string    `json:"side"`
    Width    int       `json:"width"`
    Height   int       `json:"height"`
    Moves    []moveDTO `json:"moves"`
    Rendered string    `json:"rendered"`
}

type errorResponse struct {
    Error string `json:"error"`
}

func (h *handlers) toResponse(res app.Result) legalMovesResponse {
    b, side := res.Position.Board, res.Position.ToMove
    moves := make([]moveDTO, 0, len(res.Moves))
    for _, p := range res.Moves {
        var dirs []string
        for _, d := range domain.CaptureDirections(b, side, p) {
            dirs = append(dirs, d.String())
        }
        moves = append(moves, moveDTO{Row: p.Row, Col: p.Col, Directions: dirs})
    }
    return legalMovesResponse{
        Side:     string(textgrid.SideChar(side)),
        Width:    b.Width(),
        Height:   b.Height(),
        Moves:    moves,
        Rendered: textgrid.Renderer{Marker: h.marker}.Render(b, res.Moves, side),
    }
}

func (h *handlers) apiLegalMoves(w http.ResponseWriter, r *http.Request) {
    body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body"})
        return
    }
    var req legalMovesRequest
    if err := sonic.Unmarshal(body, &req); err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
        return
    }
    pos, err := app.TextSource{Board: req.Board, Side: req.Side}.ReadPosition(r.Context())
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
        return
    }
    writeJSON(w, http.StatusOK, h.toResponse(app.Analyze(pos)))
}

func (h *handlers) apiSession(w http.ResponseWriter, r *http.Request) {
    ss, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        writeJSON(w, http.StatusNotFound, errorResponse{Error: app.ErrNotFound.Error()})
        return
    }
    resp := h.toResponse(ss.Result)
    resp.ID = ss.ID
    resp.Version = ss.Version
    writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    b, err := sonic.Marshal(v)
    if err != nil {
        http.Error(w, "encode failed", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _, _ = w.Write(b)
}
