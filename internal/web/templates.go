package web

import (
    "bytes"
    "html/template"
    "net/http"
    "strings"

    "github.com/google/uuid"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/domain"
    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

type templates struct {
    base    *template.Template
    session *template.Template
    board   *template.Template
    result  *template.Template
    index   *template.Template
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Reversi legal moves</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    template.Must(base.New("grid").Parse(gridTemplate))
    template.Must(base.New("board").Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Reversi legal moves</h1>
<form hx-post="/analyze" hx-target="#result" hx-swap="innerHTML" action="/analyze" method="post">
  <textarea name="board" rows="8" cols="10">{{.Board}}</textarea>
  <select name="side"><option value="B">Black</option><option value="W">White</option></select>
  <button type="submit">Analyze</button>
</form>
<div id="result"></div>
<form action="/session" method="post"><button>Share a board</button></form>`))
    session := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/session/{{.ID}}/events">
  <div id="board-stream" hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
    // Standalone fragment sets used for partial rendering
    board := template.Must(template.New("grid").Parse(gridTemplate))
    template.Must(board.New("board").Parse(boardTemplate))
    result := template.Must(template.New("grid").Parse(gridTemplate))
    template.Must(result.New("result").Parse(resultTemplate))
    return &templates{base: base, session: session, board: board, result: result, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const gridTemplate = `<table class="grid">
  {{range .Rows}}
  <tr>{{range .}}<td class="{{.Class}}">{{.Char}}</td>{{end}}</tr>
  {{end}}
</table>`

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{template "grid" .}}
  <p>{{.Moves}} legal moves for {{.Side}} (v{{.Version}})</p>
  <form hx-post="/session/{{.ID}}/position" hx-target="#board" hx-swap="outerHTML" method="post">
    <textarea name="board" rows="{{len .Rows}}">{{.Text}}</textarea>
    <input type="text" name="side" value="{{.SideChar}}" size="1">
    <button type="submit">Update</button>
  </form>
</div>
`

const resultTemplate = `{{if .Error}}<div class="alert">{{.Error}}</div>{{else}}{{template "grid" .}}
<p>{{.Moves}} legal moves for {{.Side}}</p>{{end}}`

type cellView struct {
    Char  string
    Class string
}

type boardView struct {
    ID       string
    Error    string
    Side     string
    SideChar string
    Moves    int
    Version  int
    Text     string
    Rows     [][]cellView
}

func newBoardView(res app.Result, marker rune) boardView {
    b := res.Position.Board
    legal := make(map[domain.Pos]bool, len(res.Moves))
    for _, p := range res.Moves {
        legal[p] = true
    }
    rows := make([][]cellView, b.Height())
    for r := range rows {
        rows[r] = make([]cellView, b.Width())
        for c := range rows[r] {
            cell, _ := b.Cell(r, c)
            v := cellView{Char: string(textgrid.EmptyChar), Class: "empty"}
            switch {
            case legal[domain.Pos{Row: r, Col: c}]:
                v = cellView{Char: string(marker), Class: "legal"}
            case cell == domain.BlackPiece:
                v = cellView{Char: string(textgrid.BlackChar), Class: "black"}
            case cell == domain.WhitePiece:
                v = cellView{Char: string(textgrid.WhiteChar), Class: "white"}
            }
            rows[r][c] = v
        }
    }
    side := res.Position.ToMove
    return boardView{
        Side:     side.String(),
        SideChar: string(textgrid.SideChar(side)),
        Moves:    len(res.Moves),
        Text:     textgrid.FormatBoard(b),
        Rows:     rows,
    }
}

func isEventStream(r *http.Request) bool {
    return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
        return c.Value
    }
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
    return v
}
