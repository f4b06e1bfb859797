package app

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/zeromicro/go-zero/core/logx"

    "github.com/jaminalder/codex-reversi/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound = errors.New("session not found")
    ErrNotOwner = errors.New("not the session owner")
)

// Session is a shared analysis board. Only the owner may replace its position.
type Session struct {
    ID      string
    Owner   string
    Result  Result
    Version int
    Created time.Time
    Updated time.Time
}

// subscriber guards its channel so a send never races a close.
type subscriber struct {
    mu     sync.Mutex
    ch     chan []byte
    closed bool
}

func (s *subscriber) close() {
    s.mu.Lock()
    defer s.mu.Unlock()
    if !s.closed {
        s.closed = true
        close(s.ch)
    }
}

// send reports false when the subscriber's buffer is full.
func (s *subscriber) send(payload []byte) bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.closed {
        return true
    }
    select {
    case s.ch <- payload:
        return true
    default:
        return false
    }
}

// Service manages sessions and subscribers.
type Service struct {
    mu      sync.Mutex
    session map[string]*Session
    subs    map[string]map[*subscriber]struct{}
    render  func(Session) []byte
    buffer  int
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(Session) []byte) Option {
    return func(s *Service) {
        if renderer != nil {
            s.render = renderer
        }
    }
}

// WithSubscriberBuffer sets the per-subscriber channel capacity.
func WithSubscriberBuffer(n int) Option {
    return func(s *Service) {
        if n > 0 {
            s.buffer = n
        }
    }
}

// NewService creates a service. Without a renderer broadcasts carry no payload.
func NewService(opts ...Option) *Service {
    s := &Service{
        session: make(map[string]*Session),
        subs:    make(map[string]map[*subscriber]struct{}),
        render:  func(Session) []byte { return nil },
        buffer:  1,
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Session) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(Session) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateSession registers a new session owned by owner.
func (s *Service) CreateSession(ctx context.Context, owner string, pos domain.Position) (*Session, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    now := time.Now()
    ss := &Session{
        ID:      uuid.NewString(),
        Owner:   owner,
        Result:  Analyze(pos),
        Created: now,
        Updated: now,
    }
    s.session[ss.ID] = ss
    logx.WithContext(ctx).Infof("session %s created, %d legal moves for %v", ss.ID, len(ss.Result.Moves), pos.ToMove)
    cp := *ss
    return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    ss, ok := s.session[id]
    if !ok {
        return nil, false
    }
    cp := *ss
    return &cp, true
}

// SetPosition replaces the session position, recomputes its legal moves and
// broadcasts the rendering to subscribers.
func (s *Service) SetPosition(ctx context.Context, id, owner string, pos domain.Position) (*Session, error) {
    var toDrop []*subscriber

    s.mu.Lock()
    ss, ok := s.session[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    if ss.Owner != owner {
        s.mu.Unlock()
        return nil, ErrNotOwner
    }
    ss.Result = Analyze(pos)
    ss.Version++
    ss.Updated = time.Now()

    // Snapshot state and subscribers
    cp := *ss
    subs := s.copySubsLocked(id)
    payload := s.render(cp)
    s.mu.Unlock()

    // Fan-out; drop slow subscribers
    for sub := range subs {
        if !sub.send(payload) {
            sub.close()
            toDrop = append(toDrop, sub)
        }
    }
    if len(toDrop) > 0 {
        s.mu.Lock()
        for _, sub := range toDrop {
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
        }
        s.mu.Unlock()
        logx.WithContext(ctx).Infof("session %s dropped %d slow subscribers", id, len(toDrop))
    }
    logx.WithContext(ctx).Infof("session %s v%d: %d legal moves for %v", id, cp.Version, len(cp.Result.Moves), pos.ToMove)
    return &cp, nil
}

// Subscribe registers a subscriber for a session. The channel is closed when
// ctx ends, the unsubscribe func is called, or the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.session[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, s.buffer)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
    out := make(map[*subscriber]struct{})
    if set, ok := s.subs[id]; ok {
        for k := range set {
            out[k] = struct{}{}
        }
    }
    return out
}
