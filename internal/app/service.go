package app

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/jaminalder/codex-othello/internal/domain"
    orderedmap "github.com/wk8/go-ordered-map/v2"
    "go.uber.org/zap"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
)

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID      string
    Game    domain.Game
    X       string
    O       string
    Created time.Time
    Updated time.Time
}

// Seat returns the side playerID sits on, or NoChecker for spectators.
func (gs *GameState) Seat(playerID string) domain.Checker {
    switch {
    case playerID == "":
        return domain.NoChecker
    case gs.X == playerID:
        return domain.X
    case gs.O == playerID:
        return domain.O
    }
    return domain.NoChecker
}

type subscriber struct {
    ch        chan []byte
    done      chan struct{}
    closeOnce sync.Once
}

func (s *subscriber) close() {
    s.closeOnce.Do(func() {
        close(s.ch)
        close(s.done)
    })
}

// hosted is one game plus its watchers. mu is the game's exclusive lock;
// no two games ever share one. Once removed is set the game accepts nothing.
type hosted struct {
    mu      sync.Mutex
    state   GameState
    subs    map[*subscriber]struct{}
    removed bool
}

func (h *hosted) snapshot() GameState {
    h.mu.Lock()
    defer h.mu.Unlock()
    return h.state
}

// Service hosts independent games and fans out their updates.
type Service struct {
    mu     sync.RWMutex
    games  *orderedmap.OrderedMap[string, *hosted]
    render func(GameState) []byte
    log    *zap.Logger
}

// TextRenderer renders the diagnostic text form of the game.
func TextRenderer(gs GameState) []byte { return []byte(gs.Game.String()) }

// NewService creates a service that broadcasts the diagnostic text form.
func NewService() *Service { return NewServiceWithRenderer(TextRenderer) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
    if renderer == nil {
        renderer = TextRenderer
    }
    return &Service{
        games:  orderedmap.New[string, *hosted](),
        render: renderer,
        log:    zap.NewNop(),
    }
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        renderer = TextRenderer
    }
    s.render = renderer
}

// SetLogger replaces the logger; nil silences the service.
func (s *Service) SetLogger(l *zap.Logger) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if l == nil {
        l = zap.NewNop()
    }
    s.log = l
}

func (s *Service) lookup(id string) (*hosted, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.games.Get(id)
}

func (s *Service) tools() (func(GameState) []byte, *zap.Logger) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.render, s.log
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
    id := uuid.NewString()
    now := time.Now()
    h := &hosted{
        state: GameState{ID: id, Game: domain.New(), Created: now, Updated: now},
        subs:  make(map[*subscriber]struct{}),
    }
    s.mu.Lock()
    s.games.Set(id, h)
    log := s.log
    s.mu.Unlock()

    log.Info("game created", zap.String("game", id))
    cp := h.snapshot()
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    h, ok := s.lookup(id)
    if !ok {
        return nil, false
    }
    cp := h.snapshot()
    return &cp, true
}

// List returns copies of all games, oldest first.
func (s *Service) List() []GameState {
    s.mu.RLock()
    hs := make([]*hosted, 0, s.games.Len())
    for p := s.games.Oldest(); p != nil; p = p.Next() {
        hs = append(hs, p.Value)
    }
    s.mu.RUnlock()

    out := make([]GameState, 0, len(hs))
    for _, h := range hs {
        out = append(out, h.snapshot())
    }
    return out
}

// Remove drops a game and closes its subscribers.
func (s *Service) Remove(id string) error {
    s.mu.Lock()
    h, ok := s.games.Delete(id)
    log := s.log
    s.mu.Unlock()
    if !ok {
        return ErrNotFound
    }

    h.mu.Lock()
    h.removed = true
    for sub := range h.subs {
        sub.close()
        delete(h.subs, sub)
    }
    h.mu.Unlock()
    log.Info("game removed", zap.String("game", id))
    return nil
}

// Join assigns a seat to the player if available; spectators get NoChecker.
// An empty playerID can never play and is refused.
func (s *Service) Join(id, playerID string) (domain.Checker, *GameState, error) {
    if playerID == "" {
        return domain.NoChecker, nil, ErrNotAPlayer
    }
    h, ok := s.lookup(id)
    if !ok {
        return domain.NoChecker, nil, ErrNotFound
    }
    h.mu.Lock()
    defer h.mu.Unlock()
    if h.removed {
        return domain.NoChecker, nil, ErrNotFound
    }
    gs := &h.state
    side := domain.NoChecker
    if gs.X == "" || gs.X == playerID {
        gs.X = playerID
        side = domain.X
    } else if gs.O == "" || gs.O == playerID {
        gs.O = playerID
        side = domain.O
    }
    gs.Updated = time.Now()
    cp := *gs
    return side, &cp, nil
}

// Play validates seat and turn, applies a move, updates timestamps, and broadcasts.
// Rendering and fan-out happen inside the same critical section as the move,
// so subscribers see snapshots in move order.
func (s *Service) Play(id, playerID string, m domain.Move) (*GameState, error) {
    h, ok := s.lookup(id)
    if !ok {
        return nil, ErrNotFound
    }
    render, log := s.tools()

    h.mu.Lock()
    if h.removed {
        h.mu.Unlock()
        return nil, ErrNotFound
    }
    seat := h.state.Seat(playerID)
    if seat == domain.NoChecker {
        h.mu.Unlock()
        return nil, ErrNotAPlayer
    }
    side, active := h.state.Game.ToPlay()
    if !active {
        h.mu.Unlock()
        return nil, domain.ErrGameOver
    }
    if seat != side {
        h.mu.Unlock()
        return nil, ErrNotYourTurn
    }
    if err := h.state.Game.PlayMove(m); err != nil {
        h.mu.Unlock()
        return nil, err
    }
    h.state.Updated = time.Now()
    cp := h.state

    // Sends never block; a full buffer means a slow reader, which is dropped.
    payload := render(cp)
    dropped := 0
    for sub := range h.subs {
        select {
        case sub.ch <- payload:
        default:
            delete(h.subs, sub)
            sub.close()
            dropped++
        }
    }
    h.mu.Unlock()

    log.Debug("move played",
        zap.String("game", id),
        zap.Stringer("side", side),
        zap.Stringer("move", m),
    )
    if dropped > 0 {
        log.Warn("dropped slow subscribers", zap.String("game", id), zap.Int("count", dropped))
    }
    if cp.Game.Over() {
        b := cp.Game.Board()
        log.Info("game over",
            zap.String("game", id),
            zap.Int("x", b.Count(domain.X)),
            zap.Int("o", b.Count(domain.O)),
        )
    }
    return &cp, nil
}

// Subscribe registers a subscriber for a game. It returns a channel of
// rendered snapshots and an unsubscribe func; cancelling ctx unsubscribes too.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    h, ok := s.lookup(id)
    if !ok {
        return nil, nil, ErrNotFound
    }
    return h.subscribe(ctx)
}

func (h *hosted) subscribe(ctx context.Context) (<-chan []byte, func(), error) {
    sub := &subscriber{ch: make(chan []byte, 1), done: make(chan struct{})}
    h.mu.Lock()
    if h.removed {
        h.mu.Unlock()
        return nil, nil, ErrNotFound
    }
    h.subs[sub] = struct{}{}
    h.mu.Unlock()

    unsub := func() {
        h.mu.Lock()
        delete(h.subs, sub)
        sub.close()
        h.mu.Unlock()
    }
    go func() {
        select {
        case <-ctx.Done():
            unsub()
        case <-sub.done:
        }
    }()
    return sub.ch, unsub, nil
}
