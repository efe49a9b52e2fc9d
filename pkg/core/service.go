package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ServiceConfig wires a Service together.
type ServiceConfig struct {
	// Store is the persistence surface (normally the dual-store adapter).
	Store StateStore
	// Primary is the underlying primary store, used only for optional
	// capability discovery (watching). May be nil.
	Primary KV
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Collection configures the injectable policies of the board collection.
	Collection CollectionConfig
}

// Service is the outward handle of the application core. It owns the board
// Collection, loads it from the StateStore at startup, routes every mutation
// through the Collection, and flushes snapshots back via the attached
// FlushPolicy. It never surfaces persistence errors to its callers: the
// writing surface stays usable when persistence is impaired.
type Service struct {
	col     *Collection
	store   StateStore
	primary KV
	logger  *slog.Logger

	mu     sync.RWMutex
	policy FlushPolicy
}

// NewService builds a Service around a fresh Collection. Call LoadState to
// hydrate it from the store and AttachPolicy to start observing mutations.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		store:   cfg.Store,
		primary: cfg.Primary,
		logger:  cfg.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	colCfg := cfg.Collection
	colCfg.OnChange = s.mutated
	s.col = NewCollection(colCfg)
	return s
}

// Collection exposes the owned collection for read-mostly embedding.
func (s *Service) Collection() *Collection { return s.col }

// LoadState hydrates the collection from the store, falling back to the
// built-in defaults record by record. The collection repairs itself after the
// load, so the active pointer always resolves and at least one board exists.
func (s *Service) LoadState(ctx context.Context) {
	if s.store == nil {
		return
	}
	snap := s.col.Snapshot() // keep the seeded defaults for absent records
	snap.Style = DefaultTextStyle()

	loadedBoards := s.store.Load(ctx, KeyBoards, &snap.Boards)
	loadedActive := s.store.Load(ctx, KeyActive, &snap.ActiveBoardID)
	s.store.Load(ctx, KeyTextStyle, &snap.Style)

	if loadedBoards && !loadedActive && len(snap.Boards) > 0 {
		snap.ActiveBoardID = snap.Boards[0].ID
	}
	s.col.Restore(snap)
	s.logger.Debug("state loaded",
		"boards", len(snap.Boards),
		"active", snap.ActiveBoardID,
		"boardsRecord", loadedBoards,
	)
}

// AttachPolicy connects the flush scheduler. Mutations before attachment are
// not observed; the composition root attaches the policy right after
// LoadState and before handing the service out.
func (s *Service) AttachPolicy(p FlushPolicy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
}

func (s *Service) mutated(kind ChangeKind) {
	s.mu.RLock()
	p := s.policy
	s.mu.RUnlock()
	if p != nil {
		p.Mutated(kind)
	}
}

// Flush writes the three state records through the StateStore. It is
// idempotent and safe to call from any flush trigger; the scheduler
// serializes overlapping callers.
func (s *Service) Flush(ctx context.Context) {
	if s.store == nil {
		return
	}
	snap := s.col.Snapshot()
	s.store.Save(ctx, KeyBoards, snap.Boards)
	s.store.Save(ctx, KeyActive, snap.ActiveBoardID)
	s.store.Save(ctx, KeyTextStyle, snap.Style)
	s.logger.Debug("state flushed", "boards", len(snap.Boards))
}

// Suspend forces a synchronous flush, the analog of the page losing
// visibility. Safe to call repeatedly.
func (s *Service) Suspend() {
	s.mu.RLock()
	p := s.policy
	s.mu.RUnlock()
	if p != nil {
		p.Suspend()
		return
	}
	s.Flush(context.Background())
}

// Close stops the scheduler and performs the final teardown flush.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	p := s.policy
	s.policy = nil
	s.mu.Unlock()
	if p != nil {
		return p.Close(ctx)
	}
	s.Flush(ctx)
	return nil
}

// --- Board operations (spec'd collection surface) ---

// CreateBoard appends a new board with generated id, derived title, random
// palette color and empty media, and makes it active. Always succeeds.
func (s *Service) CreateBoard() Board { return s.col.NewBoard() }

// DeleteBoard removes a board. The last remaining board is protected: the
// call is a no-op returning false. A deleted active board hands the pointer
// to the first remaining board.
func (s *Service) DeleteBoard(id string) bool { return s.col.Remove(id) }

// SelectBoard moves the active pointer; unknown ids are rejected.
func (s *Service) SelectBoard(id string) bool { return s.col.Select(id) }

// UpdateContent replaces a board's content.
func (s *Service) UpdateContent(id, content string) bool { return s.col.SetContent(id, content) }

// UpdateTitle replaces a board's title.
func (s *Service) UpdateTitle(id, title string) bool { return s.col.SetTitle(id, title) }

// UpdateColor assigns a palette color to a board.
func (s *Service) UpdateColor(id string, color Color) bool { return s.col.SetColor(id, color) }

// AddMedia appends an attachment to a board's gallery and returns the stored
// item with its assigned id and position.
func (s *Service) AddMedia(boardID string, item MediaItem) (MediaItem, bool) {
	return s.col.AddMedia(boardID, item)
}

// RemoveMedia filters an attachment out of a board.
func (s *Service) RemoveMedia(boardID, mediaID string) bool {
	return s.col.RemoveMedia(boardID, mediaID)
}

// SetTextStyle replaces the global text style.
func (s *Service) SetTextStyle(style TextStyle) { s.col.SetStyle(style) }

// UpdateTextStyle applies a partial mutation to the global text style.
func (s *Service) UpdateTextStyle(fn func(*TextStyle)) { s.col.UpdateStyle(fn) }

// TextStyle returns the global text style.
func (s *Service) TextStyle() TextStyle { return s.col.Style() }

// Boards returns all boards in creation order.
func (s *Service) Boards() []Board { return s.col.Boards() }

// Board returns one board by id.
func (s *Service) Board(id string) (Board, bool) { return s.col.Board(id) }

// Active returns the active board.
func (s *Service) Active() Board { return s.col.Active() }

// ActiveID returns the active board id.
func (s *Service) ActiveID() string { return s.col.ActiveID() }

// Watch observes external changes to the primary store if it supports
// watching.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.primary.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}
