package cli

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dna-group/puzzled/pkg/bookmark"
	"github.com/dna-group/puzzled/pkg/config"
	"github.com/dna-group/puzzled/pkg/lattice"
	"github.com/dna-group/puzzled/pkg/state"
	"github.com/dna-group/puzzled/pkg/view"
)

// currentEntryID is the bookmark entry that plays the role of the browser
// address bar: the debounced save rewrites its URL fragment in place.
const currentEntryID = "current"

// editorSession owns one active editing session: the lattice graph, the
// viewport, the persistence scheduler, and the session's bookmark entry.
// It is constructed once per edit/serve/export invocation and torn down
// with Close; there are no process-wide singletons.
//
// All mutation happens on the bubbletea event goroutine. The scheduler's
// save callback runs on a timer goroutine but only ever sees immutable
// snapshots; mu guards the bookmark entry, the single piece of state both
// goroutines touch.
type editorSession struct {
	cfg    config.Config
	grid   lattice.Grid
	graph  *lattice.Graph
	vp     *view.Viewport
	sched  *state.Scheduler
	store  bookmark.Store
	base   *url.URL
	logger *log.Logger

	mu    sync.Mutex
	entry *bookmark.Entry
}

// newSession assembles a session from configuration: opens the bookmark
// store, restores any state embedded in the current entry's URL, and wires
// the change hook that schedules persistence.
func newSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*editorSession, error) {
	grid := lattice.Grid{
		Cols:    cfg.Grid.Cols,
		Rows:    cfg.Grid.Rows,
		Spacing: cfg.Grid.Spacing,
		Border:  cfg.Grid.Border,
	}

	base, err := url.Parse(cfg.Share.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse share base URL: %w", err)
	}

	store, err := bookmark.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open bookmark store: %w", err)
	}

	s := &editorSession{
		cfg:    cfg,
		grid:   grid,
		graph:  lattice.NewGraph(grid),
		vp:     view.New(grid.FullWidth(), grid.FullHeight(), cfg.View.ZoomInitial, view.Limits{MinZoom: cfg.View.ZoomMin, MaxZoom: cfg.View.ZoomMax}),
		store:  store,
		base:   base,
		logger: logger,
	}
	s.sched = state.NewScheduler(s.saveState)

	if err := s.restore(ctx); err != nil {
		store.Close()
		return nil, err
	}

	s.graph.SetOnChange(func() { s.scheduleSave(s.saveDelay()) })
	return s, nil
}

// saveDelay returns the configured debounce delay for discrete edits.
func (s *editorSession) saveDelay() time.Duration {
	if ms := s.cfg.Save.DelayMS; ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return state.SaveDelay
}

// dragDelay returns the configured debounce delay used mid-drag.
func (s *editorSession) dragDelay() time.Duration {
	if ms := s.cfg.Save.DragDelayMS; ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return state.DragDelay
}

// restore loads the session's bookmark entry and applies any state embedded
// in its URL. A missing entry is created fresh; an undecodable token is a
// default state, never a startup failure.
func (s *editorSession) restore(ctx context.Context) error {
	entry, err := s.store.Get(ctx, currentEntryID)
	if err != nil {
		return fmt.Errorf("load session bookmark: %w", err)
	}
	if entry == nil {
		entry = &bookmark.Entry{
			ID:        currentEntryID,
			Title:     "current session",
			URL:       s.base.String(),
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
	}
	s.entry = entry

	u, err := url.Parse(entry.URL)
	if err != nil {
		s.logger.Warn("session bookmark URL is unreadable, starting fresh", "err", err)
		return nil
	}
	s.apply(state.FromURL(u))
	return nil
}

// apply installs a decoded state into the graph and viewport. A nil state is
// a no-op. Bulk-loaded edges are re-validated; edges violating the degree
// cap or grid bounds are dropped with a warning.
func (s *editorSession) apply(st *state.State) {
	if st == nil {
		return
	}
	s.graph.ReplaceAll(st.Edges)
	if dropped := s.graph.Normalize(); dropped > 0 {
		s.logger.Warn("restored state contained invalid edges", "dropped", dropped)
	}
	if st.Viewport.Zoom > 0 {
		s.vp.ZoomTo(st.Viewport.Zoom)
	}
	s.vp.SetCenter(st.Viewport.Cx, st.Viewport.Cy)
}

// snapshot builds a fresh persisted-state object from the live graph and
// viewport. Constructed anew on every save.
func (s *editorSession) snapshot() state.State {
	cx, cy := s.vp.Center()
	return state.State{
		Edges:    s.graph.Tuples(),
		Viewport: state.Viewport{Cx: cx, Cy: cy, Zoom: s.vp.Zoom()},
	}
}

// scheduleSave debounces persistence of the current state.
func (s *editorSession) scheduleSave(delay time.Duration) {
	s.sched.Schedule(delay, s.snapshot())
}

// saveState is the scheduler callback: encode the snapshot and rewrite the
// session entry's URL fragment in place. Encode or store failures are logged
// and dropped; a failed save never produces a partial address.
func (s *editorSession) saveState(st state.State) {
	tok, err := state.Encode(st)
	if err != nil {
		s.logger.Warn("cannot encode state", "err", err)
		return
	}

	s.mu.Lock()
	u, err := url.Parse(s.entry.URL)
	if err != nil {
		u = s.base
	}
	s.entry.URL = state.WithToken(u, tok).String()
	s.entry.UpdatedAt = time.Now().UTC()
	entry := *s.entry
	s.mu.Unlock()

	if err := s.store.Put(context.Background(), &entry); err != nil {
		s.logger.Warn("cannot persist state", "err", err)
		return
	}
	s.logger.Debug("state saved", "edges", len(st.Edges))
}

// shareURL builds the absolute shareable URL for the current state. It is
// independent of the debounce path and mutates nothing.
func (s *editorSession) shareURL() (string, error) {
	return state.BuildShareURL(s.base, s.snapshot())
}

// currentURL returns the session entry's URL, which always carries the most
// recently saved state token.
func (s *editorSession) currentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry.URL
}

// Close flushes any pending save and releases the store.
func (s *editorSession) Close() error {
	s.sched.Flush()
	return s.store.Close()
}

// loadStoredState reads the session entry from the store and rebuilds the
// graph it describes, without constructing a full interactive session. Used
// by the serve, export, and share commands.
func loadStoredState(ctx context.Context, cfg config.Config, logger *log.Logger) (*lattice.Graph, *state.State, error) {
	store, err := bookmark.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("open bookmark store: %w", err)
	}
	defer store.Close()

	grid := lattice.Grid{
		Cols:    cfg.Grid.Cols,
		Rows:    cfg.Grid.Rows,
		Spacing: cfg.Grid.Spacing,
		Border:  cfg.Grid.Border,
	}
	graph := lattice.NewGraph(grid)

	entry, err := store.Get(ctx, currentEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("load session bookmark: %w", err)
	}
	if entry == nil {
		return graph, &state.State{Edges: [][4]int{}}, nil
	}

	u, err := url.Parse(entry.URL)
	if err != nil {
		return graph, &state.State{Edges: [][4]int{}}, nil
	}
	st := state.FromURL(u)
	if st == nil {
		return graph, &state.State{Edges: [][4]int{}}, nil
	}

	graph.ReplaceAll(st.Edges)
	if dropped := graph.Normalize(); dropped > 0 {
		logger.Warn("stored state contained invalid edges", "dropped", dropped)
	}
	return graph, st, nil
}
