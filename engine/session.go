package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/events"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/navigation"
)

// SessionConfig is fixed at construction except for Rules, which SetRules may change between searches
type SessionConfig struct {
	Size           int
	Rules          navigation.Rules
	RevealInterval time.Duration
	RevealOrder    RevealOrder

	// Clock stamps emitted events; defaults to SystemClock
	Clock Clock

	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
}

// DefaultSessionConfig returns a 36×36 orthogonal board revealing every 50ms, Goal first
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Size:           constants.DefaultGridSize,
		RevealInterval: constants.RevealInterval,
		RevealOrder:    RevealGoalFirst,
	}
}

// Session owns one board, its movement rules and its reveal scheduler
// Every command runs synchronously and reports through the event sink
// Not safe for concurrent use; callers serialize access
type Session struct {
	grid   *grid.Grid
	rules  navigation.Rules
	reveal *RevealScheduler
	sink   events.Sink
	clock  Clock
	log    zerolog.Logger

	seq        uint64
	lastSearch *SearchSummary
}

// NewSession creates a session on an empty board
// Panics if cfg.Size is below the minimum board size
func NewSession(cfg SessionConfig, sink events.Sink) *Session {
	if cfg.Size < constants.MinGridSize {
		panic(fmt.Sprintf("engine: grid size %d below minimum %d", cfg.Size, constants.MinGridSize))
	}
	if cfg.RevealInterval == 0 {
		cfg.RevealInterval = constants.RevealInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "session").Logger()
	}

	return &Session{
		grid:   grid.New(cfg.Size),
		rules:  cfg.Rules,
		reveal: NewRevealScheduler(cfg.RevealInterval, cfg.RevealOrder),
		sink:   sink,
		clock:  cfg.Clock,
		log:    log,
	}
}

// emit stamps and pushes one event
func (s *Session) emit(t events.EventType, payload any) {
	s.seq++
	s.sink.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Seq:       s.seq,
		Timestamp: s.clock.Now(),
	})
}

// trace records one command outcome at debug level
func (s *Session) trace(cmd string, c core.Cell, applied bool) {
	s.log.Debug().Str("cmd", cmd).Stringer("cell", c).Bool("applied", applied).Msg("command")
}

// invalidate drops any reveal and its markers after a board change
func (s *Session) invalidate() {
	if s.reveal.Clear() {
		s.emit(events.EventAllMarkersCleared, nil)
	}
}

// PlaceObstacle blocks c. No-op if c is blocked or an endpoint
func (s *Session) PlaceObstacle(c core.Cell) (applied bool) {
	defer func() { s.trace("place_obstacle", c, applied) }()
	if !s.grid.PlaceObstacle(c) {
		return false
	}
	s.emit(events.EventObstaclePlaced, &events.CellPayload{Cell: c})
	s.invalidate()
	return true
}

// RemoveObstacle unblocks a user obstacle at c. No-op for border or free cells
func (s *Session) RemoveObstacle(c core.Cell) (applied bool) {
	defer func() { s.trace("remove_obstacle", c, applied) }()
	if !s.grid.RemoveObstacle(c) {
		return false
	}
	s.emit(events.EventObstacleRemoved, &events.CellPayload{Cell: c})
	s.invalidate()
	return true
}

// SetStart places Start at c, replacing a prior Start
// Rejected if c is blocked or holds the Goal
func (s *Session) SetStart(c core.Cell) (applied bool) {
	defer func() { s.trace("set_start", c, applied) }()
	prev, had := s.grid.Start()
	if had && prev == c {
		return false
	}
	if !s.grid.SetStart(c) {
		return false
	}
	if had {
		s.emit(events.EventStartCleared, &events.CellPayload{Cell: prev})
	}
	s.emit(events.EventStartSet, &events.CellPayload{Cell: c})
	s.invalidate()
	return true
}

// SetGoal places Goal at c, replacing a prior Goal
// Rejected if c is blocked or holds the Start
func (s *Session) SetGoal(c core.Cell) (applied bool) {
	defer func() { s.trace("set_goal", c, applied) }()
	prev, had := s.grid.Goal()
	if had && prev == c {
		return false
	}
	if !s.grid.SetGoal(c) {
		return false
	}
	if had {
		s.emit(events.EventGoalCleared, &events.CellPayload{Cell: prev})
	}
	s.emit(events.EventGoalSet, &events.CellPayload{Cell: c})
	s.invalidate()
	return true
}

// ClearStart unsets Start. No-op if already unset
func (s *Session) ClearStart() bool {
	prev, had := s.grid.Start()
	if !had {
		return false
	}
	s.grid.ClearStart()
	s.emit(events.EventStartCleared, &events.CellPayload{Cell: prev})
	s.invalidate()
	return true
}

// ClearGoal unsets Goal. No-op if already unset
func (s *Session) ClearGoal() bool {
	prev, had := s.grid.Goal()
	if !had {
		return false
	}
	s.grid.ClearGoal()
	s.emit(events.EventGoalCleared, &events.CellPayload{Cell: prev})
	s.invalidate()
	return true
}

// ToggleStart clears Start if one is set, otherwise places it at c
func (s *Session) ToggleStart(c core.Cell) bool {
	if _, ok := s.grid.Start(); ok {
		return s.ClearStart()
	}
	return s.SetStart(c)
}

// ToggleGoal clears Goal if one is set, otherwise places it at c
func (s *Session) ToggleGoal(c core.Cell) bool {
	if _, ok := s.grid.Goal(); ok {
		return s.ClearGoal()
	}
	return s.SetGoal(c)
}

// RunSearch aborts any reveal, searches Start to Goal and begins revealing the path
// A failing search emits exactly one SearchFailed
func (s *Session) RunSearch() navigation.Result {
	s.invalidate()

	began := time.Now()
	res := navigation.Search(s.grid, s.rules)
	took := time.Since(began)

	summary := summarize(res)
	s.lastSearch = &summary

	if !res.Found {
		reason := failureReason(res.Failure)
		s.log.Info().
			Str("reason", reason.String()).
			Int("expanded", res.Expanded).
			Dur("took", took).
			Msg("search failed")
		s.emit(events.EventSearchFailed, &events.SearchFailedPayload{Reason: reason, Expanded: res.Expanded})
		return res
	}

	s.log.Info().
		Stringer("start", res.Start).
		Stringer("goal", res.Goal).
		Int("cost", res.Cost).
		Int("steps", len(res.Path)).
		Int("expanded", res.Expanded).
		Dur("took", took).
		Msg("search completed")
	s.emit(events.EventSearchCompleted, &events.SearchCompletedPayload{
		Cost:     res.Cost,
		Steps:    len(res.Path),
		Expanded: res.Expanded,
	})
	s.reveal.Start(res.Path)
	return res
}

// Advance feeds dt to the reveal scheduler, emitting at most one path marker
func (s *Session) Advance(dt time.Duration) {
	if s.reveal.State() != RevealRevealing {
		return
	}
	c, ok := s.reveal.Tick(dt)
	if ok {
		s.emit(events.EventPathMarkerPlaced, &events.CellPayload{Cell: c})
	}
	if s.reveal.State() == RevealIdle {
		s.emit(events.EventRevealFinished, nil)
	}
}

// Reset empties the board and clears any reveal
func (s *Session) Reset() {
	s.invalidate()
	s.grid.Reset()
	s.lastSearch = nil
	s.emit(events.EventBoardReset, &events.BoardPayload{Size: s.grid.Size()})
	s.log.Debug().Msg("board reset")
}

// LoadLayout replaces the board with l; the board size follows the layout
// On error the current board is left untouched
func (s *Session) LoadLayout(l grid.Layout) error {
	g, err := grid.FromLayout(l)
	if err != nil {
		return err
	}
	s.invalidate()
	s.grid = g
	s.lastSearch = nil

	loaded := g.Layout()
	s.emit(events.EventLayoutLoaded, &events.BoardPayload{
		Size:      loaded.Size,
		Obstacles: loaded.Obstacles,
		Start:     loaded.Start,
		Goal:      loaded.Goal,
	})
	s.log.Debug().Int("size", loaded.Size).Int("obstacles", len(loaded.Obstacles)).Msg("layout loaded")
	return nil
}

// Layout returns the current board description
func (s *Session) Layout() grid.Layout { return s.grid.Layout() }

// Rules returns the movement rules used by the next search
func (s *Session) Rules() navigation.Rules { return s.rules }

// SetRules changes the movement rules used by the next search
func (s *Session) SetRules(r navigation.Rules) { s.rules = r }

// Size returns the board side length
func (s *Session) Size() int { return s.grid.Size() }

// IsBlocked reports whether c is border or obstacle
func (s *Session) IsBlocked(c core.Cell) bool { return s.grid.IsBlocked(c) }

// RevealState returns the reveal scheduler state
func (s *Session) RevealState() RevealState { return s.reveal.State() }

func failureReason(f navigation.Failure) events.FailureReason {
	switch f {
	case navigation.FailureNoStart:
		return events.FailureNoStart
	case navigation.FailureNoGoal:
		return events.FailureNoGoal
	default:
		return events.FailureUnreachable
	}
}
