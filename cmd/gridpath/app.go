package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/gridpath/config"
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/events"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/input"
	"github.com/lixenwraith/gridpath/maze"
	"github.com/lixenwraith/gridpath/render"
	"github.com/lixenwraith/gridpath/store"
)

const (
	quickSlot     = "quick"
	storeTimeout  = 2 * time.Second
	genBraiding   = 0.3
	genDensity    = 0.55
	eventChanSize = 100
)

// layoutStore is the part of store.LayoutStore the front end uses
type layoutStore interface {
	Save(ctx context.Context, name string, l grid.Layout) error
	Load(ctx context.Context, name string) (grid.Layout, error)
}

// app wires the terminal front end to one session
// Everything except PollEvent runs on the driver goroutine
type app struct {
	screen   tcell.Screen
	session  *engine.Session
	driver   *engine.Driver
	queue    *events.EventQueue
	router   *events.Router[render.FrameContext]
	view     *render.BoardView
	renderer *render.TerminalRenderer
	machine  *input.Machine
	store    layoutStore
	log      zerolog.Logger
	rng      *rand.Rand

	hud    render.HUD
	frame  uint64
	cancel context.CancelFunc
}

func newApp(cfg config.Config, screen tcell.Screen, keys *input.KeyTable, st layoutStore, logger zerolog.Logger) *app {
	q := events.NewEventQueue()

	sessCfg := cfg.Session()
	sessCfg.Logger = &logger
	s := engine.NewSession(sessCfg, q)

	view := render.NewBoardView(s.Size())
	router := events.NewRouter[render.FrameContext](q)
	router.Register(view)

	renderer := render.NewTerminalRenderer(screen)

	a := &app{
		screen:   screen,
		session:  s,
		driver:   engine.NewDriver(s, engine.SystemClock{}, 0),
		queue:    q,
		router:   router,
		view:     view,
		renderer: renderer,
		machine:  input.NewMachine(keys, renderer.Mapper(view)),
		store:    st,
		log:      logger.With().Str("component", "app").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		hud: render.HUD{
			Cursor:             core.Cell{X: 1, Y: 1},
			AllowDiagonal:      sessCfg.Rules.AllowDiagonal,
			AllowCornerCutting: sessCfg.Rules.AllowCornerCutting,
		},
	}
	a.driver.OnFrame(a.onFrame)
	return a
}

// register adds an extra event consumer, such as audio cues
func (a *app) register(h events.Handler[render.FrameContext]) {
	a.router.Register(h)
}

// run blocks until quit or ctx cancellation
func (a *app) run(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	eventChan := make(chan tcell.Event, eventChanSize)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})
	core.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-eventChan:
				a.driver.Submit(ctx, func(s *engine.Session) { a.handleEvent(s, ev) })
			}
		}
	})

	return a.driver.Run(ctx)
}

func (a *app) onFrame(_ *engine.Session) {
	a.frame++
	a.router.DispatchAll(render.FrameContext{Frame: a.frame})
	a.renderer.RenderFrame(a.view, a.hud)
}

func (a *app) handleEvent(s *engine.Session, ev tcell.Event) {
	if it := a.machine.Process(ev); it != nil {
		a.handleIntent(s, it)
	}
}

// handleIntent applies one user action to the session
func (a *app) handleIntent(s *engine.Session, it *input.Intent) {
	target := a.hud.Cursor
	if it.AtCell {
		target = it.Cell
		a.hud.Cursor = it.Cell
	}

	switch it.Type {
	case input.IntentQuit:
		if a.cancel != nil {
			a.cancel()
		}
	case input.IntentResize:
		a.renderer.Resize()
		a.machine.SetMapper(a.renderer.Mapper(a.view))
	case input.IntentMove:
		a.moveCursor(s, it.DX, it.DY)
	case input.IntentPlace:
		s.PlaceObstacle(target)
	case input.IntentRemove:
		s.RemoveObstacle(target)
	case input.IntentToggleStart:
		s.ToggleStart(target)
	case input.IntentToggleGoal:
		s.ToggleGoal(target)
	case input.IntentSearch:
		s.RunSearch()
	case input.IntentToggleDiagonal:
		r := s.Rules()
		r.AllowDiagonal = !r.AllowDiagonal
		s.SetRules(r)
		a.hud.AllowDiagonal = r.AllowDiagonal
		a.hud.Message = "diagonal movement applies from the next search"
	case input.IntentToggleCornerCutting:
		r := s.Rules()
		r.AllowCornerCutting = !r.AllowCornerCutting
		s.SetRules(r)
		a.hud.AllowCornerCutting = r.AllowCornerCutting
		a.hud.Message = "corner cutting applies from the next search"
	case input.IntentGenerate:
		a.generate(s)
	case input.IntentSave:
		a.save(s)
	case input.IntentLoad:
		a.load(s)
	case input.IntentReset:
		s.Reset()
		a.hud.Message = ""
	}
}

func (a *app) moveCursor(s *engine.Session, dx, dy int) {
	c := a.hud.Cursor.Add(dx, dy)
	size := s.Size()
	if c.X < 0 || c.Y < 0 || c.X >= size || c.Y >= size {
		return
	}
	a.hud.Cursor = c
}

// generate replaces the board with a random layout, keeping any placed endpoints
func (a *app) generate(s *engine.Session) {
	cur := s.Layout()
	cfg := maze.Config{
		Size:     cur.Size,
		Braiding: genBraiding,
		Density:  genDensity,
		Seed:     a.rng.Int63(),
	}
	if cur.Start != nil {
		cfg.Keep = append(cfg.Keep, *cur.Start)
	}
	if cur.Goal != nil {
		cfg.Keep = append(cfg.Keep, *cur.Goal)
	}
	cfg.Endpoints = cur.Start == nil && cur.Goal == nil

	l := maze.Generate(cfg)
	if !cfg.Endpoints {
		l.Start, l.Goal = cur.Start, cur.Goal
	}
	if err := s.LoadLayout(l); err != nil {
		a.hud.Message = fmt.Sprintf("generate: %v", err)
		return
	}
	a.hud.Message = fmt.Sprintf("generated layout, seed %d", cfg.Seed)
}

func (a *app) save(s *engine.Session) {
	if a.store == nil {
		a.hud.Message = "layout store unavailable"
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := a.store.Save(ctx, quickSlot, s.Layout()); err != nil {
		a.log.Error().Err(err).Msg("save layout")
		a.hud.Message = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.hud.Message = "saved layout " + quickSlot
}

func (a *app) load(s *engine.Session) {
	if a.store == nil {
		a.hud.Message = "layout store unavailable"
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	l, err := a.store.Load(ctx, quickSlot)
	if errors.Is(err, store.ErrLayoutNotFound) {
		a.hud.Message = "no saved layout " + quickSlot
		return
	}
	if err == nil {
		err = s.LoadLayout(l)
	}
	if err != nil {
		a.log.Error().Err(err).Msg("load layout")
		a.hud.Message = fmt.Sprintf("load failed: %v", err)
		return
	}
	a.hud.Message = "loaded layout " + quickSlot
	a.clampCursor(l.Size)
}

func (a *app) clampCursor(size int) {
	if a.hud.Cursor.X >= size {
		a.hud.Cursor.X = size - 1
	}
	if a.hud.Cursor.Y >= size {
		a.hud.Cursor.Y = size - 1
	}
}
