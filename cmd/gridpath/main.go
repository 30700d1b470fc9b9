package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/gridpath/audio"
	"github.com/lixenwraith/gridpath/config"
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/input"
	"github.com/lixenwraith/gridpath/logging"
	"github.com/lixenwraith/gridpath/render"
	"github.com/lixenwraith/gridpath/store"
)

var (
	configPath = flag.String("config", "gridpath.toml", "Path to TOML config file")
	keymapPath = flag.String("keymap", "", "Optional TOML keymap overrides")
	layoutName = flag.String("layout", "", "Stored layout to load at startup")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging to file")
	noAudio    = flag.Bool("mute", false, "Disable audio cues")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the app crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *noAudio {
		cfg.Audio.Enabled = false
	}

	closer, err := logging.Setup(logging.Options{
		Dir:   cfg.Log.Dir,
		Level: cfg.Log.Level,
		Debug: cfg.Log.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	keys := input.DefaultKeyTable()
	if *keymapPath != "" {
		data, err := os.ReadFile(*keymapPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Keymap: %v\n", err)
			os.Exit(1)
		}
		override, err := input.LoadKeyConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Keymap: %v\n", err)
			os.Exit(1)
		}
		keys = input.MergeKeyTable(keys, override)
	}

	// Store is optional, the board still works without persistence
	var st layoutStore
	if ls, err := store.Open(cfg.Store.Path, log.Logger); err != nil {
		log.Warn().Err(err).Msg("layout store unavailable")
	} else {
		defer ls.Close()
		st = ls
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	core.RegisterCrashTerminal(screen)
	defer func() {
		core.RegisterCrashTerminal(nil)
		screen.Fini()
	}()

	a := newApp(cfg, screen, keys, st, log.Logger)

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the board runs without sound
			log.Warn().Err(err).Msg("audio initialization failed")
		} else {
			defer sm.Cleanup()
			a.register(audio.NewEventHandler[render.FrameContext](sm))
		}
	}

	if *layoutName != "" && st != nil {
		l, err := st.Load(context.Background(), *layoutName)
		if err == nil {
			err = a.session.LoadLayout(l)
		}
		if err != nil {
			a.hud.Message = fmt.Sprintf("layout %q: %v", *layoutName, err)
		}
	}

	if err := a.run(context.Background()); err != nil {
		log.Error().Err(err).Msg("driver stopped")
	}
}
