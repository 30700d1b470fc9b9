package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/gridpath/config"
	"github.com/lixenwraith/gridpath/httpserver"
	"github.com/lixenwraith/gridpath/logging"
	"github.com/lixenwraith/gridpath/store"
)

var (
	configPath = flag.String("config", "gridpath.toml", "Path to TOML config file")
	addrFlag   = flag.String("addr", "", "Listen address (overrides config)")
	noStore    = flag.Bool("no-store", false, "Run without the layout store")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	if _, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Console: true}); err != nil {
		log.Fatal().Err(err).Msg("logging setup")
	}

	opts := httpserver.Options{
		Session: cfg.Session(),
		Logger:  log.Logger,
	}
	if !*noStore {
		st, err := store.Open(cfg.Store.Path, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("open layout store")
		}
		defer st.Close()
		opts.Store = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(opts)
	log.Info().
		Str("addr", cfg.Server.Addr).
		Int("grid_size", cfg.Grid.Size).
		Bool("store", opts.Store != nil).
		Msg("starting gridpath-server")
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
