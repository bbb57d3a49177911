package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/oregen/internal/logger"
	"github.com/OCharnyshevich/oregen/internal/server"
	"github.com/OCharnyshevich/oregen/internal/server/config"
)

func main() {
	cfg := config.DefaultConfig()
	configPath := flag.String("config", "oregen.yaml", "config file path, created with defaults if missing")

	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "log format (console, text, json)")
	flag.StringVar(&cfg.World.Generator, "generator", cfg.World.Generator, "terrain generator (strata, layered)")
	flag.Int64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "terrain seed")
	flag.IntVar(&cfg.World.Radius, "radius", cfg.World.Radius, "chunks loaded around the origin at startup")
	flag.StringVar(&cfg.World.Palette, "palette", cfg.World.Palette, "blocks.json palette, empty for the built-in one")
	flag.StringVar(&cfg.World.DataDir, "data", cfg.World.DataDir, "data directory")
	flag.StringVar(&cfg.Console.Listen, "listen", cfg.Console.Listen, "websocket console address, empty to disable")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// The store logs before the configured logger exists.
	boot := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	store, err := config.NewStore(*configPath, boot)
	if err != nil {
		boot.Error("load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, store.Get(), explicit)
	store.Set(cfg)

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := server.New(store, log)
	if err != nil {
		log.Error("create server", "error", err)
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
