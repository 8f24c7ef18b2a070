package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"life-canvas/internal/app"
	"life-canvas/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	// The screen owns stdout, so log lines go to a file or nowhere.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	store, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err = screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	session := app.Open(cfg.EngineConfig(), store, cfg.Fresh, cfg.PersistInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	host := term.NewHost(screen, session.Engine, term.Options{FPS: cfg.FPS, Seed: cfg.Seed, Logger: logger})
	runErr := host.Run(ctx)
	stop()

	screen.Fini()
	session.Close()
	if runErr != nil && runErr != context.Canceled {
		log.Fatal(runErr)
	}
}
