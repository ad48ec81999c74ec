package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/config"
	"github.com/hailam/chessdriver/internal/server"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal("could not create logger: ", err)
	}
	defer logger.Sync()

	// Start CPU profiling if requested (via flag or environment variable)
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			logger.Fatal("could not create CPU profile", zap.Error(err))
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("could not start CPU profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", zap.String("path", cfg.CPUProfile))
	}

	store, err := cfg.OpenStorage(logger)
	if err != nil {
		logger.Fatal("could not open storage", zap.Error(err))
	}
	defer store.Close()

	if ids, err := store.SessionIDs(); err == nil {
		logger.Info("stored games", zap.Int("count", len(ids)))
	}

	srv := server.New(server.NewManager(store, cfg.Protocol(), logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
