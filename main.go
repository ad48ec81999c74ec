// Chessdriver console: plays the command protocol on stdin and stdout.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/config"
	"github.com/hailam/chessdriver/internal/protocol"
)

const prompt = "chessdriver> "

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
	}

	store, err := cfg.OpenStorage(logger)
	if err != nil {
		logger.Fatal("could not open storage", zap.Error(err))
	}
	defer store.Close()

	session := protocol.NewSession(cfg.Protocol(), logger)
	session.SetRecorder(store)

	if err := session.Run(os.Stdin, os.Stdout, prompt, true); err != nil {
		logger.Error("console stopped", zap.Error(err))
	}

	if stats, err := store.LoadStats(); err == nil {
		logger.Info("session finished",
			zap.Int("games_played", stats.GamesPlayed),
			zap.Float64("human_win_rate", stats.HumanWinRate()),
		)
	}
}
