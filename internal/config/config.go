// Package config loads binary settings from flags with environment fallbacks.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/protocol"
	"github.com/hailam/chessdriver/internal/storage"
)

// MemoryDB selects an in-memory database.
const MemoryDB = "mem"

// Environment variables consulted when a flag is not given.
const (
	EnvAddr       = "CHESSDRIVER_ADDR"
	EnvDB         = "CHESSDRIVER_DB"
	EnvSeed       = "CHESSDRIVER_SEED"
	EnvDebug      = "CHESSDRIVER_DEBUG"
	EnvCPUProfile = "CPUPROFILE"
)

// Config is the settings shared by the console and the server.
type Config struct {
	Addr           string
	DB             string
	Seed           uint64
	Workers        int
	AllowSelfCheck bool
	Debug          bool
	CPUProfile     string
}

// Load parses args with fs. Flags left unset take their value from the
// environment, then from the defaults.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", ":3000", "listen address")
	fs.StringVar(&cfg.DB, "db", "", `database directory, "mem" for in-memory`)
	fs.Uint64Var(&cfg.Seed, "seed", 0, "search tie-break seed, 0 seeds from the clock")
	fs.IntVar(&cfg.Workers, "workers", 1, "parallel search workers")
	fs.BoolVar(&cfg.AllowSelfCheck, "allow-self-check", false, "accept moves that expose the mover's king")
	fs.BoolVar(&cfg.Debug, "debug", false, "debug logging")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if v := os.Getenv(EnvAddr); v != "" && !set["addr"] {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvDB); v != "" && !set["db"] {
		cfg.DB = v
	}
	if v := os.Getenv(EnvCPUProfile); v != "" && !set["cpuprofile"] {
		cfg.CPUProfile = v
	}
	if v := os.Getenv(EnvSeed); v != "" && !set["seed"] {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvDebug); v != "" && !set["debug"] {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}

	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

// Protocol returns the session knobs.
func (c Config) Protocol() protocol.Config {
	return protocol.Config{
		NoSelfCheck: !c.AllowSelfCheck,
		Workers:     c.Workers,
		Seed:        c.Seed,
	}
}

// Logger builds the process logger.
func (c Config) Logger() (*zap.Logger, error) {
	if c.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// OpenStorage opens the configured database. An empty DB uses the
// platform data directory.
func (c Config) OpenStorage(logger *zap.Logger) (*storage.Storage, error) {
	switch c.DB {
	case MemoryDB:
		return storage.OpenInMemory(logger)
	case "":
		dir, err := storage.GetDatabaseDir()
		if err != nil {
			return nil, fmt.Errorf("locate database: %w", err)
		}
		logger.Info("database directory", zap.String("dir", dir))
		return storage.Open(dir, logger)
	default:
		return storage.Open(c.DB, logger)
	}
}
