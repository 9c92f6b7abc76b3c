package config

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gleap/game"
	"gleap/level"
)

const (
	DefaultFPS     = 60
	DefaultLogFile = "logs/gleap.log"
)

type Config struct {
	Seed       uint64
	Debug      bool
	Sound      bool
	LevelsFile string
	LogFile    string
	LevelReset bool
	MultiLoss  bool
	FPS        int
}

// Parse reads flags from args (without the program name). DEBUG=1 in the
// environment turns on debug logging as well.
func Parse(name string, args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Uint64Var(&cfg.Seed, "seed", 0, "random seed, 0 picks one at startup")
	fs.BoolVar(&cfg.Debug, "debug", false, "write a debug log")
	fs.BoolVar(&cfg.Sound, "sound", false, "start with sound on (toggle in game with m)")
	fs.StringVar(&cfg.LevelsFile, "levels", "", "YAML file overriding the built-in rules and levels")
	fs.StringVar(&cfg.LogFile, "log", DefaultLogFile, "debug log path")
	fs.BoolVar(&cfg.LevelReset, "reset-level", true, "rebuild the level after a lost life")
	fs.BoolVar(&cfg.MultiLoss, "multi-loss", false, "every touching enemy costs a life, not just the first")
	fs.IntVar(&cfg.FPS, "fps", DefaultFPS, "simulation frames per second")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if os.Getenv("DEBUG") == "1" {
		cfg.Debug = true
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	return cfg, nil
}

// Levels returns the level set named by the config, or the built-in one.
func (c *Config) Levels() (*level.Set, error) {
	if c.LevelsFile == "" {
		return level.Default()
	}
	return level.LoadFile(c.LevelsFile)
}

func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}

// SessionOptions maps the config onto session options. sound may be nil.
func (c *Config) SessionOptions(sound game.SoundPlayer) []game.Option {
	opts := []game.Option{
		game.WithRand(c.Rand()),
		game.WithLevelReset(c.LevelReset),
		game.WithSingleLossPerFrame(!c.MultiLoss),
	}
	if sound != nil {
		opts = append(opts, game.WithSound(sound))
	}
	return opts
}

// SetupLogging points the standard logger at the log file when debug is on
// and discards output otherwise. The returned file, if any, must be closed.
func SetupLogging(c *Config) (*os.File, error) {
	if !c.Debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir := filepath.Dir(c.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.SetOutput(io.Discard)
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
