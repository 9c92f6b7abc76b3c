// Command gleap-gui plays GLeap in a window.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"gleap/config"
	"gleap/game"
	"gleap/gui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gleap-gui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse("gleap-gui", os.Args[1:])
	if err != nil {
		return err
	}

	logFile, err := config.SetupLogging(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	set, err := cfg.Levels()
	if err != nil {
		return err
	}

	tones := gui.NewTones()
	tones.SetMuted(!cfg.Sound)

	session := game.New(set, cfg.SessionOptions(tones)...)

	ebiten.SetWindowSize(int(set.Rules.CanvasWidth), int(set.Rules.CanvasHeight))
	ebiten.SetWindowTitle("GLeap")
	ebiten.SetTPS(cfg.FPS)

	log.Printf("starting: seed %d, %d levels", cfg.Seed, len(set.Levels))
	if err := ebiten.RunGame(gui.NewGame(session, tones)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
