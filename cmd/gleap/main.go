// Command gleap plays GLeap in the terminal.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"gleap/audio"
	"gleap/config"
	"gleap/game"
	"gleap/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gleap: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse("gleap", os.Args[1:])
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

	synth := audio.NewSynth()
	if err := synth.Start(); err != nil {
		return fmt.Errorf("start audio: %w", err)
	}
	defer synth.Stop()
	synth.SetMuted(!cfg.Sound)
	if synth.Silent() {
		log.Printf("no audio device, running silent")
	}

	session := game.New(set, cfg.SessionOptions(synth)...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before a panic prints.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.Clear()

	log.Printf("starting: seed %d, %d levels", cfg.Seed, len(set.Levels))
	term.NewGame(screen, session, synth, cfg.FPS).Run()
	return nil
}
