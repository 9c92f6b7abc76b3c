package host

import (
	"fmt"
	"log"

	"gleap/game"
)

// HUD is the status line shown by both frontends.
func HUD(st game.Status, soundOn bool) string {
	line := fmt.Sprintf("Level: %d  Lives: %d  Score: %d", st.Level, st.Lives, st.Score)
	if !soundOn {
		line += "  [muted]"
	}
	return line
}

// Overlay returns the centered message for the current mode, or nil while
// playing. advanceKey and restartKey name the bindings shown to the player.
func Overlay(st game.Status, advanceKey, restartKey string) []string {
	switch st.Mode {
	case game.LevelComplete:
		return []string{
			fmt.Sprintf("LEVEL %d COMPLETE", st.Level),
			fmt.Sprintf("Score: %d", st.Score),
			fmt.Sprintf("Press %s for the next level", advanceKey),
		}
	case game.GameOver:
		title := "GAME OVER"
		if st.Won {
			title = "YOU WIN"
		}
		return []string{
			title,
			fmt.Sprintf("Final score: %d", st.FinalScore),
			fmt.Sprintf("Press %s to restart", restartKey),
		}
	}
	return nil
}

// LogTransition writes the lifecycle changes between two frames to the
// standard logger.
func LogTransition(prev, cur game.Status) {
	if cur == prev {
		return
	}

	switch {
	case cur.Mode == game.Playing && prev.Mode != game.Playing && cur.Level == 1 && cur.Score == 0:
		log.Printf("restart: level 1 (%s), lives %d", cur.LevelName, cur.Lives)
	case cur.Mode == game.Playing && cur.Level != prev.Level:
		log.Printf("level %d (%s) loaded", cur.Level, cur.LevelName)
	}

	if cur.Lives < prev.Lives && cur.Level == prev.Level {
		log.Printf("life lost on level %d: %d left", cur.Level, cur.Lives)
	}

	if cur.Mode != prev.Mode {
		switch cur.Mode {
		case game.LevelComplete:
			log.Printf("level %d complete, score %d", cur.Level, cur.Score)
		case game.GameOver:
			if cur.Won {
				log.Printf("all levels cleared, final score %d", cur.FinalScore)
			} else {
				log.Printf("game over on level %d, final score %d", cur.Level, cur.FinalScore)
			}
		}
	}
}
