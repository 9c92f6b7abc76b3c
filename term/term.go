package term

import (
	"errors"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"gleap/game"
	"gleap/geom"
	"gleap/host"
	"gleap/input"
)

// KeyHold is how long a key press counts as held. Terminals send repeats
// while a key is down but never a release.
const KeyHold = 150 * time.Millisecond

// Sound is the audio side the terminal host needs: playback for the session
// plus a mute toggle for the player.
type Sound interface {
	game.SoundPlayer
	ToggleMute() bool
	Muted() bool
}

type Game struct {
	screen  tcell.Screen
	session *game.Session
	sound   Sound
	intent  *input.Intent
	fps     int

	width  int
	height int
	status game.Status
}

// NewGame wires a session to a terminal screen. sound may be nil.
func NewGame(screen tcell.Screen, session *game.Session, sound Sound, fps int) *Game {
	width, height := screen.Size()
	return &Game{
		screen:  screen,
		session: session,
		sound:   sound,
		intent:  input.NewIntent(KeyHold),
		fps:     fps,
		width:   width,
		height:  height,
		status:  session.Status(),
	}
}

func (g *Game) soundOn() bool {
	return g.sound != nil && !g.sound.Muted()
}

// handleEvent applies one terminal event. It reports whether the player asked
// to quit.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev, now)
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return false
}

func (g *Game) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		g.intent.Press(input.Left, now)
	case tcell.KeyRight:
		g.intent.Press(input.Right, now)
	case tcell.KeyUp:
		g.intent.Press(input.Jump, now)
	case tcell.KeyEnter:
		switch g.session.Mode() {
		case game.GameOver:
			g.restart()
		case game.LevelComplete:
			g.advance()
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'a', 'A':
			g.intent.Press(input.Left, now)
		case 'd', 'D':
			g.intent.Press(input.Right, now)
		case 'w', 'W', ' ':
			g.intent.Press(input.Jump, now)
		case 'n', 'N':
			g.advance()
		case 'r', 'R':
			g.restart()
		case 'm', 'M':
			if g.sound != nil {
				on := g.sound.ToggleMute()
				log.Printf("sound on: %v", on)
			}
		}
	}
	return false
}

func (g *Game) advance() {
	if err := g.session.AdvanceLevel(); err != nil {
		if errors.Is(err, game.ErrNotLevelComplete) {
			log.Printf("advance ignored: %v", err)
			return
		}
		log.Printf("advance failed: %v", err)
	}
	g.intent.Reset()
}

func (g *Game) restart() {
	g.session.Restart()
	g.intent.Reset()
}

// step runs one simulation frame and redraws.
func (g *Game) step(now time.Time) {
	g.session.Update(g.intent.State(now))

	st := g.session.Status()
	host.LogTransition(g.status, st)
	g.status = st

	g.render()
}

// Run drives the frame loop until the player quits.
func (g *Game) Run() {
	// Start input handling goroutine
	inputChan := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(inputChan)
				return
			}
			inputChan <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.fps))
	defer ticker.Stop()

	log.Printf("level %d (%s) loaded", g.status.Level, g.status.LevelName)
	for {
		now := time.Now()

	drain:
		for {
			select {
			case ev, ok := <-inputChan:
				if !ok {
					return
				}
				if g.handleEvent(ev, now) {
					return
				}
			default:
				break drain
			}
		}

		g.step(now)

		<-ticker.C
	}
}

// view maps world coordinates onto terminal cells. Row 0 holds the HUD.
type view struct {
	sx, sy float64
	ox, oy float64
}

func (g *Game) view() view {
	rules := g.session.Rules()
	v := view{
		sx: float64(g.width) / rules.CanvasWidth,
		sy: float64(g.height-1) / rules.CanvasHeight,
	}
	if shake := g.session.Shake(); shake > 0 {
		v.ox = (rand.Float64()*shake - shake/2) * v.sx
		v.oy = (rand.Float64()*shake - shake/2) * v.sy
	}
	return v
}

func (v view) cell(x, y float64) (int, int) {
	return int(math.Floor(x*v.sx + v.ox)), 1 + int(math.Floor(y*v.sy+v.oy))
}

// fillRect draws r using every cell it touches, at least one.
func (g *Game) fillRect(v view, r geom.Rect, ch rune, style tcell.Style) {
	x0, y0 := v.cell(r.X, r.Y)
	x1 := int(math.Ceil((r.X+r.W)*v.sx + v.ox))
	y1 := 1 + int(math.Ceil((r.Y+r.H)*v.sy+v.oy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for y := y0; y < y1; y++ {
		if y < 1 || y >= g.height {
			continue
		}
		for x := x0; x < x1; x++ {
			if x < 0 || x >= g.width {
				continue
			}
			g.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (g *Game) drawPlatforms(v view) {
	cyanColor := tcell.PaletteColor(51) // Cyan in 256-color palette
	normal := tcell.StyleDefault.Foreground(cyanColor)
	falling := tcell.StyleDefault.Foreground(tcell.ColorOrange)

	for _, p := range g.session.Level().Platforms {
		style := normal
		if p.Falling {
			style = falling
		}
		g.fillRect(v, p.Rect, '━', style)
	}
}

func (g *Game) drawEnemies(v view) {
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, e := range g.session.Level().Enemies {
		g.fillRect(v, e.Rect, '█', style)
	}
}

func (g *Game) drawPortal(v view) {
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	g.fillRect(v, g.session.Level().Portal, '▒', style)
}

func (g *Game) drawPlayer(v view) {
	p := g.session.Player()
	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	g.fillRect(v, p.Rect(), '█', style)
}

func (g *Game) drawParticles(v view) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for _, pt := range g.session.Particles() {
		x, y := v.cell(pt.Pos.X, pt.Pos.Y)
		if x >= 0 && x < g.width && y >= 1 && y < g.height {
			g.screen.SetContent(x, y, '.', nil, style)
		}
	}
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) drawHUD() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	g.drawText(0, 0, host.HUD(g.status, g.soundOn()), style)
}

func (g *Game) drawOverlay() {
	lines := host.Overlay(g.status, "ENTER", "ENTER")
	if lines == nil {
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	if g.status.Mode == game.LevelComplete || g.status.Won {
		titleStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	startY := g.height/2 - len(lines)
	for i, line := range lines {
		s := style
		if i == 0 {
			s = titleStyle
		}
		g.drawText((g.width-len(line))/2, startY+i*2, line, s)
	}
}

func (g *Game) render() {
	g.screen.Clear()

	v := g.view()
	g.drawPlatforms(v)
	g.drawPortal(v)
	g.drawEnemies(v)
	g.drawPlayer(v)
	g.drawParticles(v)

	g.drawHUD()
	g.drawOverlay()

	g.screen.Show()
}
