package gui

import (
	"errors"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gleap/game"
	"gleap/geom"
	"gleap/host"
	"gleap/input"
)

var (
	colorBackground = color.RGBA{0x11, 0x11, 0x18, 0xff}
	colorPlatform   = color.RGBA{0x00, 0xcc, 0xcc, 0xff}
	colorFalling    = color.RGBA{0xff, 0x88, 0x00, 0xff}
	colorEnemy      = color.RGBA{0xe0, 0x30, 0x30, 0xff}
	colorPortal     = color.RGBA{0xf0, 0xd0, 0x20, 0xff}
	colorPlayer     = color.RGBA{0x30, 0x70, 0xf0, 0xff}
	colorParticle   = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Sound is the audio side of the window host.
type Sound interface {
	game.SoundPlayer
	ToggleMute() bool
	Muted() bool
}

// Game runs a session inside an ebiten window. The canvas is drawn at world
// size and ebiten scales it to the window.
type Game struct {
	session *game.Session
	sound   Sound
	status  game.Status

	width, height int
	canvas        *ebiten.Image
}

// NewGame wraps session for ebiten.RunGame. sound may be nil.
func NewGame(session *game.Session, sound Sound) *Game {
	rules := session.Rules()
	return &Game{
		session: session,
		sound:   sound,
		status:  session.Status(),
		width:   int(rules.CanvasWidth),
		height:  int(rules.CanvasHeight),
	}
}

// keyState maps held keys onto movement intent. pressed is
// ebiten.IsKeyPressed outside tests.
func keyState(pressed func(ebiten.Key) bool) input.State {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return input.State{
		Left:  held(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right: held(ebiten.KeyArrowRight, ebiten.KeyD),
		Jump:  held(ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		switch g.session.Mode() {
		case game.GameOver:
			g.session.Restart()
		case game.LevelComplete:
			g.advance()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.advance()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Restart()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		on := g.sound.ToggleMute()
		log.Printf("sound on: %v", on)
	}

	g.session.Update(keyState(ebiten.IsKeyPressed))

	st := g.session.Status()
	host.LogTransition(g.status, st)
	g.status = st
	return nil
}

func (g *Game) advance() {
	if err := g.session.AdvanceLevel(); err != nil {
		if errors.Is(err, game.ErrNotLevelComplete) {
			log.Printf("advance ignored: %v", err)
			return
		}
		log.Printf("advance failed: %v", err)
	}
}

func fillRect(dst *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (g *Game) drawWorld(dst *ebiten.Image) {
	lvl := g.session.Level()
	for _, p := range lvl.Platforms {
		clr := colorPlatform
		if p.Falling {
			clr = colorFalling
		}
		fillRect(dst, p.Rect, clr)
	}
	fillRect(dst, lvl.Portal, colorPortal)
	for _, e := range lvl.Enemies {
		fillRect(dst, e.Rect, colorEnemy)
	}

	p := g.session.Player()
	fillRect(dst, p.Rect(), colorPlayer)

	for _, pt := range g.session.Particles() {
		vector.DrawFilledRect(dst, float32(pt.Pos.X), float32(pt.Pos.Y), 2, 2, colorParticle, false)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	lines := host.Overlay(g.status, "ENTER", "ENTER")
	if lines == nil {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{0, 0, 0, 0xb0}, false)

	// The debug font is 6 px wide and 16 px tall.
	startY := g.height/2 - len(lines)*16
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, (g.width-len(line)*6)/2, startY+i*32)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.width, g.height)
	}
	g.canvas.Fill(colorBackground)
	g.drawWorld(g.canvas)

	op := &ebiten.DrawImageOptions{}
	if shake := g.session.Shake(); shake > 0 {
		op.GeoM.Translate(rand.Float64()*shake-shake/2, rand.Float64()*shake-shake/2)
	}
	screen.Fill(colorBackground)
	screen.DrawImage(g.canvas, op)

	soundOn := g.sound != nil && !g.sound.Muted()
	ebitenutil.DebugPrintAt(screen, host.HUD(g.status, soundOn), 10, 10)
	g.drawOverlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
