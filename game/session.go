package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"gleap/geom"
	"gleap/level"
)

type Mode int

const (
	Playing Mode = iota
	GameOver
	LevelComplete
)

func (m Mode) String() string {
	switch m {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	case LevelComplete:
		return "level complete"
	}
	return "unknown"
}

var ErrNotLevelComplete = errors.New("level is not complete")

// SoundPlayer is the audio collaborator. Muting is its own business.
type SoundPlayer interface {
	PlaySound(freq float64, d time.Duration)
}

type cue struct {
	freq float64
	dur  time.Duration
}

var (
	cueJump     = cue{440, 100 * time.Millisecond}
	cueDeath    = cue{220, 300 * time.Millisecond}
	cueComplete = cue{880, 500 * time.Millisecond}
)

type Player struct {
	Pos      geom.Vec2
	Vel      geom.Vec2
	W, H     float64
	OnGround bool
}

func (p *Player) Rect() geom.Rect {
	return geom.Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

type Particle struct {
	Pos  geom.Vec2
	Vel  geom.Vec2
	Life int
}

// Session owns all mutable game state. It is not safe for concurrent use:
// Update, AdvanceLevel and Restart must be called from the frame loop.
type Session struct {
	set   *level.Set
	rules level.Rules
	rng   *rand.Rand
	sound SoundPlayer

	singleLoss bool
	levelReset bool

	mode       Mode
	current    int
	lives      int
	score      int
	finalScore int
	won        bool
	shake      float64

	player    Player
	level     *level.Level
	particles []Particle

	lostThisFrame bool
}

type Option func(*Session)

// WithRand injects the random source used for platform velocities, chaos
// reversals and particles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithSound(sp SoundPlayer) Option {
	return func(s *Session) { s.sound = sp }
}

// WithSingleLossPerFrame caps life loss at one per frame when on (default).
// Off, every enemy touching the player in a frame costs a life.
func WithSingleLossPerFrame(on bool) Option {
	return func(s *Session) { s.singleLoss = on }
}

// WithLevelReset rebuilds the current level after a life is lost when on
// (default), so fallen platforms come back for the retry.
func WithLevelReset(on bool) Option {
	return func(s *Session) { s.levelReset = on }
}

// New starts a session on level 1. set must already be validated.
func New(set *level.Set, opts ...Option) *Session {
	s := &Session{
		set:        set,
		rules:      set.Rules,
		singleLoss: true,
		levelReset: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.Restart()
	return s
}

func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Lives() int          { return s.lives }
func (s *Session) Score() int          { return s.score }
func (s *Session) FinalScore() int     { return s.finalScore }
func (s *Session) LevelNumber() int    { return s.current }
func (s *Session) LevelCount() int     { return len(s.set.Levels) }
func (s *Session) Won() bool           { return s.won }
func (s *Session) Shake() float64      { return s.shake }
func (s *Session) Rules() level.Rules  { return s.rules }
func (s *Session) Player() Player      { return s.player }
func (s *Session) Level() *level.Level { return s.level }

// Particles returns the live particles. The slice is reused between frames.
func (s *Session) Particles() []Particle { return s.particles }

// Restart returns to level 1 with full lives and no score, from any mode.
func (s *Session) Restart() {
	s.current = 1
	s.lives = s.rules.Lives
	s.score = 0
	s.finalScore = 0
	s.won = false
	s.shake = 0
	s.particles = s.particles[:0]
	s.loadLevel()
	s.resetPlayer()
	s.mode = Playing
}

// AdvanceLevel moves past a completed level. Past the last level the session
// ends in GameOver with Won set.
func (s *Session) AdvanceLevel() error {
	if s.mode != LevelComplete {
		return ErrNotLevelComplete
	}

	if s.current >= len(s.set.Levels) {
		s.won = true
		s.gameOver()
		return nil
	}

	s.current++
	s.loadLevel()
	s.resetPlayer()
	s.mode = Playing
	return nil
}

func (s *Session) loadLevel() {
	s.level = level.Instantiate(s.set.Levels[s.current-1], s.rules, s.rng)
}

func (s *Session) resetPlayer() {
	s.player = Player{
		Pos: s.rules.PlayerStart,
		W:   s.rules.PlayerSize.W,
		H:   s.rules.PlayerSize.H,
	}
}

func (s *Session) gameOver() {
	s.mode = GameOver
	s.finalScore = s.score
}

func (s *Session) play(c cue) {
	if s.sound != nil {
		s.sound.PlaySound(c.freq, c.dur)
	}
}

// Status is the HUD view of a session.
type Status struct {
	Mode       Mode
	Level      int
	LevelName  string
	Lives      int
	Score      int
	FinalScore int
	Won        bool
}

func (s *Session) Status() Status {
	return Status{
		Mode:       s.mode,
		Level:      s.current,
		LevelName:  s.level.Name,
		Lives:      s.lives,
		Score:      s.score,
		FinalScore: s.finalScore,
		Won:        s.won,
	}
}
