package level

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"gleap/geom"
)

//go:embed levels.yaml
var embeddedLevels []byte

var ErrNoLevels = errors.New("level set has no levels")

type Size struct {
	W, H float64
}

// Rules holds the tuning shared by every level.
type Rules struct {
	CanvasWidth         float64   `yaml:"canvas_width"`
	CanvasHeight        float64   `yaml:"canvas_height"`
	Gravity             float64   `yaml:"gravity"`
	JumpForce           float64   `yaml:"jump_force"`
	PlayerSpeed         float64   `yaml:"player_speed"`
	Lives               int       `yaml:"lives"`
	PlayerStart         geom.Vec2 `yaml:"player_start"`
	PlayerSize          Size      `yaml:"player_size"`
	EnemySize           Size      `yaml:"enemy_size"`
	LandingShake        float64   `yaml:"landing_shake"`
	DeathShake          float64   `yaml:"death_shake"`
	ShakeDecay          float64   `yaml:"shake_decay"`
	FallRate            float64   `yaml:"fall_rate"`
	ChaosReversalChance float64   `yaml:"chaos_reversal_chance"`
	ParticleLife        int       `yaml:"particle_life"`
	JumpParticles       int       `yaml:"jump_particles"`
	DeathParticles      int       `yaml:"death_particles"`
}

type PlatformSpec struct {
	geom.Rect `yaml:",inline"`
	VX        float64   `yaml:"vx"`
	VXRange   []float64 `yaml:"vx_range,flow"` // [min, max), drawn on every load
	Falls     bool      `yaml:"falls"`
}

type EnemySpec struct {
	geom.Vec2 `yaml:",inline"`
	VX        float64 `yaml:"vx"`
}

// Spec is an immutable level template.
type Spec struct {
	Name         string         `yaml:"name"`
	Gravity      *float64       `yaml:"gravity"`
	GravityBonus float64        `yaml:"gravity_bonus"`
	Chaos        int            `yaml:"chaos"`
	Platforms    []PlatformSpec `yaml:"platforms"`
	Enemies      []EnemySpec    `yaml:"enemies"`
	Portal       *geom.Rect     `yaml:"portal"`
}

// GravityFor resolves the level gravity against the shared base value.
func (s Spec) GravityFor(r Rules) float64 {
	if s.Gravity != nil {
		return *s.Gravity
	}
	return r.Gravity + s.GravityBonus
}

type Set struct {
	Rules  Rules  `yaml:"rules"`
	Levels []Spec `yaml:"levels"`
}

// Default returns the five built-in levels.
func Default() (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(embeddedLevels, &set); err != nil {
		return nil, fmt.Errorf("decode embedded levels: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("embedded levels: %w", err)
	}
	return &set, nil
}

// LoadFile decodes path on top of the built-in set. Rules are merged field by
// field; a levels list in the file replaces the built-in one.
func LoadFile(path string) (*Set, error) {
	set, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels file: %w", err)
	}
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func (s *Set) Validate() error {
	if err := s.Rules.Validate(); err != nil {
		return err
	}
	if len(s.Levels) == 0 {
		return ErrNoLevels
	}
	for i, spec := range s.Levels {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("level %d (%s): %w", i+1, spec.Name, err)
		}
	}
	return nil
}

func (r Rules) Validate() error {
	switch {
	case r.CanvasWidth <= 0 || r.CanvasHeight <= 0:
		return fmt.Errorf("canvas size %vx%v must be positive", r.CanvasWidth, r.CanvasHeight)
	case r.PlayerSize.W <= 0 || r.PlayerSize.H <= 0:
		return fmt.Errorf("player size %vx%v must be positive", r.PlayerSize.W, r.PlayerSize.H)
	case r.EnemySize.W <= 0 || r.EnemySize.H <= 0:
		return fmt.Errorf("enemy size %vx%v must be positive", r.EnemySize.W, r.EnemySize.H)
	case r.Lives <= 0:
		return fmt.Errorf("lives %d must be positive", r.Lives)
	case r.ShakeDecay <= 0:
		return fmt.Errorf("shake decay %v must be positive", r.ShakeDecay)
	case r.ChaosReversalChance < 0 || r.ChaosReversalChance > 1:
		return fmt.Errorf("chaos reversal chance %v outside [0,1]", r.ChaosReversalChance)
	case r.ParticleLife <= 0:
		return fmt.Errorf("particle life %d must be positive", r.ParticleLife)
	}
	return nil
}

func (s Spec) validate() error {
	if s.Portal == nil {
		return errors.New("missing portal")
	}
	if s.Portal.W <= 0 || s.Portal.H <= 0 {
		return fmt.Errorf("portal size %vx%v must be positive", s.Portal.W, s.Portal.H)
	}
	if s.Chaos < 0 {
		return fmt.Errorf("chaos %d must not be negative", s.Chaos)
	}
	for i, p := range s.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("platform %d size %vx%v must be positive", i+1, p.W, p.H)
		}
		if p.VXRange == nil {
			continue
		}
		if len(p.VXRange) != 2 {
			return fmt.Errorf("platform %d vx_range needs 2 values, got %d", i+1, len(p.VXRange))
		}
		if p.VXRange[0] > p.VXRange[1] {
			return fmt.Errorf("platform %d vx_range [%v, %v] is inverted", i+1, p.VXRange[0], p.VXRange[1])
		}
	}
	return nil
}

// Platform is a live platform. VX of 0 means no horizontal drift.
// Falls marks the falling type; Falling is set once it has been landed on.
type Platform struct {
	geom.Rect
	VX      float64
	Falls   bool
	Falling bool
}

type Enemy struct {
	geom.Rect
	VX float64
}

// Level is the mutable state of a level being played.
type Level struct {
	Name      string
	Platforms []Platform
	Enemies   []Enemy
	Portal    geom.Rect
	Gravity   float64
	Chaos     int
}

// Instantiate builds a fresh level from spec. Platforms with a vx_range get a
// new velocity drawn from rng on every call.
func Instantiate(spec Spec, rules Rules, rng *rand.Rand) *Level {
	lvl := &Level{
		Name:      spec.Name,
		Platforms: make([]Platform, 0, len(spec.Platforms)),
		Enemies:   make([]Enemy, 0, len(spec.Enemies)),
		Portal:    *spec.Portal,
		Gravity:   spec.GravityFor(rules),
		Chaos:     spec.Chaos,
	}

	for _, ps := range spec.Platforms {
		vx := ps.VX
		if len(ps.VXRange) == 2 {
			lo, hi := ps.VXRange[0], ps.VXRange[1]
			vx = lo + rng.Float64()*(hi-lo)
		}
		lvl.Platforms = append(lvl.Platforms, Platform{
			Rect:  ps.Rect,
			VX:    vx,
			Falls: ps.Falls,
		})
	}

	for _, es := range spec.Enemies {
		lvl.Enemies = append(lvl.Enemies, Enemy{
			Rect: geom.Rect{X: es.X, Y: es.Y, W: rules.EnemySize.W, H: rules.EnemySize.H},
			VX:   es.VX,
		})
	}

	return lvl
}
