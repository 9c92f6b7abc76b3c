package level

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(12345, 12345))
}

func TestDefaultLevels(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	require.Len(t, set.Levels, 5)

	r := set.Rules
	assert.Equal(t, 800.0, r.CanvasWidth)
	assert.Equal(t, 600.0, r.CanvasHeight)
	assert.Equal(t, -12.0, r.JumpForce)
	assert.Equal(t, 5.0, r.PlayerSpeed)
	assert.Equal(t, 3, r.Lives)
	assert.Equal(t, 100.0, r.PlayerStart.X)
	assert.Equal(t, 500.0, r.PlayerStart.Y)
	assert.Equal(t, Size{W: 32, H: 32}, r.PlayerSize)

	names := []string{"Warm Up", "Moving Hell", "Falling Trap", "Chaos Mode", "Final Madness"}
	gravity := []float64{0.5, 0.5, 0.6, 0.7, 0.8}
	chaos := []int{0, 1, 2, 3, 4}
	for i, spec := range set.Levels {
		assert.Equal(t, names[i], spec.Name)
		assert.InDelta(t, gravity[i], spec.GravityFor(r), 1e-9, "level %d gravity", i+1)
		assert.Equal(t, chaos[i], spec.Chaos)
		assert.Len(t, spec.Platforms, 3)
		require.NotNil(t, spec.Portal)
	}

	assert.Len(t, set.Levels[3].Enemies, 2)
	assert.Len(t, set.Levels[4].Enemies, 3)
	assert.Equal(t, 250.0, set.Levels[4].Portal.Y)
	assert.True(t, set.Levels[2].Platforms[0].Falls)
	assert.False(t, set.Levels[1].Platforms[0].Falls)
	assert.Equal(t, []float64{-3, 3}, set.Levels[4].Platforms[1].VXRange)
}

func TestInstantiateFixedVelocities(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	lvl := Instantiate(set.Levels[1], set.Rules, testRNG())
	assert.Equal(t, "Moving Hell", lvl.Name)
	require.Len(t, lvl.Platforms, 3)
	assert.Equal(t, 2.0, lvl.Platforms[0].VX)
	assert.Equal(t, -1.0, lvl.Platforms[1].VX)
	assert.Equal(t, 1.0, lvl.Platforms[2].VX)

	require.Len(t, lvl.Enemies, 1)
	assert.Equal(t, 32.0, lvl.Enemies[0].W)
	assert.Equal(t, 32.0, lvl.Enemies[0].H)
	assert.Equal(t, 2.0, lvl.Enemies[0].VX)
}

func TestInstantiateDrawsRangesPerLoad(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	rng := testRNG()

	first := Instantiate(set.Levels[4], set.Rules, rng)
	second := Instantiate(set.Levels[4], set.Rules, rng)

	for i := range first.Platforms {
		vx := first.Platforms[i].VX
		assert.GreaterOrEqual(t, vx, -3.0)
		assert.Less(t, vx, 3.0)
		assert.True(t, first.Platforms[i].Falls)
		assert.False(t, first.Platforms[i].Falling)
	}
	assert.NotEqual(t, first.Platforms[0].VX, second.Platforms[0].VX)

	// Same seed, same draw.
	again := Instantiate(set.Levels[4], set.Rules, testRNG())
	assert.Equal(t, first.Platforms[0].VX, again.Platforms[0].VX)
}

func TestInstantiateDoesNotAliasTemplate(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	lvl := Instantiate(set.Levels[0], set.Rules, testRNG())
	lvl.Platforms[0].X = 999
	lvl.Portal.X = 999

	assert.Equal(t, 0.0, set.Levels[0].Platforms[0].X)
	assert.Equal(t, 700.0, set.Levels[0].Portal.X)
}

func TestLoadFileOverlaysRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
rules:
  lives: 5
  gravity: 0.4
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, set.Rules.Lives)
	assert.Equal(t, 0.4, set.Rules.Gravity)
	assert.Equal(t, 800.0, set.Rules.CanvasWidth)
	assert.Len(t, set.Levels, 5)
	assert.InDelta(t, 0.5, set.Levels[2].GravityFor(set.Rules), 1e-9)
}

func TestLoadFileReplacesLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	data := []byte(`
levels:
  - name: Solo
    gravity: 1.5
    platforms:
      - {x: 0, y: 550, w: 800, h: 50}
    portal: {x: 700, y: 500, w: 50, h: 50}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, set.Levels, 1)
	assert.Equal(t, "Solo", set.Levels[0].Name)
	assert.Equal(t, 1.5, set.Levels[0].GravityFor(set.Rules))
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty levels", "levels: []\n"},
		{"missing portal", "levels:\n  - name: x\n"},
		{"inverted range", "levels:\n  - portal: {x: 1, y: 1, w: 1, h: 1}\n    platforms:\n      - {x: 0, y: 0, w: 1, h: 1, vx_range: [2, -2]}\n"},
		{"short range", "levels:\n  - portal: {x: 1, y: 1, w: 1, h: 1}\n    platforms:\n      - {x: 0, y: 0, w: 1, h: 1, vx_range: [2]}\n"},
		{"negative chaos", "levels:\n  - portal: {x: 1, y: 1, w: 1, h: 1}\n    chaos: -1\n"},
		{"zero lives", "rules:\n  lives: 0\n"},
		{"bad canvas", "rules:\n  canvas_width: -1\n"},
		{"malformed", "rules: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateNoLevels(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	set.Levels = nil
	assert.ErrorIs(t, set.Validate(), ErrNoLevels)
}
