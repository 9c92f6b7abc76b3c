package gui

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	gaudio "gleap/audio"
)

const sampleRate = 44100

type toneKey struct {
	freq float64
	dur  time.Duration
}

// Tones plays game cues through ebiten's audio context. Players are built on
// first use and replayed from the start after that. It starts muted.
type Tones struct {
	ctx *audio.Context

	mu      sync.Mutex
	players map[toneKey]*audio.Player
	muted   bool
}

// NewTones creates the process-wide audio context. Call it once.
func NewTones() *Tones {
	return &Tones{
		ctx:     audio.NewContext(sampleRate),
		players: make(map[toneKey]*audio.Player),
		muted:   true,
	}
}

func (t *Tones) PlaySound(freq float64, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.muted {
		return
	}

	k := toneKey{freq, d}
	p, ok := t.players[k]
	if !ok {
		p = t.ctx.NewPlayerFromBytes(gaudio.PCM(freq, d, sampleRate))
		t.players[k] = p
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// ToggleMute flips the mute flag and reports whether sound is now on.
func (t *Tones) ToggleMute() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted = !t.muted
	return !t.muted
}

func (t *Tones) SetMuted(muted bool) {
	t.mu.Lock()
	t.muted = muted
	t.mu.Unlock()
}

func (t *Tones) Muted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.muted
}
