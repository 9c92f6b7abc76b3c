package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Synth plays short tones through the system speaker. It starts muted.
type Synth struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	running bool

	muted      atomic.Bool
	silentMode atomic.Bool
}

func NewSynth() *Synth {
	s := &Synth{mixer: &beep.Mixer{}}
	s.muted.Store(true)
	return s
}

// Start opens the speaker. Without a usable device the synth stays silent
// and Start still succeeds.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		s.silentMode.Store(true)
		s.running = true
		return nil
	}

	speaker.Play(s.mixer)
	s.running = true
	return nil
}

func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	if !s.silentMode.Load() {
		speaker.Clear()
	}
	s.running = false
}

// PlaySound queues a tone. It is dropped while muted, stopped or silent.
func (s *Synth) PlaySound(freq float64, d time.Duration) {
	if s.muted.Load() || s.silentMode.Load() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	speaker.Lock()
	s.mixer.Add(NewTone(freq, d, sampleRate))
	speaker.Unlock()
}

// ToggleMute flips the mute flag and reports whether sound is now on.
func (s *Synth) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	return !muted
}

func (s *Synth) SetMuted(muted bool) { s.muted.Store(muted) }
func (s *Synth) Muted() bool         { return s.muted.Load() }

// Silent reports whether no audio device was found.
func (s *Synth) Silent() bool { return s.silentMode.Load() }
