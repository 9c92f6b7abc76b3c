package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	toneStartGain = 0.1
	toneEndGain   = 0.01
)

// tone is a sine wave whose gain ramps exponentially from toneStartGain to
// toneEndGain over its duration.
type tone struct {
	freq     float64
	phase    float64
	position int
	total    int
	decay    float64 // per-sample gain multiplier
	gain     float64
	rate     beep.SampleRate
}

// NewTone creates a finite sine streamer at freq lasting d.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	decay := 1.0
	if total > 1 {
		decay = math.Pow(toneEndGain/toneStartGain, 1/float64(total-1))
	}
	return &tone{
		freq:  freq,
		total: total,
		decay: decay,
		gain:  toneStartGain,
		rate:  rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.total {
		return 0, false
	}

	for i := range samples {
		if t.position >= t.total {
			return i, true
		}

		val := t.gain * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.gain *= t.decay
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
