package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// PCM renders the tone for freq and d as 16-bit little-endian stereo, the
// format ebiten's audio players take.
func PCM(freq float64, d time.Duration, rate int) []byte {
	sr := beep.SampleRate(rate)
	t := NewTone(freq, d, sr)

	buf := make([]byte, 0, sr.N(d)*4)
	samples := make([][2]float64, 512)
	for {
		n, ok := t.Stream(samples)
		for _, s := range samples[:n] {
			for ch := 0; ch < 2; ch++ {
				v := int16(s[ch] * math.MaxInt16)
				buf = append(buf, byte(v), byte(v>>8))
			}
		}
		if !ok {
			return buf
		}
	}
}
