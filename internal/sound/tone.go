// Package sound synthesizes and plays the interval-complete tone.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Tone describes a sine wave whose gain decays exponentially from
// StartGain to EndGain over Duration.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	StartGain float64
	EndGain   float64
}

// DefaultTone returns the 800 Hz, half-second completion blip.
func DefaultTone() Tone {
	return Tone{
		Frequency: DefaultFrequency,
		Duration:  DefaultDuration,
		StartGain: DefaultStartGain,
		EndGain:   DefaultEndGain,
	}
}

// Samples returns the number of frames at the given sample rate.
func (t Tone) Samples(sampleRate int) int {
	return int(t.Duration.Seconds() * float64(sampleRate))
}

// Gain returns the envelope value at offset sec.
func (t Tone) Gain(sec float64) float64 {
	if t.StartGain <= 0 || t.EndGain <= 0 {
		return 0
	}
	return t.StartGain * math.Pow(t.EndGain/t.StartGain, sec/t.Duration.Seconds())
}

// PCM renders the tone as mono signed 16-bit little-endian samples.
func (t Tone) PCM(sampleRate int) []byte {
	n := t.Samples(sampleRate)
	out := make([]byte, n*BitDepth/8)
	for i := 0; i < n; i++ {
		sec := float64(i) / float64(sampleRate)
		v := t.Gain(sec) * math.Sin(2*math.Pi*t.Frequency*sec)
		v = math.Max(-1, math.Min(1, v))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return out
}
