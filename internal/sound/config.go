package sound

import "time"

// Audio parameters shared by the tone generator and the player.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Completion tone: a short sine blip that fades out.
const (
	DefaultFrequency = 800.0
	DefaultDuration  = 500 * time.Millisecond
	DefaultStartGain = 0.3
	DefaultEndGain   = 0.01
)
