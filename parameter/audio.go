package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultAudioVolume is the master cue volume, 0-1
	DefaultAudioVolume = 0.4
)

// MinCueGap between consecutive plays of the same cue
// Sparkle spawns can arrive every frame
const MinCueGap = 60 * time.Millisecond

// Bounce Click
const (
	BounceCueFreq     = 1200.0
	BounceCueDuration = 30 * time.Millisecond
	BounceCueAttack   = 2 * time.Millisecond
	BounceCueRelease  = 20 * time.Millisecond
)

// Sparkle Chirp
const (
	SparkCueFreq     = 2637.0 // E7
	SparkCueDuration = 45 * time.Millisecond
	SparkCueAttack   = 3 * time.Millisecond
	SparkCueRelease  = 35 * time.Millisecond
)

// Preset Switch Chime
const (
	PresetCueNote1Freq = 659.25 // E5
	PresetCueNote2Freq = 987.77 // B5
	PresetCueNoteDur   = 70 * time.Millisecond
	PresetCueAttack    = 5 * time.Millisecond
	PresetCueRelease   = 40 * time.Millisecond
)
