package parameter

import "time"

// Frame Loop Timing
const (
	// FrameInterval is the default strip refresh interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// MinFrameInterval caps the refresh rate accepted from flags (~500 FPS)
	MinFrameInterval = 2 * time.Millisecond

	// StatusInterval is how often the sandbox redraws its status line
	StatusInterval = 250 * time.Millisecond
)

// Strip Defaults
const (
	// DefaultLEDCount is the sandbox strip length when none is given
	DefaultLEDCount = 60

	// MaxSandboxLEDs bounds the terminal preview, larger strips still render on the null sink
	MaxSandboxLEDs = 4096

	// DefaultBrightnessPct is applied to presets that omit brightness
	DefaultBrightnessPct = 100
)

// Presets
const (
	// DefaultPresetName is selected at startup when no -preset flag is given
	DefaultPresetName = "rainbow"
)
