package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/lumen/parameter"
	"github.com/lixenwraith/lumen/pattern"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cue is a short sound tied to a strip event
type Cue int

const (
	CueBounce Cue = iota // Bounce chase reversed at an end
	CueSpark             // New sparkle lit
	CuePreset            // Preset switched
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueSpark:
		return "spark"
	case CuePreset:
		return "preset"
	default:
		return "unknown"
	}
}

// CreateCue builds a one-shot streamer for c at volume vol (0-1)
func CreateCue(c Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueBounce:
		osc := NewOscillator(parameter.BounceCueFreq, parameter.BounceCueDuration, WaveSquare, rate)
		shaped := NewEnvelope(osc, parameter.BounceCueDuration, parameter.BounceCueAttack, parameter.BounceCueRelease, rate)
		return newVolume(shaped, vol*0.5)

	case CueSpark:
		osc := NewOscillator(parameter.SparkCueFreq, parameter.SparkCueDuration, WaveSine, rate)
		shaped := NewEnvelope(osc, parameter.SparkCueDuration, parameter.SparkCueAttack, parameter.SparkCueRelease, rate)
		return newVolume(shaped, vol*0.6)

	case CuePreset:
		n1 := NewOscillator(parameter.PresetCueNote1Freq, parameter.PresetCueNoteDur, WaveSine, rate)
		n1Shaped := NewEnvelope(n1, parameter.PresetCueNoteDur, parameter.PresetCueAttack, parameter.PresetCueRelease, rate)
		n2 := NewOscillator(parameter.PresetCueNote2Freq, parameter.PresetCueNoteDur, WaveSine, rate)
		n2Shaped := NewEnvelope(n2, parameter.PresetCueNoteDur, parameter.PresetCueAttack, parameter.PresetCueRelease, rate)
		return newVolume(beep.Seq(n1Shaped, n2Shaped), vol)

	default:
		return nil
	}
}

// DetectCues compares consecutive engine snapshots and returns the events worth a sound
func DetectCues(prev, cur pattern.State) []Cue {
	if prev.Kind != cur.Kind || cur.Frame <= prev.Frame {
		// Config changed or state reset between frames
		return nil
	}

	var cues []Cue
	switch cur.Kind {
	case pattern.KindChase:
		if cur.ChaseDirection != prev.ChaseDirection {
			cues = append(cues, CueBounce)
		}
	case pattern.KindSparkle:
		if cur.ActiveSparkles > prev.ActiveSparkles {
			cues = append(cues, CueSpark)
		}
	}
	return cues
}

// Cues plays strip event sounds through the speaker
// Safe for concurrent use; every method is a no-op until Initialize succeeds
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	lastPlay    [cueCount]time.Time
	prev        pattern.State
	hasPrev     bool
}

// NewCues creates a cue player at master volume vol (0-1)
func NewCues(vol float64) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: min(max(vol, 0), 1),
	}
}

// Initialize opens the speaker and starts the mixer
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues cue unless the same cue played within MinCueGap
func (c *Cues) Play(cue Cue) bool {
	return c.playAt(cue, time.Now())
}

func (c *Cues) playAt(cue Cue, now time.Time) bool {
	if cue < 0 || cue >= cueCount {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return false
	}
	if now.Sub(c.lastPlay[cue]) < parameter.MinCueGap {
		return false
	}
	c.lastPlay[cue] = now

	s := CreateCue(cue, c.volume, sampleRate)
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Observe feeds one engine snapshot and plays any detected cues
func (c *Cues) Observe(st pattern.State) {
	c.mu.Lock()
	prev, hasPrev := c.prev, c.hasPrev
	c.prev, c.hasPrev = st, true
	c.mu.Unlock()

	if !hasPrev {
		return
	}
	for _, cue := range DetectCues(prev, st) {
		c.Play(cue)
	}
}

// Cleanup silences the mixer and closes the speaker
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
