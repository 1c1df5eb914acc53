// Command lumen-sandbox previews LED pattern presets on a terminal strip
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/lumen/audio"
	"github.com/lixenwraith/lumen/parameter"
	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/preset"
	"github.com/lixenwraith/lumen/status"
	"github.com/lixenwraith/lumen/strip"
)

var (
	ledsFlag    = flag.Int("leds", parameter.DefaultLEDCount, "Strip length in LEDs")
	presetsFlag = flag.String("presets", "", "Preset YAML file (default: built-in presets)")
	presetFlag  = flag.String("preset", parameter.DefaultPresetName, "Initial preset name")
	fpsFlag     = flag.Int("fps", 60, "Frames per second")
	outFlag     = flag.String("out", "terminal", "Output: terminal, null")
	dimFlag     = flag.String("dim", "linear", "Brightness policy: linear, gamma")
	seedFlag    = flag.Uint("seed", 0, "Sparkle RNG seed, 0 picks one per engine")
	framesFlag  = flag.Int("frames", 0, "Null output: render this many frames on a stepped clock, then print them")
	audioFlag   = flag.Bool("audio", false, "Play cues on bounce flips, sparkle spawns and preset switches")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/lumen.log")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lumen-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	presets, err := loadPresets(*presetsFlag)
	if err != nil {
		return err
	}
	start, ok := preset.Find(presets, *presetFlag)
	if !ok {
		return fmt.Errorf("preset %q not found (have: %s)", *presetFlag, strings.Join(preset.Names(presets), ", "))
	}

	dim, err := strip.ParseDimmer(*dimFlag)
	if err != nil {
		return err
	}

	var opts []pattern.Option
	if *seedFlag != 0 {
		opts = append(opts, pattern.WithSeed(uint32(*seedFlag)))
	}
	eng, err := pattern.New(*ledsFlag, opts...)
	if err != nil {
		return err
	}
	defer eng.Close()
	eng.SetConfig(presets[start].Config)

	interval := frameInterval(*fpsFlag)
	reg := status.NewRegistry()
	log.Printf("lumen-sandbox: %d LEDs, %v/frame, preset %q, out %s", *ledsFlag, interval, presets[start].Name, *outFlag)

	switch *outFlag {
	case "null":
		return runHeadless(os.Stdout, eng, presets[start], dim, interval, *framesFlag, reg)

	case "terminal":
		if *ledsFlag > parameter.MaxSandboxLEDs {
			return fmt.Errorf("terminal preview supports at most %d LEDs, use -out null", parameter.MaxSandboxLEDs)
		}
		var cues *audio.Cues
		if *audioFlag {
			cues = audio.NewCues(parameter.DefaultAudioVolume)
			if err := cues.Initialize(); err != nil {
				log.Printf("audio disabled: %v", err)
				cues = nil
			} else {
				defer cues.Cleanup()
			}
		}
		return runTerminal(eng, presets, start, dim, interval, reg, cues)

	default:
		return fmt.Errorf("unknown output %q", *outFlag)
	}
}

func loadPresets(path string) ([]preset.Preset, error) {
	if path == "" {
		return preset.Default()
	}
	return preset.Load(path)
}

// frameInterval converts a frame rate into a tick interval within the supported range
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return parameter.FrameInterval
	}
	return max(time.Second/time.Duration(fps), parameter.MinFrameInterval)
}
