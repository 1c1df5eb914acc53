package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/lumen/audio"
	"github.com/lixenwraith/lumen/core"
	"github.com/lixenwraith/lumen/engine"
	"github.com/lixenwraith/lumen/parameter"
	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/preset"
	"github.com/lixenwraith/lumen/status"
	"github.com/lixenwraith/lumen/strip"
)

// statusRows are reserved above the strip preview
const statusRows = 2

var (
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePause = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// sandbox owns the screen, the preset cursor and the frame runner
type sandbox struct {
	screen  tcell.Screen
	runner  *engine.Runner
	clock   *engine.PausableClock
	cues    *audio.Cues
	presets []preset.Preset
	current int

	lastFrames int64
	lastStatus time.Time
	fps        float64
}

func runTerminal(eng *pattern.Engine, presets []preset.Preset, start int, dim strip.Dimmer, interval time.Duration, reg *status.Registry, cues *audio.Cues) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	clock := engine.NewPausableClock(nil)
	s, err := newSandbox(screen, eng, presets, start, dim, clock, interval, reg, cues)
	if err != nil {
		return err
	}
	s.run()
	return nil
}

func newSandbox(screen tcell.Screen, eng *pattern.Engine, presets []preset.Preset, start int, dim strip.Dimmer, clock *engine.PausableClock, interval time.Duration, reg *status.Registry, cues *audio.Cues) (*sandbox, error) {
	sink := strip.NewTerminal(screen, eng.Len(), dim)
	sink.SetOrigin(0, statusRows)

	r, err := engine.NewRunner(eng, sink, clock, interval, reg)
	if err != nil {
		return nil, err
	}

	s := &sandbox{
		screen:     screen,
		runner:     r,
		clock:      clock,
		cues:       cues,
		presets:    presets,
		current:    start,
		lastStatus: time.Now(),
	}
	if cues != nil {
		r.OnFrame(func(f engine.Frame) {
			cues.Observe(f.State)
		})
	}
	return s, nil
}

// run drives input and the status line until quit; the runner ticks in its own goroutine
func (s *sandbox) run() {
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(events)
				return
			}
			events <- ev
		}
	})

	s.screen.Clear()
	s.drawStatus(time.Now())
	s.runner.Start()
	defer func() {
		s.runner.Stop()
		if err := s.runner.Blank(); err != nil {
			log.Printf("blank on exit: %v", err)
		}
	}()

	ticker := time.NewTicker(parameter.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !s.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			s.drawStatus(now)
		}
	}
}

// handleEvent applies one input event; false requests exit
func (s *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			s.selectPreset(s.current + 1)
		case tcell.KeyLeft:
			s.selectPreset(s.current - 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'n', 'N':
				s.selectPreset(s.current + 1)
			case 'p', 'P':
				s.selectPreset(s.current - 1)
			case 'r', 'R':
				// Same preset again restarts its motion
				s.selectPreset(s.current)
			case ' ':
				paused := s.clock.Toggle()
				log.Printf("clock paused=%v", paused)
			}
		}
		s.drawStatus(time.Now())

	case *tcell.EventResize:
		s.screen.Sync()
		s.screen.Clear()
		s.drawStatus(time.Now())
	}
	return true
}

// selectPreset switches to preset i, wrapping at both ends
func (s *sandbox) selectPreset(i int) {
	n := len(s.presets)
	i = ((i % n) + n) % n
	s.current = i
	s.runner.SetConfig(s.presets[i].Config)
	log.Printf("preset: %s", s.presets[i].Name)
	if s.cues != nil {
		s.cues.Play(audio.CuePreset)
	}
}

// drawStatus renders the two status rows and flushes the screen
func (s *sandbox) drawStatus(now time.Time) {
	reg := s.runner.Registry()
	frames := reg.Ints.Get("runner.frames").Load()
	if elapsed := now.Sub(s.lastStatus).Seconds(); elapsed >= parameter.StatusInterval.Seconds()/2 {
		s.fps = float64(frames-s.lastFrames) / elapsed
		s.lastFrames = frames
		s.lastStatus = now
	}

	p := s.presets[s.current]
	w, _ := s.screen.Size()
	clearRow(s.screen, 0, w)
	clearRow(s.screen, 1, w)

	title := fmt.Sprintf("[%d/%d] %s", s.current+1, len(s.presets), preset.Describe(p))
	x := drawText(s.screen, 0, 0, styleTitle, title)
	if s.clock.IsPaused() {
		drawText(s.screen, x+2, 0, stylePause, "PAUSED")
	}

	info := fmt.Sprintf("%.0f fps  %.2f ms/frame  frames %d  show errors %d  brightness %d%%   n/p preset  r restart  space pause  q quit",
		s.fps,
		reg.Floats.Get("runner.frame_ms").Get(),
		frames,
		reg.Ints.Get("runner.show_errors").Load(),
		p.Config.BrightnessPct,
	)
	drawText(s.screen, 0, 1, styleInfo, info)
	s.screen.Show()
}

func clearRow(screen tcell.Screen, y, w int) {
	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// drawText writes text from (x, y) and returns the column after it
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
