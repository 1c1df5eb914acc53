package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lixenwraith/lumen/engine"
	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/preset"
	"github.com/lixenwraith/lumen/render"
	"github.com/lixenwraith/lumen/status"
	"github.com/lixenwraith/lumen/strip"
)

// runHeadless renders without a screen
// frames > 0 steps a mock clock one interval per frame and prints every frame;
// otherwise it runs in real time until interrupted and prints the counters
func runHeadless(w io.Writer, eng *pattern.Engine, p preset.Preset, dim strip.Dimmer, interval time.Duration, frames int, reg *status.Registry) error {
	sink := strip.NewBuffer(eng.Len(), dim)

	if frames > 0 {
		clock := engine.NewMockTimeProvider(time.Unix(0, 0))
		r, err := engine.NewRunner(eng, sink, clock, interval, reg)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, preset.Describe(p))
		for i := 0; i < frames; i++ {
			f := r.Tick()
			if f.Err != nil {
				return f.Err
			}
			fmt.Fprintf(w, "%6d %s\n", f.NowMs, formatFrame(sink.Frame()))
			clock.Advance(interval)
		}
		writeStats(w, reg)
		return nil
	}

	r, err := engine.NewRunner(eng, sink, nil, interval, reg)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	r.Start()
	<-sigCh
	r.Stop()

	fmt.Fprintln(w, preset.Describe(p))
	writeStats(w, reg)
	return nil
}

func formatFrame(frame []render.RGB) string {
	var b strings.Builder
	for i, c := range frame {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(preset.FormatColor(c))
	}
	return b.String()
}

func writeStats(w io.Writer, reg *status.Registry) {
	for _, kv := range reg.Pairs() {
		fmt.Fprintln(w, kv)
	}
}
