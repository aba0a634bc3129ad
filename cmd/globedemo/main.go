// Command globedemo renders an animated scene into an equirectangular LED
// grid, headless, and writes previews and frame timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/config"
	"github.com/gogpu/globe/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	frames := flag.Int("frames", 0, "Frames to render (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for previews, perf CSV and config snapshot (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *frames > 0 {
		cfg.Frame.Count = *frames
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Derived.LogLevel}))
	slog.SetDefault(logger)
	globe.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := run(ctx, cfg)
	if err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	p.Printf("rendered %d frames, %d samples, %d segments in %v\n",
		sum.Frames, sum.Samples, sum.Segments, sum.Elapsed.Round(time.Millisecond))
	if dir := cfg.Output.Dir; dir != "" {
		fmt.Printf("output written to %s\n", dir)
	}
}

// summary totals a run.
type summary struct {
	Frames   int
	Samples  int
	Segments int
	Dropped  int
	Elapsed  time.Duration
}

// run renders cfg.Frame.Count frames, or until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) (summary, error) {
	var sum summary

	s, err := newScene(cfg)
	if err != nil {
		return sum, err
	}
	slog.Info("pipeline ready", "stages", s.pipe.Stages(), "blend", s.canvas.BlendMode())

	out, err := telemetry.NewOutputManager(cfg.Output.Dir, cfg.Output.PerfCSV)
	if err != nil {
		return sum, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			slog.Warn("closing output", "error", cerr)
		}
	}()
	if err := out.WriteConfig(cfg); err != nil {
		return sum, err
	}

	perf := telemetry.NewPerfCollector(cfg.Output.PerfWindow)
	var window telemetry.RenderCounters

	var tick <-chan time.Time
	if cfg.Frame.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.Frame.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	var lastDropped int
frames:
	for s.frame < cfg.Frame.Count {
		if tick != nil {
			select {
			case <-ctx.Done():
				break frames
			case <-tick:
			}
		} else if ctx.Err() != nil {
			break
		}

		perf.StartFrame()

		perf.StartPhase(telemetry.PhaseReset)
		s.canvas.Clear()
		s.arena.Reset()
		s.advance(cfg.Derived.FrameDT)

		perf.StartPhase(telemetry.PhasePlot)
		s.plot.n = 0
		sum.Segments += s.drawLive()
		window.FragmentsPeak = max(window.FragmentsPeak, s.arena.Fragments.Len())

		perf.StartPhase(telemetry.PhaseTrail)
		s.drawTrail()

		perf.StartPhase(telemetry.PhaseComposite)
		s.pipe.EndFrame()

		perf.EndFrame()

		s.frame++
		sum.Frames++
		sum.Samples += s.plot.n
		window.Samples += s.plot.n

		if s.frame%perf.WindowSize() == 0 {
			stats := perf.Stats()
			dropped := s.trailDropped()
			window.TrailDropped = dropped - lastDropped
			lastDropped = dropped
			slog.Debug("perf", "frame", s.frame, "stats", stats)
			if err := out.WritePerf(stats, s.frame, window); err != nil {
				return sum, err
			}
			window = telemetry.RenderCounters{}
		}
	}
	if ctx.Err() != nil {
		slog.Info("interrupted", "frame", s.frame)
	}
	sum.Elapsed = time.Since(start)
	sum.Dropped = s.trailDropped()

	if cfg.Output.PNG {
		if err := out.WriteFrame(s.canvas, "last.png", cfg.Output.PreviewScale); err != nil {
			return sum, err
		}
	}
	slog.Info("done", "frames", sum.Frames, "samples", sum.Samples, "trail_dropped", sum.Dropped, "perf", perf.Stats())
	return sum, nil
}
