package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/globe/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Frame.FPS = 0
	cfg.Frame.Count = 8
	cfg.Output.PerfWindow = 4
	cfg.Output.PreviewScale = 1
	return cfg
}

func TestRunWritesOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Dir = t.TempDir()

	sum, err := run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Frames != 8 {
		t.Errorf("Frames = %d, want 8", sum.Frames)
	}
	if sum.Samples == 0 || sum.Segments == 0 {
		t.Errorf("nothing drawn: %+v", sum)
	}

	for _, name := range []string{"config.yaml", "perf.csv", "last.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per full window.
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("perf.csv has %d lines, want 3", len(lines))
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := run(ctx, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Frames != 0 {
		t.Errorf("Frames = %d, want 0 after cancellation", sum.Frames)
	}
}

func TestNewSceneStages(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		want   string
	}{
		{
			name: "defaults",
			want: "Orient -> Replicate(3) -> Mobius -> Hole -> Trail -> project -> AntiAlias -> sink",
		},
		{
			name: "minimal",
			modify: func(c *config.Config) {
				c.Render.Replicate = 1
				c.Render.Mobius.Enabled = false
				c.Render.Hole.Radius = 0
				c.Trail.Lifespan = 0
				c.Render.AntiAlias = false
			},
			want: "Orient -> project -> sink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.modify != nil {
				tt.modify(cfg)
			}
			s, err := newScene(cfg)
			if err != nil {
				t.Fatalf("newScene: %v", err)
			}
			if got := strings.Join(s.pipe.Stages(), " -> "); got != tt.want {
				t.Errorf("stages = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSceneTrailAccumulates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Mobius.Enabled = false
	s, err := newScene(cfg)
	if err != nil {
		t.Fatalf("newScene: %v", err)
	}

	for range 3 {
		s.canvas.Clear()
		s.arena.Reset()
		s.advance(cfg.Derived.FrameDT)
		s.drawLive()
		s.drawTrail()
		s.pipe.EndFrame()
	}
	if s.trail.Len() == 0 {
		t.Error("trail buffer is empty after three frames")
	}
	if s.orient.Len() != 1 {
		t.Errorf("orientation has %d steps after EndFrame, want 1", s.orient.Len())
	}
}

func TestSceneAdvanceUsesPixelSteps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Mobius.Enabled = false
	s, err := newScene(cfg)
	if err != nil {
		t.Fatalf("newScene: %v", err)
	}

	s.advance(1)
	angle := cfg.Effect.RotationSpeed
	want := int(math.Ceil(angle / s.pipe.Grid().PixelAngle()))
	if got := s.orient.Len() - 1; got != want {
		t.Errorf("sub-steps = %d, want %d", got, want)
	}
}
