package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/globe"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Grid.Width != 96 || cfg.Grid.Height != 20 {
		t.Errorf("grid = %dx%d, want 96x20", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Derived.Blend != globe.BlendOver {
		t.Errorf("Derived.Blend = %v, want over", cfg.Derived.Blend)
	}
	if cfg.Derived.LogLevel != slog.LevelInfo {
		t.Errorf("Derived.LogLevel = %v, want INFO", cfg.Derived.LogLevel)
	}
	if cfg.Derived.FrameDT != 1.0/30 {
		t.Errorf("Derived.FrameDT = %v, want 1/30", cfg.Derived.FrameDT)
	}
	if a := cfg.ArenaConfig(); a.Fragments != 1024 || a.Vectors != 1024 || a.Steps != 512 {
		t.Errorf("ArenaConfig() = %+v", a)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "globe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, "grid:\n  width: 128\nrender:\n  blend: max\nlog:\n  level: debug\nframe:\n  fps: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Width != 128 || cfg.Grid.Height != 20 {
		t.Errorf("grid = %dx%d, want 128x20 (height kept from defaults)", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Derived.Blend != globe.BlendMax {
		t.Errorf("Derived.Blend = %v, want max", cfg.Derived.Blend)
	}
	if cfg.Derived.LogLevel != slog.LevelDebug {
		t.Errorf("Derived.LogLevel = %v, want DEBUG", cfg.Derived.LogLevel)
	}
	if cfg.Derived.FrameDT != 1.0/60 {
		t.Errorf("Derived.FrameDT = %v, want 1/60 for fps 0", cfg.Derived.FrameDT)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"narrow grid", "grid:\n  width: 0\n", "grid.width"},
		{"flat grid", "grid:\n  height: 1\n", "grid.height"},
		{"blend", "render:\n  blend: screen\n", "render.blend"},
		{"replicate", "render:\n  replicate: 0\n", "render.replicate"},
		{"hole", "render:\n  hole:\n    radius: 4\n", "render.hole.radius"},
		{"trail alpha", "trail:\n  alpha: 2\n", "trail.alpha"},
		{"trail capacity", "trail:\n  capacity: 0\n", "trail.capacity"},
		{"palette", "effect:\n  palette: []\n", "effect.palette"},
		{"log level", "log:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load() error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
	if _, err := Load(writeFile(t, "grid: [1, 2\n")); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("Load(malformed) error = %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 64
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written) error = %v", err)
	}
	if back.Grid.Width != 64 || back.Effect.StarPoints != cfg.Effect.StarPoints {
		t.Errorf("round trip lost values: %+v", back.Grid)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	t.Cleanup(func() { global = saved })
	defer func() {
		if recover() == nil {
			t.Error("Cfg() before Init did not panic")
		}
	}()
	Cfg()
}

func TestInit(t *testing.T) {
	saved := global
	t.Cleanup(func() { global = saved })
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Cfg().Grid.Width != 96 {
		t.Errorf("Cfg().Grid.Width = %d, want 96", Cfg().Grid.Width)
	}
}
