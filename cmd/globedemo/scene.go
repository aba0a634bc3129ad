package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/config"
	"github.com/gogpu/globe/palette"
)

// countingPlotter counts the samples the effects send into the pipeline.
type countingPlotter struct {
	*globe.Pipeline
	n int
}

func (c *countingPlotter) Plot(p r3.Vec, col globe.RGB, age float64, alpha float32) {
	c.n++
	c.Pipeline.Plot(p, col, age, alpha)
}

// scene owns everything one demo frame touches.
type scene struct {
	cfg    *config.Config
	arena  *globe.Arena
	canvas *globe.Canvas
	orient *globe.Orientation
	pipe   *globe.Pipeline
	plot   countingPlotter

	mobius *globe.Mobius
	trail  *globe.Trail

	ringPal  globe.Palette
	starPal  globe.Palette
	trailPal globe.Palette

	axis  r3.Vec
	frame int
	time  float64
}

// newScene builds the arena, canvas and pipeline described by cfg.
// Stages run Orient, Replicate, Mobius, Hole, Trail, AntiAlias; disabled
// stages are left out.
func newScene(cfg *config.Config) (*scene, error) {
	s := &scene{
		cfg:    cfg,
		arena:  globe.NewArena(cfg.ArenaConfig()),
		canvas: globe.NewCanvas(cfg.Grid.Width, cfg.Grid.Height),
		orient: globe.NewOrientation(),
	}
	s.canvas.SetBlendMode(cfg.Derived.Blend)

	stages := []globe.Filter{globe.NewOrient(s.orient)}
	if cfg.Render.Replicate > 1 {
		stages = append(stages, globe.NewReplicate(cfg.Render.Replicate))
	}
	if cfg.Render.Mobius.Enabled {
		s.mobius = globe.NewMobius()
		stages = append(stages, s.mobius)
	}
	if cfg.Render.Hole.Radius > 0 {
		stages = append(stages, globe.NewHole(r3.Vec{Y: 1}, cfg.Render.Hole.Radius))
	}
	if cfg.Trail.Lifespan > 0 {
		s.trail = globe.NewTrail(cfg.Trail.Lifespan, cfg.Trail.Capacity)
		stages = append(stages, s.trail)
	}
	if cfg.Render.AntiAlias {
		stages = append(stages, globe.NewAntiAlias())
	}

	pipe, err := globe.NewPipeline(s.canvas, stages...)
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	s.pipe = pipe
	s.plot.Pipeline = pipe

	if err := s.buildPalettes(); err != nil {
		return nil, err
	}

	tilt := cfg.Effect.Tilt
	s.axis = r3.Vec{X: math.Sin(tilt), Y: math.Cos(tilt)}
	return s, nil
}

func (s *scene) buildPalettes() error {
	stops := make([]palette.Stop, 0, len(s.cfg.Effect.Palette))
	for i, hex := range s.cfg.Effect.Palette {
		c, err := palette.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("effect palette: %w", err)
		}
		var t float64
		if n := len(s.cfg.Effect.Palette); n > 1 {
			t = float64(i) / float64(n-1)
		}
		stops = append(stops, palette.Stop{T: t, Color: c, Alpha: 1})
	}
	g, err := palette.NewGradient(stops...)
	if err != nil {
		return fmt.Errorf("effect palette: %w", err)
	}
	s.ringPal = g
	s.starPal = palette.Hue{Alpha: 1, Offset: 0.5}
	s.trailPal = s.ringPal
	return nil
}

// advance moves the animation forward by dt seconds: the orientation turns
// in pixel-sized sub-steps and the Mobius warp translates along a circle.
func (s *scene) advance(dt float64) {
	s.time += dt
	s.orient.RotateBy(s.axis, s.cfg.Effect.RotationSpeed*dt, s.pipe.Grid().PixelAngle())
	if s.mobius != nil {
		m := s.cfg.Render.Mobius
		b := cmplx.Rect(m.Strength, m.Speed*s.time)
		s.mobius.Set(1, b, 0, 1)
	}
}

// drawLive plots the frame's live geometry and returns the number of
// segments drawn.
func (s *scene) drawLive() int {
	e := s.cfg.Effect
	phase := s.time

	ringShader := func(_ r3.Vec, f globe.Fragment) globe.Shade {
		return s.ringPal.Get(f.V[0])
	}
	starShader := func(_ r3.Vec, f globe.Fragment) globe.Shade {
		return s.starPal.Get(f.T)
	}

	equator := globe.MakeBasis(nil, r3.Vec{Y: 1})
	side := globe.MakeBasis(nil, r3.Vec{X: 1})
	back := globe.MakeBasis(nil, r3.Vec{X: -1})

	segs := globe.DrawRing(s.arena, &s.plot, equator, e.RingRadius, phase, e.RingSamples, ringShader)
	segs += globe.DrawStar(s.arena, &s.plot, side, e.StarOuter, e.StarInner, -phase, e.StarPoints, starShader)
	segs += globe.DrawFlower(s.arena, &s.plot, back, e.StarOuter, phase/2, e.FlowerPetals, 0, ringShader)
	return segs
}

// drawTrail replays the trail history, fading towards transparent with age.
func (s *scene) drawTrail() {
	if s.trail == nil {
		return
	}
	s.pipe.Trail(func(_ r3.Vec, t float64) globe.Shade {
		sh := s.trailPal.Get(t)
		sh.Alpha *= float32(1 - t)
		return sh
	}, float32(s.cfg.Trail.Alpha))
}

func (s *scene) trailDropped() int {
	if s.trail == nil {
		return 0
	}
	return s.trail.Dropped()
}
