// Package globe renders draw calls on the unit sphere into an
// equirectangular pixel grid, such as the cells of a spherical LED display.
//
// # Overview
//
// Effects describe geometry as points and arcs on the unit sphere. The
// rasterizer walks those arcs with a step size that follows the grid, calls
// a shader per sample, and sends each colored sample through a Pipeline of
// filter stages that rotate, replicate, warp, buffer or anti-alias it
// before it is composited into a Canvas.
//
// # Quick Start
//
//	import "github.com/gogpu/globe"
//
//	canvas := globe.NewCanvas(96, 20)
//	orient := globe.NewOrientation()
//	pipe, err := globe.NewPipeline(canvas,
//	    globe.NewOrient(orient),
//	    globe.NewReplicate(3),
//	    globe.NewAntiAlias(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	arena := globe.NewArena(globe.ArenaConfig{})
//	b := globe.MakeBasis(nil, r3.Vec{Y: 1})
//	globe.DrawRing(arena, pipe, b, 0.5, 0, 32, func(p r3.Vec, f globe.Fragment) globe.Shade {
//	    return globe.Shade{Color: globe.Red, Alpha: 1}
//	})
//	pipe.EndFrame()
//	arena.Reset()
//
// # Coordinate System
//
// Positions are unit vectors. +Y is the polar axis: the north pole maps to
// row 0 and the south pole to row H−1. Longitude zero is +X and increases
// towards +Z; it maps to x and wraps around the grid width.
//
// # Frame Contract
//
// Rendering is single-threaded and frame-stepped. Per frame a driver plots
// live content, calls Pipeline.Trail to replay buffered history, calls
// Pipeline.EndFrame so orientation-driven stages collapse their sub-step
// history, and resets its Arena. Slices handed out by the arena are valid
// only until that reset.
//
// # Errors
//
// Per-sample paths never return errors. Degenerate geometry resolves to a
// fixed fallback axis or a single point. NaN produced by a shader is not
// clamped and shows up as corrupted pixels.
package globe

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
