// Package tiling provides a layer tiling and tile-priority engine for Go.
//
// # Overview
//
// tiling partitions a scaled drawable surface into a grid of fixed-size
// tiles grouped into 2x2 bundles, tracks which tiles are materialized for
// two concurrently-live render trees (the displayed "active" tree and the
// in-progress "pending" tree), computes a screen-space scheduling priority
// for every bundle each frame, and enumerates a gap-free, non-overlapping
// sequence of tile geometries covering an arbitrary destination rectangle
// at an arbitrary output scale.
//
// The engine does not rasterize pixels and never touches a GPU device.
// Rasterization, texture upload and tile memory policy live behind the
// narrow [Client] capability, which the host implements (typically on top
// of gogpu/wgpu).
//
// # Quick Start
//
//	import "github.com/gogpu/tiling"
//
//	// The host implements tiling.Client (tile size policy, tile and
//	// bundle allocation, pending invalidation, twin-tree lookup).
//	t := tiling.New(1.0, tiling.Size{W: 800, H: 600}, client)
//
//	// Once per frame, on the frame-update goroutine:
//	t.UpdatePriorities(tiling.TreePending, viewportSize, viewportRect,
//	    visibleRect, lastBounds, bounds, 1.0, 1.0,
//	    lastTransform, transform, now, maxTiles)
//
//	// Enumerate tile geometry covering a destination rectangle:
//	for it := t.Cover(1.0, destRect); it.Valid(); it.Next() {
//	    draw(it.GeometryRect(), it.TextureRect(), it.Tile())
//	}
//
// # Architecture
//
// The library is a single package organized around:
//   - Geometry: Rect, RectF, Region, Transform (transform classification
//     drives the priority fast paths)
//   - GridIndex: pixel-to-tile-index mapping with border texels, plus
//     rectangle and rectangle-difference iteration
//   - TileBundle: the unit of allocation and cross-tree sharing
//   - Tiling: lifecycle orchestration (create, remove, invalidate,
//     live-rect reconciliation, priority updates)
//   - CoverageIterator: the sole read path for compositing consumers
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Three spaces appear throughout: layer space (unscaled logical
// coordinates), content space (layer space scaled by the contents scale)
// and destination space (the coverage iterator's output space, at an
// independently chosen scale).
//
// # Concurrency
//
// A Tiling is single-threaded: all operations execute on one frame-update
// goroutine with no internal locking. Twin tilings share bundles safely
// only because both are driven from that same goroutine.
package tiling

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
