package tiling

import (
	"github.com/gogpu/gputypes"
)

// Tile is one rasterizable unit. Tiles are created by the host through
// the [Client] capability and treated as opaque handles by the engine:
// the engine never rasterizes or uploads, it only tracks which tiles back
// which grid cells for which tree.
//
// A tile is bound to one (tiling, tree, cell) triple at a time, but may
// be referenced by both trees' slots simultaneously when the content is
// unchanged between trees (copy-on-invalidate sharing).
type Tile struct {
	// ID identifies the tile for the host. The engine never interprets it.
	ID uint64

	// ContentRect is the tile's destination rectangle in content space,
	// including border texels, sized to the tile texture.
	ContentRect Rect

	// Format is the texture format the host rasterizes this tile into.
	// Used only for memory accounting.
	Format gputypes.TextureFormat

	// CanUseLCDText reports whether the tile is eligible for subpixel
	// text rendering.
	CanUseLCDText bool
}

// texelSize returns the byte size of one texel of the given format.
// Covers the formats the GoGPU backends allocate for layer content.
func texelSize(format gputypes.TextureFormat) int64 {
	switch format {
	case gputypes.TextureFormatRGBA16Float:
		// Wide color gamut content.
		return 8
	case gputypes.TextureFormatR8Unorm:
		// Alpha-only masks.
		return 1
	default:
		// RGBA8/BGRA8 and friends; treat unknown formats as 32-bit
		// color rather than under-reporting.
		return 4
	}
}

// GPUMemoryUsage returns the approximate GPU memory the tile's texture
// occupies, in bytes.
func (t *Tile) GPUMemoryUsage() int64 {
	return t.ContentRect.Area() * texelSize(t.Format)
}
