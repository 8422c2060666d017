package tiling

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestGPUMemoryUsagePerFormat(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.TextureFormat
		want   int64
	}{
		{"rgba8", gputypes.TextureFormatRGBA8Unorm, 256 * 256 * 4},
		{"bgra8", gputypes.TextureFormatBGRA8Unorm, 256 * 256 * 4},
		{"rgba16float", gputypes.TextureFormatRGBA16Float, 256 * 256 * 8},
		{"r8", gputypes.TextureFormatR8Unorm, 256 * 256 * 1},
		{"unknown defaults to 32-bit", gputypes.TextureFormatUndefined, 256 * 256 * 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := &Tile{
				ContentRect: Rect{X: 0, Y: 0, W: 256, H: 256},
				Format:      tt.format,
			}
			if got := tile.GPUMemoryUsage(); got != tt.want {
				t.Errorf("GPUMemoryUsage = %d, want %d", got, tt.want)
			}
		})
	}
}
