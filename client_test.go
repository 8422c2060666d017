package tiling

import (
	"github.com/gogpu/gputypes"
)

// fakeClient is a deterministic Client for tests: sequential tile IDs,
// an explicit invalidation region and explicit twin pairing.
type fakeClient struct {
	tileSize     Size
	invalidation Region
	twins        map[*Tiling]*Tiling

	nextTileID   uint64
	createdTiles []*Tile
	refreshedIDs []uint64

	// declineTiles makes CreateTile return nil, simulating host-side
	// resource exhaustion.
	declineTiles bool
}

func newFakeClient(tileSize Size) *fakeClient {
	return &fakeClient{
		tileSize: tileSize,
		twins:    make(map[*Tiling]*Tiling),
	}
}

func (c *fakeClient) TileSize(contentBounds Size) Size {
	return c.tileSize
}

func (c *fakeClient) CreateTile(t *Tiling, contentRect Rect) *Tile {
	if c.declineTiles {
		return nil
	}
	c.nextTileID++
	tile := &Tile{
		ID:          c.nextTileID,
		ContentRect: contentRect,
		Format:      gputypes.TextureFormatRGBA8Unorm,
	}
	c.createdTiles = append(c.createdTiles, tile)
	return tile
}

func (c *fakeClient) CreateTileBundle(originX, originY, widthCells, heightCells int) *TileBundle {
	return NewTileBundle(originX, originY, widthCells, heightCells)
}

func (c *fakeClient) TwinTiling(t *Tiling) *Tiling {
	return c.twins[t]
}

func (c *fakeClient) Invalidation() *Region {
	return &c.invalidation
}

func (c *fakeClient) NotifyContentRefreshed(tile *Tile) {
	c.refreshedIDs = append(c.refreshedIDs, tile.ID)
}

// pair registers a and b as each other's twin tilings.
func (c *fakeClient) pair(a, b *Tiling) {
	c.twins[a] = b
	c.twins[b] = a
}
