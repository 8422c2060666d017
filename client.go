package tiling

// Client is the narrow host policy capability a [Tiling] is constructed
// with. It covers everything the engine delegates: tile size policy, tile
// and bundle allocation, the pending invalidation, twin-tree lookup, and
// content-refresh notification.
//
// Hosts inject a Client at construction; tests substitute a deterministic
// fake.
type Client interface {
	// TileSize returns the tile texture size to use for content of the
	// given size.
	TileSize(contentBounds Size) Size

	// CreateTile requests a fresh tile whose texture covers contentRect
	// (content space, including border texels). Returning nil declines
	// the request; the cell stays unfilled and is retried on the next
	// relevant update.
	CreateTile(t *Tiling, contentRect Rect) *Tile

	// CreateTileBundle allocates a bundle covering widthCells x
	// heightCells tile cells with its top-left cell at (originX, originY).
	CreateTileBundle(originX, originY, widthCells, heightCells int) *TileBundle

	// TwinTiling returns the sibling tree's tiling at the same contents
	// scale, or nil if there is none.
	TwinTiling(t *Tiling) *Tiling

	// Invalidation returns the pending invalidation region in layer
	// space. Consulted when deciding whether a twin tree's tile can be
	// shared.
	Invalidation() *Region

	// NotifyContentRefreshed is called once per tile when a tree becomes
	// active (and on explicit content refresh), letting the host drop
	// now-unneeded upstream references backing the tile.
	NotifyContentRefreshed(tile *Tile)
}
