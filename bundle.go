package tiling

// TileBundle is the unit of tile allocation and cross-tree sharing: a
// small fixed group of tile cells with one tile slot per cell per tree,
// plus one priority value per tree.
//
// Bundles are shared by construction between twin tilings (the active and
// pending tilings of one layer) whenever their tile texture sizes match.
// A bundle with both trees' slots empty is reclaimable and is evicted
// from its store.
//
// The tree promotion that happens on activation is deferred: activation
// only marks the bundle, and the actual exchange of the two trees' slots
// runs lazily on the next access. Bundles are confined to the
// frame-update goroutine, like everything else in this package.
type TileBundle struct {
	originX, originY        int // tile coordinates of the top-left cell
	widthCells, heightCells int

	// tiles holds one slot per cell per tree, indexed by TreeKind,
	// row-major within the bundle.
	tiles      [2][]*Tile
	priorities [2]TilePriority

	needsSwap bool
}

// NewTileBundle creates a bundle covering widthCells x heightCells tile
// cells with its top-left cell at tile coordinates (originX, originY).
func NewTileBundle(originX, originY, widthCells, heightCells int) *TileBundle {
	b := &TileBundle{
		originX:     originX,
		originY:     originY,
		widthCells:  widthCells,
		heightCells: heightCells,
	}
	n := widthCells * heightCells
	b.tiles[TreeActive] = make([]*Tile, n)
	b.tiles[TreePending] = make([]*Tile, n)
	b.priorities[TreeActive] = defaultPriority()
	b.priorities[TreePending] = defaultPriority()
	return b
}

// cellIndex maps global tile coordinates to the bundle-local slot index.
func (b *TileBundle) cellIndex(i, j int) int {
	ci := i - b.originX
	cj := j - b.originY
	if ci < 0 || ci >= b.widthCells || cj < 0 || cj >= b.heightCells {
		panic("tiling: tile coordinates outside bundle")
	}
	return cj*b.widthCells + ci
}

// swapIfRequired performs the deferred tree promotion: the pending tree's
// slots and priority become the active tree's, and vice versa.
func (b *TileBundle) swapIfRequired() {
	if !b.needsSwap {
		return
	}
	b.needsSwap = false
	b.tiles[TreeActive], b.tiles[TreePending] = b.tiles[TreePending], b.tiles[TreeActive]
	b.priorities[TreeActive], b.priorities[TreePending] = b.priorities[TreePending], b.priorities[TreeActive]
}

// TileAt returns the tile backing cell (i, j) for the given tree, or nil.
func (b *TileBundle) TileAt(tree TreeKind, i, j int) *Tile {
	b.swapIfRequired()
	return b.tiles[tree][b.cellIndex(i, j)]
}

// AddTileAt installs a tile for cell (i, j) in the given tree.
func (b *TileBundle) AddTileAt(tree TreeKind, i, j int, tile *Tile) {
	b.swapIfRequired()
	b.tiles[tree][b.cellIndex(i, j)] = tile
}

// RemoveTileAt drops the tile reference for cell (i, j) in the given
// tree. Returns true if a tile was present.
func (b *TileBundle) RemoveTileAt(tree TreeKind, i, j int) bool {
	b.swapIfRequired()
	idx := b.cellIndex(i, j)
	had := b.tiles[tree][idx] != nil
	b.tiles[tree][idx] = nil
	return had
}

// IsEmpty returns true if the bundle holds no tile in either tree.
func (b *TileBundle) IsEmpty() bool {
	for tree := range b.tiles {
		for _, t := range b.tiles[tree] {
			if t != nil {
				return false
			}
		}
	}
	return true
}

// Priority returns the bundle's priority for the given tree.
func (b *TileBundle) Priority(tree TreeKind) TilePriority {
	b.swapIfRequired()
	return b.priorities[tree]
}

// SetPriority stores the bundle's priority for the given tree.
func (b *TileBundle) SetPriority(tree TreeKind, p TilePriority) {
	b.swapIfRequired()
	b.priorities[tree] = p
}

// DidBecomeActive marks the bundle for deferred tree promotion. The
// pending tree's tiles become the active tree's on the next access.
func (b *TileBundle) DidBecomeActive() {
	b.needsSwap = true
}

// DidBecomeRecycled resets the bundle's priorities. The recycled tree is
// never read before the next priority update recomputes them.
func (b *TileBundle) DidBecomeRecycled() {
	b.priorities[TreeActive] = defaultPriority()
	b.priorities[TreePending] = defaultPriority()
}

// EachTile calls fn for every present tile of the given tree.
func (b *TileBundle) EachTile(tree TreeKind, fn func(*Tile)) {
	b.swapIfRequired()
	for _, t := range b.tiles[tree] {
		if t != nil {
			fn(t)
		}
	}
}

// EachUniqueTile calls fn once for every distinct tile in the bundle.
// A tile shared by both trees for the same cell is visited once.
func (b *TileBundle) EachUniqueTile(fn func(*Tile)) {
	b.swapIfRequired()
	for idx, t := range b.tiles[TreeActive] {
		if t != nil {
			fn(t)
		}
		if p := b.tiles[TreePending][idx]; p != nil && p != t {
			fn(p)
		}
	}
}
