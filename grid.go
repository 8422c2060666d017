package tiling

// GridIndex maps pixel coordinates in a fixed total area to integer tile
// indices and back. Tiles are laid out row-major; interior tiles overlap
// their neighbors by the border texel width so that bilinear sampling at
// tile edges has valid texels on both sides.
//
// Two GridIndex instances exist per tiling: one at tile granularity and
// one at bundle granularity.
type GridIndex struct {
	maxTextureSize Size
	totalSize      Size
	borderTexels   int

	numTilesX int
	numTilesY int
}

// NewGridIndex creates a grid index for the given total content size,
// per-tile texture size and border texel width.
func NewGridIndex(maxTextureSize, totalSize Size, borderTexels int) *GridIndex {
	g := &GridIndex{
		maxTextureSize: maxTextureSize,
		totalSize:      totalSize,
		borderTexels:   borderTexels,
	}
	g.recomputeNumTiles()
	return g
}

// MaxTextureSize returns the per-tile texture size.
func (g *GridIndex) MaxTextureSize() Size {
	return g.maxTextureSize
}

// TotalSize returns the total indexed area.
func (g *GridIndex) TotalSize() Size {
	return g.totalSize
}

// BorderTexels returns the border texel width.
func (g *GridIndex) BorderTexels() int {
	return g.borderTexels
}

// NumTilesX returns the tile count along the x axis.
func (g *GridIndex) NumTilesX() int {
	return g.numTilesX
}

// NumTilesY returns the tile count along the y axis.
func (g *GridIndex) NumTilesY() int {
	return g.numTilesY
}

// SetTotalSize changes the total indexed area.
func (g *GridIndex) SetTotalSize(totalSize Size) {
	g.totalSize = totalSize
	g.recomputeNumTiles()
}

// SetMaxTextureSize changes the per-tile texture size.
func (g *GridIndex) SetMaxTextureSize(maxTextureSize Size) {
	g.maxTextureSize = maxTextureSize
	g.recomputeNumTiles()
}

func (g *GridIndex) recomputeNumTiles() {
	g.numTilesX = computeNumTiles(g.maxTextureSize.W, g.totalSize.W, g.borderTexels)
	g.numTilesY = computeNumTiles(g.maxTextureSize.H, g.totalSize.H, g.borderTexels)
}

func computeNumTiles(maxTextureSize, totalSize, borderTexels int) int {
	if totalSize <= 0 {
		return 0
	}
	inner := maxTextureSize - 2*borderTexels
	if inner <= 0 {
		if maxTextureSize >= totalSize {
			return 1
		}
		return 0
	}
	return max(1, 1+(totalSize-1-2*borderTexels)/inner)
}

// TileXIndex returns the x index of the tile containing the given source
// x coordinate, clamped into [0, NumTilesX-1].
func (g *GridIndex) TileXIndex(srcX int) int {
	if g.numTilesX <= 1 {
		return 0
	}
	inner := g.maxTextureSize.W - 2*g.borderTexels
	x := (srcX - g.borderTexels) / inner
	return min(max(x, 0), g.numTilesX-1)
}

// TileYIndex returns the y index of the tile containing the given source
// y coordinate, clamped into [0, NumTilesY-1].
func (g *GridIndex) TileYIndex(srcY int) int {
	if g.numTilesY <= 1 {
		return 0
	}
	inner := g.maxTextureSize.H - 2*g.borderTexels
	y := (srcY - g.borderTexels) / inner
	return min(max(y, 0), g.numTilesY-1)
}

func (g *GridIndex) checkIndex(i, j int) {
	if i < 0 || i >= g.numTilesX || j < 0 || j >= g.numTilesY {
		panic("tiling: tile index out of range")
	}
}

func (g *GridIndex) tilePositionX(i int) int {
	if i == 0 {
		return 0
	}
	return (g.maxTextureSize.W-2*g.borderTexels)*i + g.borderTexels
}

func (g *GridIndex) tilePositionY(j int) int {
	if j == 0 {
		return 0
	}
	return (g.maxTextureSize.H-2*g.borderTexels)*j + g.borderTexels
}

// TileSizeX returns the width of the tile at x index i, excluding border.
func (g *GridIndex) TileSizeX(i int) int {
	g.checkIndex(i, 0)
	switch {
	case g.numTilesX == 1:
		return g.totalSize.W
	case i == 0:
		return g.maxTextureSize.W - g.borderTexels
	case i < g.numTilesX-1:
		return g.maxTextureSize.W - 2*g.borderTexels
	default:
		return g.totalSize.W - g.tilePositionX(i)
	}
}

// TileSizeY returns the height of the tile at y index j, excluding border.
func (g *GridIndex) TileSizeY(j int) int {
	g.checkIndex(0, j)
	switch {
	case g.numTilesY == 1:
		return g.totalSize.H
	case j == 0:
		return g.maxTextureSize.H - g.borderTexels
	case j < g.numTilesY-1:
		return g.maxTextureSize.H - 2*g.borderTexels
	default:
		return g.totalSize.H - g.tilePositionY(j)
	}
}

// TileBounds returns the pixel bounds of tile (i, j) without border.
func (g *GridIndex) TileBounds(i, j int) Rect {
	g.checkIndex(i, j)
	return Rect{
		X: g.tilePositionX(i),
		Y: g.tilePositionY(j),
		W: g.TileSizeX(i),
		H: g.TileSizeY(j),
	}
}

// TileBoundsWithBorder returns the pixel bounds of tile (i, j) including
// the border texels shared with interior neighbors, clipped to the total
// size.
func (g *GridIndex) TileBoundsWithBorder(i, j int) Rect {
	bounds := g.TileBounds(i, j)
	if g.borderTexels == 0 {
		return bounds
	}
	x1 := bounds.X
	x2 := bounds.Right()
	y1 := bounds.Y
	y2 := bounds.Bottom()
	if i > 0 {
		x1 -= g.borderTexels
	}
	if i < g.numTilesX-1 {
		x2 += g.borderTexels
	}
	if j > 0 {
		y1 -= g.borderTexels
	}
	if j < g.numTilesY-1 {
		y2 += g.borderTexels
	}
	x1 = max(x1, 0)
	y1 = max(y1, 0)
	x2 = min(x2, g.totalSize.W)
	y2 = min(y2, g.totalSize.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// GridIterator enumerates, row-major, the tile indices intersecting a
// rectangle. A zero-area rectangle yields an empty enumeration.
type GridIterator struct {
	left, top      int
	right, bottom  int
	indexX, indexY int
}

// Iter returns an iterator over the tile indices intersecting rect.
func (g *GridIndex) Iter(rect Rect) *GridIterator {
	it := &GridIterator{right: -1, bottom: -1}
	if g.numTilesX <= 0 || g.numTilesY <= 0 {
		return it
	}
	rect = rect.Intersect(RectFromSize(g.totalSize))
	if rect.IsEmpty() {
		return it
	}
	it.left = g.TileXIndex(rect.X)
	it.top = g.TileYIndex(rect.Y)
	it.right = g.TileXIndex(rect.Right() - 1)
	it.bottom = g.TileYIndex(rect.Bottom() - 1)
	it.indexX = it.left
	it.indexY = it.top
	return it
}

// Valid reports whether the iterator is positioned on an index.
func (it *GridIterator) Valid() bool {
	return it.indexY <= it.bottom
}

// Next advances to the next index in row-major order.
func (it *GridIterator) Next() {
	if !it.Valid() {
		return
	}
	it.indexX++
	if it.indexX > it.right {
		it.indexX = it.left
		it.indexY++
	}
}

// IndexX returns the current tile x index.
func (it *GridIterator) IndexX() int {
	return it.indexX
}

// IndexY returns the current tile y index.
func (it *GridIterator) IndexY() int {
	return it.indexY
}

// GridDiffIterator enumerates, row-major, the tile indices that intersect
// the consider rectangle but not the ignore rectangle. It is used when
// the live-tiles rectangle changes, to visit only entering or leaving
// cells instead of rescanning the full grid.
type GridDiffIterator struct {
	considerLeft, considerTop     int
	considerRight, considerBottom int
	ignoreLeft, ignoreTop         int
	ignoreRight, ignoreBottom     int
	indexX, indexY                int
}

// DiffIter returns an iterator over tile indices in consider but not in
// ignore.
func (g *GridIndex) DiffIter(consider, ignore Rect) *GridDiffIterator {
	it := &GridDiffIterator{
		considerRight:  -1,
		considerBottom: -1,
		ignoreLeft:     -1,
		ignoreTop:      -1,
		ignoreRight:    -1,
		ignoreBottom:   -1,
	}
	if g.numTilesX <= 0 || g.numTilesY <= 0 {
		return it
	}
	bounds := RectFromSize(g.totalSize)
	consider = consider.Intersect(bounds)
	ignore = ignore.Intersect(bounds)
	if consider.IsEmpty() {
		return it
	}

	it.considerLeft = g.TileXIndex(consider.X)
	it.considerTop = g.TileYIndex(consider.Y)
	it.considerRight = g.TileXIndex(consider.Right() - 1)
	it.considerBottom = g.TileYIndex(consider.Bottom() - 1)

	if !ignore.IsEmpty() {
		it.ignoreLeft = g.TileXIndex(ignore.X)
		it.ignoreTop = g.TileYIndex(ignore.Y)
		it.ignoreRight = g.TileXIndex(ignore.Right() - 1)
		it.ignoreBottom = g.TileYIndex(ignore.Bottom() - 1)

		// Ignore covers the whole consider rect: nothing to visit.
		if it.ignoreLeft == it.considerLeft &&
			it.ignoreRight == it.considerRight &&
			it.ignoreTop == it.considerTop &&
			it.ignoreBottom == it.considerBottom {
			it.considerRight = -1
			it.considerBottom = -1
			return it
		}
	}

	it.indexX = it.considerLeft
	it.indexY = it.considerTop
	if it.inIgnoreRect() {
		it.Next()
	}
	return it
}

// Valid reports whether the iterator is positioned on an index.
func (it *GridDiffIterator) Valid() bool {
	return it.considerBottom >= 0 && it.indexY <= it.considerBottom
}

// Next advances to the next index in consider \ ignore, row-major.
func (it *GridDiffIterator) Next() {
	if !it.Valid() {
		return
	}
	it.indexX++
	if it.inIgnoreRect() {
		it.indexX = it.ignoreRight + 1
	}
	if it.indexX > it.considerRight {
		it.indexX = it.considerLeft
		it.indexY++
		if it.inIgnoreRect() {
			it.indexX = it.ignoreRight + 1
			// The ignore rect spans the full consider width: skip past
			// its rows entirely.
			if it.indexX > it.considerRight {
				it.indexY = it.ignoreBottom + 1
				it.indexX = it.considerLeft
			}
		}
	}
	if it.indexY > it.considerBottom {
		it.considerBottom = -1
	}
}

func (it *GridDiffIterator) inIgnoreRect() bool {
	return it.ignoreLeft >= 0 &&
		it.indexX >= it.ignoreLeft && it.indexX <= it.ignoreRight &&
		it.indexY >= it.ignoreTop && it.indexY <= it.ignoreBottom
}

// IndexX returns the current tile x index.
func (it *GridDiffIterator) IndexX() int {
	return it.indexX
}

// IndexY returns the current tile y index.
func (it *GridDiffIterator) IndexY() int {
	return it.indexY
}
