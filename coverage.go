package tiling

// CoverageIterator produces, for a destination rectangle at a
// destination scale, the ordered sequence of non-overlapping geometry
// rectangles (and their backing tiles, if any) whose union exactly tiles
// the destination rectangle clipped to the mapped content rectangle:
// no gaps and no overlaps, by construction.
//
// Iteration is row-major, single pass, not restartable. Because
// floating-point scaling can make adjacent tiles' mapped rectangles
// overlap by a pixel, every non-first step trims its rectangle's top and
// left to exactly abut the previously yielded rectangle. A step whose
// rectangle collapses to zero area when a mapped tile edge lands exactly
// on a destination edge is skipped, so every yielded rectangle is
// non-empty.
//
// It is the sole read path for compositing consumers:
//
//	for it := t.Cover(scale, dest); it.Valid(); it.Next() {
//	    draw(it.GeometryRect(), it.TextureRect(), it.Tile())
//	}
type CoverageIterator struct {
	tiling             *Tiling
	destRect           Rect
	destToContentScale float64
	tree               TreeKind

	currentTile         *Tile
	currentGeometryRect Rect
	tileI, tileJ        int
	left, top           int
	right, bottom       int

	yielded    bool
	rowChanged bool
}

// Cover returns a coverage iterator over destRect (destination space, at
// destScale) for the tiling's current tree. Destination regions outside
// the mapped content rectangle collapse to an empty iteration.
func (t *Tiling) Cover(destScale float64, destRect Rect) *CoverageIterator {
	it := &CoverageIterator{
		tiling:   t,
		destRect: destRect,
		tree:     t.currentTree,
		right:    -1,
		bottom:   -1,
	}
	if destRect.IsEmpty() {
		return it
	}

	it.destToContentScale = t.contentsScale / destScale

	contentRect := ScaleRectEnclosing(destRect, it.destToContentScale)
	// Index lookups clamp to valid tile ranges, so non-intersection must
	// be checked first.
	contentRect = contentRect.Intersect(t.ContentRect())
	if contentRect.IsEmpty() {
		return it
	}

	it.left = t.tileGrid.TileXIndex(contentRect.X)
	it.top = t.tileGrid.TileYIndex(contentRect.Y)
	it.right = t.tileGrid.TileXIndex(contentRect.Right() - 1)
	it.bottom = t.tileGrid.TileYIndex(contentRect.Bottom() - 1)

	it.tileI = it.left - 1
	it.tileJ = it.top
	it.Next()
	return it
}

// Valid reports whether the iterator is positioned on a coverage step.
func (it *CoverageIterator) Valid() bool {
	return it.tileJ <= it.bottom
}

// Next advances to the next coverage step.
func (it *CoverageIterator) Next() {
	if it.tileJ > it.bottom {
		return
	}

	for {
		it.tileI++
		if it.tileI > it.right {
			it.tileI = it.left
			it.tileJ++
			it.rowChanged = true
			if it.tileJ > it.bottom {
				it.currentTile = nil
				return
			}
		}

		it.currentTile = it.tiling.TileAt(it.tree, it.tileI, it.tileJ)

		// Map the tile's content bounds back to destination space. Due
		// to floating point rounding and enclosing-rect scaling,
		// neighboring tiles may overlap on the edges here.
		contentRect := it.tiling.tileGrid.TileBounds(it.tileI, it.tileJ)
		geom := ScaleRectEnclosing(contentRect, 1/it.destToContentScale)
		geom = geom.Intersect(it.destRect)

		if it.yielded {
			// Iteration happens left to right, top to bottom. Running
			// off the bottom-right edge is handled by the destination
			// intersection above. Trim the top/left here so this rect
			// exactly abuts the last yielded one.
			var minLeft, minTop int
			if it.rowChanged {
				minLeft = it.destRect.X
				minTop = it.currentGeometryRect.Bottom()
			} else {
				minLeft = it.currentGeometryRect.Right()
				minTop = it.currentGeometryRect.Y
			}
			insetLeft := max(0, minLeft-geom.X)
			insetTop := max(0, minTop-geom.Y)
			geom = geom.Inset(insetLeft, insetTop, 0, 0)
		}

		// When a mapped tile edge lands exactly on a destination edge
		// the step collapses to zero area. Such steps cover nothing,
		// so drop them rather than surfacing empty rectangles.
		if geom.IsEmpty() {
			continue
		}

		it.currentGeometryRect = geom
		it.yielded = true
		it.rowChanged = false
		return
	}
}

// GeometryRect returns the step's destination-space rectangle.
func (it *CoverageIterator) GeometryRect() Rect {
	return it.currentGeometryRect
}

// FullTileGeometryRect returns the content-space rectangle of the step's
// full tile texture, anchored at the tile's bordered origin.
func (it *CoverageIterator) FullTileGeometryRect() Rect {
	rect := it.tiling.tileGrid.TileBoundsWithBorder(it.tileI, it.tileJ)
	size := it.tiling.tileGrid.MaxTextureSize()
	rect.W = size.W
	rect.H = size.H
	return rect
}

// TextureRect returns the step's rectangle in the tile's texture space.
func (it *CoverageIterator) TextureRect() RectF {
	texOrigin := it.tiling.tileGrid.TileBoundsWithBorder(it.tileI, it.tileJ)

	// Convert from destination space to content space to texture space.
	textureRect := it.currentGeometryRect.ToRectF().Scale(it.destToContentScale)
	textureRect = textureRect.Offset(Vector{
		X: -float64(texOrigin.X),
		Y: -float64(texOrigin.Y),
	})
	return textureRect.Intersect(it.tiling.ContentRect().ToRectF())
}

// TextureSize returns the tile texture size.
func (it *CoverageIterator) TextureSize() Size {
	return it.tiling.tileGrid.MaxTextureSize()
}

// Tile returns the tile backing the step, or nil when the cell has none.
func (it *CoverageIterator) Tile() *Tile {
	return it.currentTile
}

// Priority returns the step's bundle priority for the iterator's tree,
// or the default priority when the cell has no bundle.
func (it *CoverageIterator) Priority() TilePriority {
	bundle := it.tiling.bundleContainingTile(it.tileI, it.tileJ)
	if bundle == nil {
		return defaultPriority()
	}
	return bundle.Priority(it.tree)
}

// SetPriorityForTesting overrides the step's bundle priority. Test use
// only; the bundle must exist.
func (it *CoverageIterator) SetPriorityForTesting(p TilePriority) {
	bundle := it.tiling.bundleContainingTile(it.tileI, it.tileJ)
	bundle.SetPriority(it.tree, p)
}
