package tiling

import (
	"fmt"
	"log/slog"
)

// Bundle layout constants. The 2x2 grouping is an allocation-amortization
// policy: each of the four tile cells in a bundle is still created and
// removed independently.
const (
	bundleWidthCells  = 2
	bundleHeightCells = 2
)

// defaultBorderTexels is the border texel width used by [New]. Interior
// tiles overlap their neighbors by this many texels so bilinear sampling
// at tile edges stays inside the tile texture.
const defaultBorderTexels = 1

// Role is the mutability state of a tiling. Mutation operations
// (Invalidate, SetLayerBounds, SetLiveTilesRect) require RoleMutable;
// calling them on a read-only tiling is a caller bug and panics.
type Role int

const (
	// RoleReadOnly marks a tiling whose tree is being displayed; only
	// reads are legal.
	RoleReadOnly Role = iota
	// RoleMutable marks a tiling whose tree is being built.
	RoleMutable
)

// String returns the name of the role.
func (r Role) String() string {
	switch r {
	case RoleReadOnly:
		return "ReadOnly"
	case RoleMutable:
		return "Mutable"
	default:
		return "Unknown"
	}
}

// bundleKey addresses a bundle in the store by bundle coordinates.
type bundleKey struct {
	X, Y int
}

// bundleKeyForTile returns the key of the bundle containing tile (i, j).
func bundleKeyForTile(i, j int) bundleKey {
	return bundleKey{X: i / bundleWidthCells, Y: j / bundleHeightCells}
}

// computeBundleTextureSize derives the bundle-granularity texture size
// from the tile texture size: the inner (borderless) tile area repeats
// per cell, with one border on the outside.
func computeBundleTextureSize(tileSize Size, borderTexels int) Size {
	innerW := tileSize.W - 2*borderTexels
	innerH := tileSize.H - 2*borderTexels
	return Size{
		W: innerW*bundleWidthCells + 2*borderTexels,
		H: innerH*bundleHeightCells + 2*borderTexels,
	}
}

// Tiling tracks the materialized tiles of one layer at one contents
// scale, for both render trees. It owns the sparse bundle store, the
// tile- and bundle-granularity grid indexers and the live-tiles
// rectangle, and orchestrates creation, removal, invalidation and
// priority updates.
//
// A Tiling is confined to the frame-update goroutine; no operation
// blocks or suspends.
type Tiling struct {
	contentsScale float64
	layerBounds   Size
	resolution    Resolution
	client        Client

	tileGrid   *GridIndex
	bundleGrid *GridIndex
	bundles    map[bundleKey]*TileBundle

	liveTilesRect Rect
	currentTree   TreeKind
	role          Role

	lastFrameTime  float64
	expansionCache expansionCache
}

// New creates a tiling for a layer of the given bounds at the given
// contents scale, with the default border texel width. Panics if the
// scale collapses the layer to an empty content area: such a tiling
// could never hold a tile.
func New(contentsScale float64, layerBounds Size, client Client) *Tiling {
	return NewWithBorder(contentsScale, layerBounds, defaultBorderTexels, client)
}

// NewWithBorder is like [New] with an explicit border texel width.
func NewWithBorder(contentsScale float64, layerBounds Size, borderTexels int, client Client) *Tiling {
	if ScaleSizeFloor(layerBounds, contentsScale).IsEmpty() {
		panic(fmt.Sprintf(
			"tiling: scale %v collapses layer bounds %v to empty contents",
			contentsScale, layerBounds))
	}

	contentBounds := ScaleSizeCeil(layerBounds, contentsScale)
	tileSize := client.TileSize(contentBounds)

	return &Tiling{
		contentsScale: contentsScale,
		layerBounds:   layerBounds,
		resolution:    ResolutionNonIdeal,
		client:        client,
		tileGrid:      NewGridIndex(tileSize, contentBounds, borderTexels),
		bundleGrid: NewGridIndex(
			computeBundleTextureSize(tileSize, borderTexels),
			contentBounds, borderTexels),
		bundles:     make(map[bundleKey]*TileBundle),
		currentTree: TreePending,
		role:        RoleMutable,
	}
}

// SetClient replaces the host policy capability.
func (t *Tiling) SetClient(client Client) {
	t.client = client
}

// ContentsScale returns the contents scale.
func (t *Tiling) ContentsScale() float64 {
	return t.contentsScale
}

// LayerBounds returns the unscaled layer bounds.
func (t *Tiling) LayerBounds() Size {
	return t.layerBounds
}

// TileSize returns the tile texture size.
func (t *Tiling) TileSize() Size {
	return t.tileGrid.MaxTextureSize()
}

// ContentRect returns the content bounds as a rectangle at the origin.
func (t *Tiling) ContentRect() Rect {
	return RectFromSize(t.tileGrid.TotalSize())
}

// ContentSizeF returns the exact (unrounded) scaled content size.
func (t *Tiling) ContentSizeF() SizeF {
	return SizeF{
		W: float64(t.layerBounds.W) * t.contentsScale,
		H: float64(t.layerBounds.H) * t.contentsScale,
	}
}

// LiveTilesRect returns the subset of the content rectangle for which
// tiles are currently materialized.
func (t *Tiling) LiveTilesRect() Rect {
	return t.liveTilesRect
}

// Resolution returns the tiling's resolution class.
func (t *Tiling) Resolution() Resolution {
	return t.resolution
}

// SetResolution sets the tiling's resolution class. It is stamped onto
// every priority computed by UpdatePriorities.
func (t *Tiling) SetResolution(r Resolution) {
	t.resolution = r
}

// CurrentTree returns the tree this tiling currently builds or displays.
func (t *Tiling) CurrentTree() TreeKind {
	return t.currentTree
}

// CurrentRole returns the tiling's mutability state.
func (t *Tiling) CurrentRole() Role {
	return t.role
}

func (t *Tiling) assertMutable(op string) {
	if t.role != RoleMutable {
		panic("tiling: " + op + " requires the mutable role")
	}
}

// createBundleForTile creates or acquires the bundle for tile (i, j).
// Bundles are always shared with the twin tiling when the tile texture
// sizes match.
func (t *Tiling) createBundleForTile(i, j int, twin *Tiling) *TileBundle {
	key := bundleKeyForTile(i, j)
	if _, ok := t.bundles[key]; ok {
		panic("tiling: bundle already exists")
	}

	var candidate *TileBundle
	if twin != nil && t.tileGrid.MaxTextureSize() == twin.tileGrid.MaxTextureSize() {
		candidate = twin.BundleAt(key.X, key.Y)
	}
	if candidate == nil {
		candidate = t.client.CreateTileBundle(
			key.X*bundleWidthCells, key.Y*bundleHeightCells,
			bundleWidthCells, bundleHeightCells)
	}
	candidate.swapIfRequired()
	t.bundles[key] = candidate
	return candidate
}

// BundleAt returns the bundle at bundle coordinates (bx, by), or nil.
func (t *Tiling) BundleAt(bx, by int) *TileBundle {
	b, ok := t.bundles[bundleKey{X: bx, Y: by}]
	if !ok {
		return nil
	}
	b.swapIfRequired()
	return b
}

// bundleContainingTile returns the bundle containing tile (i, j), or nil.
func (t *Tiling) bundleContainingTile(i, j int) *TileBundle {
	key := bundleKeyForTile(i, j)
	return t.BundleAt(key.X, key.Y)
}

// TileAt returns the tile at cell (i, j) for the given tree, or nil.
func (t *Tiling) TileAt(tree TreeKind, i, j int) *Tile {
	bundle := t.bundleContainingTile(i, j)
	if bundle == nil {
		return nil
	}
	return bundle.TileAt(tree, i, j)
}

// CreateTile materializes cell (i, j) for the given tree, creating or
// acquiring the owning bundle first. If the opposite tree already has a
// tile at the cell and the pending invalidation does not touch the
// cell's layer-space footprint, that tile is reused directly; otherwise
// a fresh tile is requested from the host. A declined request leaves the
// cell unfilled; it is retried on the next relevant update.
func (t *Tiling) CreateTile(tree TreeKind, i, j int, twin *Tiling) {
	bundle := t.bundleContainingTile(i, j)
	if bundle == nil {
		bundle = t.createBundleForTile(i, j, twin)
	}

	paintRect := t.tileGrid.TileBoundsWithBorder(i, j)
	tileRect := paintRect
	tileRect.W = t.tileGrid.MaxTextureSize().W
	tileRect.H = t.tileGrid.MaxTextureSize().H

	// Check our twin tree for a valid tile.
	if candidate := bundle.TileAt(tree.other(), i, j); candidate != nil {
		layerRect := ScaleRectEnclosing(paintRect, 1.0/t.contentsScale)
		if !t.client.Invalidation().Intersects(layerRect) {
			bundle.AddTileAt(tree, i, j, candidate)
			return
		}
	}

	// The twin didn't have a valid tile; ask the host for a fresh one.
	tile := t.client.CreateTile(t, tileRect)
	if tile == nil {
		Logger().Warn("host declined tile",
			slog.String("tree", tree.String()),
			slog.Int("i", i), slog.Int("j", j))
		return
	}
	bundle.AddTileAt(tree, i, j, tile)
}

// RemoveTile drops the tile reference at cell (i, j) for the given tree.
// Returns true if a tile was present, signaling callers that the cell
// may need recreating.
func (t *Tiling) RemoveTile(tree TreeKind, i, j int) bool {
	bundle := t.bundleContainingTile(i, j)
	if bundle == nil {
		return false
	}
	return bundle.RemoveTileAt(tree, i, j)
}

// RemoveBundleIfEmpty evicts the bundle containing tile (i, j) from the
// store if it holds no tile in either tree.
func (t *Tiling) RemoveBundleIfEmpty(i, j int) {
	key := bundleKeyForTile(i, j)
	b, ok := t.bundles[key]
	if !ok {
		return
	}
	if b.IsEmpty() {
		delete(t.bundles, key)
		Logger().Debug("bundle evicted",
			slog.Int("bx", key.X), slog.Int("by", key.Y))
	}
}

// BundleCount returns the number of bundles in the store.
func (t *Tiling) BundleCount() int {
	return len(t.bundles)
}

// TileCount returns the number of distinct tiles across all bundles.
func (t *Tiling) TileCount() int {
	n := 0
	for _, b := range t.bundles {
		b.EachUniqueTile(func(*Tile) { n++ })
	}
	return n
}

// Invalidate removes and recreates every pending-tree tile whose cell is
// touched by the region (layer space), intersected with the live-tiles
// rectangle. Recreation goes through CreateTile, where the twin-reuse
// check fails for invalidated cells, guaranteeing fresh content.
//
// Only legal while the tiling is mutable.
func (t *Tiling) Invalidate(region Region) {
	t.assertMutable("Invalidate")

	var newTileKeys [][2]int
	for _, layerRect := range region.Rects() {
		contentRect := ScaleRectEnclosing(layerRect, t.contentsScale)
		contentRect = contentRect.Intersect(t.liveTilesRect)
		if contentRect.IsEmpty() {
			continue
		}
		for it := t.tileGrid.Iter(contentRect); it.Valid(); it.Next() {
			// If there is no bundle for the given tile, we can skip.
			if t.RemoveTile(TreePending, it.IndexX(), it.IndexY()) {
				newTileKeys = append(newTileKeys, [2]int{it.IndexX(), it.IndexY()})
			}
		}
	}

	twin := t.client.TwinTiling(t)
	for _, key := range newTileKeys {
		t.CreateTile(TreePending, key[0], key[1], twin)
	}
}

// SetLayerBounds resizes the layer. If the derived tile texture size
// changes, the whole tiling's geometry is invalid and everything is
// dropped; otherwise the live-tiles rectangle is clipped to the new
// content bounds and exactly the newly exposed layer area is
// invalidated.
//
// Only legal while the tiling is mutable.
func (t *Tiling) SetLayerBounds(layerBounds Size) {
	if t.layerBounds == layerBounds {
		return
	}

	t.assertMutable("SetLayerBounds")
	if layerBounds.IsEmpty() {
		panic("tiling: layer bounds must be non-empty")
	}

	oldLayerBounds := t.layerBounds
	t.layerBounds = layerBounds
	contentBounds := ScaleSizeCeil(layerBounds, t.contentsScale)

	tileSize := t.client.TileSize(contentBounds)
	if tileSize != t.tileGrid.MaxTextureSize() {
		t.tileGrid.SetTotalSize(contentBounds)
		t.tileGrid.SetMaxTextureSize(tileSize)
		t.bundleGrid.SetTotalSize(contentBounds)
		t.bundleGrid.SetMaxTextureSize(
			computeBundleTextureSize(tileSize, t.tileGrid.BorderTexels()))
		t.Reset()
		return
	}

	// Any tiles outside the new bounds are invalid and should be dropped.
	boundedLiveTilesRect := t.liveTilesRect.Intersect(RectFromSize(contentBounds))
	t.setLiveTilesRect(boundedLiveTilesRect)
	t.tileGrid.SetTotalSize(contentBounds)
	t.bundleGrid.SetTotalSize(contentBounds)

	// Create tiles for newly exposed areas.
	layerRegion := NewRegion(RectFromSize(layerBounds))
	layerRegion.Subtract(RectFromSize(oldLayerBounds))
	t.Invalidate(layerRegion)
}

// SetLiveTilesRect changes the live-tiles rectangle: cells leaving it are
// removed (and their bundles possibly evicted), cells entering are
// created with twin-tree reuse. newRect must be empty or contained in
// the content rectangle.
//
// Only legal while the tiling is mutable. Priority updates reconcile the
// live-tiles rectangle internally on either tree.
func (t *Tiling) SetLiveTilesRect(newRect Rect) {
	t.assertMutable("SetLiveTilesRect")
	t.setLiveTilesRect(newRect)
}

func (t *Tiling) setLiveTilesRect(newRect Rect) {
	if !newRect.IsEmpty() && !t.ContentRect().Contains(newRect) {
		panic(fmt.Sprintf("tiling: live tiles rect %v outside content rect %v",
			newRect, t.ContentRect()))
	}
	if t.liveTilesRect == newRect {
		return
	}

	// Delete all tiles outside the new live-tiles rect.
	for it := t.tileGrid.DiffIter(t.liveTilesRect, newRect); it.Valid(); it.Next() {
		// A cell outside the recorded region has no tile even though it
		// was in the live rect; RemoveTile tolerates that.
		t.RemoveTile(t.currentTree, it.IndexX(), it.IndexY())
		t.RemoveBundleIfEmpty(it.IndexX(), it.IndexY())
	}

	if newRect.IsEmpty() {
		t.liveTilesRect = newRect
		return
	}

	twin := t.client.TwinTiling(t)

	// Allocate tiles for all newly exposed cells.
	for it := t.tileGrid.DiffIter(newRect, t.liveTilesRect); it.Valid(); it.Next() {
		t.CreateTile(t.currentTree, it.IndexX(), it.IndexY(), twin)
	}

	Logger().Debug("live tiles rect changed",
		slog.String("old", t.liveTilesRect.String()),
		slog.String("new", newRect.String()))
	t.liveTilesRect = newRect
}

// CreateMissingTilesInLiveTilesRect fills every unfilled pending-tree
// cell inside the live-tiles rectangle, typically after the host
// recovers from declining tile requests.
func (t *Tiling) CreateMissingTilesInLiveTilesRect() {
	t.assertMutable("CreateMissingTilesInLiveTilesRect")

	twin := t.client.TwinTiling(t)
	for it := t.tileGrid.Iter(t.liveTilesRect); it.Valid(); it.Next() {
		if t.TileAt(TreePending, it.IndexX(), it.IndexY()) != nil {
			continue
		}
		t.CreateTile(TreePending, it.IndexX(), it.IndexY(), twin)
	}
}

// SetCanUseLCDText updates the subpixel-text eligibility of every
// current-tree tile.
func (t *Tiling) SetCanUseLCDText(canUse bool) {
	for _, b := range t.bundles {
		b.EachTile(t.currentTree, func(tile *Tile) {
			tile.CanUseLCDText = canUse
		})
	}
}

// OpaqueRegionInContentRect returns the opaque area within the given
// content rectangle. Opaque-region tracking is not implemented; the
// result is always empty.
func (t *Tiling) OpaqueRegionInContentRect(contentRect Rect) Region {
	return Region{}
}

// Reset drops all bundles and empties the live-tiles rectangle.
func (t *Tiling) Reset() {
	Logger().Debug("tiling reset",
		slog.Int("bundles_dropped", len(t.bundles)),
		slog.Float64("contents_scale", t.contentsScale))
	t.liveTilesRect = Rect{}
	clear(t.bundles)
}

// DidBecomeActive promotes the pending tree: every bundle is marked for
// its deferred tree swap, the host is notified once per now-active tile
// so it can drop upstream content references, and the tiling becomes the
// read-only active-tree side.
func (t *Tiling) DidBecomeActive() {
	for _, b := range t.bundles {
		b.DidBecomeActive()
		b.EachTile(TreeActive, func(tile *Tile) {
			// A tile that never gets invalidated would otherwise pin its
			// recorded content forever; let the host re-reference it.
			t.client.NotifyContentRefreshed(tile)
		})
	}
	t.currentTree = TreeActive
	t.role = RoleReadOnly
}

// DidBecomeRecycled resets bundle priorities and returns the tiling to
// the mutable pending role. The recycled tree is never read; the next
// stage after recycled is pending.
func (t *Tiling) DidBecomeRecycled() {
	for _, b := range t.bundles {
		b.DidBecomeRecycled()
	}
	t.currentTree = TreePending
	t.role = RoleMutable
}

// UpdateAllTileContent notifies the host for every pending-tree tile so
// it can re-reference the tiles' backing content.
func (t *Tiling) UpdateAllTileContent() {
	for _, b := range t.bundles {
		b.EachTile(TreePending, func(tile *Tile) {
			t.client.NotifyContentRefreshed(tile)
		})
	}
}

// GPUMemoryUsage returns the approximate GPU memory in bytes held by the
// tiling's tiles, summed over every distinct tile in the store.
func (t *Tiling) GPUMemoryUsage() int64 {
	var amount int64
	for _, b := range t.bundles {
		b.EachUniqueTile(func(tile *Tile) {
			amount += tile.GPUMemoryUsage()
		})
	}
	return amount
}

// Snapshot is a structured introspection view of a tiling.
type Snapshot struct {
	// BundleCount is the number of bundles in the store.
	BundleCount int
	// ContentScale is the tiling's contents scale.
	ContentScale float64
	// ContentBounds is the scaled content size.
	ContentBounds Size
}

// LogValue implements slog.LogValuer, so a snapshot logs as a group.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("num_tile_bundles", s.BundleCount),
		slog.Float64("content_scale", s.ContentScale),
		slog.String("content_bounds", s.ContentBounds.String()),
	)
}

// Snapshot returns a structured view of the tiling for diagnostics.
func (t *Tiling) Snapshot() Snapshot {
	return Snapshot{
		BundleCount:   len(t.bundles),
		ContentScale:  t.contentsScale,
		ContentBounds: t.tileGrid.TotalSize(),
	}
}
