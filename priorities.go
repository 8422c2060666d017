package tiling

import "fmt"

// UpdatePriorities recomputes the live-tiles rectangle and every
// intersecting bundle's scheduling priority for one frame.
//
// The first-ever call binds the tiling's current tree to tree; passing a
// different tree afterwards is a caller bug and panics. A call repeating
// the previous frame time is a no-op, so the update is idempotent per
// timestamp. currentFrameTime is in seconds and must be nonzero.
//
// The interest rectangle starts from the visible rectangle (or the
// viewport when nothing is visible), scaled to content space, and is
// expanded to an area of maxTilesForInterestArea tiles bounded by the
// content rectangle. It becomes the new live-tiles rectangle, triggering
// the usual create/remove cascade.
//
// Per-bundle screen rectangles are computed by one of three strategies,
// picked once per call from the shape of the two screen transforms:
// a translation-only path (offset arithmetic only), an affine path
// (precomputed basis vectors, no per-bundle matrix multiply), and a
// general path (full clipped mapping per bundle, perspective included).
func (t *Tiling) UpdatePriorities(
	tree TreeKind,
	deviceViewport Size,
	viewportInLayerSpace Rect,
	visibleLayerRect Rect,
	lastLayerBounds Size,
	currentLayerBounds Size,
	lastContentsScale float64,
	currentContentsScale float64,
	lastScreenTransform Transform,
	currentScreenTransform Transform,
	currentFrameTime float64,
	maxTilesForInterestArea int,
) {
	if t.lastFrameTime == 0 {
		t.currentTree = tree
		if tree == TreePending {
			t.role = RoleMutable
		} else {
			t.role = RoleReadOnly
		}
	}
	if tree != t.currentTree {
		panic(fmt.Sprintf("tiling: UpdatePriorities called with tree %v, bound to %v",
			tree, t.currentTree))
	}
	if currentFrameTime == t.lastFrameTime {
		// Frame time zero would be indistinguishable from "never
		// updated"; reject it.
		if currentFrameTime == 0 {
			panic("tiling: frame time must be nonzero")
		}
		return
	}
	if t.ContentRect().IsEmpty() {
		t.lastFrameTime = currentFrameTime
		return
	}

	viewportInContentSpace := ScaleRectEnclosing(viewportInLayerSpace, t.contentsScale)
	visibleContentRect := ScaleRectEnclosing(visibleLayerRect, t.contentsScale)

	tileSize := t.tileGrid.MaxTextureSize()
	interestRectArea := int64(maxTilesForInterestArea) *
		int64(tileSize.W) * int64(tileSize.H)

	startingRect := visibleContentRect
	if startingRect.IsEmpty() {
		startingRect = viewportInContentSpace
	}
	interestRect := expandRectToArea(
		startingRect, interestRectArea, t.ContentRect(), &t.expansionCache)

	t.setLiveTilesRect(interestRect)

	// A bounds change invalidates the velocity estimate; keep a neutral
	// delta in that case.
	timeDelta := 0.0
	if t.lastFrameTime != 0 && lastLayerBounds == currentLayerBounds {
		timeDelta = currentFrameTime - t.lastFrameTime
	}

	viewRect := RectFromSize(deviceViewport).ToRectF()
	currentScale := currentContentsScale / t.contentsScale
	lastScale := lastContentsScale / t.contentsScale

	switch classifyTransforms(lastScreenTransform, currentScreenTransform) {
	case classTranslation:
		t.updatePrioritiesTranslation(tree, interestRect, viewRect,
			lastScale, currentScale, timeDelta,
			lastScreenTransform, currentScreenTransform)
	case classAffine:
		t.updatePrioritiesAffine(tree, interestRect, viewRect,
			lastScale, currentScale, timeDelta,
			lastScreenTransform, currentScreenTransform)
	default:
		t.updatePrioritiesGeneral(tree, interestRect, viewRect,
			lastScale, currentScale, timeDelta,
			lastScreenTransform, currentScreenTransform)
	}

	t.lastFrameTime = currentFrameTime
}

// updatePrioritiesTranslation handles the case of both transforms being
// pure 2D translations: bundle screen rectangles are scaled content
// rectangles plus the translation offset.
func (t *Tiling) updatePrioritiesTranslation(
	tree TreeKind, interestRect Rect, viewRect RectF,
	lastScale, currentScale, timeDelta float64,
	last, current Transform,
) {
	currentOffset := current.Translation()
	lastOffset := last.Translation()

	for it := t.bundleGrid.Iter(interestRect); it.Valid(); it.Next() {
		bundle := t.BundleAt(it.IndexX(), it.IndexY())
		if bundle == nil {
			continue
		}

		bundleBounds := t.bundleGrid.TileBounds(it.IndexX(), it.IndexY())
		currentScreenRect := ScaleRectF(bundleBounds, currentScale).Offset(currentOffset)
		lastScreenRect := ScaleRectF(bundleBounds, lastScale).Offset(lastOffset)

		bundle.SetPriority(tree, t.priorityFor(
			lastScreenRect, currentScreenRect, timeDelta, viewRect))
	}
}

// updatePrioritiesAffine handles perspective-free transforms: the
// transformed basis vectors for one bundle cell are computed once, and
// each bundle's screen quadrilateral is an integer combination of them.
func (t *Tiling) updatePrioritiesAffine(
	tree TreeKind, interestRect Rect, viewRect RectF,
	lastScale, currentScale, timeDelta float64,
	last, current Transform,
) {
	// The transform of the local origin only needs the translation
	// component.
	currentScreenOrigin := current.Translation()
	lastScreenOrigin := last.Translation()

	currentBundleWidth := float64(t.bundleGrid.TileSizeX(0)) * currentScale
	lastBundleWidth := float64(t.bundleGrid.TileSizeX(0)) * lastScale
	currentBundleHeight := float64(t.bundleGrid.TileSizeY(0)) * currentScale
	lastBundleHeight := float64(t.bundleGrid.TileSizeY(0)) * lastScale

	// Transforming the local basis vectors (w, 0) and (0, h) needs only
	// the linear part of the matrix.
	currentHorizontal := Vector{X: current.A * currentBundleWidth, Y: current.D * currentBundleWidth}
	currentVertical := Vector{X: current.B * currentBundleHeight, Y: current.E * currentBundleHeight}
	lastHorizontal := Vector{X: last.A * lastBundleWidth, Y: last.D * lastBundleWidth}
	lastVertical := Vector{X: last.B * lastBundleHeight, Y: last.E * lastBundleHeight}

	for it := t.bundleGrid.Iter(interestRect); it.Valid(); it.Next() {
		bundle := t.BundleAt(it.IndexX(), it.IndexY())
		if bundle == nil {
			continue
		}

		bx := float64(it.IndexX())
		by := float64(it.IndexY())
		currentBundleOrigin := currentScreenOrigin.
			Add(currentHorizontal.Scale(bx)).
			Add(currentVertical.Scale(by))
		lastBundleOrigin := lastScreenOrigin.
			Add(lastHorizontal.Scale(bx)).
			Add(lastVertical.Scale(by))

		currentScreenRect := quadBoundingBox(
			currentBundleOrigin, currentHorizontal, currentVertical)
		lastScreenRect := quadBoundingBox(
			lastBundleOrigin, lastHorizontal, lastVertical)

		bundle.SetPriority(tree, t.priorityFor(
			lastScreenRect, currentScreenRect, timeDelta, viewRect))
	}
}

// updatePrioritiesGeneral handles transforms with perspective: every
// bundle rectangle is mapped through the full transform with clipping.
func (t *Tiling) updatePrioritiesGeneral(
	tree TreeKind, interestRect Rect, viewRect RectF,
	lastScale, currentScale, timeDelta float64,
	last, current Transform,
) {
	for it := t.bundleGrid.Iter(interestRect); it.Valid(); it.Next() {
		bundle := t.BundleAt(it.IndexX(), it.IndexY())
		if bundle == nil {
			continue
		}

		bundleBounds := t.bundleGrid.TileBounds(it.IndexX(), it.IndexY())
		currentScreenRect := current.MapClippedRect(
			ScaleRectF(bundleBounds, currentScale))
		lastScreenRect := last.MapClippedRect(
			ScaleRectF(bundleBounds, lastScale))

		bundle.SetPriority(tree, t.priorityFor(
			lastScreenRect, currentScreenRect, timeDelta, viewRect))
	}
}

// priorityFor assembles the priority triple for one bundle.
func (t *Tiling) priorityFor(lastScreenRect, currentScreenRect RectF, timeDelta float64, viewRect RectF) TilePriority {
	return TilePriority{
		Resolution: t.resolution,
		TimeToVisible: timeForBoundsToIntersect(
			lastScreenRect, currentScreenRect, timeDelta, viewRect),
		DistanceToVisible: currentScreenRect.ManhattanInternalDistance(viewRect),
	}
}
