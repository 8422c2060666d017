package tiling

import "math"

// TreeKind designates one of the two concurrently-live render trees.
type TreeKind int

const (
	// TreeActive is the currently-displayed tree.
	TreeActive TreeKind = iota
	// TreePending is the in-progress tree.
	TreePending
)

// String returns the name of the tree.
func (t TreeKind) String() string {
	switch t {
	case TreeActive:
		return "Active"
	case TreePending:
		return "Pending"
	default:
		return "Unknown"
	}
}

// other returns the opposite tree.
func (t TreeKind) other() TreeKind {
	if t == TreeActive {
		return TreePending
	}
	return TreeActive
}

// Resolution is the qualitative priority class assigned to a whole
// tiling relative to the ideal contents scale.
type Resolution int

const (
	// ResolutionNonIdeal marks a tiling at a scale other than the ideal
	// one. The zero value, so unprioritized tiles default to it.
	ResolutionNonIdeal Resolution = iota
	// ResolutionIdeal marks the tiling at the ideal contents scale.
	ResolutionIdeal
	// ResolutionLow marks the low-resolution fallback tiling.
	ResolutionLow
)

// String returns the name of the resolution class.
func (r Resolution) String() string {
	switch r {
	case ResolutionNonIdeal:
		return "NonIdeal"
	case ResolutionIdeal:
		return "Ideal"
	case ResolutionLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// TilePriority is the scheduling priority of a tile bundle for one tree.
// Priorities are recomputed on every priority update and never persisted.
type TilePriority struct {
	// Resolution is the tiling's resolution class.
	Resolution Resolution

	// TimeToVisible is the estimated time in seconds until the bundle's
	// screen rectangle first intersects the viewport. Zero when already
	// visible, +Inf when the bundle is moving away or no velocity
	// estimate exists.
	TimeToVisible float64

	// DistanceToVisible is the Manhattan distance in pixels from the
	// bundle's current screen rectangle to the viewport. Zero when
	// overlapping.
	DistanceToVisible float64
}

// defaultPriority returns the priority assigned to bundles that have not
// been prioritized yet: non-ideal, never visible.
func defaultPriority() TilePriority {
	return TilePriority{
		Resolution:        ResolutionNonIdeal,
		TimeToVisible:     math.Inf(1),
		DistanceToVisible: math.Inf(1),
	}
}

// timeForBoundsToIntersect estimates when a rectangle moving linearly
// from last to current over delta seconds will first intersect target.
// Motion is extrapolated past current at constant velocity. Returns 0 if
// current already intersects target, +Inf if delta is zero or the
// rectangle never reaches the target.
func timeForBoundsToIntersect(last, current RectF, delta float64, target RectF) float64 {
	if current.Intersects(target) {
		return 0
	}
	if delta == 0 {
		return math.Inf(1)
	}

	// Solve each axis independently for the time interval during which
	// the moving span overlaps the target span, measured in seconds from
	// the current frame.
	x0, x1 := axisTimeRange(
		last.X, last.Right(), current.X, current.Right(),
		target.X, target.Right(), delta)
	y0, y1 := axisTimeRange(
		last.Y, last.Bottom(), current.Y, current.Bottom(),
		target.Y, target.Bottom(), delta)

	t0 := math.Max(x0, y0)
	t1 := math.Min(x1, y1)
	if t0 > t1 || t1 < 0 {
		return math.Inf(1)
	}
	return math.Max(t0, 0)
}

// axisTimeRange returns the time interval [t0, t1], in seconds from now,
// during which a span moving from [lastLo, lastHi] to [curLo, curHi] over
// delta seconds overlaps the target span [targetLo, targetHi]. Returns an
// inverted interval when they never overlap.
func axisTimeRange(lastLo, lastHi, curLo, curHi, targetLo, targetHi, delta float64) (float64, float64) {
	vLo := (curLo - lastLo) / delta
	vHi := (curHi - lastHi) / delta

	// Overlap requires lo(t) < targetHi and hi(t) > targetLo, where
	// lo(t) = curLo + vLo*t and hi(t) = curHi + vHi*t.
	t0 := math.Inf(-1)
	t1 := math.Inf(1)

	lo0, lo1 := solveLess(curLo, vLo, targetHi)
	t0 = math.Max(t0, lo0)
	t1 = math.Min(t1, lo1)

	hi0, hi1 := solveGreater(curHi, vHi, targetLo)
	t0 = math.Max(t0, hi0)
	t1 = math.Min(t1, hi1)

	return t0, t1
}

// solveLess returns the time interval during which p + v*t < bound.
func solveLess(p, v, bound float64) (float64, float64) {
	if v == 0 {
		if p < bound {
			return math.Inf(-1), math.Inf(1)
		}
		return math.Inf(1), math.Inf(-1)
	}
	t := (bound - p) / v
	if v > 0 {
		return math.Inf(-1), t
	}
	return t, math.Inf(1)
}

// solveGreater returns the time interval during which p + v*t > bound.
func solveGreater(p, v, bound float64) (float64, float64) {
	if v == 0 {
		if p > bound {
			return math.Inf(-1), math.Inf(1)
		}
		return math.Inf(1), math.Inf(-1)
	}
	t := (bound - p) / v
	if v > 0 {
		return t, math.Inf(1)
	}
	return math.Inf(-1), t
}
