package tiling

import "math"

// expansionCache memoizes the last interest-area expansion. Inputs are
// stable across most frames, so repeated identical calls are O(1).
type expansionCache struct {
	valid          bool
	previousStart  Rect
	previousTarget int64
	previousBounds Rect
	previousResult Rect
}

// edgeEvent represents the moment an expanding rectangle's edge reaches
// the corresponding edge of the bounding rectangle. Four events occur
// during an expansion, processed in ascending order of distance.
type edgeEvent struct {
	apply    func(delta int)
	numEdges *int
	distance int
}

// computeExpansionDelta solves the quadratic a*x^2 + b*x + c = 0 for the
// per-edge expansion x that grows a width x height rectangle to
// targetArea, given the number of still-growing edges per axis.
func computeExpansionDelta(numXEdges, numYEdges, width, height int, targetArea int64) int {
	a := int64(numYEdges) * int64(numXEdges)
	b := int64(numYEdges)*int64(width) + int64(numXEdges)*int64(height)
	c := int64(width)*int64(height) - targetArea

	if a == 0 {
		return int(-c / b)
	}
	disc := float64(b)*float64(b) - 4*float64(a)*float64(c)
	return int((-b + int64(math.Sqrt(disc))) / (2 * a))
}

// ExpandRectToAreaBounded grows start outward, clipped to bound, until it
// reaches targetArea. Growth is symmetric where space allows and becomes
// asymmetric once a side reaches the bound, so the result's area is the
// best achievable approximation to targetArea within bound.
//
// targetArea must be positive and bound non-empty; violation is a caller
// bug and panics. An empty start is returned unchanged.
func ExpandRectToAreaBounded(start Rect, targetArea int64, bound Rect) Rect {
	return expandRectToArea(start, targetArea, bound, nil)
}

func expandRectToArea(start Rect, targetArea int64, bound Rect, cache *expansionCache) Rect {
	if start.IsEmpty() {
		return start
	}

	if cache != nil && cache.valid &&
		cache.previousStart == start &&
		cache.previousBounds == bound &&
		cache.previousTarget == targetArea {
		return cache.previousResult
	}
	if cache != nil {
		cache.valid = true
		cache.previousStart = start
		cache.previousBounds = bound
		cache.previousTarget = targetArea
	}

	if targetArea <= 0 {
		panic("tiling: expansion target area must be positive")
	}
	if bound.IsEmpty() {
		panic("tiling: expansion bounding rect must be non-empty")
	}

	// Uniformly expand (or shrink) the starting rect toward targetArea.
	delta := computeExpansionDelta(2, 2, start.W, start.H, targetArea)
	expandedStart := start
	if delta > 0 {
		expandedStart = expandedStart.Inset(-delta, -delta, -delta, -delta)
	}

	rect := expandedStart.Intersect(bound)
	if rect.IsEmpty() {
		// The starting rect and bounding rect are far away.
		if cache != nil {
			cache.previousResult = rect
		}
		return rect
	}
	if delta >= 0 && rect == expandedStart {
		// The expanded rect fits the bound untouched and isn't too large
		// for the target area.
		if cache != nil {
			cache.previousResult = rect
		}
		return rect
	}

	// Continue expanding edge by edge until targetArea is covered. Each
	// edge has a fixed travel distance to the bound; edges are retired
	// closest first, and each step's quadratic accounts for the number
	// of edges still growing per axis.
	originX := rect.X
	originY := rect.Y
	width := rect.W
	height := rect.H

	numYEdges := 2
	numXEdges := 2

	events := [4]edgeEvent{
		{ // bottom
			apply:    func(d int) { originY -= d; height += d },
			numEdges: &numYEdges,
			distance: rect.Y - bound.Y,
		},
		{ // top
			apply:    func(d int) { height += d },
			numEdges: &numYEdges,
			distance: bound.Bottom() - rect.Bottom(),
		},
		{ // left
			apply:    func(d int) { originX -= d; width += d },
			numEdges: &numXEdges,
			distance: rect.X - bound.X,
		},
		{ // right
			apply:    func(d int) { width += d },
			numEdges: &numXEdges,
			distance: bound.Right() - rect.Right(),
		},
	}

	// Sorting network over the four events, closest first.
	if events[0].distance > events[1].distance {
		events[0], events[1] = events[1], events[0]
	}
	if events[2].distance > events[3].distance {
		events[2], events[3] = events[3], events[2]
	}
	if events[0].distance > events[2].distance {
		events[0], events[2] = events[2], events[0]
	}
	if events[1].distance > events[3].distance {
		events[1], events[3] = events[3], events[1]
	}
	if events[1].distance > events[2].distance {
		events[1], events[2] = events[2], events[1]
	}

	for eventIndex := 0; eventIndex < 4; eventIndex++ {
		event := &events[eventIndex]

		delta := computeExpansionDelta(numXEdges, numYEdges, width, height, targetArea)

		// Clamp delta to the distance of this event's edge.
		if delta > event.distance {
			delta = event.distance
		}

		// This edge is done growing after this step.
		*event.numEdges--

		// Apply the delta to all remaining edges.
		for i := eventIndex; i < 4; i++ {
			events[i].apply(delta)
			events[i].distance -= delta
		}

		// If the delta didn't reach this edge's bound, the target area
		// has been covered.
		if delta < event.distance {
			break
		}
	}

	result := Rect{X: originX, Y: originY, W: width, H: height}
	if cache != nil {
		cache.previousResult = result
	}
	return result
}
