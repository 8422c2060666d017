package tiling

import "testing"

// verifyCoverage checks the coverage contract for one query: every step
// rectangle is non-empty and inside destRect, no two steps overlap, and
// their union exactly fills destRect clipped to the mapped content area.
func verifyCoverage(t *testing.T, tl *Tiling, destScale float64, destRect Rect) {
	t.Helper()

	var rects []Rect
	var area int64
	for it := tl.Cover(destScale, destRect); it.Valid(); it.Next() {
		r := it.GeometryRect()
		if r.IsEmpty() {
			t.Fatalf("Cover(%v, %v): empty geometry rect", destScale, destRect)
		}
		if !destRect.Contains(r) {
			t.Fatalf("Cover(%v, %v): rect %v outside dest", destScale, destRect, r)
		}
		for _, prev := range rects {
			if r.Intersects(prev) {
				t.Fatalf("Cover(%v, %v): rect %v overlaps %v", destScale, destRect, r, prev)
			}
		}
		rects = append(rects, r)
		area += r.Area()
	}

	mappedContent := ScaleRectEnclosing(tl.ContentRect(), destScale/tl.ContentsScale())
	want := destRect.Intersect(mappedContent).Area()
	if area != want {
		t.Errorf("Cover(%v, %v): covered area %d, want %d (%d rects)",
			destScale, destRect, area, want, len(rects))
	}
}

func TestCoverageIdentity(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	steps := 0
	for it := tl.Cover(1.0, tl.ContentRect()); it.Valid(); it.Next() {
		steps++
		if it.Tile() == nil {
			t.Errorf("step %d: no tile for %v", steps, it.GeometryRect())
		}
		// At identity scale the geometry is the borderless tile bounds.
		if got := it.GeometryRect(); got != tl.tileGrid.TileBounds(it.tileI, it.tileJ) {
			t.Errorf("step %d: geometry %v != tile bounds", steps, got)
		}
	}
	if steps != 12 {
		t.Errorf("visited %d steps, want 12", steps)
	}

	verifyCoverage(t, tl, 1.0, tl.ContentRect())
}

func TestCoverageAcrossScales(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	destScales := []float64{1.0, 0.5, 2.0, 1.3}
	destRects := []Rect{
		{0, 0, 400, 300},
		{37, 41, 313, 269},
		{600, 400, 400, 400},
		{100, 100, 1, 1},
	}
	for _, scale := range destScales {
		for _, rect := range destRects {
			verifyCoverage(t, tl, scale, rect)
		}
	}
}

func TestCoverageNonUnityContentsScale(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.5, Size{W: 500, H: 400}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	// Queries in layer space (dest scale 1) and at the content scale.
	verifyCoverage(t, tl, 1.0, Rect{0, 0, 500, 400})
	verifyCoverage(t, tl, 1.5, tl.ContentRect())
	verifyCoverage(t, tl, 1.0, Rect{123, 45, 200, 200})
}

func TestCoverageEmptyCases(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	if it := tl.Cover(1.0, Rect{}); it.Valid() {
		t.Error("empty dest rect yields steps")
	}
	if it := tl.Cover(1.0, Rect{900, 700, 50, 50}); it.Valid() {
		t.Error("dest rect outside content yields steps")
	}
}

func TestCoverageClipsToContent(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	// The dest rect hangs off the bottom-right edge: coverage stops at
	// the content boundary.
	verifyCoverage(t, tl, 1.0, Rect{700, 500, 300, 300})
}

func TestCoverageSeamAlignedDestEdge(t *testing.T) {
	// At contents scale 1.3 tile 0 maps to dest x [0,197) and tile 1 to
	// [196,...), so a dest rect ending exactly at x=197 pulls tile 1
	// into range while its trimmed step collapses to zero width. The
	// iterator must drop such steps instead of yielding empty rects.
	client := newFakeClient(Size{W: 256, H: 256})
	tl := NewWithBorder(1.3, Size{W: 400, H: 200}, 0, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	tests := []struct {
		name string
		dest Rect
	}{
		{"right edge on seam", Rect{0, 0, 197, 100}},
		{"bottom edge on seam", Rect{0, 0, 100, 197}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := 0
			for it := tl.Cover(1.0, tt.dest); it.Valid(); it.Next() {
				steps++
			}
			// Tile 0 alone covers the whole dest rect.
			if steps != 1 {
				t.Errorf("visited %d steps, want 1", steps)
			}
			verifyCoverage(t, tl, 1.0, tt.dest)
		})
	}
}

func TestCoverageWithoutTiles(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)

	// No live tiles: the geometry walk still covers the query, with nil
	// tiles and default priorities.
	for it := tl.Cover(1.0, tl.ContentRect()); it.Valid(); it.Next() {
		if it.Tile() != nil {
			t.Errorf("unexpected tile at %v", it.GeometryRect())
		}
		if got := it.Priority(); got != defaultPriority() {
			t.Errorf("priority = %+v, want default", got)
		}
	}
	verifyCoverage(t, tl, 1.0, tl.ContentRect())
}

func TestCoverageTextureRect(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	for it := tl.Cover(1.0, tl.ContentRect()); it.Valid(); it.Next() {
		if got := it.TextureSize(); got != (Size{W: 256, H: 256}) {
			t.Fatalf("TextureSize = %v", got)
		}
		tex := it.TextureRect()
		full := it.FullTileGeometryRect()
		if full.W != 256 || full.H != 256 {
			t.Fatalf("FullTileGeometryRect = %v, want texture-sized", full)
		}
		// The texture rect is the geometry rect rebased to the tile's
		// bordered origin, so it stays within the texture.
		if tex.X < 0 || tex.Y < 0 || tex.Right() > 256 || tex.Bottom() > 256 {
			t.Errorf("texture rect %v escapes the 256x256 texture", tex)
		}
	}
}

func TestCoveragePriorityOverride(t *testing.T) {
	client := newFakeClient(Size{W: 256, H: 256})
	tl := New(1.0, Size{W: 800, H: 600}, client)
	tl.SetLiveTilesRect(tl.ContentRect())

	want := TilePriority{Resolution: ResolutionLow, TimeToVisible: 3, DistanceToVisible: 7}
	it := tl.Cover(1.0, tl.ContentRect())
	it.SetPriorityForTesting(want)
	if got := it.Priority(); got != want {
		t.Errorf("Priority = %+v, want %+v", got, want)
	}
}
