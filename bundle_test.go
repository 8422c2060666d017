package tiling

import (
	"math"
	"testing"
)

func TestBundleSlots(t *testing.T) {
	b := NewTileBundle(4, 6, 2, 2)

	if !b.IsEmpty() {
		t.Fatal("new bundle not empty")
	}

	active := &Tile{ID: 1}
	pending := &Tile{ID: 2}
	b.AddTileAt(TreeActive, 4, 6, active)
	b.AddTileAt(TreePending, 5, 7, pending)

	if got := b.TileAt(TreeActive, 4, 6); got != active {
		t.Errorf("TileAt(active, 4, 6) = %v, want tile 1", got)
	}
	if got := b.TileAt(TreePending, 4, 6); got != nil {
		t.Errorf("TileAt(pending, 4, 6) = %v, want nil", got)
	}
	if got := b.TileAt(TreePending, 5, 7); got != pending {
		t.Errorf("TileAt(pending, 5, 7) = %v, want tile 2", got)
	}
	if b.IsEmpty() {
		t.Error("populated bundle reported empty")
	}

	if !b.RemoveTileAt(TreeActive, 4, 6) {
		t.Error("RemoveTileAt returned false for a present tile")
	}
	if b.RemoveTileAt(TreeActive, 4, 6) {
		t.Error("RemoveTileAt returned true for an empty slot")
	}
	b.RemoveTileAt(TreePending, 5, 7)
	if !b.IsEmpty() {
		t.Error("bundle not empty after removing both tiles")
	}
}

func TestBundleCellIndexPanics(t *testing.T) {
	b := NewTileBundle(4, 6, 2, 2)
	assertPanics(t, "cell outside bundle", func() {
		b.TileAt(TreeActive, 6, 6)
	})
	assertPanics(t, "cell before origin", func() {
		b.TileAt(TreeActive, 3, 6)
	})
}

func TestBundleDeferredSwap(t *testing.T) {
	b := NewTileBundle(0, 0, 2, 2)
	pending := &Tile{ID: 7}
	b.AddTileAt(TreePending, 0, 0, pending)
	b.SetPriority(TreePending, TilePriority{Resolution: ResolutionIdeal})

	b.DidBecomeActive()

	// The swap is deferred: the first access after activation observes
	// the promoted state.
	if got := b.TileAt(TreeActive, 0, 0); got != pending {
		t.Errorf("active tile after activation = %v, want tile 7", got)
	}
	if got := b.TileAt(TreePending, 0, 0); got != nil {
		t.Errorf("pending tile after activation = %v, want nil", got)
	}
	if got := b.Priority(TreeActive).Resolution; got != ResolutionIdeal {
		t.Errorf("active resolution after activation = %v, want ideal", got)
	}
}

func TestBundleActivateTwiceSwapsTwice(t *testing.T) {
	b := NewTileBundle(0, 0, 2, 2)
	first := &Tile{ID: 1}
	b.AddTileAt(TreePending, 0, 0, first)

	b.DidBecomeActive()
	if got := b.TileAt(TreeActive, 0, 0); got != first {
		t.Fatalf("first activation: active tile = %v", got)
	}

	second := &Tile{ID: 2}
	b.AddTileAt(TreePending, 0, 0, second)
	b.DidBecomeActive()
	if got := b.TileAt(TreeActive, 0, 0); got != second {
		t.Errorf("second activation: active tile = %v, want tile 2", got)
	}
	if got := b.TileAt(TreePending, 0, 0); got != first {
		t.Errorf("second activation: pending tile = %v, want tile 1", got)
	}
}

func TestBundleRecycleResetsPriorities(t *testing.T) {
	b := NewTileBundle(0, 0, 2, 2)
	tile := &Tile{ID: 3}
	b.AddTileAt(TreeActive, 1, 1, tile)
	b.SetPriority(TreeActive, TilePriority{Resolution: ResolutionIdeal, DistanceToVisible: 12})

	b.DidBecomeRecycled()

	p := b.Priority(TreeActive)
	if p.Resolution != ResolutionNonIdeal || !math.IsInf(p.DistanceToVisible, 1) {
		t.Errorf("priority after recycle = %+v, want default", p)
	}
	// Recycling leaves tiles in place.
	if got := b.TileAt(TreeActive, 1, 1); got != tile {
		t.Errorf("tile after recycle = %v, want tile 3", got)
	}
}

func TestBundleEachUniqueTile(t *testing.T) {
	b := NewTileBundle(0, 0, 2, 2)
	shared := &Tile{ID: 1}
	pendingOnly := &Tile{ID: 2}
	activeOnly := &Tile{ID: 3}

	// Cell (0,0) shares one tile between trees.
	b.AddTileAt(TreeActive, 0, 0, shared)
	b.AddTileAt(TreePending, 0, 0, shared)
	// Cell (1,0) differs per tree.
	b.AddTileAt(TreeActive, 1, 0, activeOnly)
	b.AddTileAt(TreePending, 1, 0, pendingOnly)

	seen := map[uint64]int{}
	b.EachUniqueTile(func(tile *Tile) { seen[tile.ID]++ })

	want := map[uint64]int{1: 1, 2: 1, 3: 1}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for id, n := range want {
		if seen[id] != n {
			t.Errorf("tile %d visited %d times, want %d", id, seen[id], n)
		}
	}
}

func TestBundleEachTile(t *testing.T) {
	b := NewTileBundle(0, 0, 2, 2)
	b.AddTileAt(TreeActive, 0, 1, &Tile{ID: 5})
	b.AddTileAt(TreeActive, 1, 1, &Tile{ID: 6})
	b.AddTileAt(TreePending, 0, 0, &Tile{ID: 7})

	var ids []uint64
	b.EachTile(TreeActive, func(tile *Tile) { ids = append(ids, tile.ID) })
	if len(ids) != 2 {
		t.Fatalf("EachTile(active) visited %v, want 2 tiles", ids)
	}
	for _, id := range ids {
		if id != 5 && id != 6 {
			t.Errorf("EachTile(active) visited unexpected tile %d", id)
		}
	}
}
