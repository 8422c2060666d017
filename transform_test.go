package tiling

import (
	"math"
	"testing"
)

func TestTransformClassification(t *testing.T) {
	perspective := IdentityTransform()
	perspective.G = 0.001

	tests := []struct {
		name          string
		last, current Transform
		want          transformClass
	}{
		{"identity pair", IdentityTransform(), IdentityTransform(), classTranslation},
		{"translations", TranslateTransform(5, 3), TranslateTransform(8, 3), classTranslation},
		{"scale is affine", TranslateTransform(1, 1), ScaleTransform(2, 2), classAffine},
		{"rotation is affine", RotateTransform(0.3), RotateTransform(0.4), classAffine},
		{"perspective current", IdentityTransform(), perspective, classGeneral},
		{"perspective last", perspective, TranslateTransform(1, 1), classGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTransforms(tt.last, tt.current); got != tt.want {
				t.Errorf("classifyTransforms = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsApproxTranslation(t *testing.T) {
	m := TranslateTransform(100, -50)
	if !m.IsApproxTranslation(translationEpsilon) {
		t.Error("translation not recognized")
	}
	if ScaleTransform(1.5, 1).IsApproxTranslation(translationEpsilon) {
		t.Error("scale misclassified as translation")
	}
	// A rotation below the epsilon threshold still counts.
	tiny := RotateTransform(1e-9)
	if !tiny.IsApproxTranslation(translationEpsilon) {
		t.Error("sub-epsilon rotation not treated as translation")
	}
}

func TestTransformTranslation(t *testing.T) {
	v := TranslateTransform(12, -7).Translation()
	if v != (Vector{12, -7}) {
		t.Errorf("Translation = %v", v)
	}
}

func TestTransformMultiply(t *testing.T) {
	// Translating after scaling is not scaling after translating.
	a := TranslateTransform(10, 0).Multiply(ScaleTransform(2, 2))
	p, w := a.mapPoint(1, 1)
	if w != 1 || p != (Vector{12, 2}) {
		t.Errorf("mapPoint = %v w=%v, want (12,2) w=1", p, w)
	}

	b := ScaleTransform(2, 2).Multiply(TranslateTransform(10, 0))
	p, _ = b.mapPoint(1, 1)
	if p != (Vector{22, 2}) {
		t.Errorf("mapPoint = %v, want (22,2)", p)
	}
}

func TestMapClippedRectAffine(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		r    RectF
		want RectF
	}{
		{"identity", IdentityTransform(), RectF{1, 2, 3, 4}, RectF{1, 2, 3, 4}},
		{"translate", TranslateTransform(10, 20), RectF{0, 0, 5, 5}, RectF{10, 20, 5, 5}},
		{"scale", ScaleTransform(2, 3), RectF{1, 1, 2, 2}, RectF{2, 3, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MapClippedRect(tt.r)
			if !rectFNear(got, tt.want, 1e-9) {
				t.Errorf("MapClippedRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapClippedRectRotation(t *testing.T) {
	// A 90 degree rotation of the unit square around the origin lands in
	// the second quadrant.
	got := RotateTransform(math.Pi / 2).MapClippedRect(RectF{0, 0, 1, 1})
	if !rectFNear(got, RectF{-1, 0, 1, 1}, 1e-9) {
		t.Errorf("MapClippedRect = %v, want (-1,0 1x1)", got)
	}
}

func TestMapClippedRectPerspective(t *testing.T) {
	// w = 1 + x/100: corners at x=0 project unchanged, corners at x=100
	// project at half scale, pulling the right edge in to x=50.
	m := IdentityTransform()
	m.G = 0.01

	got := m.MapClippedRect(RectF{0, 0, 100, 100})
	want := RectF{0, 0, 50, 100}
	if !rectFNear(got, want, 1e-9) {
		t.Errorf("MapClippedRect = %v, want %v", got, want)
	}

	got = m.MapClippedRect(RectF{100, 0, 100, 100})
	// x=100 -> 100/2=50, x=200 -> 200/3; y spans 0..100/2.
	want = RectF{50, 0, 200.0/3 - 50, 50}
	if !rectFNear(got, want, 1e-9) {
		t.Errorf("MapClippedRect = %v, want %v", got, want)
	}
}

func TestMapClippedRectBehindEye(t *testing.T) {
	// w = 1 + x/10 goes negative left of x=-10; the whole rect behind
	// the plane is clipped away.
	m := IdentityTransform()
	m.G = 0.1

	if got := m.MapClippedRect(RectF{-30, 0, 10, 10}); !got.IsEmpty() {
		t.Errorf("fully clipped rect = %v, want empty", got)
	}

	// A rect straddling the plane keeps its in-front part (and blows up
	// toward the clip plane, which the bounding box absorbs).
	got := m.MapClippedRect(RectF{-15, 0, 10, 10})
	if got.IsEmpty() {
		t.Error("straddling rect clipped to empty")
	}
}

func TestQuadBoundingBox(t *testing.T) {
	got := quadBoundingBox(Vector{10, 10}, Vector{5, 5}, Vector{-3, 3})
	want := RectF{7, 10, 8, 8}
	if !rectFNear(got, want, 1e-12) {
		t.Errorf("quadBoundingBox = %v, want %v", got, want)
	}
}

func rectFNear(a, b RectF, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.W-b.W) <= eps && math.Abs(a.H-b.H) <= eps
}
