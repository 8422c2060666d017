package tiling

import "math"

// Transform represents a 2D projective transformation matrix.
// It uses a 3x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//	| G  H  I |
//
// This represents the transformation:
//
//	x' = (A*x + B*y + C) / w
//	y' = (D*x + E*y + F) / w
//	w  =  G*x + H*y + I
//
// The top two rows carry the affine component in the A..F layout used
// across the GoGPU libraries; the bottom row carries the perspective
// component.
type Transform struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// IdentityTransform returns the identity transformation.
func IdentityTransform() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// TranslateTransform creates a translation transformation.
func TranslateTransform(x, y float64) Transform {
	return Transform{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
		G: 0, H: 0, I: 1,
	}
}

// ScaleTransform creates a scaling transformation.
func ScaleTransform(sx, sy float64) Transform {
	return Transform{
		A: sx, B: 0, C: 0,
		D: 0, E: sy, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// RotateTransform creates a rotation transformation (angle in radians).
func RotateTransform(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Multiply multiplies two transforms (m * other).
func (m Transform) Multiply(other Transform) Transform {
	return Transform{
		A: m.A*other.A + m.B*other.D + m.C*other.G,
		B: m.A*other.B + m.B*other.E + m.C*other.H,
		C: m.A*other.C + m.B*other.F + m.C*other.I,
		D: m.D*other.A + m.E*other.D + m.F*other.G,
		E: m.D*other.B + m.E*other.E + m.F*other.H,
		F: m.D*other.C + m.E*other.F + m.F*other.I,
		G: m.G*other.A + m.H*other.D + m.I*other.G,
		H: m.G*other.B + m.H*other.E + m.I*other.H,
		I: m.G*other.C + m.H*other.F + m.I*other.I,
	}
}

// HasPerspective returns true if the transform has a non-trivial
// perspective component.
func (m Transform) HasPerspective() bool {
	return m.G != 0 || m.H != 0 || m.I != 1
}

// IsApproxTranslation returns true if the transform is, within eps, a pure
// 2D translation (possibly the identity).
func (m Transform) IsApproxTranslation(eps float64) bool {
	return math.Abs(m.A-1) <= eps && math.Abs(m.B) <= eps &&
		math.Abs(m.D) <= eps && math.Abs(m.E-1) <= eps &&
		math.Abs(m.G) <= eps && math.Abs(m.H) <= eps &&
		math.Abs(m.I-1) <= eps
}

// Translation returns the translation component of the transform.
func (m Transform) Translation() Vector {
	return Vector{X: m.C, Y: m.F}
}

// mapPoint transforms (x, y) without projecting, returning the transformed
// point and its homogeneous w coordinate.
func (m Transform) mapPoint(x, y float64) (Vector, float64) {
	return Vector{
		X: m.A*x + m.B*y + m.C,
		Y: m.D*x + m.E*y + m.F,
	}, m.G*x + m.H*y + m.I
}

// wClipEpsilon is the smallest homogeneous w treated as in front of the
// eye when clipping projected geometry.
const wClipEpsilon = 1e-9

// MapClippedRect maps a rectangle through the full transform and returns
// the bounding box of the projected result. Corners behind the w = 0
// plane are clipped against it, matching the behavior expected when a
// perspective transform pushes geometry behind the eye. Returns the zero
// RectF if the whole rectangle is clipped away.
func (m Transform) MapClippedRect(r RectF) RectF {
	type hpoint struct {
		p Vector
		w float64
	}
	corners := [4]hpoint{}
	xs := [4]float64{r.X, r.Right(), r.Right(), r.X}
	ys := [4]float64{r.Y, r.Y, r.Bottom(), r.Bottom()}
	for i := range corners {
		p, w := m.mapPoint(xs[i], ys[i])
		corners[i] = hpoint{p: p, w: w}
	}

	var pts []Vector
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%4]
		if a.w > wClipEpsilon {
			pts = append(pts, Vector{X: a.p.X / a.w, Y: a.p.Y / a.w})
		}
		// Edge crosses the clip plane: add the intersection at w = eps.
		if (a.w > wClipEpsilon) != (b.w > wClipEpsilon) {
			t := (wClipEpsilon - a.w) / (b.w - a.w)
			p := a.p.Add(b.p.Sub(a.p).Scale(t))
			pts = append(pts, Vector{X: p.X / wClipEpsilon, Y: p.Y / wClipEpsilon})
		}
	}
	if len(pts) == 0 {
		return RectF{}
	}
	return boundingBox(pts)
}

// boundingBox returns the smallest rectangle containing all points.
func boundingBox(pts []Vector) RectF {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return RectF{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// quadBoundingBox returns the bounding box of the parallelogram spanned
// from origin by the horizontal and vertical basis vectors.
func quadBoundingBox(origin, horizontal, vertical Vector) RectF {
	return boundingBox([]Vector{
		origin,
		origin.Add(horizontal),
		origin.Add(horizontal).Add(vertical),
		origin.Add(vertical),
	})
}

// transformClass classifies a transform pair for priority computation.
// The classification is computed once per priority update and selects one
// of the three fast paths.
type transformClass int

const (
	// classTranslation: both transforms are pure 2D translations.
	classTranslation transformClass = iota
	// classAffine: no perspective component in either transform.
	classAffine
	// classGeneral: at least one transform has perspective.
	classGeneral
)

// translationEpsilon bounds the per-component error tolerated when
// treating a transform as a pure translation.
const translationEpsilon = 1.19209290e-07 // FLT_EPSILON

// classifyTransforms picks the priority fast path for a transform pair.
func classifyTransforms(last, current Transform) transformClass {
	if last.IsApproxTranslation(translationEpsilon) &&
		current.IsApproxTranslation(translationEpsilon) {
		return classTranslation
	}
	if !last.HasPerspective() && !current.HasPerspective() {
		return classAffine
	}
	return classGeneral
}
