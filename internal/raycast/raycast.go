package raycast

import (
	"github.com/mironco/rigidcore/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon is the face rejection threshold on dot(normal, delta).
const parallelEpsilon = 1e-6

// Ray is a finite segment from Start to End.
type Ray struct {
	Start rl.Vector3
	End   rl.Vector3
}

// NewRay builds a ray from an origin, a direction and a length.
func NewRay(origin, direction rl.Vector3, length float32) Ray {
	dir := rl.Vector3Normalize(direction)
	return Ray{Start: origin, End: rl.Vector3Add(origin, rl.Vector3Scale(dir, length))}
}

// FromRaylib converts a raylib picking ray into a segment of the given length.
func FromRaylib(r rl.Ray, length float32) Ray {
	return NewRay(r.Position, r.Direction, length)
}

func (r Ray) Delta() rl.Vector3 {
	return rl.Vector3Subtract(r.End, r.Start)
}

func (r Ray) Length() float32 {
	return rl.Vector3Length(r.Delta())
}

func (r Ray) Direction() rl.Vector3 {
	return rl.Vector3Normalize(r.Delta())
}

// Hit describes a ray query result. Exact is false when the query
// accepted the ray without computing an intersection point; Point is then
// the ray start.
type Hit struct {
	Point rl.Vector3
	Face  int
	Exact bool
}

// Intersect dispatches on the shape kind. Invalid shapes are never hit.
func Intersect(s *geometry.Shape, r Ray) (Hit, bool) {
	if !s.Valid() {
		return Hit{}, false
	}
	switch s.Kind {
	case geometry.KindSphere:
		return IntersectSphere(s, r)
	case geometry.KindBox:
		return IntersectPolygon(s, r)
	}
	return Hit{}, false
}

// IntersectPolygon returns the first face of s that the ray plane test and
// edge test accept.
//
// The acceptance rules are kept as found in the picking code this kernel
// serves: a face is rejected when dot(normal, delta) >= 1e-6, and the plane
// parameter t must be <= 0, so only intersections at or behind the ray
// start are reported. Both look inverted against a textbook front-face
// test and are kept literally until a consumer confirms the intent.
func IntersectPolygon(s *geometry.Shape, r Ray) (Hit, bool) {
	if !s.Valid() {
		return Hit{}, false
	}
	delta := r.Delta()
	verts := s.Vertices()

	for i, f := range s.Faces() {
		if len(f.Indices) < 3 {
			continue
		}
		nDotDelta := rl.Vector3DotProduct(f.Normal, delta)
		if nDotDelta >= parallelEpsilon || nDotDelta == 0 {
			continue
		}

		v0 := verts[f.Indices[0]]
		t := rl.Vector3DotProduct(rl.Vector3Negate(f.Normal), rl.Vector3Subtract(r.Start, v0)) / nDotDelta
		if t > 0 {
			continue
		}

		point := rl.Vector3Add(r.Start, rl.Vector3Scale(delta, t))
		if insideFace(point, verts[f.Indices[0]], verts[f.Indices[1]], verts[f.Indices[2]]) {
			return Hit{Point: point, Face: i, Exact: true}, true
		}
	}
	return Hit{}, false
}

// insideFace projects p onto the first two edges of the face; both
// projections must fall within the edge lengths.
func insideFace(p, v0, v1, v2 rl.Vector3) bool {
	e0 := rl.Vector3Subtract(v1, v0)
	e1 := rl.Vector3Subtract(v2, v1)

	a := rl.Vector3DotProduct(rl.Vector3Subtract(p, v0), e0)
	if a < 0 || a > rl.Vector3DotProduct(e0, e0) {
		return false
	}
	b := rl.Vector3DotProduct(rl.Vector3Subtract(p, v1), e1)
	return b >= 0 && b <= rl.Vector3DotProduct(e1, e1)
}

// IntersectSphere walks the ray toward the sphere surface and accepts when
// the walked point lies inside the sphere.
//
// A ray shorter than the gap between its start and the sphere surface is
// also accepted, without a computed point (Exact false).
func IntersectSphere(s *geometry.Shape, r Ray) (Hit, bool) {
	if !s.Valid() {
		return Hit{}, false
	}
	center := s.Center()
	radius := s.Radius

	toSphere := rl.Vector3Distance(r.Start, center)
	gap := toSphere - radius
	if r.Length() < gap {
		return Hit{Point: r.Start, Face: -1}, true
	}

	point := rl.Vector3Add(r.Start, rl.Vector3Scale(r.Direction(), gap))
	if rl.Vector3Distance(point, center) <= radius {
		return Hit{Point: point, Face: -1, Exact: true}, true
	}
	return Hit{}, false
}
