package collision

import (
	"github.com/mironco/rigidcore/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Result is the outcome of a narrow-phase test. Normal points from the
// first shape toward the second. Normal and Depth are only meaningful when
// Hit is true.
type Result struct {
	Hit    bool
	Normal rl.Vector3
	Depth  float32
}

// NarrowPhase decides whether two refreshed shapes touch.
//
// The default ReducedSAT only tests the face normals of the first box
// (plus one closest-vertex axis for spheres). It never tests the second
// box's normals or edge cross products, so rotated box pairs can report
// contact where a full 15-axis test would find a separating axis.
//
// Swapping the arguments negates the normal and keeps the depth, except
// when no direction separates the centers: coincident sphere centers use
// +Y, and a box pair whose center offset is perpendicular to the chosen
// axis keeps that axis unflipped. Both orders then return the same normal,
// and resolvers pick the push direction from the body positions.
type NarrowPhase interface {
	Collide(a, b *geometry.Shape) Result
}

// ReducedSAT is the face-normal separating axis strategy.
type ReducedSAT struct{}

func (ReducedSAT) Collide(a, b *geometry.Shape) Result {
	return Check(a, b)
}

// Check dispatches to the test matching the two shape kinds. Invalid or
// missing shapes never collide.
func Check(a, b *geometry.Shape) Result {
	if !a.Valid() || !b.Valid() {
		return Result{}
	}

	switch {
	case a.Kind == geometry.KindSphere && b.Kind == geometry.KindSphere:
		return SphereSphere(a, b)
	case a.Kind == geometry.KindSphere && b.Kind == geometry.KindBox:
		return SphereBox(a, b)
	case a.Kind == geometry.KindBox && b.Kind == geometry.KindSphere:
		r := SphereBox(b, a)
		r.Normal = rl.Vector3Negate(r.Normal)
		return r
	case a.Kind == geometry.KindBox && b.Kind == geometry.KindBox:
		return BoxBox(a, b)
	}
	return Result{}
}
