package collision

import (
	"github.com/mironco/rigidcore/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// fallbackNormal is used when two centers coincide and no direction exists.
// It does not depend on argument order.
var fallbackNormal = rl.Vector3{Y: 1}

// SphereSphere tests two spheres. Depth is half the penetration distance.
func SphereSphere(a, b *geometry.Shape) Result {
	if !a.Valid() || !b.Valid() {
		return Result{}
	}

	diff := rl.Vector3Subtract(b.Center(), a.Center())
	dist := rl.Vector3Length(diff)
	radii := a.Radius + b.Radius
	if dist > radii {
		return Result{}
	}

	normal := fallbackNormal
	if dist > 0 {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	return Result{Hit: true, Normal: normal, Depth: (radii - dist) / 2}
}

// BoxBox runs the separating axis test over the face normals of a only.
// The contact normal is the axis of least overlap, oriented from a toward b.
func BoxBox(a, b *geometry.Shape) Result {
	if !a.Valid() || !b.Valid() {
		return Result{}
	}

	best := float32(math32.MaxFloat32)
	var normal rl.Vector3

	for _, f := range a.Faces() {
		axis := f.Normal
		aMin, aMax := project(a.Vertices(), axis)
		bMin, bMax := project(b.Vertices(), axis)

		overlap := intervalOverlap(aMin, aMax, bMin, bMax)
		if overlap < 0 {
			// Separated. Normal and depth describe the last axis only.
			return Result{Normal: axis, Depth: overlap}
		}
		if overlap < best {
			best = overlap
			normal = axis
		}
	}

	// A zero offset along the axis leaves it as found, for either order.
	if rl.Vector3DotProduct(rl.Vector3Subtract(b.Center(), a.Center()), normal) < 0 {
		normal = rl.Vector3Negate(normal)
	}
	return Result{Hit: true, Normal: normal, Depth: best}
}

// SphereBox tests a sphere against the box face normals, then against the
// axis from the sphere center to the nearest box vertex. The normal points
// from the sphere toward the box.
func SphereBox(sphere, box *geometry.Shape) Result {
	if !sphere.Valid() || !box.Valid() {
		return Result{}
	}

	center := sphere.Center()
	radius := sphere.Radius
	verts := box.Vertices()

	best := float32(math32.MaxFloat32)
	var normal rl.Vector3

	for _, f := range box.Faces() {
		axis := f.Normal
		overlap := sphereAxisOverlap(center, radius, verts, axis)
		if overlap < 0 {
			return Result{Normal: axis, Depth: overlap}
		}
		if overlap < best {
			best = overlap
			normal = axis
		}
	}

	closest := closestVertex(verts, center)
	toVertex := rl.Vector3Subtract(closest, center)
	if length := rl.Vector3Length(toVertex); length > 0 {
		axis := rl.Vector3Scale(toVertex, 1/length)
		overlap := sphereAxisOverlap(center, radius, verts, axis)
		if overlap < 0 {
			return Result{Normal: axis, Depth: overlap}
		}
		if overlap < best {
			best = overlap
			normal = axis
		}
	}

	if rl.Vector3DotProduct(rl.Vector3Subtract(box.Center(), center), normal) < 0 {
		normal = rl.Vector3Negate(normal)
	}
	return Result{Hit: true, Normal: normal, Depth: best}
}

func sphereAxisOverlap(center rl.Vector3, radius float32, verts []rl.Vector3, axis rl.Vector3) float32 {
	bMin, bMax := project(verts, axis)
	p := rl.Vector3DotProduct(center, axis)
	return intervalOverlap(p-radius, p+radius, bMin, bMax)
}

// project returns the [min, max] interval of verts along axis.
func project(verts []rl.Vector3, axis rl.Vector3) (float32, float32) {
	lo := math32.Inf(1)
	hi := math32.Inf(-1)
	for _, v := range verts {
		d := rl.Vector3DotProduct(v, axis)
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

// intervalOverlap is negative when the intervals are disjoint.
func intervalOverlap(aMin, aMax, bMin, bMax float32) float32 {
	return math32.Min(bMax-aMin, aMax-bMin)
}

func closestVertex(verts []rl.Vector3, p rl.Vector3) rl.Vector3 {
	var best rl.Vector3
	bestDist := math32.Inf(1)
	for _, v := range verts {
		if d := rl.Vector3DistanceSqr(v, p); d < bestDist {
			bestDist = d
			best = v
		}
	}
	return best
}
