package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Box corners 0-3 are the -Z ring and 4-7 the +Z ring, both starting at
// (-X,-Y) and running counter-clockwise seen from +Z. Each face below winds
// counter-clockwise when viewed from outside.
var boxFaces = []struct {
	normal  rl.Vector3
	indices []int
	color   rl.Color
}{
	{rl.Vector3{X: 1}, []int{1, 2, 6, 5}, rl.Red},
	{rl.Vector3{X: -1}, []int{0, 4, 7, 3}, rl.Maroon},
	{rl.Vector3{Y: 1}, []int{3, 7, 6, 2}, rl.Green},
	{rl.Vector3{Y: -1}, []int{0, 1, 5, 4}, rl.DarkGreen},
	{rl.Vector3{Z: 1}, []int{4, 5, 6, 7}, rl.Blue},
	{rl.Vector3{Z: -1}, []int{0, 3, 2, 1}, rl.DarkBlue},
}

// BoxGeometry builds reference geometry for a box centered on the origin.
func BoxGeometry(half rl.Vector3) *Geometry {
	g := &Geometry{
		Vertices: []rl.Vector3{
			{X: -half.X, Y: -half.Y, Z: -half.Z},
			{X: half.X, Y: -half.Y, Z: -half.Z},
			{X: half.X, Y: half.Y, Z: -half.Z},
			{X: -half.X, Y: half.Y, Z: -half.Z},
			{X: -half.X, Y: -half.Y, Z: half.Z},
			{X: half.X, Y: -half.Y, Z: half.Z},
			{X: half.X, Y: half.Y, Z: half.Z},
			{X: -half.X, Y: half.Y, Z: half.Z},
		},
		Faces: make([]Face, 0, len(boxFaces)),
	}
	for _, f := range boxFaces {
		g.Faces = append(g.Faces, Face{Normal: f.normal, Indices: f.indices, Color: f.color})
	}
	return g
}

// SphereGeometry is a single vertex at the local origin; the radius lives
// on the Shape.
func SphereGeometry() *Geometry {
	return &Geometry{Vertices: []rl.Vector3{{}}}
}

// NewBox creates a box shape with its own reference geometry.
func NewBox(half rl.Vector3) *Shape {
	s := NewShape(KindBox, BoxGeometry(half))
	s.HalfExtents = half
	return s
}

// NewSphere creates a sphere shape with its own reference geometry.
func NewSphere(radius float32) *Shape {
	s := NewShape(KindSphere, SphereGeometry())
	s.Radius = radius
	return s
}
