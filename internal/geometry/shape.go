package geometry

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind tags which narrow-phase family a shape belongs to.
type Kind int

const (
	KindSphere Kind = iota
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	}
	return "unknown"
}

// Face is one planar face of a polyhedral shape. Indices point into the
// owning vertex array. Color is only a debug drawing tag.
type Face struct {
	Normal  rl.Vector3
	Indices []int
	Color   rl.Color
}

// Geometry is reference (model-space) shape data. It is created once and
// shared read-only by every Shape cloned from the same source.
type Geometry struct {
	Vertices []rl.Vector3
	Faces    []Face
}

// Transform is the part of a body's pose applied to collision vertices.
// Rotation holds Euler angles in degrees (X pitch, Y yaw, Z roll).
// Scale is intentionally absent: extents are baked into the reference data.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3
}

// Shape pairs shared reference geometry with a world-space copy that is
// rewritten in place by Refresh.
type Shape struct {
	Kind        Kind
	Radius      float32    // sphere only
	HalfExtents rl.Vector3 // box only

	ref *Geometry

	// World buffers, same length as the reference arrays.
	vertices []rl.Vector3
	faces    []Face
	center   rl.Vector3
	invalid  bool
	warned   bool
}

// NewShape builds a shape instance over existing reference geometry.
func NewShape(kind Kind, ref *Geometry) *Shape {
	s := &Shape{Kind: kind, ref: ref}
	s.allocWorld()
	return s
}

func (s *Shape) allocWorld() {
	if s.ref == nil {
		s.vertices = nil
		s.faces = nil
		return
	}
	s.vertices = make([]rl.Vector3, len(s.ref.Vertices))
	copy(s.vertices, s.ref.Vertices)
	s.faces = make([]Face, len(s.ref.Faces))
	for i, f := range s.ref.Faces {
		// Indices and color are shared, only the normal is per instance.
		s.faces[i] = Face{Normal: f.Normal, Indices: f.Indices, Color: f.Color}
	}
}

// Reference returns the shared model-space geometry.
func (s *Shape) Reference() *Geometry {
	return s.ref
}

// Vertices returns the world-space vertices from the last Refresh.
func (s *Shape) Vertices() []rl.Vector3 {
	return s.vertices
}

// Faces returns the world-space faces from the last Refresh.
func (s *Shape) Faces() []Face {
	return s.faces
}

// Center is the world-space origin of the shape.
func (s *Shape) Center() rl.Vector3 {
	return s.center
}

// Valid reports whether the shape can take part in contact tests.
func (s *Shape) Valid() bool {
	if s == nil || s.ref == nil || len(s.ref.Vertices) == 0 || s.invalid {
		return false
	}
	switch s.Kind {
	case KindSphere:
		return s.Radius > 0
	case KindBox:
		return len(s.ref.Faces) > 0
	}
	return false
}

// Refresh recomputes world vertices and face normals from t.
// Vertices get rotation and translation, normals get rotation only.
// A shape without reference vertices is left untouched and marked invalid.
func (s *Shape) Refresh(t Transform) {
	if s.ref == nil || len(s.ref.Vertices) == 0 {
		s.invalid = true
		if !s.warned {
			s.warned = true
			log.Printf("Physics: %s shape has no reference vertices, treating as non-colliding", s.Kind)
		}
		return
	}
	s.invalid = false
	if len(s.vertices) != len(s.ref.Vertices) || len(s.faces) != len(s.ref.Faces) {
		s.allocWorld()
	}

	rot := RotationMatrix(t.Rotation)
	full := rl.MatrixMultiply(rot, rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))

	for i, v := range s.ref.Vertices {
		s.vertices[i] = rl.Vector3Transform(v, full)
	}
	for i, f := range s.ref.Faces {
		s.faces[i].Normal = rl.Vector3Normalize(rl.Vector3Transform(f.Normal, rot))
	}
	s.center = t.Position
}

// Clone returns a new instance sharing the reference geometry with fresh
// world buffers.
func (s *Shape) Clone() *Shape {
	c := &Shape{
		Kind:        s.Kind,
		Radius:      s.Radius,
		HalfExtents: s.HalfExtents,
		ref:         s.ref,
		center:      s.center,
	}
	c.allocWorld()
	copy(c.vertices, s.vertices)
	for i := range c.faces {
		if i < len(s.faces) {
			c.faces[i].Normal = s.faces[i].Normal
		}
	}
	return c
}

// Bounds returns the world-space axis-aligned box around the shape.
func (s *Shape) Bounds() rl.BoundingBox {
	if s.Kind == KindSphere {
		r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		return rl.NewBoundingBox(rl.Vector3Subtract(s.center, r), rl.Vector3Add(s.center, r))
	}
	if len(s.vertices) == 0 {
		return rl.NewBoundingBox(s.center, s.center)
	}
	lo, hi := s.vertices[0], s.vertices[0]
	for _, v := range s.vertices[1:] {
		lo = rl.Vector3Min(lo, v)
		hi = rl.Vector3Max(hi, v)
	}
	return rl.NewBoundingBox(lo, hi)
}

// RotationMatrix builds the rotation for Euler angles in degrees,
// applied X then Y then Z.
func RotationMatrix(deg rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(deg.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(deg.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(deg.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}
