package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func approxVec(a, b rl.Vector3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestBoxGeometryFaceWinding(t *testing.T) {
	g := BoxGeometry(rl.Vector3{X: 1, Y: 2, Z: 3})

	if len(g.Vertices) != 8 {
		t.Fatalf("Expected 8 vertices, got %d", len(g.Vertices))
	}
	if len(g.Faces) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(g.Faces))
	}

	for i, f := range g.Faces {
		v0 := g.Vertices[f.Indices[0]]
		v1 := g.Vertices[f.Indices[1]]
		v2 := g.Vertices[f.Indices[2]]
		n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v1)))
		if !approxVec(n, f.Normal) {
			t.Errorf("Face %d winding gives normal %v, declared %v", i, n, f.Normal)
		}
		// Every vertex of a face lies on its plane.
		d := rl.Vector3DotProduct(v0, f.Normal)
		for _, idx := range f.Indices {
			if !approx(rl.Vector3DotProduct(g.Vertices[idx], f.Normal), d) {
				t.Errorf("Face %d vertex %d is off the face plane", i, idx)
			}
		}
	}
}

func TestRefreshTranslatesAndRotates(t *testing.T) {
	s := NewBox(rl.Vector3{X: 1, Y: 1, Z: 1})
	s.Refresh(Transform{
		Position: rl.Vector3{X: 10, Y: 0, Z: 0},
		Rotation: rl.Vector3{Y: 90},
	})

	if !approxVec(s.Center(), rl.Vector3{X: 10}) {
		t.Errorf("Expected center (10,0,0), got %v", s.Center())
	}

	// Rotating 90 degrees about Y swings the +X face normal onto the Z axis.
	n := s.Faces()[0].Normal
	if !approx(n.X, 0) || !approx(math32.Abs(n.Z), 1) {
		t.Errorf("Expected +X normal rotated onto Z, got %v", n)
	}
	if !approx(rl.Vector3Length(n), 1) {
		t.Errorf("World normal should stay unit length, got %v", rl.Vector3Length(n))
	}

	for i, v := range s.Vertices() {
		local := rl.Vector3Subtract(v, s.Center())
		if !approx(rl.Vector3Length(local), math32.Sqrt(3)) {
			t.Errorf("Vertex %d distance from center changed: %v", i, rl.Vector3Length(local))
		}
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	s := NewBox(rl.Vector3{X: 0.5, Y: 1.5, Z: 2})
	tr := Transform{
		Position: rl.Vector3{X: 1, Y: -2, Z: 3},
		Rotation: rl.Vector3{X: 12, Y: 33, Z: -47},
	}

	s.Refresh(tr)
	first := append([]rl.Vector3(nil), s.Vertices()...)
	normals := make([]rl.Vector3, len(s.Faces()))
	for i, f := range s.Faces() {
		normals[i] = f.Normal
	}

	s.Refresh(tr)
	for i, v := range s.Vertices() {
		if v != first[i] {
			t.Errorf("Vertex %d drifted: %v -> %v", i, first[i], v)
		}
	}
	for i, f := range s.Faces() {
		if f.Normal != normals[i] {
			t.Errorf("Normal %d drifted: %v -> %v", i, normals[i], f.Normal)
		}
	}
}

func TestRefreshLeavesReferenceUntouched(t *testing.T) {
	s := NewBox(rl.Vector3{X: 1, Y: 1, Z: 1})
	before := append([]rl.Vector3(nil), s.Reference().Vertices...)

	s.Refresh(Transform{Position: rl.Vector3{X: 5, Y: 5, Z: 5}, Rotation: rl.Vector3{X: 45}})

	for i, v := range s.Reference().Vertices {
		if v != before[i] {
			t.Errorf("Reference vertex %d mutated: %v -> %v", i, before[i], v)
		}
	}
	if s.Reference().Faces[2].Normal != (rl.Vector3{Y: 1}) {
		t.Errorf("Reference normal mutated: %v", s.Reference().Faces[2].Normal)
	}
}

func TestEmptyGeometryIsInvalid(t *testing.T) {
	s := NewShape(KindBox, &Geometry{})
	s.Refresh(Transform{Position: rl.Vector3{X: 1}})

	if s.Valid() {
		t.Error("Shape without vertices should be invalid")
	}
	if len(s.Vertices()) != 0 {
		t.Errorf("Expected no world vertices, got %d", len(s.Vertices()))
	}

	var missing *Shape
	if missing.Valid() {
		t.Error("Nil shape should be invalid")
	}
}

func TestSphereValidity(t *testing.T) {
	if !NewSphere(1).Valid() {
		t.Error("Sphere with positive radius should be valid")
	}
	if NewSphere(0).Valid() {
		t.Error("Sphere with zero radius should be invalid")
	}
	if NewSphere(-2).Valid() {
		t.Error("Sphere with negative radius should be invalid")
	}
}

func TestCloneSharesReference(t *testing.T) {
	s := NewBox(rl.Vector3{X: 1, Y: 1, Z: 1})
	c := s.Clone()

	if c.Reference() != s.Reference() {
		t.Error("Clone should share reference geometry")
	}

	c.Refresh(Transform{Position: rl.Vector3{X: 3}})
	s.Refresh(Transform{Position: rl.Vector3{X: -3}})
	if c.Vertices()[0] == s.Vertices()[0] {
		t.Error("Clone world buffers should be independent")
	}
}

func TestBounds(t *testing.T) {
	s := NewBox(rl.Vector3{X: 1, Y: 2, Z: 3})
	s.Refresh(Transform{Position: rl.Vector3{X: 1, Y: 1, Z: 1}})
	b := s.Bounds()

	if !approxVec(b.Min, rl.Vector3{X: 0, Y: -1, Z: -2}) || !approxVec(b.Max, rl.Vector3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("Unexpected box bounds %v", b)
	}

	sp := NewSphere(2)
	sp.Refresh(Transform{Position: rl.Vector3{Y: 5}})
	b = sp.Bounds()
	if !approxVec(b.Min, rl.Vector3{X: -2, Y: 3, Z: -2}) || !approxVec(b.Max, rl.Vector3{X: 2, Y: 7, Z: 2}) {
		t.Errorf("Unexpected sphere bounds %v", b)
	}
}
