package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mironco/rigidcore/internal/config"
	"github.com/mironco/rigidcore/internal/geometry"
	"github.com/mironco/rigidcore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const sample = `{
  "prototypes": [
    {"name": "crate", "shape": "box", "size": [1, 2, 1], "color": "Orange",
     "rigidbody": {"weight": 3}}
  ],
  "bodies": [
    {"name": "Floor", "size": [10, 1, 10], "position": [0, -1, 0],
     "rigidbody": {"isStatic": true, "restitution": 0}},
    {"name": "A", "prototype": "crate", "position": [0, 1, 0], "rotation": [0, 90, 0]},
    {"name": "B", "prototype": "crate", "position": [2, 1, 0], "color": "Gold"},
    {"name": "Ball", "shape": "sphere", "radius": 0.25, "position": [0, 5, 0],
     "rigidbody": {"velocity": [1, 0, 0]}}
  ]
}`

func TestParseScene(t *testing.T) {
	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sc.Bodies) != 4 {
		t.Fatalf("Expected 4 bodies, got %d", len(sc.Bodies))
	}

	floor := sc.Bodies[0]
	if !floor.RigidBody.IsStatic {
		t.Error("Floor should be static")
	}
	if floor.RigidBody.Restitution != 0 {
		t.Errorf("Explicit zero restitution should stick, got %f", floor.RigidBody.Restitution)
	}
	if floor.RigidBody.Weight != 1 {
		t.Errorf("Unset weight should keep the default, got %f", floor.RigidBody.Weight)
	}
	if floor.Shape.Kind != geometry.KindBox {
		t.Errorf("Shape should default to box, got %s", floor.Shape.Kind)
	}

	a, b := sc.Bodies[1], sc.Bodies[2]
	if a.Name != "A" || a.RigidBody.Weight != 3 {
		t.Errorf("Prototype values not cloned: %+v", a.RigidBody)
	}
	if a.Shape == b.Shape {
		t.Error("Clones must not share a shape instance")
	}
	if a.Shape.Reference() != b.Shape.Reference() {
		t.Error("Clones should share reference geometry")
	}
	if a.Orientation.Y != 90 || b.Position != (rl.Vector3{X: 2, Y: 1}) {
		t.Errorf("Pose overrides not applied: %v %v", a.Orientation, b.Position)
	}
	if b.Shape.Center() != b.Position {
		t.Errorf("Shape should be refreshed to the body pose, got %v", b.Shape.Center())
	}
	if v := a.Visual.(Visual); v.Color != rl.Orange {
		t.Errorf("Expected prototype color, got %v", v.Color)
	}
	if v := b.Visual.(Visual); v.Color != rl.Gold {
		t.Errorf("Expected overridden color, got %v", v.Color)
	}

	ball := sc.Bodies[3]
	if ball.Shape.Kind != geometry.KindSphere || ball.Shape.Radius != 0.25 {
		t.Errorf("Unexpected ball shape: %s r=%f", ball.Shape.Kind, ball.Shape.Radius)
	}
	if ball.RigidBody.Velocity != (rl.Vector3{X: 1}) {
		t.Errorf("Expected initial velocity, got %v", ball.RigidBody.Velocity)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown shape", `{"bodies": [{"name": "x", "shape": "capsule"}]}`, ErrUnknownShape},
		{"unknown prototype", `{"bodies": [{"name": "x", "prototype": "nope"}]}`, ErrUnknownPrototype},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.data))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	if _, err := Parse([]byte("{")); err == nil {
		t.Error("Malformed JSON should fail")
	}
}

func TestSpawnAndSave(t *testing.T) {
	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := physics.NewSimulationContext(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	w := physics.NewWorld()
	ids := sc.Spawn(ctx, w)
	if len(ids) != 4 || w.Len(ctx) != 4 {
		t.Fatalf("Expected 4 spawned bodies, got %d ids, %d in world", len(ids), w.Len(ctx))
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := Save(path, sc.Bodies); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(again.Bodies) != 4 {
		t.Fatalf("Expected 4 bodies after reload, got %d", len(again.Bodies))
	}
	if again.Bodies[1].Extents != (rl.Vector3{X: 1, Y: 2, Z: 1}) {
		t.Errorf("Box size lost on save: %v", again.Bodies[1].Extents)
	}
	if again.Bodies[2].Visual.(Visual).Color != rl.Gold {
		t.Error("Color lost on save")
	}
	if !again.Bodies[0].RigidBody.IsStatic {
		t.Error("Static flag lost on save")
	}
}

func TestLoadSampleScene(t *testing.T) {
	sc, err := Load(filepath.Join("..", "..", "assets", "scenes", "stack.json"))
	if err != nil {
		t.Fatalf("Sample scene should load: %v", err)
	}
	if len(sc.Bodies) == 0 {
		t.Error("Sample scene has no bodies")
	}
}

func TestColorNames(t *testing.T) {
	tests := []struct {
		name string
		want rl.Color
	}{
		{"Gold", rl.Gold},
		{"skyblue", rl.SkyBlue},
		{"#0a141eff", rl.NewColor(10, 20, 30, 255)},
		{"chartreuse", rl.White},
		{"#12", rl.White},
	}
	for _, tt := range tests {
		if got := colorFromName(tt.name); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	custom := rl.NewColor(1, 2, 3, 4)
	if got := colorFromName(colorName(custom)); got != custom {
		t.Errorf("Custom color should survive a round trip, got %v", got)
	}
	if colorName(rl.Maroon) != "Maroon" {
		t.Errorf("Palette colors should keep their name, got %q", colorName(rl.Maroon))
	}
}
