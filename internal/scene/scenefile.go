package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mironco/rigidcore/internal/geometry"
	"github.com/mironco/rigidcore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
)

var (
	ErrUnknownShape     = errors.New("unknown shape")
	ErrUnknownPrototype = errors.New("unknown prototype")
)

// --- JSON types ---

type File struct {
	Prototypes []BodyDef `json:"prototypes,omitempty"`
	Bodies     []BodyDef `json:"bodies"`
}

// BodyDef describes one body. A def naming a prototype starts from a clone
// of it and only overrides pose, name and color.
type BodyDef struct {
	Name      string        `json:"name"`
	Prototype string        `json:"prototype,omitempty"`
	Shape     string        `json:"shape,omitempty"`
	Size      [3]float32    `json:"size,omitempty"`
	Radius    float32       `json:"radius,omitempty"`
	Position  [3]float32    `json:"position"`
	Rotation  [3]float32    `json:"rotation,omitempty"`
	Color     string        `json:"color,omitempty"`
	RigidBody *rigidBodyDef `json:"rigidbody,omitempty"`
}

// rigidBodyDef mirrors physics.RigidBody field names so copier can move
// values across in both directions.
type rigidBodyDef struct {
	Weight          float32    `json:"weight"`
	IsStatic        bool       `json:"isStatic"`
	Restitution     float32    `json:"restitution"`
	MaxSpeed        float32    `json:"maxSpeed"`
	MaxBackSpeed    float32    `json:"maxBackSpeed"`
	SpeedMultiplier float32    `json:"speedMultiplier"`
	InitialVelocity [3]float32 `json:"velocity"`
}

// Visual is stored on physics.Body.Visual for bodies loaded from a scene.
type Visual struct {
	Color rl.Color
}

// --- Loading ---

// Scene is a parsed scene, ready to spawn.
type Scene struct {
	Bodies []*physics.Body
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scene, error) {
	var sf File
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	prototypes := make(map[string]*physics.Body, len(sf.Prototypes))
	for _, def := range sf.Prototypes {
		b, err := buildBody(def, nil)
		if err != nil {
			return nil, fmt.Errorf("prototype %q: %w", def.Name, err)
		}
		prototypes[def.Name] = b
	}

	sc := &Scene{Bodies: make([]*physics.Body, 0, len(sf.Bodies))}
	for _, def := range sf.Bodies {
		b, err := buildBody(def, prototypes)
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", def.Name, err)
		}
		sc.Bodies = append(sc.Bodies, b)
	}
	return sc, nil
}

// Spawn adds every body of the scene to w and returns their IDs.
func (s *Scene) Spawn(ctx *physics.SimulationContext, w *physics.World) []physics.BodyID {
	ids := make([]physics.BodyID, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		ids = append(ids, w.AddBody(ctx, b))
	}
	return ids
}

func buildBody(def BodyDef, prototypes map[string]*physics.Body) (*physics.Body, error) {
	var b *physics.Body

	if def.Prototype != "" {
		proto, ok := prototypes[def.Prototype]
		if !ok {
			return nil, fmt.Errorf("%q: %w", def.Prototype, ErrUnknownPrototype)
		}
		b = proto.Clone()
	} else {
		switch def.Shape {
		case "box", "":
			size := toVec(def.Size)
			if size == (rl.Vector3{}) {
				size = rl.Vector3{X: 1, Y: 1, Z: 1}
			}
			b = physics.NewBoxBody(def.Name, rl.Vector3{}, size)
		case "sphere":
			radius := def.Radius
			if radius <= 0 {
				radius = 0.5
			}
			b = physics.NewSphereBody(def.Name, rl.Vector3{}, radius)
		default:
			return nil, fmt.Errorf("%q: %w", def.Shape, ErrUnknownShape)
		}
		b.Visual = Visual{Color: rl.White}
	}

	if def.Name != "" {
		b.Name = def.Name
	}
	b.Position = toVec(def.Position)
	b.Orientation = toVec(def.Rotation)
	if def.Color != "" {
		b.Visual = Visual{Color: colorFromName(def.Color)}
	}
	if def.RigidBody != nil && def.Prototype == "" {
		if err := applyRigidBody(&b.RigidBody, *def.RigidBody); err != nil {
			return nil, err
		}
	}
	b.ApplyTransform()
	return b, nil
}

// applyRigidBody overlays the fields present in def onto rb. Fields left
// out of the JSON keep rb's values.
func applyRigidBody(rb *physics.RigidBody, def rigidBodyDef) error {
	if err := copier.Copy(rb, &def); err != nil {
		return fmt.Errorf("rigidbody: %w", err)
	}
	v := def.InitialVelocity
	rb.Velocity = rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
	return nil
}

func (d *BodyDef) UnmarshalJSON(data []byte) error {
	type plain BodyDef
	aux := struct {
		*plain
		RigidBody json.RawMessage `json:"rigidbody,omitempty"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.RigidBody) == 0 {
		return nil
	}

	// Unset keys keep the engine defaults.
	defaults := physics.NewRigidBody()
	def := &rigidBodyDef{}
	if err := copier.Copy(def, &defaults); err != nil {
		return err
	}
	if err := json.Unmarshal(aux.RigidBody, def); err != nil {
		return err
	}
	d.RigidBody = def
	return nil
}

func toVec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Saving ---

// Save writes bodies as a flat scene without prototypes.
func Save(path string, bodies []*physics.Body) error {
	var sf File
	for _, b := range bodies {
		if b.Shape == nil {
			continue
		}
		def := BodyDef{
			Name:     b.Name,
			Shape:    b.Shape.Kind.String(),
			Position: [3]float32{b.Position.X, b.Position.Y, b.Position.Z},
			Rotation: [3]float32{b.Orientation.X, b.Orientation.Y, b.Orientation.Z},
		}
		if b.Shape.Kind == geometry.KindSphere {
			def.Radius = b.Shape.Radius
		} else {
			def.Size = [3]float32{b.Extents.X, b.Extents.Y, b.Extents.Z}
		}
		if v, ok := b.Visual.(Visual); ok {
			def.Color = colorName(v.Color)
		}

		rb := &rigidBodyDef{}
		if err := copier.Copy(rb, &b.RigidBody); err != nil {
			return fmt.Errorf("body %q: %w", b.Name, err)
		}
		rb.InitialVelocity = [3]float32{b.RigidBody.Velocity.X, b.RigidBody.Velocity.Y, b.RigidBody.Velocity.Z}
		def.RigidBody = rb

		sf.Bodies = append(sf.Bodies, def)
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
