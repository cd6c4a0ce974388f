package physics

import (
	"github.com/mironco/rigidcore/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyID is a stable handle for a body. Indices into the world change when
// bodies are removed, IDs do not.
type BodyID uint64

// RigidBody holds the dynamic state the step reads and writes.
type RigidBody struct {
	Velocity    rl.Vector3 // body-local, rotated by yaw on integration
	Weight      float32
	IsStatic    bool
	Restitution float32 // 0 = no bounce, 1 = perfect bounce
	OnGround    bool

	// Locomotion limits, consumed by gameplay code only.
	MaxSpeed        float32
	MaxBackSpeed    float32
	SpeedMultiplier float32
}

func NewRigidBody() RigidBody {
	return RigidBody{
		Weight:          1.0,
		Restitution:     0.5,
		MaxSpeed:        10,
		MaxBackSpeed:    5,
		SpeedMultiplier: 1,
	}
}

// ClampSpeed limits the horizontal forward/back speed of a body-local
// velocity to the locomotion limits.
func (r *RigidBody) ClampSpeed() {
	forward := r.MaxSpeed * r.SpeedMultiplier
	back := r.MaxBackSpeed * r.SpeedMultiplier
	if forward > 0 && r.Velocity.Z > forward {
		r.Velocity.Z = forward
	}
	if back > 0 && r.Velocity.Z < -back {
		r.Velocity.Z = -back
	}
	if forward > 0 {
		r.Velocity.X = clamp(r.Velocity.X, -forward, forward)
	}
}

// Body is one physic object. Orientation is Euler degrees
// (X pitch, Y yaw, Z roll). Extents are the full width/height/length.
type Body struct {
	ID          BodyID
	Name        string
	Position    rl.Vector3
	Orientation rl.Vector3
	Extents     rl.Vector3
	Shape       *geometry.Shape
	RigidBody   RigidBody

	// Visual is an opaque handle to the presentation side (mesh lookup).
	Visual any
}

// NewBoxBody creates a box body whose half-extents are baked from size.
func NewBoxBody(name string, position, size rl.Vector3) *Body {
	half := rl.Vector3Scale(size, 0.5)
	b := &Body{
		Name:      name,
		Position:  position,
		Extents:   size,
		Shape:     geometry.NewBox(half),
		RigidBody: NewRigidBody(),
	}
	b.ApplyTransform()
	return b
}

// NewSphereBody creates a sphere body.
func NewSphereBody(name string, position rl.Vector3, radius float32) *Body {
	d := radius * 2
	b := &Body{
		Name:      name,
		Position:  position,
		Extents:   rl.Vector3{X: d, Y: d, Z: d},
		Shape:     geometry.NewSphere(radius),
		RigidBody: NewRigidBody(),
	}
	b.ApplyTransform()
	return b
}

// Transform returns the pose applied to collision geometry.
func (b *Body) Transform() geometry.Transform {
	return geometry.Transform{Position: b.Position, Rotation: b.Orientation}
}

// ApplyTransform refreshes the body's shape from its current pose.
func (b *Body) ApplyTransform() {
	if b.Shape == nil {
		return
	}
	b.Shape.Refresh(b.Transform())
}

// Clone copies the body. The clone shares reference geometry but owns its
// world buffers. The ID is left zero for the world to assign.
func (b *Body) Clone() *Body {
	c := *b
	c.ID = 0
	if b.Shape != nil {
		c.Shape = b.Shape.Clone()
	}
	return &c
}

// yawed rotates a body-local vector by the body's yaw.
func (b *Body) yawed(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(v, rl.MatrixRotateY(b.Orientation.Y*rl.Deg2rad))
}

// unyawed maps a world-space vector into the body frame.
func (b *Body) unyawed(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(v, rl.MatrixRotateY(-b.Orientation.Y*rl.Deg2rad))
}

// WorldVelocity is the velocity the step integrates, in world space.
func (b *Body) WorldVelocity() rl.Vector3 {
	return b.yawed(b.RigidBody.Velocity)
}

// SetWorldVelocity stores a world-space velocity in the body frame.
func (b *Body) SetWorldVelocity(v rl.Vector3) {
	b.RigidBody.Velocity = b.unyawed(v)
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
