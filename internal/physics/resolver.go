package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is a touching pair found during a step. I and J index the world
// body list with I < J. Normal points from I toward J.
type Contact struct {
	I, J   int
	Normal rl.Vector3
	Depth  float32
}

// ContactResolver corrects positions and velocities for one contact. It
// must never write the position or velocity of a static body.
type ContactResolver interface {
	Resolve(a, b *Body, c Contact, gravity rl.Vector3)
}

// GroundCoupling pushes bodies apart along the contact normal and couples
// the velocity component along gravity of whichever body ends up resting
// on the other. It is not an impulse solver and does not conserve energy.
type GroundCoupling struct{}

func (GroundCoupling) Resolve(a, b *Body, c Contact, gravity rl.Vector3) {
	aGround, bGround, ok := separate(a, b, c, gravity)
	if !ok {
		return
	}

	// Gravity is world space, velocities are body-local.
	va, vb := a.WorldVelocity(), b.WorldVelocity()
	rel := rl.Vector3Subtract(va, vb)
	along := rl.Vector3Scale(gravity, rl.Vector3DotProduct(rel, gravity))

	// The grounded body takes its partner's velocity along gravity.
	if bGround && !b.RigidBody.IsStatic {
		b.SetWorldVelocity(rl.Vector3Add(vb, along))
	}
	if aGround && !a.RigidBody.IsStatic {
		a.SetWorldVelocity(rl.Vector3Subtract(va, along))
	}
}

// Impulse applies the same positional correction as GroundCoupling, then a
// restitution impulse along the normal. Linear only: no friction, no
// angular response.
type Impulse struct{}

func (Impulse) Resolve(a, b *Body, c Contact, gravity rl.Vector3) {
	normal := pushDirection(a, b, c)
	if _, _, ok := separate(a, b, c, gravity); !ok {
		return
	}

	va, vb := a.WorldVelocity(), b.WorldVelocity()
	velAlongNormal := rl.Vector3DotProduct(rl.Vector3Subtract(vb, va), normal)

	// Already separating
	if velAlongNormal > 0 {
		return
	}

	invA := inverseMass(a)
	invB := inverseMass(b)
	if invA+invB == 0 {
		return
	}

	e := (a.RigidBody.Restitution + b.RigidBody.Restitution) / 2
	j := -(1 + e) * velAlongNormal
	j /= invA + invB

	impulse := rl.Vector3Scale(normal, j)
	if invA > 0 {
		a.SetWorldVelocity(rl.Vector3Subtract(va, rl.Vector3Scale(impulse, invA)))
	}
	if invB > 0 {
		b.SetWorldVelocity(rl.Vector3Add(vb, rl.Vector3Scale(impulse, invB)))
	}
}

func inverseMass(b *Body) float32 {
	if b.RigidBody.IsStatic {
		return 0
	}
	if b.RigidBody.Weight <= 0 {
		return 1
	}
	return 1 / b.RigidBody.Weight
}

// pushDirection is the unit direction that moves b away from a.
func pushDirection(a, b *Body, c Contact) rl.Vector3 {
	if rl.Vector3DotProduct(rl.Vector3Subtract(a.Position, b.Position), c.Normal) > 0 {
		return rl.Vector3Negate(c.Normal)
	}
	return c.Normal
}

// separate moves the dynamic bodies out of contact and sets OnGround on the
// body pushed against gravity. It reports which body is grounded by this
// contact; ok is false when both bodies are static.
func separate(a, b *Body, c Contact, gravity rl.Vector3) (aGround, bGround, ok bool) {
	aStatic, bStatic := a.RigidBody.IsStatic, b.RigidBody.IsStatic
	if aStatic && bStatic {
		return false, false, false
	}

	push := pushDirection(a, b, c)
	gDot := rl.Vector3DotProduct(push, gravity)

	switch {
	case aStatic:
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(push, c.Depth))
		bGround = gDot < 0
	case bStatic:
		a.Position = rl.Vector3Subtract(a.Position, rl.Vector3Scale(push, c.Depth))
		aGround = gDot > 0
	default:
		half := rl.Vector3Scale(push, c.Depth/2)
		a.Position = rl.Vector3Subtract(a.Position, half)
		b.Position = rl.Vector3Add(b.Position, half)
		bGround = gDot < 0
		aGround = gDot > 0
	}

	// Flags only accumulate within a pass, a wall contact must not
	// unground a body resting on the floor.
	if aGround {
		a.RigidBody.OnGround = true
	}
	if bGround {
		b.RigidBody.OnGround = true
	}
	return aGround, bGround, true
}
