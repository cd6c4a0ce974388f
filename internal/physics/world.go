package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World holds every body in the simulation. All methods take the
// SimulationContext that guards it.
type World struct {
	bodies []*Body
	nextID BodyID

	contacts []Contact
	touching contactSet

	OnContactEnter ContactSignal
	OnContactExit  ContactSignal
}

func NewWorld() *World {
	return &World{
		bodies:   make([]*Body, 0),
		touching: newContactSet(),
	}
}

// AddBody assigns an ID to b, refreshes its shape and appends it. Safe to
// call while the simulation goroutine is running.
func (w *World) AddBody(ctx *SimulationContext, b *Body) BodyID {
	ctx.spawnMu.Lock()
	defer ctx.spawnMu.Unlock()
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	w.nextID++
	b.ID = w.nextID
	b.ApplyTransform()
	w.bodies = append(w.bodies, b)
	if b.Shape != nil && !b.Shape.Valid() {
		log.Printf("Physics: body %q (id %d) has invalid geometry and will not collide", b.Name, b.ID)
	}
	return b.ID
}

// RemoveBody drops the body with the given ID. Open contacts involving it
// end silently.
func (w *World) RemoveBody(ctx *SimulationContext, id BodyID) bool {
	ctx.spawnMu.Lock()
	defer ctx.spawnMu.Unlock()
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	for i, b := range w.bodies {
		if b.ID != id {
			continue
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		w.touching.drop(id)
		w.contacts = w.contacts[:0]
		return true
	}
	return false
}

// Len returns the number of bodies.
func (w *World) Len(ctx *SimulationContext) int {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return len(w.bodies)
}

// View calls fn for each body under the read lock. fn must not retain b or
// call back into the world.
func (w *World) View(ctx *SimulationContext, fn func(i int, b *Body)) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	for i, b := range w.bodies {
		fn(i, b)
	}
}

// Modify calls fn for each body under the write lock. Gameplay code uses it
// to drive velocities between steps.
func (w *World) Modify(ctx *SimulationContext, fn func(i int, b *Body)) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	for i, b := range w.bodies {
		fn(i, b)
	}
}

// Update runs fn on the body with the given ID under the write lock.
func (w *World) Update(ctx *SimulationContext, id BodyID, fn func(b *Body)) bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	for _, b := range w.bodies {
		if b.ID == id {
			fn(b)
			return true
		}
	}
	return false
}

// BodyState is a detached copy of a body's pose for readers.
type BodyState struct {
	ID          BodyID
	Name        string
	Position    rl.Vector3
	Orientation rl.Vector3
	Bounds      rl.BoundingBox
	OnGround    bool
	IsStatic    bool
}

// Snapshot copies the current pose of every body.
func (w *World) Snapshot(ctx *SimulationContext) []BodyState {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	out := make([]BodyState, 0, len(w.bodies))
	for _, b := range w.bodies {
		s := BodyState{
			ID:          b.ID,
			Name:        b.Name,
			Position:    b.Position,
			Orientation: b.Orientation,
			OnGround:    b.RigidBody.OnGround,
			IsStatic:    b.RigidBody.IsStatic,
		}
		if b.Shape != nil {
			s.Bounds = b.Shape.Bounds()
		}
		out = append(out, s)
	}
	return out
}

// Contacts returns the contacts resolved during the last simulated tick.
func (w *World) Contacts(ctx *SimulationContext) []Contact {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}

// Step advances the simulation by dt. With the context inactive or paused
// it only refreshes shapes from the current poses.
//
// Each of the configured passes integrates every dynamic body by dt/passes,
// refreshes geometry and then tests and resolves all pairs in index order.
// Contacts resolved earlier in a pass are visible to later pairs.
func (w *World) Step(ctx *SimulationContext, dt float32) {
	ctx.spawnMu.Lock()
	ctx.mu.Lock()

	if !ctx.active || ctx.stopped {
		for _, b := range w.bodies {
			b.ApplyTransform()
		}
		ctx.mu.Unlock()
		ctx.spawnMu.Unlock()
		return
	}

	iterations := ctx.iterations
	sub := dt / float32(iterations)
	current := newContactSet()
	w.contacts = w.contacts[:0]

	for it := 0; it < iterations; it++ {
		for _, b := range w.bodies {
			if b.RigidBody.IsStatic {
				continue
			}
			move := rl.Vector3Scale(b.yawed(b.RigidBody.Velocity), sub)
			b.Position = rl.Vector3Add(b.Position, move)
			b.RigidBody.OnGround = false
		}

		for _, b := range w.bodies {
			b.ApplyTransform()
		}

		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				w.collidePair(ctx, i, j, &current)
			}
		}
	}

	ctx.consumeFrame()
	enter, exit := diff(w.touching, current)
	w.touching = current

	ctx.mu.Unlock()
	ctx.spawnMu.Unlock()

	// Listeners run unlocked so they may query or mutate the world.
	for _, ev := range enter {
		w.OnContactEnter.emit(ev)
	}
	for _, ev := range exit {
		w.OnContactExit.emit(ev)
	}
}

func (w *World) collidePair(ctx *SimulationContext, i, j int, current *contactSet) {
	a, b := w.bodies[i], w.bodies[j]
	if a.RigidBody.IsStatic && b.RigidBody.IsStatic {
		return
	}
	if a.Shape == nil || b.Shape == nil {
		return
	}

	res := ctx.narrowPhase.Collide(a.Shape, b.Shape)
	if !res.Hit {
		return
	}

	c := Contact{I: i, J: j, Normal: res.Normal, Depth: res.Depth}
	ctx.resolver.Resolve(a, b, c, ctx.gravity)
	a.ApplyTransform()
	b.ApplyTransform()

	w.contacts = append(w.contacts, c)
	current.record(ContactEvent{A: a.ID, B: b.ID, Normal: res.Normal, Depth: res.Depth})
}
