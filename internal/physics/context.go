package physics

import (
	"fmt"
	"log"
	"sync"

	"github.com/mironco/rigidcore/internal/collision"
	"github.com/mironco/rigidcore/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SimulationContext owns the locks, configuration and pause gate for a
// World. It is passed explicitly to every World operation.
//
// Lock order is spawnMu then mu. The simulation goroutine holds both for a
// whole step; readers take mu.RLock only.
//
// The zero value is not usable; build one with NewSimulationContext.
type SimulationContext struct {
	mu      sync.RWMutex
	spawnMu sync.Mutex

	iterations     int
	gravity        rl.Vector3
	amountOfFrames int

	active     bool
	stopped    bool
	framesLeft int

	narrowPhase collision.NarrowPhase
	resolver    ContactResolver
}

// NewSimulationContext validates cfg and builds a context from it.
func NewSimulationContext(cfg config.Simulation) (*SimulationContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx := &SimulationContext{
		iterations:     cfg.Iterations,
		gravity:        rl.Vector3{X: cfg.Gravity[0], Y: cfg.Gravity[1], Z: cfg.Gravity[2]},
		amountOfFrames: cfg.AmountOfFrames,
		active:         true,
		stopped:        cfg.StartPaused,
		narrowPhase:    collision.ReducedSAT{},
	}
	resolver, err := resolverByName(cfg.Resolver)
	if err != nil {
		return nil, err
	}
	ctx.resolver = resolver
	return ctx, nil
}

func resolverByName(name string) (ContactResolver, error) {
	switch name {
	case "", config.ResolverGroundCoupling:
		return GroundCoupling{}, nil
	case config.ResolverImpulse:
		return Impulse{}, nil
	}
	return nil, fmt.Errorf("resolver %q: %w", name, config.ErrUnknownStrategy)
}

// NarrowPhase returns the pair test used by Step.
func (c *SimulationContext) NarrowPhase() collision.NarrowPhase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.narrowPhase
}

// SetNarrowPhase swaps the pair test. nil is ignored.
func (c *SimulationContext) SetNarrowPhase(np collision.NarrowPhase) {
	if np == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.narrowPhase = np
}

// Resolver returns the contact resolver used by Step.
func (c *SimulationContext) Resolver() ContactResolver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolver
}

// SetResolver swaps the contact resolver. nil is ignored.
func (c *SimulationContext) SetResolver(r ContactResolver) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolver = r
}

// Iterations returns the inner pass count.
func (c *SimulationContext) Iterations() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.iterations
}

// SetIterations changes the inner pass count. Values outside [1, 128] are
// rejected, never clamped.
func (c *SimulationContext) SetIterations(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := config.Simulation{Iterations: c.iterations}
	if err := cfg.SetIterations(n); err != nil {
		return err
	}
	c.iterations = cfg.Iterations
	return nil
}

// Gravity returns the unit gravity direction.
func (c *SimulationContext) Gravity() rl.Vector3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gravity
}

// SetActive turns the whole simulation on or off. An inactive world only
// applies transforms.
func (c *SimulationContext) SetActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

// Pause stops integration and contact resolution at the next step.
func (c *SimulationContext) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		log.Printf("Physics: paused")
	}
	c.stopped = true
	c.framesLeft = 0
}

// Resume runs the simulation continuously.
func (c *SimulationContext) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		log.Printf("Physics: resumed")
	}
	c.stopped = false
	c.framesLeft = 0
}

// StepFrames runs n ticks and then pauses again. n <= 0 uses the
// configured amount of frames.
func (c *SimulationContext) StepFrames(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		n = c.amountOfFrames
	}
	if n <= 0 {
		return
	}
	c.stopped = false
	c.framesLeft = n
	log.Printf("Physics: stepping %d frame(s)", n)
}

// Paused reports whether the pause gate is closed.
func (c *SimulationContext) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopped
}

// Active reports whether the simulation is switched on.
func (c *SimulationContext) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// consumeFrame must be called with mu held after a simulated tick.
func (c *SimulationContext) consumeFrame() {
	if c.framesLeft <= 0 {
		return
	}
	c.framesLeft--
	if c.framesLeft == 0 {
		c.stopped = true
	}
}
