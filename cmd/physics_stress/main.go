// Stress test timing the all-pairs step at increasing body counts
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/mironco/rigidcore/internal/config"
	"github.com/mironco/rigidcore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	iterations := flag.Int("iterations", 4, "inner passes per step")
	steps := flag.Int("steps", 10, "timed steps per body count")
	flag.Parse()

	testCounts := []int{50, 100, 200, 400, 800}

	for _, resolver := range []string{config.ResolverGroundCoupling, config.ResolverImpulse} {
		cfg := config.Default()
		cfg.Resolver = resolver
		if err := cfg.SetIterations(*iterations); err != nil {
			log.Fatalf("Config: %v", err)
		}
		fmt.Printf("resolver %s, %d iterations\n", resolver, cfg.Iterations)
		for _, count := range testCounts {
			testStep(cfg, count, *steps)
		}
		fmt.Println()
	}
}

func testStep(cfg config.Simulation, count, steps int) {
	ctx, err := physics.NewSimulationContext(cfg)
	if err != nil {
		log.Fatalf("Physics: %v", err)
	}
	world := physics.NewWorld()

	floor := physics.NewBoxBody("Floor", rl.Vector3{Y: -1}, rl.Vector3{X: 200, Y: 1, Z: 200})
	floor.RigidBody.IsStatic = true
	world.AddBody(ctx, floor)

	// Spawn in a cube, size scales with count to keep density reasonable
	rng := rand.New(rand.NewSource(42))
	spawnSize := float32(20.0) + float32(count)/20.0

	for i := 0; i < count; i++ {
		pos := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * spawnSize / 4,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		var b *physics.Body
		if i%2 == 0 {
			b = physics.NewBoxBody(fmt.Sprintf("Box%d", i), pos, rl.Vector3{X: 1, Y: 1, Z: 1})
			b.Orientation.Y = rng.Float32() * 90
		} else {
			b = physics.NewSphereBody(fmt.Sprintf("Ball%d", i), pos, 0.5+rng.Float32()*0.5)
		}
		b.RigidBody.Velocity = rl.Vector3{Y: -1}
		world.AddBody(ctx, b)
	}

	contacts := 0
	world.OnContactEnter.Connect(func(physics.ContactEvent) { contacts++ })

	// Warm up
	world.Step(ctx, 1.0/60)

	start := time.Now()
	for i := 0; i < steps; i++ {
		world.Step(ctx, 1.0/60)
	}
	perStep := time.Since(start) / time.Duration(steps)

	fmt.Printf("%5d bodies: %10v per step | %5d contacts last step | %6d contact enters\n",
		count+1, perStep.Round(time.Microsecond), len(world.Contacts(ctx)), contacts)
}
