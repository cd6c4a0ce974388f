// Interactive viewer for the rigid-body kernel: loads a scene, runs the
// simulation on its own goroutine and draws shapes and contacts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/mironco/rigidcore/internal/camera"
	"github.com/mironco/rigidcore/internal/config"
	"github.com/mironco/rigidcore/internal/geometry"
	"github.com/mironco/rigidcore/internal/physics"
	"github.com/mironco/rigidcore/internal/raycast"
	"github.com/mironco/rigidcore/internal/scene"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	panelWidth   = 220

	tickRate     = 60
	gravityAccel = 20.0 // units per second squared
	maxFrameTime = 0.05
	pickLength   = 200
)

func main() {
	configPath := flag.String("config", "physics.yaml", "simulation config (YAML)")
	scenePath := flag.String("scene", "assets/scenes/stack.json", "scene file (JSON)")
	snapshotPath := flag.String("snapshot", "snapshot.json", "where F5 writes the current scene")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Config: %v", err)
		}
		log.Printf("Config: %s not found, using defaults", *configPath)
	}

	ctx, err := physics.NewSimulationContext(cfg)
	if err != nil {
		log.Fatalf("Physics: %v", err)
	}

	sc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Scene: %v", err)
	}

	world := physics.NewWorld()
	world.OnContactEnter.Connect(func(ev physics.ContactEvent) {
		log.Printf("Physics: contact enter %d-%d depth %.3f", ev.A, ev.B, ev.Depth)
	})
	world.OnContactExit.Connect(func(ev physics.ContactEvent) {
		log.Printf("Physics: contact exit %d-%d", ev.A, ev.B)
	})
	ids := sc.Spawn(ctx, world)
	log.Printf("Scene: spawned %d bodies from %s", len(ids), *scenePath)

	done := make(chan struct{})
	go simulate(ctx, world, done)
	defer close(done)

	run(ctx, world, *snapshotPath)
}

// simulate drives the world at a fixed tick rate until done is closed.
func simulate(ctx *physics.SimulationContext, world *physics.World, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if dt > maxFrameTime {
				dt = maxFrameTime
			}
			if ctx.Active() && !ctx.Paused() {
				applyGravity(ctx, world, dt)
			}
			world.Step(ctx, dt)
		}
	}
}

// applyGravity accelerates airborne bodies. The kernel itself never applies
// gravity, it only uses the direction for contact classification.
func applyGravity(ctx *physics.SimulationContext, world *physics.World, dt float32) {
	g := rl.Vector3Scale(ctx.Gravity(), gravityAccel*dt)
	world.Modify(ctx, func(_ int, b *physics.Body) {
		if b.RigidBody.IsStatic || b.RigidBody.OnGround {
			return
		}
		b.SetWorldVelocity(rl.Vector3Add(b.WorldVelocity(), g))
		b.RigidBody.ClampSpeed()
	})
}

func run(ctx *physics.SimulationContext, world *physics.World, snapshotPath string) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "rigidcore viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)

	cam := camera.New(rl.Vector3{Y: 1})
	var selected physics.BodyID
	showContacts := true

	for !rl.WindowShouldClose() {
		cam.Update()
		cam3d := cam.GetRaylibCamera()

		if rl.IsKeyPressed(rl.KeySpace) {
			togglePause(ctx)
		}
		if rl.IsKeyPressed(rl.KeyN) {
			ctx.StepFrames(0)
		}
		if rl.IsKeyPressed(rl.KeyF5) {
			saveSnapshot(ctx, world, snapshotPath)
		}

		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && mouse.X > panelWidth {
			ray := raycast.FromRaylib(rl.GetScreenToWorldRay(mouse, cam3d), pickLength)
			if hit, ok := world.Raycast(ctx, ray); ok {
				selected = hit.Body
			} else {
				selected = 0
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 32, 255))

		rl.BeginMode3D(cam3d)
		rl.DrawGrid(40, 1)
		drawBodies(ctx, world, selected)
		if showContacts {
			drawContacts(ctx, world)
		}
		rl.EndMode3D()

		showContacts = drawPanel(ctx, world, selected, showContacts)
		rl.DrawFPS(screenWidth-90, 10)

		rl.EndDrawing()
	}
}

func togglePause(ctx *physics.SimulationContext) {
	if ctx.Paused() {
		ctx.Resume()
	} else {
		ctx.Pause()
	}
}

func drawBodies(ctx *physics.SimulationContext, world *physics.World, selected physics.BodyID) {
	world.View(ctx, func(_ int, b *physics.Body) {
		if !b.Shape.Valid() {
			return
		}
		color := rl.White
		if v, ok := b.Visual.(scene.Visual); ok {
			color = v.Color
		}
		if b.ID == selected {
			color = rl.Yellow
		}

		switch b.Shape.Kind {
		case geometry.KindSphere:
			rl.DrawSphereWires(b.Shape.Center(), b.Shape.Radius, 12, 12, color)
		case geometry.KindBox:
			verts := b.Shape.Vertices()
			for _, f := range b.Shape.Faces() {
				for k := range f.Indices {
					from := verts[f.Indices[k]]
					to := verts[f.Indices[(k+1)%len(f.Indices)]]
					rl.DrawLine3D(from, to, color)
				}
			}
		}

		if b.RigidBody.OnGround {
			bounds := b.Shape.Bounds()
			rl.DrawBoundingBox(bounds, rl.Fade(rl.Green, 0.4))
		}
	})
}

func drawContacts(ctx *physics.SimulationContext, world *physics.World) {
	contacts := world.Contacts(ctx)
	if len(contacts) == 0 {
		return
	}
	world.View(ctx, func(i int, b *physics.Body) {
		for _, c := range contacts {
			if c.J != i || b.Shape == nil {
				continue
			}
			tip := rl.Vector3Add(b.Position, rl.Vector3Scale(c.Normal, 0.5+c.Depth))
			rl.DrawLine3D(b.Position, tip, rl.Red)
		}
	})
}

func drawPanel(ctx *physics.SimulationContext, world *physics.World, selected physics.BodyID, showContacts bool) bool {
	rl.DrawRectangle(0, 0, panelWidth, screenHeight, rl.Fade(rl.Black, 0.6))

	label := "Pause"
	if ctx.Paused() {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: 10, Y: 10, Width: 95, Height: 28}, label) {
		togglePause(ctx)
	}
	if gui.Button(rl.Rectangle{X: 115, Y: 10, Width: 95, Height: 28}, "Step") {
		ctx.StepFrames(0)
	}

	active := gui.CheckBox(rl.Rectangle{X: 10, Y: 50, Width: 18, Height: 18}, "Active", ctx.Active())
	if active != ctx.Active() {
		ctx.SetActive(active)
	}
	showContacts = gui.CheckBox(rl.Rectangle{X: 110, Y: 50, Width: 18, Height: 18}, "Contacts", showContacts)

	iterations := ctx.Iterations()
	gui.Label(rl.Rectangle{X: 10, Y: 78, Width: 200, Height: 20}, fmt.Sprintf("Iterations: %d", iterations))
	v := gui.Slider(rl.Rectangle{X: 10, Y: 100, Width: 160, Height: 18}, "", "", float32(iterations), config.MinIterations, config.MaxIterations)
	if n := int(v); n != iterations {
		if err := ctx.SetIterations(n); err != nil {
			log.Printf("Physics: %v", err)
		}
	}

	y := int32(135)
	rl.DrawText(fmt.Sprintf("Bodies: %d", world.Len(ctx)), 10, y, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Contacts: %d", len(world.Contacts(ctx))), 10, y+20, 16, rl.LightGray)

	if selected != 0 {
		for _, s := range world.Snapshot(ctx) {
			if s.ID != selected {
				continue
			}
			rl.DrawText(s.Name, 10, y+50, 18, rl.Yellow)
			rl.DrawText(fmt.Sprintf("pos %.2f %.2f %.2f", s.Position.X, s.Position.Y, s.Position.Z), 10, y+72, 14, rl.LightGray)
			rl.DrawText(fmt.Sprintf("grounded %v static %v", s.OnGround, s.IsStatic), 10, y+90, 14, rl.LightGray)
		}
	}

	rl.DrawText("Space pause, N step, F5 save", 10, screenHeight-50, 14, rl.Gray)
	rl.DrawText("RMB orbit, wheel zoom, LMB pick", 10, screenHeight-30, 14, rl.Gray)
	return showContacts
}

func saveSnapshot(ctx *physics.SimulationContext, world *physics.World, path string) {
	var bodies []*physics.Body
	world.View(ctx, func(_ int, b *physics.Body) {
		bodies = append(bodies, b.Clone())
	})
	if err := scene.Save(path, bodies); err != nil {
		log.Printf("Scene: %v", err)
		return
	}
	log.Printf("Scene: saved %d bodies to %s", len(bodies), path)
}
