package physics

import (
	"github.com/mironco/rigidcore/internal/raycast"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Body     BodyID
	Index    int
	Point    rl.Vector3
	Distance float32
	Face     int
	Exact    bool
}

// Raycast tests r against every body and returns the closest exact hit.
// Accepts without a computed point are skipped. Equal distances keep the
// body added first.
func (w *World) Raycast(ctx *SimulationContext, r raycast.Ray) (RaycastHit, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	var closest RaycastHit
	found := false
	for i, b := range w.bodies {
		h, ok := raycast.Intersect(b.Shape, r)
		if !ok || !h.Exact {
			continue
		}
		d := rl.Vector3Distance(r.Start, h.Point)
		if found && d >= closest.Distance {
			continue
		}
		closest = RaycastHit{
			Body:     b.ID,
			Index:    i,
			Point:    h.Point,
			Distance: d,
			Face:     h.Face,
			Exact:    h.Exact,
		}
		found = true
	}
	return closest, found
}
