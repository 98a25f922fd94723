package main

import "math"

const (
	ObstacleMinRadius = 28.0
	ObstacleMaxRadius = 55.0
	ObstacleSpinMin   = 0.3 // radians/s
	ObstacleSpinMax   = 1.2
	ObstacleDrift     = 40.0 // world units/s, downward scroll
	ObstacleVerts     = 7
)

// Obstacle is a drifting terrain chunk with a convex polygon hull. Bullets
// stop on it and the ship takes a hit from it; both go through the polygon
// probes rather than a radius check.
type Obstacle struct {
	ID    int
	Hull  Polygon
	Spin  float64 // radians/s
	VY    float64
	Alive bool
	bound float64 // broad-phase radius around Hull.Pos
}

// NewObstacle generates a terrain chunk at (x, y). The outline is a jittered
// regular polygon — near-convex by construction, which is what the probes
// accept. All randomness comes from rng, keeping runs seed-reproducible.
func NewObstacle(rng *XorShift, id int, x, y float64) *Obstacle {
	verts := make([]Vec2, ObstacleVerts)
	maxR := 0.0
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / ObstacleVerts
		r := rng.Range(ObstacleMinRadius, ObstacleMaxRadius)
		if r > maxR {
			maxR = r
		}
		verts[i] = Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}
	spin := rng.Range(ObstacleSpinMin, ObstacleSpinMax)
	if rng.Float() < 0.5 {
		spin = -spin
	}
	return &Obstacle{
		ID:    id,
		Hull:  Polygon{Pos: Vec2{X: x, Y: y}, Verts: verts},
		Spin:  spin,
		VY:    ObstacleDrift,
		Alive: true,
		bound: maxR,
	}
}

// Update drifts and spins the chunk, reaping it once fully off-field
func (o *Obstacle) Update(dtMs float64) {
	if !o.Alive {
		return
	}
	dt := dtMs / 1000
	o.Hull.Pos.Y += o.VY * dt
	o.Hull.Rotation += o.Spin * dt

	margin := o.bound * 2
	if o.Hull.Pos.Y > WorldHeight+margin {
		o.Alive = false
	}
}

// Bound returns the broad-phase radius around the hull center
func (o *Obstacle) Bound() float64 {
	return o.bound
}
