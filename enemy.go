package main

import "math"

const (
	EnemyRadius    = 14.0
	EnemyMaxHP     = 20
	EnemyKillScore = 5

	TurretHP         = 40
	TurretFireEvery  = 900.0       // ms between fan bursts
	TurretFanCount   = 5
	TurretFanSpread  = math.Pi / 3 // 60 degree arc
	TurretShotSpeed  = 260.0
	TurretShotLifeMs = 3000.0
	SpinnerSweepStep = math.Pi / 5 // fan base angle advance per burst

	enemyEntryY  = -2 * EnemyRadius // formations enter just above the field
	enemyExitPad = 4 * EnemyRadius  // reaped this far past the bottom edge
)

// Enemy is one formation member. Position is world units, velocity world
// units per second; a dead or departed enemy is reaped by the session.
type Enemy struct {
	ID        int
	Type      string
	X, Y      float64
	VX, VY    float64
	HP        int
	Radius    float64
	Alive     bool
	FireCD    float64 // ms until the next fan burst (turret types)
	FireAngle float64 // spinner sweep heading, radians
	FanSpread float64 // fan burst arc, radians (turret types)
}

// SpawnFormation expands a triggered wave into its enemies. IDs are assigned
// sequentially from baseID so a given wave list always produces the same
// identities.
func SpawnFormation(w Wave, baseID int) []*Enemy {
	enemies := make([]*Enemy, 0, w.Count)
	newEnemy := func(x, y float64) *Enemy {
		e := &Enemy{
			ID:     baseID + len(enemies),
			Type:   w.Type,
			X:      x,
			Y:      y,
			VY:     w.Speed,
			HP:     EnemyMaxHP,
			Radius: EnemyRadius,
			Alive:  true,
		}
		if w.Type == WaveTurret || w.Type == WaveSpinner {
			e.HP = TurretHP
			e.FireCD = TurretFireEvery
			e.FireAngle = math.Pi / 2 // first sweep burst points down-field
			e.FanSpread = w.Spread
			if e.FanSpread == 0 {
				e.FanSpread = TurretFanSpread
			}
		}
		enemies = append(enemies, e)
		return e
	}

	switch w.Type {
	case WaveLine:
		// Row abreast, centered on the spawn x
		left := w.X - w.Spacing*float64(w.Count-1)/2
		for i := 0; i < w.Count; i++ {
			newEnemy(left+float64(i)*w.Spacing, enemyEntryY)
		}
	case WaveColumn:
		// Single file; trailing members start further out and follow
		for i := 0; i < w.Count; i++ {
			newEnemy(w.X, enemyEntryY-float64(i)*w.Spacing)
		}
	case WaveVee:
		// Wedge: lead at the spawn x, wings trail alternately left/right
		newEnemy(w.X, enemyEntryY)
		for i := 1; i < w.Count; i++ {
			k := float64((i + 1) / 2)
			side := 1.0
			if i%2 == 0 {
				side = -1
			}
			newEnemy(w.X+side*k*w.Spacing, enemyEntryY-k*w.Spacing*0.5)
		}
	case WaveTurret, WaveSpinner:
		left := w.X - w.Spacing*float64(w.Count-1)/2
		for i := 0; i < w.Count; i++ {
			newEnemy(left+float64(i)*w.Spacing, enemyEntryY)
		}
	}
	return enemies
}

// Update advances the enemy by dtMs milliseconds and returns true when a
// turret-type enemy wants to fire a fan this tick. The session queues the
// resulting spawn; it is never applied mid-iteration.
func (e *Enemy) Update(dtMs float64) bool {
	if !e.Alive {
		return false
	}
	dt := dtMs / 1000
	e.X += e.VX * dt
	e.Y += e.VY * dt

	// Departed past the bottom of the field
	if e.Y > WorldHeight+enemyExitPad {
		e.Alive = false
		return false
	}

	if e.Type != WaveTurret && e.Type != WaveSpinner {
		return false
	}
	e.FireCD -= dtMs
	if e.FireCD > 0 {
		return false
	}
	e.FireCD += TurretFireEvery
	if e.Type == WaveSpinner {
		e.FireAngle = NormalizeAngle(e.FireAngle + SpinnerSweepStep)
	}
	return true
}

// AimAt returns the fan base angle for a burst against a target at (tx, ty).
// Spinners ignore the target and sweep instead.
func (e *Enemy) AimAt(tx, ty float64) float64 {
	if e.Type == WaveSpinner {
		return e.FireAngle
	}
	return math.Atan2(ty-e.Y, tx-e.X)
}

// TakeDamage reduces HP and returns true if the enemy died
func (e *Enemy) TakeDamage(dmg int) bool {
	if !e.Alive {
		return false
	}
	e.HP -= dmg
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}
