package main

import (
	"math"
	"testing"
)

const testTick = 1000.0 / 60

func lineWave(t0 float64) Wave {
	return Wave{T0: t0, Duration: 500, Type: WaveLine, X: 400, Count: 3, Spacing: 40, Speed: 120}
}

func stepFor(s *Session, ms float64) {
	steps := int(ms / testTick)
	for i := 0; i < steps; i++ {
		s.Step(testTick)
	}
}

func TestSessionTriggersWaveOnce(t *testing.T) {
	s := NewSession([]Wave{lineWave(100)}, 1)

	stepFor(s, 90)
	if len(s.Enemies()) != 0 {
		t.Fatalf("wave should not trigger before t0, got %d enemies", len(s.Enemies()))
	}

	// Many frames inside the window: the formation spawns exactly once
	stepFor(s, 400)
	if len(s.Enemies()) != 3 {
		t.Errorf("expected 3 enemies from one trigger, got %d", len(s.Enemies()))
	}
}

func TestSessionFutureWaveNotTriggered(t *testing.T) {
	s := NewSession([]Wave{lineWave(5000)}, 1)
	stepFor(s, 1000)
	if len(s.Enemies()) != 0 {
		t.Errorf("wave far in the future should not trigger, got %d", len(s.Enemies()))
	}
}

func TestSessionTurretFiresQueuedFans(t *testing.T) {
	w := Wave{T0: 0, Duration: 100, Type: WaveTurret, X: 400, Count: 1, Speed: 0, Spread: TurretFanSpread}
	s := NewSession([]Wave{w}, 1)

	stepFor(s, TurretFireEvery+testTick*2)
	if s.EnemyBullets().Len() != TurretFanCount {
		t.Errorf("expected one %d-bullet fan, got %d bullets", TurretFanCount, s.EnemyBullets().Len())
	}
}

func burstArc(f *BulletField) float64 {
	angles := bulletAngles(f)
	min, max := angles[0], angles[0]
	for _, a := range angles[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return max - min
}

func TestSessionTurretUsesAuthoredSpread(t *testing.T) {
	authored := 2 * math.Pi / 3
	w := Wave{T0: 0, Duration: 100, Type: WaveTurret, X: 400, Count: 1, Speed: 0, Spread: authored}
	s := NewSession([]Wave{w}, 1)

	stepFor(s, TurretFireEvery+testTick*2)
	if s.EnemyBullets().Len() != TurretFanCount {
		t.Fatalf("expected a %d-bullet burst, got %d", TurretFanCount, s.EnemyBullets().Len())
	}
	if arc := burstArc(s.EnemyBullets()); math.Abs(arc-authored) > 1e-9 {
		t.Errorf("expected burst arc %v, got %v", authored, arc)
	}
}

func TestSessionTurretSpreadDefaultsWhenUnset(t *testing.T) {
	w := Wave{T0: 0, Duration: 100, Type: WaveTurret, X: 400, Count: 1, Speed: 0}
	s := NewSession([]Wave{w}, 1)

	stepFor(s, TurretFireEvery+testTick*2)
	if s.EnemyBullets().Len() != TurretFanCount {
		t.Fatalf("expected a %d-bullet burst, got %d", TurretFanCount, s.EnemyBullets().Len())
	}
	if arc := burstArc(s.EnemyBullets()); math.Abs(arc-TurretFanSpread) > 1e-9 {
		t.Errorf("expected default burst arc %v, got %v", TurretFanSpread, arc)
	}
}

func TestSessionScoreOnKill(t *testing.T) {
	w := Wave{T0: 0, Duration: 100, Type: WaveLine, X: 400, Count: 1, Speed: 0}
	s := NewSession([]Wave{w}, 1)
	s.Step(testTick) // trigger the wave

	e := s.Enemies()[0]
	// Park a shot stream on the enemy until it dies
	for i := 0; i < EnemyMaxHP/BulletDamage; i++ {
		s.shipFire.SpawnFan(e.X, e.Y, 0, 0, 1, 0, 10000)
		s.Step(testTick)
	}
	if s.Score() != EnemyKillScore {
		t.Errorf("expected score %d after kill, got %d", EnemyKillScore, s.Score())
	}
	if len(s.Enemies()) != 0 {
		t.Errorf("killed enemy should be reaped, got %d", len(s.Enemies()))
	}
}

func TestSessionBulletConsumedOnHit(t *testing.T) {
	w := Wave{T0: 0, Duration: 100, Type: WaveLine, X: 400, Count: 1, Speed: 0}
	s := NewSession([]Wave{w}, 1)
	s.Step(testTick)

	e := s.Enemies()[0]
	s.shipFire.SpawnFan(e.X, e.Y, 0, 0, 1, 0, 10000)
	s.Step(testTick)
	if s.ShipBullets().Len() != 0 {
		t.Errorf("bullet should be removed on hit, %d left", s.ShipBullets().Len())
	}
}

func TestSessionDeadEnemyNoContactDamage(t *testing.T) {
	w := Wave{T0: 0, Duration: 100, Type: WaveLine, X: 400, Count: 1, Speed: 0}
	s := NewSession([]Wave{w}, 1)
	s.Step(testTick) // trigger the wave

	// Park the enemy on the ship with one hit left: the bullet kill and the
	// ship contact land in the same resolution pass, and the fresh corpse
	// must not ram the ship before it is reaped
	e := s.Enemies()[0]
	e.X, e.Y = s.Ship().Pos.X, s.Ship().Pos.Y
	e.HP = BulletDamage
	s.shipFire.SpawnFan(e.X, e.Y, 0, 0, 1, 0, 10000)
	s.Step(testTick)

	if s.Score() != EnemyKillScore {
		t.Fatalf("expected the bullet kill to score %d, got %d", EnemyKillScore, s.Score())
	}
	if s.Lives() != StartLives {
		t.Errorf("corpse contact should not cost a life, got %d lives", s.Lives())
	}
}

func TestSessionLifeLossAndGrace(t *testing.T) {
	s := NewSession(nil, 1)
	ship := s.Ship()

	// Drop an enemy bullet on the ship
	s.enemyFire.SpawnFan(ship.Pos.X, ship.Pos.Y, 0, 0, 1, 0, 10000)
	s.Step(testTick)
	if s.Lives() != StartLives-1 {
		t.Fatalf("expected %d lives, got %d", StartLives-1, s.Lives())
	}

	// A second hit inside the grace period does not stack
	s.enemyFire.SpawnFan(ship.Pos.X, ship.Pos.Y, 0, 0, 1, 0, 10000)
	s.Step(testTick)
	if s.Lives() != StartLives-1 {
		t.Errorf("grace period should absorb the second hit, got %d lives", s.Lives())
	}
}

func TestSessionGameOver(t *testing.T) {
	s := NewSession(nil, 1)
	for i := 0; i < StartLives; i++ {
		s.invulnMs = 0
		ship := s.Ship()
		s.enemyFire.SpawnFan(ship.Pos.X, ship.Pos.Y, 0, 0, 1, 0, 10000)
		s.Step(testTick)
	}
	if !s.GameOver() {
		t.Errorf("expected game over after %d hits, lives=%d", StartLives, s.Lives())
	}
	if s.Lives() != 0 {
		t.Errorf("lives should floor at 0, got %d", s.Lives())
	}
}

func TestSessionMoveShipClamped(t *testing.T) {
	s := NewSession(nil, 1)
	s.MoveShip(-100, 50)
	if s.Ship().Pos.X != ShipRadius {
		t.Errorf("ship x should clamp to %v, got %v", ShipRadius, s.Ship().Pos.X)
	}
	s.MoveShip(WorldWidth+100, WorldHeight+100)
	p := s.Ship().Pos
	if p.X != WorldWidth-ShipRadius || p.Y != WorldHeight-ShipRadius {
		t.Errorf("ship should clamp inside the field, got %+v", p)
	}
}

func TestSessionFireShipCooldown(t *testing.T) {
	s := NewSession(nil, 1)
	s.FireShip()
	s.FireShip() // still cooling down
	if s.ShipBullets().Len() != 1 {
		t.Errorf("cooldown should swallow the second shot, got %d bullets", s.ShipBullets().Len())
	}
	stepFor(s, ShipFireCooldown+testTick)
	s.FireShip()
	if s.ShipBullets().Len() != 2 {
		t.Errorf("expected a second shot after cooldown, got %d bullets", s.ShipBullets().Len())
	}
}

func TestSessionTerrainStopsBullets(t *testing.T) {
	s := NewSession(nil, 1)
	stepFor(s, obstacleSpawnEvery+testTick*2)
	if len(s.Obstacles()) == 0 {
		t.Fatal("expected terrain to have spawned")
	}
	o := s.Obstacles()[0]

	s.shipFire.SpawnFan(o.Hull.Pos.X, o.Hull.Pos.Y, 0, 0, 1, 0, 60000)
	s.Step(testTick)
	if s.ShipBullets().Len() != 0 {
		t.Errorf("bullet inside terrain should be removed, %d left", s.ShipBullets().Len())
	}
}

func TestSessionNoClockNoIO(t *testing.T) {
	// Two sessions fed the same inputs stay in lockstep indefinitely
	waves := []Wave{lineWave(100), {T0: 300, Duration: 200, Type: WaveSpinner, X: 600, Count: 1, Spread: TurretFanSpread}}
	a := NewSession(waves, 42)
	b := NewSession(waves, 42)
	for i := 0; i < 600; i++ {
		a.FireShip()
		b.FireShip()
		a.Step(testTick)
		b.Step(testTick)
	}
	if a.Score() != b.Score() || a.Lives() != b.Lives() || a.TimeMs() != b.TimeMs() {
		t.Fatal("identical runs diverged")
	}
	if a.ShipBullets().Len() != b.ShipBullets().Len() || len(a.Enemies()) != len(b.Enemies()) {
		t.Fatal("identical runs diverged in entity counts")
	}
}
