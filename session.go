package main

const (
	WorldWidth  = 1280.0
	WorldHeight = 720.0

	StartLives       = 3
	ShipRadius       = 12.0
	ShipShotSpeed    = 420.0
	ShipShotLifeMs   = 1500.0
	ShipFireCooldown = 150.0  // ms between shots
	ShipInvulnMs     = 1500.0 // grace period after losing a life

	BulletDamage       = 10
	maxEnemyBullets    = 1000   // turret fire is dropped past this, not queued
	obstacleSpawnEvery = 4000.0 // ms
)

// fanRequest is a queued turret burst. Enemy updates never spawn directly:
// requests collected during the enemy pass are applied after it, so the
// bullet field is never mutated mid-iteration.
type fanRequest struct {
	x, y, angle, spread float64
}

// Session composes the wave list, bullet fields, enemies and terrain into
// one frame-driven simulation. The host calls Step once per frame with the
// elapsed milliseconds; nothing in here reads a clock or does I/O, so a
// session is fully determined by its waves, seed and dt stream.
type Session struct {
	waves     []Wave
	triggered []bool // one-shot latch per wave

	shipFire  *BulletField
	enemyFire *BulletField
	enemies   []*Enemy
	obstacles []*Obstacle
	grid      *SpatialGrid
	rng       *XorShift

	ship       Circle
	shipFireCD float64
	invulnMs   float64

	timeMs     float64
	tick       uint64
	score      int
	lives      int
	nextID     int
	obstacleCD float64

	pending  []fanRequest
	queryBuf []EntityRef
}

// NewSession creates a session over an already-loaded wave list. The seed
// drives terrain generation only; pass the same seed to replay a run.
func NewSession(waves []Wave, seed uint64) *Session {
	return &Session{
		waves:      waves,
		triggered:  make([]bool, len(waves)),
		shipFire:   NewBulletField(),
		enemyFire:  NewBulletField(),
		grid:       NewSpatialGrid(WorldWidth, WorldHeight),
		rng:        NewXorShift(seed),
		ship:       Circle{Pos: Vec2{X: WorldWidth / 2, Y: WorldHeight - 60}, Radius: ShipRadius},
		lives:      StartLives,
		obstacleCD: obstacleSpawnEvery,
	}
}

// Step advances the simulation by dtMs milliseconds: wave triggers, spawns,
// kinematics, then collision resolution, strictly in that order.
func (s *Session) Step(dtMs float64) {
	s.tick++
	s.timeMs += dtMs

	if s.shipFireCD > 0 {
		s.shipFireCD -= dtMs
	}
	if s.invulnMs > 0 {
		s.invulnMs -= dtMs
	}

	s.triggerWaves()
	s.spawnTerrain(dtMs)

	s.shipFire.Update(dtMs)
	s.enemyFire.Update(dtMs)

	// Enemy pass queues turret bursts; they are applied afterwards
	s.pending = s.pending[:0]
	for _, e := range s.enemies {
		if e.Update(dtMs) {
			s.pending = append(s.pending, fanRequest{
				x: e.X, y: e.Y,
				angle:  e.AimAt(s.ship.Pos.X, s.ship.Pos.Y),
				spread: e.FanSpread,
			})
		}
	}
	for _, req := range s.pending {
		if s.enemyFire.Len()+TurretFanCount > maxEnemyBullets {
			break
		}
		s.enemyFire.SpawnFan(req.x, req.y, req.angle, req.spread,
			TurretFanCount, TurretShotSpeed, TurretShotLifeMs)
	}

	for _, o := range s.obstacles {
		o.Update(dtMs)
	}

	s.rebuildGrid()
	s.resolveCollisions()
	s.reap()
}

// triggerWaves fires every wave whose window contains the current time and
// that has not fired yet. The scheduler filter itself is stateless; the
// session owns the once-per-wave de-duplication.
func (s *Session) triggerWaves() {
	for i, w := range s.waves {
		if s.triggered[i] || !waveActive(w, s.timeMs) {
			continue
		}
		s.triggered[i] = true
		spawned := SpawnFormation(w, s.nextID)
		s.nextID += len(spawned)
		s.enemies = append(s.enemies, spawned...)
	}
}

// spawnTerrain drops a terrain chunk on a fixed cadence at a seeded x
func (s *Session) spawnTerrain(dtMs float64) {
	s.obstacleCD -= dtMs
	if s.obstacleCD > 0 {
		return
	}
	s.obstacleCD += obstacleSpawnEvery
	x := s.rng.Range(ObstacleMaxRadius, WorldWidth-ObstacleMaxRadius)
	o := NewObstacle(s.rng, s.nextID, x, -ObstacleMaxRadius*2)
	s.nextID++
	s.obstacles = append(s.obstacles, o)
}

// reap compacts the enemy and obstacle lists in place
func (s *Session) reap() {
	live := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive {
			live = append(live, e)
		}
	}
	s.enemies = live

	liveObs := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Alive {
			liveObs = append(liveObs, o)
		}
	}
	s.obstacles = liveObs
}

// rebuildGrid reindexes live entities; resolveCollisions reads the same
// slices, so reaping waits until resolution is done
func (s *Session) rebuildGrid() {
	s.grid.Clear()
	for i, e := range s.enemies {
		if e.Alive {
			s.grid.InsertCircle(e.X, e.Y, e.Radius, EntityRef{Kind: 'e', Idx: i})
		}
	}
	for i, o := range s.obstacles {
		if o.Alive {
			s.grid.InsertCircle(o.Hull.Pos.X, o.Hull.Pos.Y, o.Bound(), EntityRef{Kind: 'o', Idx: i})
		}
	}
}

// resolveCollisions runs the narrow-phase probes over grid-pruned pairs and
// applies damage, bullet removal and score/life bookkeeping.
func (s *Session) resolveCollisions() {
	// Ship bullets against enemies and terrain
	for _, id := range s.shipFire.Live() {
		b := s.shipFire.Get(id)
		if b == nil {
			continue
		}
		shot := Circle{Pos: Vec2{X: b.X, Y: b.Y}, Radius: BulletRadius}
		s.queryBuf = s.grid.QueryBuf(b.X, b.Y, BulletRadius, s.queryBuf[:0])
		for _, ref := range s.queryBuf {
			switch ref.Kind {
			case 'e':
				e := s.enemies[ref.Idx]
				if !e.Alive {
					continue
				}
				hull := Circle{Pos: Vec2{X: e.X, Y: e.Y}, Radius: e.Radius}
				if CircleVsCircle(shot, hull).Collided {
					if e.TakeDamage(BulletDamage) {
						s.score += EnemyKillScore
					}
					s.shipFire.Remove(id)
				}
			case 'o':
				o := s.obstacles[ref.Idx]
				if o.Alive && CircleVsPolygon(shot, o.Hull).Collided {
					s.shipFire.Remove(id)
				}
			}
			if s.shipFire.Get(id) == nil {
				break
			}
		}
	}

	// Enemy bullets against the ship and terrain
	for _, id := range s.enemyFire.Live() {
		b := s.enemyFire.Get(id)
		if b == nil {
			continue
		}
		shot := Circle{Pos: Vec2{X: b.X, Y: b.Y}, Radius: BulletRadius}
		if s.invulnMs <= 0 && CircleVsCircle(shot, s.ship).Collided {
			s.loseLife()
			s.enemyFire.Remove(id)
			continue
		}
		s.queryBuf = s.grid.QueryBuf(b.X, b.Y, BulletRadius, s.queryBuf[:0])
		for _, ref := range s.queryBuf {
			if ref.Kind != 'o' {
				continue
			}
			o := s.obstacles[ref.Idx]
			if o.Alive && CircleVsPolygon(shot, o.Hull).Collided {
				s.enemyFire.Remove(id)
				break
			}
		}
	}

	// Ship against enemies and terrain
	if s.invulnMs <= 0 {
		for _, e := range s.enemies {
			if !e.Alive {
				continue
			}
			hull := Circle{Pos: Vec2{X: e.X, Y: e.Y}, Radius: e.Radius}
			if CircleVsCircle(s.ship, hull).Collided {
				e.TakeDamage(e.HP)
				s.loseLife()
				break
			}
		}
	}
	if s.invulnMs <= 0 {
		for _, o := range s.obstacles {
			if o.Alive && CircleVsPolygon(s.ship, o.Hull).Collided {
				s.loseLife()
				break
			}
		}
	}
}

func (s *Session) loseLife() {
	if s.lives == 0 {
		return
	}
	s.lives--
	s.invulnMs = ShipInvulnMs
}

// MoveShip places the ship, clamped to the play field
func (s *Session) MoveShip(x, y float64) {
	s.ship.Pos.X = Clamp(x, ShipRadius, WorldWidth-ShipRadius)
	s.ship.Pos.Y = Clamp(y, ShipRadius, WorldHeight-ShipRadius)
}

// FireShip fires a single shot up-field if the cooldown allows it
func (s *Session) FireShip() {
	if s.shipFireCD > 0 || s.lives == 0 {
		return
	}
	s.shipFireCD = ShipFireCooldown
	s.shipFire.SpawnFan(s.ship.Pos.X, s.ship.Pos.Y-ShipRadius, -halfPi, 0,
		1, ShipShotSpeed, ShipShotLifeMs)
}

// Read accessors for the HUD/audio layers; none of these mutate.

func (s *Session) TimeMs() float64           { return s.timeMs }
func (s *Session) Tick() uint64              { return s.tick }
func (s *Session) Score() int                { return s.score }
func (s *Session) Lives() int                { return s.lives }
func (s *Session) GameOver() bool            { return s.lives == 0 }
func (s *Session) Ship() Circle              { return s.ship }
func (s *Session) Enemies() []*Enemy         { return s.enemies }
func (s *Session) Obstacles() []*Obstacle    { return s.obstacles }
func (s *Session) ShipBullets() *BulletField { return s.shipFire }
func (s *Session) EnemyBullets() *BulletField { return s.enemyFire }
