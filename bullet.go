package main

import (
	"fmt"
	"math"
)

const BulletRadius = 3.0

// BulletID is a generation-checked handle into a BulletField. The zero value
// is never a live handle. A handle to a removed bullet stays invalid even if
// its slot is later reused for a new bullet.
type BulletID struct {
	idx int32
	gen uint32
}

// Bullet is one live projectile. Position is world units, velocity is world
// units per second, Life is remaining milliseconds and strictly decreases.
type Bullet struct {
	ID     BulletID
	X, Y   float64
	VX, VY float64
	Life   float64
}

type bulletSlot struct {
	b    Bullet
	gen  uint32
	live bool
}

// BulletField owns the live projectile set. Slots never move, so a *Bullet
// taken before Update observes the same bullet's mutated fields after it;
// removal recycles the slot through a free list and bumps its generation.
//
// Not safe for concurrent mutation: spawns and updates are strictly
// sequenced by the caller, never interleaved into an in-progress Update.
type BulletField struct {
	slots []bulletSlot
	free  []int32
	order []int32 // live slot indices; iteration order, compacted by swap-remove
}

// NewBulletField creates an empty bullet field
func NewBulletField() *BulletField {
	return &BulletField{}
}

// Len returns the number of live bullets
func (f *BulletField) Len() int {
	return len(f.order)
}

// SpawnFan creates exactly count bullets at (x, y), evenly spread across
// [baseAngle-spread/2, baseAngle+spread/2] inclusive of both ends; a single
// bullet flies at baseAngle exactly. Angles are radians, 0 pointing along +x
// (the forward-scroll direction), positive counter-clockwise. Each bullet
// starts with lifeMs remaining.
//
// count < 1, speed < 0 and lifeMs <= 0 are pattern-authoring bugs; they are
// reported as errors rather than clamped so they surface during development.
func (f *BulletField) SpawnFan(x, y, baseAngle, spread float64, count int, speed, lifeMs float64) error {
	if count < 1 {
		return fmt.Errorf("spawn fan: count must be >= 1, got %d", count)
	}
	if speed < 0 {
		return fmt.Errorf("spawn fan: speed must be >= 0, got %g", speed)
	}
	if lifeMs <= 0 {
		return fmt.Errorf("spawn fan: lifeMs must be > 0, got %g", lifeMs)
	}

	angle := baseAngle
	step := 0.0
	if count > 1 {
		angle = baseAngle - spread/2
		step = spread / float64(count-1)
	}
	for i := 0; i < count; i++ {
		f.spawn(Bullet{
			X:    x,
			Y:    y,
			VX:   speed * math.Cos(angle),
			VY:   speed * math.Sin(angle),
			Life: lifeMs,
		})
		angle += step
	}
	return nil
}

// spawn places a bullet into a fresh or recycled slot
func (f *BulletField) spawn(b Bullet) BulletID {
	var idx int32
	if n := len(f.free); n > 0 {
		idx = f.free[n-1]
		f.free = f.free[:n-1]
	} else {
		idx = int32(len(f.slots))
		f.slots = append(f.slots, bulletSlot{})
	}
	slot := &f.slots[idx]
	slot.gen++
	slot.live = true
	b.ID = BulletID{idx: idx, gen: slot.gen}
	slot.b = b
	f.order = append(f.order, idx)
	return b.ID
}

// Update advances every live bullet by dtMs milliseconds, then reaps bullets
// whose remaining life reached zero. The lifetime window is half-open
// (0, lifeMs]: a bullet at exactly zero life is removed.
func (f *BulletField) Update(dtMs float64) {
	dt := dtMs / 1000
	for _, idx := range f.order {
		b := &f.slots[idx].b
		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.Life -= dtMs
	}
	for i := 0; i < len(f.order); {
		idx := f.order[i]
		if f.slots[idx].b.Life <= 0 {
			f.release(idx)
			last := len(f.order) - 1
			f.order[i] = f.order[last]
			f.order = f.order[:last]
		} else {
			i++
		}
	}
}

// Remove deletes a single bullet by handle. Returns false for stale handles.
func (f *BulletField) Remove(id BulletID) bool {
	if f.Get(id) == nil {
		return false
	}
	for i, idx := range f.order {
		if idx == id.idx {
			f.release(idx)
			last := len(f.order) - 1
			f.order[i] = f.order[last]
			f.order = f.order[:last]
			return true
		}
	}
	return false
}

// release frees a slot and invalidates outstanding handles to it
func (f *BulletField) release(idx int32) {
	slot := &f.slots[idx]
	slot.live = false
	slot.gen++
	f.free = append(f.free, idx)
}

// Clear empties the live set unconditionally; no lifetime checks
func (f *BulletField) Clear() {
	for _, idx := range f.order {
		f.release(idx)
	}
	f.order = f.order[:0]
}

// Get resolves a handle to its bullet, or nil if the handle is stale
func (f *BulletField) Get(id BulletID) *Bullet {
	if id.idx < 0 || int(id.idx) >= len(f.slots) {
		return nil
	}
	slot := &f.slots[id.idx]
	if !slot.live || slot.gen != id.gen {
		return nil
	}
	return &slot.b
}

// Live returns the handles of all live bullets. Insertion order is not
// preserved across removals.
func (f *BulletField) Live() []BulletID {
	ids := make([]BulletID, 0, len(f.order))
	for _, idx := range f.order {
		ids = append(ids, f.slots[idx].b.ID)
	}
	return ids
}

// Each calls fn for every live bullet without allocating. fn must not spawn
// or remove bullets.
func (f *BulletField) Each(fn func(*Bullet)) {
	for _, idx := range f.order {
		fn(&f.slots[idx].b)
	}
}
