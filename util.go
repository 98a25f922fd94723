package main

import "math"

const halfPi = math.Pi / 2

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSq returns the squared distance between two points
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// NormalizeAngle wraps angle to [-PI, PI]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// round1 rounds to one decimal place. Snapshot coordinates are rounded so
// replay streams stay byte-stable across platforms.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// XorShift is a tiny seedable PRNG. The simulation never reads a system
// clock or global entropy; anything random (obstacle outlines, drift) comes
// from an explicit seed so a run is reproducible from its inputs.
type XorShift struct {
	state uint64
}

// NewXorShift returns a PRNG seeded with the given value
func NewXorShift(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

// Float returns a float64 in [0, 1)
func (r *XorShift) Float() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return float64(r.state%1e6) / 1e6
}

// Range returns a float64 in [lo, hi)
func (r *XorShift) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}
