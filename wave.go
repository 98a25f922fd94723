package main

import (
	"fmt"
	"math"
)

// Enemy formation types — the closed set a wave document may name
const (
	WaveLine    = "line"    // row abreast, descending together
	WaveColumn  = "column"  // single file, staggered entry
	WaveVee     = "vee"     // wedge centered on the spawn x
	WaveTurret  = "turret"  // stationary emplacement firing aimed fans
	WaveSpinner = "spinner" // emplacement sweeping its fan around the circle
)

// Wave is one declarative spawn trigger, immutable once parsed. Times are
// milliseconds on the level clock; the activation window is half-open
// [T0, T0+Duration).
type Wave struct {
	T0       float64
	Duration float64
	Type     string
	X        float64
	Count    int
	Spacing  float64 // world units between formation slots
	Speed    float64 // world units per second
	Spread   float64 // radians, fan half-arc*2 for turret types
}

// WaveDef is the decoded form of one wave object from a wave document.
// Required numeric fields are pointers so a missing field is distinguishable
// from zero.
type WaveDef struct {
	T0       *float64 `json:"t0"`
	Duration *float64 `json:"duration"`
	Type     string   `json:"type"`
	X        *float64 `json:"x"`
	Count    int      `json:"count"`
	Spacing  float64  `json:"spacing"`
	Speed    float64  `json:"speed"`
	Spread   float64  `json:"spread"` // degrees in the document
}

// validWaveType reports whether t names a known formation
func validWaveType(t string) bool {
	switch t {
	case WaveLine, WaveColumn, WaveVee, WaveTurret, WaveSpinner:
		return true
	}
	return false
}

// ParseWaves validates decoded wave records and produces typed waves.
// Any malformed record fails the whole parse: the loader maps that to an
// empty wave list so a broken level file degrades to "no spawns" instead of
// taking down the session.
func ParseWaves(defs []WaveDef) ([]Wave, error) {
	waves := make([]Wave, 0, len(defs))
	for i, d := range defs {
		if d.T0 == nil || d.Duration == nil || d.X == nil {
			return nil, fmt.Errorf("wave %d: missing required field", i)
		}
		if *d.T0 < 0 {
			return nil, fmt.Errorf("wave %d: t0 must be >= 0, got %g", i, *d.T0)
		}
		if *d.Duration <= 0 {
			return nil, fmt.Errorf("wave %d: duration must be > 0, got %g", i, *d.Duration)
		}
		if !validWaveType(d.Type) {
			return nil, fmt.Errorf("wave %d: unknown type %q", i, d.Type)
		}
		if *d.X < 0 || *d.X > WorldWidth {
			return nil, fmt.Errorf("wave %d: x %g outside play field [0, %g]", i, *d.X, WorldWidth)
		}
		if d.Count < 0 || d.Speed < 0 || d.Spacing < 0 || d.Spread < 0 {
			return nil, fmt.Errorf("wave %d: negative formation parameter", i)
		}
		count := d.Count
		if count == 0 {
			count = 1
		}
		waves = append(waves, Wave{
			T0:       *d.T0,
			Duration: *d.Duration,
			Type:     d.Type,
			X:        *d.X,
			Count:    count,
			Spacing:  d.Spacing,
			Speed:    d.Speed,
			Spread:   d.Spread * math.Pi / 180,
		})
	}
	return waves, nil
}

// waveActive reports whether timeMs falls inside the wave's half-open
// activation window [t0, t0+duration)
func waveActive(w Wave, timeMs float64) bool {
	return timeMs >= w.T0 && timeMs < w.T0+w.Duration
}

// WavesAtTime returns the waves whose activation window contains timeMs.
// It is a pure, idempotent filter with no memory of prior calls: a caller
// polling it every frame must de-duplicate triggers itself (fire each wave
// once on its first appearance), as Session does.
func WavesAtTime(waves []Wave, timeMs float64) []Wave {
	var active []Wave
	for _, w := range waves {
		if waveActive(w, timeMs) {
			active = append(active, w)
		}
	}
	return active
}
