package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// PointState is a rounded world position inside a snapshot
type PointState struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// FrameSnapshot is the observable simulation state after one Step.
// Coordinates go through round1 so identical runs produce identical bytes.
type FrameSnapshot struct {
	Tick    uint64       `msgpack:"t"`
	TimeMs  float64      `msgpack:"ms"`
	Score   int          `msgpack:"sc"`
	Lives   int          `msgpack:"l"`
	Ship    PointState   `msgpack:"sh"`
	Bullets []PointState `msgpack:"b"`
	Enemies []PointState `msgpack:"e"`
	Terrain []PointState `msgpack:"o"`
}

// Snapshot captures the current frame state for recording or inspection
func (s *Session) Snapshot() FrameSnapshot {
	snap := FrameSnapshot{
		Tick:   s.tick,
		TimeMs: s.timeMs,
		Score:  s.score,
		Lives:  s.lives,
		Ship:   PointState{X: round1(s.ship.Pos.X), Y: round1(s.ship.Pos.Y)},
	}
	collect := func(f *BulletField) {
		f.Each(func(b *Bullet) {
			snap.Bullets = append(snap.Bullets, PointState{X: round1(b.X), Y: round1(b.Y)})
		})
	}
	collect(s.shipFire)
	collect(s.enemyFire)
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, PointState{X: round1(e.X), Y: round1(e.Y)})
	}
	for _, o := range s.obstacles {
		snap.Terrain = append(snap.Terrain, PointState{X: round1(o.Hull.Pos.X), Y: round1(o.Hull.Pos.Y)})
	}
	return snap
}

// Recorder streams msgpack-encoded frame snapshots to a writer. It exists
// for reproducibility checks and offline inspection; where the stream ends
// up is the caller's business.
type Recorder struct {
	enc *msgpack.Encoder
}

// NewRecorder creates a recorder writing to w
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

// Record appends the session's current frame to the stream
func (r *Recorder) Record(s *Session) error {
	return r.enc.Encode(s.Snapshot())
}

// ReadFrames decodes a complete snapshot stream
func ReadFrames(r io.Reader) ([]FrameSnapshot, error) {
	dec := msgpack.NewDecoder(r)
	var frames []FrameSnapshot
	for {
		var f FrameSnapshot
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, err
		}
		frames = append(frames, f)
	}
}

// StreamDigest hashes an encoded snapshot stream; two runs of the same
// waves, seed and dt sequence must produce the same digest
func StreamDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
