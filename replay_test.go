package main

import (
	"bytes"
	"testing"
)

func runRecorded(t *testing.T, waves []Wave, seed uint64, steps int) []byte {
	t.Helper()
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	s := NewSession(waves, seed)
	for i := 0; i < steps; i++ {
		s.FireShip()
		s.Step(testTick)
		if err := rec.Record(s); err != nil {
			t.Fatalf("record step %d: %v", i, err)
		}
	}
	return buf.Bytes()
}

func TestReplayRoundTrip(t *testing.T) {
	waves := []Wave{lineWave(50)}
	data := runRecorded(t, waves, 7, 30)

	frames, err := ReadFrames(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	if len(frames) != 30 {
		t.Fatalf("expected 30 frames, got %d", len(frames))
	}
	if frames[0].Tick != 1 || frames[29].Tick != 30 {
		t.Errorf("tick sequence wrong: %d..%d", frames[0].Tick, frames[29].Tick)
	}
	if frames[29].Lives != StartLives {
		t.Errorf("expected full lives in a quiet run, got %d", frames[29].Lives)
	}
	// The wave triggered during the run, so later frames carry enemies
	if len(frames[29].Enemies) != 3 {
		t.Errorf("expected 3 enemies in final frame, got %d", len(frames[29].Enemies))
	}
}

func TestReplayDeterministic(t *testing.T) {
	waves := []Wave{
		lineWave(100),
		{T0: 200, Duration: 300, Type: WaveTurret, X: 600, Count: 2, Spacing: 80, Spread: TurretFanSpread},
	}
	a := runRecorded(t, waves, 42, 120)
	b := runRecorded(t, waves, 42, 120)

	if !bytes.Equal(a, b) {
		t.Fatal("identical runs should produce identical replay bytes")
	}
	if StreamDigest(a) != StreamDigest(b) {
		t.Fatal("digests of identical streams should match")
	}
}

func TestReplaySeedChangesStream(t *testing.T) {
	// Different seeds produce different terrain, visible once obstacles
	// have spawned
	steps := int(obstacleSpawnEvery/testTick) + 5
	a := runRecorded(t, nil, 1, steps)
	b := runRecorded(t, nil, 2, steps)
	if bytes.Equal(a, b) {
		t.Fatal("different seeds should diverge")
	}
}

func TestReadFramesTruncatedStream(t *testing.T) {
	data := runRecorded(t, nil, 1, 5)
	if _, err := ReadFrames(bytes.NewReader(data[:len(data)-3])); err == nil {
		t.Error("truncated stream should return an error")
	}
}
