package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	wavesURL := flag.String("waves", "", "URL of the wave document (http/https)")
	duration := flag.Float64("duration", 30000, "Simulated time in ms")
	tick := flag.Float64("tick", 1000.0/60, "Step size in ms")
	seed := flag.Uint64("seed", 1, "Terrain seed")
	record := flag.String("record", "", "Write a msgpack replay stream to this file")
	flag.Parse()

	var waves []Wave
	if *wavesURL != "" {
		waves = NewWaveLoader().Load(*wavesURL)
	}
	if len(waves) == 0 {
		log.Println("no waves loaded, running an empty level")
	}

	sess := NewSession(waves, *seed)

	var rec *Recorder
	if *record != "" {
		f, err := os.Create(*record)
		if err != nil {
			log.Fatalf("create %s: %v", *record, err)
		}
		defer f.Close()
		rec = NewRecorder(f)
	}

	steps := int(*duration / *tick)
	for i := 0; i < steps; i++ {
		sess.FireShip()
		sess.Step(*tick)
		if rec != nil {
			if err := rec.Record(sess); err != nil {
				log.Fatalf("record: %v", err)
			}
		}
	}

	log.Printf("ran %d steps (%.0f ms simulated)", steps, sess.TimeMs())
	log.Printf("score=%d lives=%d enemies=%d bullets=%d/%d",
		sess.Score(), sess.Lives(), len(sess.Enemies()),
		sess.ShipBullets().Len(), sess.EnemyBullets().Len())
}
