package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/tailscale/hujson"
)

// MaxWaveDocBytes is the hard cap on a wave document payload. The limit is
// enforced while streaming the body, not after buffering it.
const MaxWaveDocBytes = 256 * 1024

// WaveLoader fetches and decodes wave documents. Every failure path — bad
// URL, disallowed scheme, network error, oversized payload, malformed
// document — yields an empty wave list. Graceful degradation is deliberate:
// a broken level file means a level with no spawns, not a dead session.
type WaveLoader struct {
	Client   *http.Client
	MaxBytes int64
}

// NewWaveLoader returns a loader with the default client and size cap
func NewWaveLoader() *WaveLoader {
	return &WaveLoader{Client: http.DefaultClient, MaxBytes: MaxWaveDocBytes}
}

// Load fetches a wave document from rawURL and returns the parsed waves,
// or an empty list on any failure.
func (l *WaveLoader) Load(rawURL string) []Wave {
	waves, err := l.fetch(rawURL)
	if err != nil {
		log.Printf("wave load %s: %v (continuing with no waves)", rawURL, err)
		return nil
	}
	return waves
}

func (l *WaveLoader) fetch(rawURL string) ([]Wave, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	// Network-fetchable resources only; file: and friends are rejected
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme %q not allowed", u.Scheme)
	}

	resp, err := l.Client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	// Read at most MaxBytes+1: one extra byte distinguishes "exactly at the
	// cap" from "over the cap", and the body is abandoned as soon as the
	// limit trips.
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > l.MaxBytes {
		return nil, fmt.Errorf("document exceeds %d byte limit", l.MaxBytes)
	}

	return DecodeWaveDoc(data)
}

// DecodeWaveDoc parses a wave document. The format is human-edited JSON with
// comments and trailing commas tolerated (JWCC); hujson standardizes it to
// plain JSON first.
func DecodeWaveDoc(data []byte) ([]Wave, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize: %w", err)
	}
	var defs []WaveDef
	if err := json.Unmarshal(std, &defs); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ParseWaves(defs)
}
