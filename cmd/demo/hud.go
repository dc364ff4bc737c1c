package main

import (
	"fmt"

	"render-demo/game"
)

// titleStats turns per-frame timing into a window title refreshed once per
// second.
type titleStats struct {
	base       string
	frames     int
	lastUpdate float64
}

func newTitleStats(base string) *titleStats {
	return &titleStats{base: base, lastUpdate: -1}
}

// Frame records one frame at time now (seconds). It returns a new title when
// at least a second has passed since the last one.
func (t *titleStats) Frame(now float64, stats game.Stats) (string, bool) {
	if t.lastUpdate < 0 {
		t.lastUpdate = now
	}
	t.frames++

	elapsed := now - t.lastUpdate
	if elapsed < 1 {
		return "", false
	}

	fps := float64(t.frames) / elapsed
	title := fmt.Sprintf("%s | FPS: %.0f | Frame Time: %.3fms | Entities: %d (%d skipped) | Tris: %d",
		t.base, fps, 1000/fps, stats.Entities, stats.Skipped, stats.Triangles)
	t.frames = 0
	t.lastUpdate = now
	return title, true
}
