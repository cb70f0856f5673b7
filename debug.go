package puffy

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-tick timings. Only populated when App.debug is true.
type frameStats struct {
	frame       uint64
	startupTime time.Duration
	updateTime  time.Duration
	postTime    time.Duration
	entityCount int
}

// debugLog prints timing stats to stderr.
func (a *App) debugLog(stats frameStats) {
	if !a.debug {
		return
	}
	total := stats.startupTime + stats.updateTime + stats.postTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[puffy] frame %d | startup: %v | update: %v | post: %v | total: %v | entities: %d\n",
		stats.frame, stats.startupTime, stats.updateTime, stats.postTime, total, stats.entityCount)
}

// Debugf prints a debug line to stderr when debug mode is on.
func (a *App) Debugf(format string, args ...any) {
	if !a.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[puffy] "+format+"\n", args...)
}
