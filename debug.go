package grasp

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Manager debug flag so that
// entity and group operations (which may run before a Manager is attached)
// can check it cheaply. Only valid with a single Manager; multiple Managers
// with differing debug modes will reflect whichever called SetDebugMode
// last.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, invariant
// violations (duplicate select-enter, cyclic group membership, reorders
// during a filter pass) panic with a descriptive message, and per-frame
// arbitration stats are logged to stderr. When disabled, the same
// violations log a warning and the offending operation becomes a no-op.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug = enabled
	globalDebug = enabled
}

// assertf checks a manager invariant. Returns true when cond holds. When it
// does not, the violation panics in debug mode and is logged and ignored in
// release mode; callers must treat a false return as "skip the operation".
func assertf(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	if globalDebug {
		panic("grasp debug: " + fmt.Sprintf(format, args...))
	}
	warnf(format, args...)
	return false
}

// warnf prints a warning to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[grasp] warning: "+format+"\n", args...)
}

// passStats holds per-frame arbitration metrics.
// Only populated when Manager.debug is true.
type passStats struct {
	preprocessTime time.Duration
	groupTime      time.Duration
	clearTime      time.Duration
	commitTime     time.Duration
	processTime    time.Duration
	hoverEnters    int
	hoverExits     int
	selectEnters   int
	selectExits    int
}

// debugLog prints arbitration timing and event counts to stderr.
func (m *Manager) debugLog(stats passStats) {
	if !m.debug {
		return
	}
	total := stats.preprocessTime + stats.groupTime + stats.clearTime +
		stats.commitTime + stats.processTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[grasp] preprocess: %v | groups: %v | clear: %v | commit: %v | process: %v | total: %v\n",
		stats.preprocessTime, stats.groupTime, stats.clearTime,
		stats.commitTime, stats.processTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[grasp] hover +%d/-%d | select +%d/-%d\n",
		stats.hoverEnters, stats.hoverExits, stats.selectEnters, stats.selectExits)
}
