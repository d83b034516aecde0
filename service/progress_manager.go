// Package service orchestrates the compiler core for CLI and MCP
// callers: it owns the module.Registry/driver.Driver lifecycle for one
// compile run, and implements domain.ProgressReporter on top of
// github.com/schollz/progressbar/v3, the same pairing the teacher uses
// in service/progress_manager.go, gated the same way on an interactive
// terminal check via golang.org/x/term.
package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/hilcore/hilc/domain"
)

// ProgressManager implements domain.ProgressReporter, drawing a bar per
// (plugin, step) pair when stderr is an interactive terminal, and
// logging plain transition lines otherwise (CI, piped output).
type ProgressManager struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
	label       string
}

// NewProgressManager creates a ProgressManager writing to stderr.
func NewProgressManager() *ProgressManager {
	return &ProgressManager{
		writer:      os.Stderr,
		interactive: isInteractiveEnvironment(),
	}
}

// StartStep implements domain.ProgressReporter.
func (pm *ProgressManager) StartStep(plugin, step string, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.label = fmt.Sprintf("%s:%s", plugin, step)
	if pm.interactive {
		pm.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(pm.label),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetWriter(pm.writer),
			progressbar.OptionClearOnFinish(),
		)
		return
	}
	fmt.Fprintf(pm.writer, "-- %s (%d)\n", pm.label, total)
}

// Advance implements domain.ProgressReporter.
func (pm *ProgressManager) Advance(n int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.bar != nil {
		_ = pm.bar.Add(n)
	}
}

// FinishStep implements domain.ProgressReporter.
func (pm *ProgressManager) FinishStep() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.bar != nil {
		_ = pm.bar.Finish()
		pm.bar = nil
	}
}

var _ domain.ProgressReporter = (*ProgressManager)(nil)

// isInteractiveEnvironment reports whether stderr is an interactive TTY
// and CI isn't set, matching the teacher's isInteractiveEnvironment.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	if f, ok := os.Stderr.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
