package domain

import "time"

// Severity classifies a Diagnostic's importance.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

// Diagnostic is one reportable event from a compile run: a parse error,
// an unresolved name, a validation failure, or a purely informational
// note from a debug stream promoted to user-facing output.
type Diagnostic struct {
	Location string   `json:"location,omitempty" yaml:"location,omitempty"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"`
}

// CompileRequest is the CLI/MCP-facing input to a compile run (spec.md
// §6's external interface, SPEC_FULL.md §6).
type CompileRequest struct {
	EntryPaths []string `json:"entry_paths" yaml:"entry_paths"`
	ConfigPath string   `json:"config_path,omitempty" yaml:"config_path,omitempty"`
	DebugMode  bool     `json:"debug_mode,omitempty" yaml:"debug_mode,omitempty"`
}

// CompileResult is the CLI/MCP-facing output of a compile run.
type CompileResult struct {
	Diagnostics []Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
	Succeeded   bool          `json:"succeeded" yaml:"succeeded"`
	ModuleCount int           `json:"module_count" yaml:"module_count"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// ProgressReporter abstracts the per-plugin, per-step progress surface
// spec.md §5 describes, implemented by service.ProgressManager on top
// of github.com/schollz/progressbar/v3 for interactive terminals, and
// trivially as a no-op for programmatic (MCP) callers.
type ProgressReporter interface {
	StartStep(plugin, step string, total int)
	Advance(n int)
	FinishStep()
}

// NoopProgressReporter discards every call; the default for non-CLI
// callers that don't want terminal output.
type NoopProgressReporter struct{}

func (NoopProgressReporter) StartStep(plugin, step string, total int) {}
func (NoopProgressReporter) Advance(n int)                            {}
func (NoopProgressReporter) FinishStep()                              {}
