package domain

// DumpRequest is the CLI/MCP-facing input to spec.md §6's `dumpAST`
// debug facility: compile EntryPaths, then serialize TargetPath's
// resolved module tree under DumpDir.
type DumpRequest struct {
	EntryPaths []string `json:"entry_paths" yaml:"entry_paths"`
	ConfigPath string   `json:"config_path,omitempty" yaml:"config_path,omitempty"`
	TargetPath string   `json:"target_path" yaml:"target_path"`
	DumpDir    string   `json:"dump_dir" yaml:"dump_dir"`
}

// DumpResult reports where the dump's .txt/.yaml pair was written.
type DumpResult struct {
	Target      string       `json:"target" yaml:"target"`
	TextPath    string       `json:"text_path,omitempty" yaml:"text_path,omitempty"`
	YAMLPath    string       `json:"yaml_path,omitempty" yaml:"yaml_path,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Succeeded   bool         `json:"succeeded" yaml:"succeeded"`
}
