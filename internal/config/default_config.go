package config

// DefaultConfigTOML is the annotated starter configuration `hilc init`
// writes out, the same role the teacher's config.DefaultConfigTOML plays
// for `pyscn init`.
const DefaultConfigTOML = `# hilc driver configuration.
# Generated by "hilc init". Uncomment and edit as needed.

# Extra module search directories, doublestar glob patterns allowed.
# search_dirs = ["./lib/**"]

# Bound on resolve-loop iterations before the driver reports
# ResolverDiverged (default: 50).
# iteration_cap = 50

# Stop after the first fatal diagnostic instead of collecting every
# parse/import failure (default: true).
# fail_fast = true

# Named debug streams to activate (e.g. "ast-stats", "resolver", "ast-dump").
# debug_streams = []

# Destination directory for iteration dumps when "ast-dump" is active.
# dump_dir = ""

# Process-extensions in the order plugins should run.
# plugin_order = ["hil", "spd"]
`
