package main

import (
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/module/testparser"
)

// defaultParsers returns the parse-extension -> SourceParser map this CLI
// registers on its module.Registry. The core ships no real grammar
// (SPEC_FULL.md §6) — internal/module/testparser's s-expression fixture
// format is the only SourceParser in this repository, so it's what the
// CLI wires up until a real front end is plugged in.
func defaultParsers() map[string]module.SourceParser {
	return map[string]module.SourceParser{".hilfix": testparser.New()}
}
