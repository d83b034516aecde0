// Package debugstream implements the named diagnostic channels of
// spec.md §6 ("ast-stats", "resolver", "declarations", ...) plus the
// iteration-dump facility of SPEC_FULL.md §4.8a. It mirrors the way the
// teacher wires `log.SetOutput`/`log.SetFlags` for its own diagnostic
// output in cmd/pyscn-mcp/main.go, generalized to multiple independently
// enabled channels instead of one global logger.
package debugstream

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hilcore/hilc/internal/ast"
)

// Channel is one named diagnostic stream. Channels are configured once
// at startup and are immutable afterward (spec.md §6).
type Channel struct {
	name   string
	logger *log.Logger
}

// Registry owns every configured channel, keyed by name.
type Registry struct {
	channels map[string]*Channel
	dumpDir  string
}

// NewRegistry creates a Registry with exactly the channels named in
// activeNames active. Active names
// and dumpDir normally come from config.DriverConfig.
func NewRegistry(activeNames []string, sink io.Writer, dumpDir string) *Registry {
	if sink == nil {
		sink = os.Stderr
	}
	r := &Registry{channels: make(map[string]*Channel), dumpDir: dumpDir}
	for _, name := range activeNames {
		r.channels[name] = &Channel{
			name:   name,
			logger: log.New(sink, "["+name+"] ", log.LstdFlags|log.Lmicroseconds),
		}
	}
	return r
}

// Active reports whether the named channel was enabled at startup.
func (r *Registry) Active(name string) bool {
	_, ok := r.channels[name]
	return ok
}

// Logf writes a formatted line to the named channel. It is a silent
// no-op when that channel isn't active, so call sites never need to
// guard every call with Active().
func (r *Registry) Logf(name, format string, args ...interface{}) {
	ch, ok := r.channels[name]
	if !ok {
		return
	}
	ch.logger.Printf(format, args...)
}

// astDump is the YAML-serializable structural shape written alongside
// each iteration dump's human-readable text rendering.
type astDump struct {
	Kind       string            `yaml:"kind"`
	Name       string            `yaml:"name,omitempty"`
	Location   string            `yaml:"location,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Children   []*astDump        `yaml:"children,omitempty"`
}

func toDump(n *ast.Node) *astDump {
	if n == nil {
		return nil
	}
	d := &astDump{Kind: string(n.Kind), Name: n.Name}
	if !n.Location.IsZero() {
		d.Location = n.Location.String()
	}
	if len(n.Properties) > 0 {
		d.Properties = make(map[string]string, len(n.Properties))
		keys := make([]string, 0, len(n.Properties))
		for k := range n.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d.Properties[k] = fmt.Sprintf("%v", n.Properties[k])
		}
	}
	for _, c := range n.ChildrenOf(false) {
		d.Children = append(d.Children, toDump(c))
	}
	return d
}

// printText renders a human-readable indented tree, the dump's ".txt"
// half, mirroring the teacher's PrinterVisitor-style text output.
func printText(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	if n.Name != "" {
		fmt.Fprintf(w, "%s(%s)\n", n.Kind, n.Name)
	} else {
		fmt.Fprintf(w, "%s\n", n.Kind)
	}
	for _, c := range n.ChildrenOf(false) {
		printText(w, c, depth+1)
	}
}

// DumpIteration writes <dumpDir>/<plugin>-<round>-<tag>.txt and .yaml
// for root, the "_saveIterationAST" facility of spec.md §6. It is a
// no-op if no dump directory was configured or the "ast-dump" channel
// isn't active.
func (r *Registry) DumpIteration(plugin string, round int, tag string, root *ast.Node) error {
	if r.dumpDir == "" || !r.Active("ast-dump") {
		return nil
	}
	if err := os.MkdirAll(r.dumpDir, 0o755); err != nil {
		return err
	}
	base := filepath.Join(r.dumpDir, fmt.Sprintf("%s-%03d-%s", plugin, round, tag))

	if err := func() error {
		f, err := os.Create(base + ".txt")
		if err != nil {
			return err
		}
		defer f.Close()
		printText(f, root, 0)
		return nil
	}(); err != nil {
		return err
	}

	return func() error {
		f, err := os.Create(base + ".yaml")
		if err != nil {
			return err
		}
		defer f.Close()
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(toDump(root))
	}()
}
