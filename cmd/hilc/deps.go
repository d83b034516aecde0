package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/app"
	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/service"
)

// DepsCommand exposes spec.md §6's `dependencies(uid, recursive)` as
// `hilc deps`.
type DepsCommand struct {
	configPath string
	target     string
	recursive  bool
	asJSON     bool
}

func NewDepsCommand() *DepsCommand { return &DepsCommand{} }

func NewDepsCmd() *cobra.Command {
	c := NewDepsCommand()
	cmd := &cobra.Command{
		Use:   "deps [paths...]",
		Short: "List a module's dependencies after compiling its entry set",
		Long: `Deps compiles the given entry paths and reports which modules the
target module (the last path given, or --target) depends on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().StringVar(&c.target, "target", "", "Module path to report on (default: last entry path)")
	cmd.Flags().BoolVar(&c.recursive, "recursive", false, "Include transitive dependencies")
	cmd.Flags().BoolVar(&c.asJSON, "json", false, "Print as JSON")
	return cmd
}

func (c *DepsCommand) run(cmd *cobra.Command, args []string) error {
	c.configPath, _ = cmd.Flags().GetString("config")
	target := c.target
	if target == "" {
		target = args[len(args)-1]
	}

	compileUC := app.NewCompileUseCase(service.NewCompileService(nil), defaultParsers())
	depsUC := app.NewDepsUseCase(compileUC)

	result, err := depsUC.Execute(cmd.Context(), domain.DepsRequest{
		EntryPaths: args,
		ConfigPath: c.configPath,
		TargetPath: target,
		Recursive:  c.recursive,
	})
	if err != nil {
		return err
	}
	if !result.Succeeded {
		printDiagnostics(cmd, result.Diagnostics)
		os.Exit(1)
	}

	if c.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if len(result.Dependencies) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no dependencies\n", result.Target)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s depends on:\n", result.Target)
	for _, d := range result.Dependencies {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
	}
	return nil
}
