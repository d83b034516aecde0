package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/app"
	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/service"
)

// BuildCommand runs a full compile (parseSource over every entry path,
// then processAST) and reports diagnostics.
type BuildCommand struct {
	configPath string
	debugMode  bool
}

func NewBuildCommand() *BuildCommand { return &BuildCommand{} }

func NewBuildCmd() *cobra.Command {
	c := NewBuildCommand()
	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Parse and resolve a set of HIL/SPD source files",
		Long: `Build parses every given source file, registers its module, and
runs the pass driver's fixed-point resolve loop to completion.

Exit codes:
  0: compiled with no fatal diagnostics
  1: compile failed (parse error, unresolved name, divergence, ...)`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().BoolVar(&c.debugMode, "debug", false, "Run the driver's idassign pass in debug mode")
	return cmd
}

func (c *BuildCommand) run(cmd *cobra.Command, args []string) error {
	c.configPath, _ = cmd.Flags().GetString("config")

	uc := app.NewCompileUseCase(service.NewCompileService(progressReporter(cmd)), defaultParsers())
	result, _, err := uc.Execute(cmd.Context(), domain.CompileRequest{
		EntryPaths: args,
		ConfigPath: c.configPath,
		DebugMode:  c.debugMode,
	})
	if err != nil {
		return err
	}

	printDiagnostics(cmd, result.Diagnostics)
	fmt.Fprintf(cmd.OutOrStdout(), "%d module(s) compiled in %s\n", result.ModuleCount, result.Duration)

	if !result.Succeeded {
		os.Exit(1)
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, diags []domain.Diagnostic) {
	for _, d := range diags {
		prefix := string(d.Severity)
		if d.Location != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", prefix, d.Location, d.Message)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", prefix, d.Message)
		}
	}
}
