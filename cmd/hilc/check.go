package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/app"
	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/service"
)

// CheckCommand runs a compile with CI-friendly, minimal output:
// diagnostics are printed only when the compile does not succeed, and
// --quiet also suppresses the success line.
type CheckCommand struct {
	configPath string
	quiet      bool
}

func NewCheckCommand() *CheckCommand { return &CheckCommand{} }

func NewCheckCmd() *cobra.Command {
	c := NewCheckCommand()
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Quick compile check with CI-friendly output",
		Long: `Check compiles the given source files and reports only whether the
module graph resolved cleanly, matching the exit-code contract CI
pipelines expect.

Exit codes:
  0: the compile succeeded
  1: the compile did not succeed (its diagnostics are printed)
  2: the compile could not run at all (e.g. bad config)`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless the compile fails")
	return cmd
}

func (c *CheckCommand) run(cmd *cobra.Command, args []string) error {
	c.configPath, _ = cmd.Flags().GetString("config")

	uc := app.NewCompileUseCase(service.NewCompileService(nil), defaultParsers())
	result, _, err := uc.Execute(cmd.Context(), domain.CompileRequest{EntryPaths: args, ConfigPath: c.configPath})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "check failed to run: %v\n", err)
		os.Exit(2)
	}

	if !result.Succeeded {
		printDiagnostics(cmd, result.Diagnostics)
		fmt.Fprintln(cmd.ErrOrStderr(), "compile did not reach a fixed point")
		os.Exit(1)
	}

	if !c.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d module(s) resolved\n", result.ModuleCount)
	}
	return nil
}
