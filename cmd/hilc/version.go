package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/internal/version"
)

// VersionCommand prints build/version metadata.
type VersionCommand struct {
	short bool
}

func NewVersionCommand() *VersionCommand { return &VersionCommand{} }

func NewVersionCmd() *cobra.Command {
	v := NewVersionCommand()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE:  v.run,
	}
	cmd.Flags().BoolVarP(&v.short, "short", "s", false, "Show only the version number")
	return cmd
}

func (v *VersionCommand) run(cmd *cobra.Command, args []string) error {
	if v.short {
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	return nil
}
