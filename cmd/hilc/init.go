package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/internal/config"
)

// InitCommand writes a starter .hilc.toml in the current directory.
type InitCommand struct {
	force      bool
	configPath string
}

func NewInitCommand() *InitCommand {
	return &InitCommand{configPath: ".hilc.toml"}
}

func NewInitCmd() *cobra.Command {
	c := NewInitCommand()
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .hilc.toml configuration file",
		RunE:  c.run,
	}
	cmd.Flags().BoolVarP(&c.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVar(&c.configPath, "path", ".hilc.toml", "Configuration file path")
	return cmd
}

func (c *InitCommand) run(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(c.configPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !c.force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	rel, err := filepath.Rel(".", path)
	if err != nil {
		rel = path
	}
	fmt.Fprintf(cmd.OutOrStdout(), "configuration file created: %s\n", rel)
	return nil
}
