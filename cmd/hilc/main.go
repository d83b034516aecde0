package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hilc",
	Short: "A pass driver for the HIL/SPD AST processing core",
	Long: `hilc is a thin CLI over the HIL/SPD compiler core's module
registry and pass driver.

Its subcommands compile an entry set of source files to a fixed point
(build, check), list a module's dependencies (deps), write a starter
config (init) and print version information (version). Dumping a
resolved module's AST is not a subcommand.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Driver configuration file (.hilc.toml or .hilc.yaml)")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
