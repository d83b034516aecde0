package main

import (
	"github.com/spf13/cobra"

	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/service"
)

// progressReporter returns the service.ProgressManager the build command
// drives its compile through, drawing a bar on interactive terminals and
// plain log lines otherwise. check and deps run without a reporter.
func progressReporter(cmd *cobra.Command) domain.ProgressReporter {
	return service.NewProgressManager()
}
