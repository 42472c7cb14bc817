package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plugseek version %s\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
				Version, BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
