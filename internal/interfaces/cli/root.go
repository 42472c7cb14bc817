package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"plugseek.dev/cli/internal/application/services"
	"plugseek.dev/cli/internal/config"
	"plugseek.dev/cli/internal/logging"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	SearchService *services.SearchService
	Config        *config.Config
	Logger        *slog.Logger
	LogLevel      *slog.LevelVar
}

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "plugseek",
		Short: "plugseek - Minecraft plugin search across Spiget and Modrinth",
		Long: `plugseek searches the Spiget and Modrinth plugin catalogs from one place,
merges what they return, and narrows ambiguous names down to the plugin
you meant.

Both catalogs are queried concurrently and every response is cached for
five minutes, so repeated lookups stay fast and gentle on the upstream
APIs. A catalog that cannot be reached simply contributes nothing.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugFlag, _ := cmd.Flags().GetBool(logging.DebugFlagName); debugFlag {
				container.LogLevel.Set(slog.LevelDebug)
			}
		},
	}

	// Set custom version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	logging.RegisterFlags(rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(NewSearchCommand(container))
	rootCmd.AddCommand(NewInfoCommand(container))
	rootCmd.AddCommand(NewInstallCommand(container))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context, container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
