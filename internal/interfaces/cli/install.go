package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInstallCommand creates the install command. Downloading is not built
// yet; the command validates its arguments and says what it would do.
func NewInstallCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "install <name>...",
		Short: "Install plugins (not implemented yet)",
		Long: `Install is a placeholder while the download pipeline is built out.
It accepts the same names search and info do and reports what it would
have installed.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args)
		},
	}
}

// runInstall prints the not-implemented notice for each requested plugin
func runInstall(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		printUsageError(cmd, "missing plugin name(s) to install")
		return nil
	}

	out := cmd.OutOrStdout()
	printNotice(out, "Installing is not implemented yet.")
	for _, name := range args {
		fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("would install"), name)
	}
	fmt.Fprintln(out, dimStyle.Render("Resolve names first with 'plugseek info <name>'."))
	return nil
}
