package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"plugseek.dev/cli/internal/application/services"
)

// SearchFlags holds command-line flags for the search command
type SearchFlags struct {
	Limit  int
	Source string
	Output string
}

// NewSearchCommand creates the search command
func NewSearchCommand(container *CLIContainer) *cobra.Command {
	flags := &SearchFlags{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the plugin catalogs",
		Long: `Search Spiget and Modrinth for plugins matching a free-text query.

The catalogs are queried concurrently and their answers merged into one
list, Spiget entries first.

Examples:
  plugseek search essentials
  plugseek search world edit --limit 5
  plugseek search chunky --source modrinth --output json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(container, cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.Limit, "limit", container.Config.Limit, "Maximum results per catalog")
	cmd.Flags().StringVar(&flags.Source, "source", container.Config.Source, "Catalog to search (all, spiget, modrinth)")
	cmd.Flags().StringVar(&flags.Output, "output", OutputTable, "Output format (table, json, yaml)")

	return cmd
}

// runSearch handles the search flow. Bad input prints a usage error and the
// process still exits zero; transport failures were already degraded to an
// empty contribution further down the stack.
func runSearch(container *CLIContainer, cmd *cobra.Command, args []string, flags *SearchFlags) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		printUsageError(cmd, "missing search query")
		return nil
	}
	if flags.Limit <= 0 {
		printUsageError(cmd, fmt.Sprintf("--limit must be positive, got %d", flags.Limit))
		return nil
	}
	sel, err := services.ParseSourceSelector(flags.Source)
	if err != nil {
		printUsageError(cmd, err.Error())
		return nil
	}
	if err := validateOutput(flags.Output); err != nil {
		printUsageError(cmd, err.Error())
		return nil
	}

	started := time.Now()
	records, err := container.SearchService.Search(cmd.Context(), query, flags.Limit, sel)
	if err != nil {
		printError(cmd, err.Error())
		return nil
	}

	return renderRecords(cmd.OutOrStdout(), records, flags.Output, time.Since(started))
}
