package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plugseek.dev/cli/internal/application/services"
	"plugseek.dev/cli/internal/core/catalog"
)

// InfoFlags holds command-line flags for the info command
type InfoFlags struct {
	ID     string
	Limit  int
	Source string
	Output string
	Pick   bool
}

// NewInfoCommand creates the info command
func NewInfoCommand(container *CLIContainer) *cobra.Command {
	flags := &InfoFlags{}

	cmd := &cobra.Command{
		Use:   "info [name]",
		Short: "Show one plugin, resolving ambiguous names",
		Long: `Look a plugin up by name and show its details.

The name is resolved against both catalogs. A single confident match is
shown directly; when several plugins fit, they are listed along with the
reason they could not be told apart, and --pick turns that list into an
interactive chooser. A known id skips resolution entirely.

Examples:
  plugseek info essentials
  plugseek info vault --pick
  plugseek info --id 9089 --source spiget`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(container, cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ID, "id", "", "Fetch by source-native id instead of by name")
	cmd.Flags().IntVar(&flags.Limit, "limit", container.Config.Limit, "Maximum results per catalog while resolving")
	cmd.Flags().StringVar(&flags.Source, "source", container.Config.Source, "Catalog to consult (all, spiget, modrinth)")
	cmd.Flags().BoolVar(&flags.Pick, "pick", false, "Choose interactively when several plugins match")
	cmd.Flags().StringVar(&flags.Output, "output", OutputTable, "Output format (table, json, yaml)")

	return cmd
}

// runInfo handles the info flow, dispatching between name resolution and
// the direct id lookup.
func runInfo(container *CLIContainer, cmd *cobra.Command, args []string, flags *InfoFlags) error {
	if err := validateOutput(flags.Output); err != nil {
		printUsageError(cmd, err.Error())
		return nil
	}

	if flags.ID != "" {
		return runInfoByID(container, cmd, flags)
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		printUsageError(cmd, "missing plugin name (or --id together with --source)")
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

	outcome, _, err := container.SearchService.Locate(cmd.Context(), query, flags.Limit, sel)
	if err != nil {
		printError(cmd, err.Error())
		return nil
	}

	out := cmd.OutOrStdout()
	switch {
	case outcome.IsSingleMatch():
		return renderRecord(out, outcome.Match, flags.Output)

	case outcome.IsCandidateSet():
		if flags.Pick && flags.Output == OutputTable {
			record, err := runPicker(outcome.Candidates)
			if err != nil {
				return err
			}
			if record == nil {
				printNotice(out, "Nothing picked.")
				return nil
			}
			renderDetail(out, *record)
			return nil
		}
		if flags.Output != OutputTable {
			return renderRecords(out, outcome.Candidates, flags.Output, 0)
		}
		printNotice(out, reasonHeading(outcome.Reason))
		fmt.Fprintln(out, recordsTable(outcome.Candidates))
		return nil

	default:
		if flags.Output != OutputTable {
			return renderRecords(out, []catalog.Record{}, flags.Output, 0)
		}
		printNotice(out, fmt.Sprintf("No plugins found for %q.", query))
		return nil
	}
}

// runInfoByID fetches one record straight from the named catalog
func runInfoByID(container *CLIContainer, cmd *cobra.Command, flags *InfoFlags) error {
	src, err := catalog.ParseSourceID(strings.ToLower(strings.TrimSpace(flags.Source)))
	if err != nil {
		printUsageError(cmd, "--id needs a concrete --source (spiget or modrinth)")
		return nil
	}

	record, err := container.SearchService.FetchByID(cmd.Context(), flags.ID, src)
	if err != nil {
		printError(cmd, err.Error())
		return nil
	}
	if record == nil {
		printNotice(cmd.OutOrStdout(), fmt.Sprintf("%s has no plugin with id %q.", src.Label(), flags.ID))
		return nil
	}

	return renderRecord(cmd.OutOrStdout(), *record, flags.Output)
}
