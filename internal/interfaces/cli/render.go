package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"plugseek.dev/cli/internal/core/catalog"
	"plugseek.dev/cli/internal/core/resolve"
)

// Output format names accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Width(16)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// validateOutput rejects --output values no renderer exists for
func validateOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected %s, %s, or %s)", format, OutputTable, OutputJSON, OutputYAML)
	}
}

// printUsageError reports a validation failure. It goes to stderr, styled,
// and the caller returns nil afterward: bad input is answered with help,
// not with a non-zero exit.
func printUsageError(cmd *cobra.Command, message string) {
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error:")+" "+message)
	fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// printError reports a failure that is not the user's fault, so no help
// hint is attached.
func printError(cmd *cobra.Command, message string) {
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error:")+" "+message)
}

// printNotice reports an uneventful outcome, like a search with no hits
func printNotice(w io.Writer, message string) {
	fmt.Fprintln(w, noticeStyle.Render(message))
}

// renderRecords writes the merged result list in the requested format.
// Table output carries an elapsed-time footer; json and yaml stay clean
// for piping.
func renderRecords(w io.Writer, records []catalog.Record, format string, elapsed time.Duration) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding records as json failed: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case OutputYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("encoding records as yaml failed: %w", err)
		}
		fmt.Fprint(w, string(data))
	case OutputTable:
		if len(records) == 0 {
			printNotice(w, "No plugins found.")
			return nil
		}
		fmt.Fprintln(w, recordsTable(records))
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d plugins in %s", len(records), elapsed.Round(time.Millisecond))))
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
	return nil
}

// renderRecord writes a single record in the requested format, as a detail
// view for tables.
func renderRecord(w io.Writer, record catalog.Record, format string) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding record as json failed: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case OutputYAML:
		data, err := yaml.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding record as yaml failed: %w", err)
		}
		fmt.Fprint(w, string(data))
	case OutputTable:
		renderDetail(w, record)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
	return nil
}

// recordsTable lays the records out with one numbered row each. The row
// number doubles as the picker index.
func recordsTable(records []catalog.Record) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Source", "Author", "Version", "Downloads", "Categories"})
	for i, r := range records {
		t.AppendRow(table.Row{
			i + 1,
			r.DisplayName,
			r.Source.Label(),
			r.Author,
			r.LatestVersion,
			formatCount(r.Downloads),
			strings.Join(r.Categories, ", "),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 32},
		{Number: 7, WidthMax: 28},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t.Render()
}

// renderDetail writes the full record, one labeled line per field
func renderDetail(w io.Writer, record catalog.Record) {
	fmt.Fprintln(w, titleStyle.Render(record.DisplayName))

	rows := []struct {
		label string
		value string
	}{
		{"ID", record.ID},
		{"Source", record.Source.Label()},
		{"Author", record.Author},
		{"Latest version", record.LatestVersion},
		{"Downloads", formatCount(record.Downloads)},
	}
	if len(record.Categories) > 0 {
		rows = append(rows, struct{ label, value string }{"Categories", strings.Join(record.Categories, ", ")})
	}
	if record.Description != "" {
		rows = append(rows, struct{ label, value string }{"Description", record.Description})
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(row.label), row.value)
	}
}

// reasonHeading turns the resolver's reason into the line printed above a
// candidate table.
func reasonHeading(reason resolve.Reason) string {
	switch reason {
	case resolve.ReasonExactNameCollision:
		return "Multiple plugins carry that exact name. Pick one by id:"
	case resolve.ReasonFuzzyMultipleGood:
		return "Several plugins are close matches. Narrow the name or pick by id:"
	case resolve.ReasonNoGoodMatch:
		return "No close match. Showing everything the catalogs returned:"
	default:
		return "Candidates:"
	}
}

// formatCount renders download counts the way the catalog sites do: 1.2k, 3.4M
func formatCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return strconv.Itoa(n)
	}
}
