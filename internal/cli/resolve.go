package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/pkg/render/sink"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	docOpts
	cache  cacheFlags
	asJSON bool // print the report as JSON
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Print where every annotation of a document lands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args[0], opts)
		},
	}

	opts.docOpts.register(cmd)
	opts.cache.register(cmd)
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the placement report as JSON")

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, input string, opts resolveOpts) error {
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(input)
	popts.Refresh = opts.cache.refresh
	report, problems, cached, err := runner.Resolve(ctx, popts)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("resolved annotations", "count", len(report.Annotations), "cached", cached)

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(placementTable(report.Annotations).Render())
	reportProblems(problems)

	drawn := 0
	for _, a := range report.Annotations {
		if a.Drawn {
			drawn++
		}
	}
	printStats(len(report.Annotations), drawn, cached)
	return nil
}

// placementTable renders placements as a table, one row per annotation.
// Undefined coordinates show as a dash.
func placementTable(items []sink.Placement) *table.Table {
	rows := make([][]string, 0, len(items))
	for i, a := range items {
		drawn := iconSkipped
		if a.Drawn {
			drawn = iconDrawn
		}
		rows = append(rows, []string{placementName(a, i), a.Type, coord(a.X), coord(a.Y), dash(a.Pane), drawn, plaqueBox(a)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Type", "X", "Y", "Pane", "Drawn", "Plaque").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < 0 || row >= len(items) {
				return lipgloss.NewStyle()
			}
			if !items[row].Drawn {
				if col == 5 {
					return StyleWarning
				}
				return StyleDim
			}
			if col == 5 {
				return StyleSuccess
			}
			return StyleValue
		})
}
