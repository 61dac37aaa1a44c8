package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the annotations of a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}
	opts.docOpts.register(cmd)
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts resolveOpts) error {
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(input)
	popts.Refresh = opts.cache.refresh
	report, problems, _, err := runner.Resolve(ctx, popts)
	if err != nil {
		return err
	}
	reportProblems(problems)
	if len(report.Annotations) == 0 {
		printInfo("%s has no annotations", input)
		return nil
	}

	_, err = tea.NewProgram(NewAnnotationListModel(report), tea.WithContext(ctx)).Run()
	return err
}
