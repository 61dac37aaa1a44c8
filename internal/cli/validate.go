package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var opts docOpts

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Report annotations a render would skip",
		Long: `Validate loads a chart document and checks every annotation against the
chart: unknown types, unknown axes or series, bad image URLs and anchors that
cannot be resolved. It exits non-zero when any problem is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, opts docOpts) error {
	popts := opts.options(input)
	l, err := pipeline.Load(popts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	w, problems, err := runner.Build(ctx, l, popts)
	if err != nil {
		return err
	}
	defer w.Dispose()

	if len(problems) == 0 {
		printSuccess("%s: %d annotations, no problems", input, len(l.Document.Annotations))
		return nil
	}
	reportProblems(problems)
	return errors.New(errors.ErrCodeInvalidDocument, "%s: %d problem(s)", input, len(problems))
}
