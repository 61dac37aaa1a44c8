package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/pipeline"
)

// docOpts holds the flags shared by every command that loads a document.
type docOpts struct {
	theme     string // theme name overriding the document
	themeFile string // theme file overriding the document
	strict    bool   // fail on validation problems
}

func (o *docOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.theme, "theme", "", "theme name (overrides the document)")
	cmd.Flags().StringVar(&o.themeFile, "theme-file", "", "theme file (overrides the document)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail when an annotation cannot be placed")

	cmd.ValidArgsFunction = completeDocument
	_ = cmd.RegisterFlagCompletionFunc("theme", completeThemes)
	_ = cmd.MarkFlagFilename("theme-file", "yaml", "yml")
}

// options returns pipeline options for the document at path.
func (o *docOpts) options(path string) pipeline.Options {
	return pipeline.Options{
		DocumentPath: path,
		Theme:        o.theme,
		ThemeFile:    o.themeFile,
		Strict:       o.strict,
	}
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	docOpts
	cache       cacheFlags
	output      string  // output file path (or base path for multiple outputs)
	formats     string  // comma-separated output formats
	scale       float64 // PNG scale factor
	interactive bool    // embed hover and drag styling in SVG output
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an annotated chart to SVG, PNG, PDF or JSON",
		Long: `Render loads a chart document (JSON, YAML or TOML), places its annotations
and writes one file per requested format.

With a single format, --output names the file ("-" writes to stdout).
With several formats, --output is a base path and the format is appended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	opts.docOpts.register(cmd)
	opts.cache.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover and drag styling in SVG output")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	formats := pipeline.ParseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(input)
	popts.Formats = formats
	popts.Scale = opts.scale
	popts.Interactive = opts.interactive
	popts.Refresh = opts.cache.refresh

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, popts)
	if result != nil {
		reportProblems(result.Problems)
	}
	if err != nil {
		return err
	}
	prog.done("Rendered "+input, "formats", strings.Join(formats, ","))

	for _, format := range formats {
		path := outputPath(opts.output, input, format, len(formats) > 1)
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		if path != "-" {
			printArtifact(path, len(result.Artifacts[format]))
		}
	}
	printStats(result.Stats.Annotations, result.Stats.Drawn, result.CacheInfo.RenderHit)
	return nil
}

// outputPath picks the file a format is written to. Without an explicit
// output the input name is reused with the format as extension; with
// several formats the output is a base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// reportProblems prints validation problems as warnings.
func reportProblems(problems errors.List) {
	for _, p := range problems {
		printProblem(p)
	}
}
