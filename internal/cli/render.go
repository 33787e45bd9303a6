package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats: "svg", "png", "pdf", "json"
	option     string   // comparison option, e.g. "diffsig errasym"
	drawOption string   // draw option, e.g. "nogrid hideup"
	style      string   // TOML style file
	width      float64  // surface width in pixels
	height     float64  // surface height in pixels
	noCache    bool     // disable the render cache
	refresh    bool     // ignore cached artifacts
}

// renderCommand creates the render command for generating plot files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a histogram document to SVG, PNG, PDF or JSON",
		Long: `Render a histogram document (JSON or YAML) as a two-panel comparison plot.

The upper panel shows the primary histogram (or stack) with the secondary
histogram or the fitted function. The lower panel shows the comparison
selected by --option: ratio (default), diff, diffsig or pois. Documents
without a secondary histogram show fit residuals.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.option, "option", "", "comparison option: divsym (default), diff, diffsig, pois, plus errasym or errfunc")
	cmd.Flags().StringVar(&opts.drawOption, "draw-option", "", "draw option: grid, nogrid, confint, noconfint, hideup, hidelow, fhideup, fhidelow, nohide")
	cmd.Flags().StringVar(&opts.style, "style", "", "TOML style file")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	registerPlotCompletions(cmd)

	return cmd
}

// runRender executes the pipeline for one input file and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	style, err := loadStyle(opts.style)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       data,
		InputFormat: rpio.FormatFromPath(input),
		Option:      opts.option,
		DrawOption:  opts.drawOption,
		Width:       opts.width,
		Height:      opts.height,
		Formats:     opts.formats,
		Style:       style,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(input)))

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Bins, result.Stats.Points, result.CacheInfo.RenderHit)
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	if result.CacheInfo.RenderHit {
		printDetail("served from cache; pass --refresh to re-render")
	}
	printNextStep("Browse interactively", appName+" view "+input)
	return nil
}

// outputPaths maps each format to a file path. A single format writes to
// output as given; several formats share a base path with per-format
// extensions.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
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
