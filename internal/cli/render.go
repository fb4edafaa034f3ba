package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [events]",
		Short: "Render an event file as a storyline chart",
		Long: `Render an event file as a storyline chart.

Formats are svg (default), png, pdf and json. PNG and PDF output requires
rsvg-convert on the PATH. With one format, -o names the output file; with
several, -o is the base path and each format adds its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.bindFields(cmd)
	flags.bindLayout(cmd)
	flags.bindGeometry(cmd)
	flags.bindRender(cmd, pipeline.FormatSVG)

	return cmd
}

// runRender renders the event file and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	records, err := loadRecords(ctx, input)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}
	return c.renderRecords(ctx, records, input, opts, output, noCache)
}

// renderRecords runs the pipeline over records and writes the artifacts
// next to input unless output says otherwise.
func (c *CLI) renderRecords(ctx context.Context, records []dataset.Record, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if slices.Contains(opts.Formats, pipeline.FormatPNG) || slices.Contains(opts.Formats, pipeline.FormatPDF) {
		spinner = newSpinnerWithContext(ctx, "Rendering "+opts.VizType+"...")
		spinner.Start()
	}

	res, err := runner.Execute(ctx, records, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}

	printExclusions(res.Layout.Excluded, maxExclusions)
	printSuccess("Rendered %s", opts.VizType)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats, res.CacheInfo.RenderHit())
	return nil
}

// writeArtifacts writes each format to disk and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			path = basePath(output, input) + "." + format
		}
		if slices.Contains(paths, path) {
			continue
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
