package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/pipeline"
)

// maxExclusions is how many excluded records are listed individually.
const maxExclusions = 10

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [events]",
		Short: "Compute bands and storylines from an event file",
		Long: `Compute bands and storylines from an event file.

The event file is JSON, YAML or CSV with one record per (entity, time, group)
observation. The layout is written as JSON (same format as 'render -f json')
to <events>.layout.json and summarized as a band table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd.Context(), cmd, &flags, func(o *pipeline.Options) {
				o.VizType = pipeline.VizTypeStoryline
				o.Formats = []string{pipeline.FormatJSON}
			})
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <events>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.bindFields(cmd)
	flags.bindLayout(cmd)
	flags.bindGeometry(cmd)
	cmd.Flags().BoolVar(&flags.payloads, "payloads", false, "include source records in the output")

	return cmd
}

// runLayout loads the events, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	records, err := loadRecords(ctx, input)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, records, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if res.Layout.Empty() {
		printWarning("No usable events in %s", input)
	} else {
		fmt.Println(bandTable(res.Layout))
	}
	printExclusions(res.Layout.Excluded, maxExclusions)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats, res.CacheInfo.RenderHit())
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
