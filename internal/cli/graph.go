package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/pipeline"
)

// graphCommand creates the co-occurrence graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "graph [events]",
		Short: "Render which entities shared a band as a graph",
		Long: `Render the co-occurrence graph of an event file.

Each entity becomes a node; two entities are joined when they shared a band,
weighted by the number of time-slices they spent together. Formats are svg
(default), png, pdf and dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd.Context(), cmd, &flags, func(o *pipeline.Options) {
				o.VizType = pipeline.VizTypeNodelink
				if !cmd.Flags().Changed("format") {
					o.Formats = []string{pipeline.FormatSVG}
				}
			})
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
	flags.bindGraph(cmd)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, dot (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(pipeline.VizTypeNodelink))
	cmd.Flags().Float64Var(&flags.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG pixel density")

	return cmd
}
