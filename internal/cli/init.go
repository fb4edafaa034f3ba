package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/config"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

// initCommand creates the command that writes a settings file.
func (c *CLI) initCommand() *cobra.Command {
	var (
		output string
		force  bool
		flags  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.DefaultFile + " with the current settings",
		Long: `Write a settings file holding the defaults plus any flags given.

Later commands in the same directory pick the file up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			opts := config.Default().Options()
			flags.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if err := config.FromOptions(opts).Write(output); err != nil {
				return err
			}

			printSuccess("Settings written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultFile, "settings file to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	flags.bindFields(cmd)
	flags.bindLayout(cmd)
	flags.bindGeometry(cmd)
	flags.bindRender(cmd, pipeline.FormatSVG)
	flags.bindGraph(cmd)

	return cmd
}
