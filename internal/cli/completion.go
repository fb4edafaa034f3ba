package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/pipeline"
)

// completionCommand prints the completion script for a shell. Chart flags
// with a fixed set of values complete those values too.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for storyline.

Besides commands and flags, the scripts complete the values of --format and
--recurring.

Bash:
  $ source <(storyline completion bash)

Zsh (with compinit enabled):
  $ storyline completion zsh > "${fpath[1]}/_storyline"

Fish:
  $ storyline completion fish > ~/.config/fish/completions/storyline.fish

PowerShell:
  PS> storyline completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes the comma-separated --format list with the
// formats of viz that are not listed yet.
func completeFormats(viz string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix, listed := "", []string(nil)
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
			listed = strings.Split(toComplete[:i], ",")
		}
		var out []string
		for _, f := range slices.Sorted(maps.Keys(pipeline.ValidFormats[viz])) {
			if !slices.Contains(listed, f) {
				out = append(out, prefix+f)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

func completeRecurring(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"merge\tone band per group",
		"split\ta new band each time a group reappears",
	}, cobra.ShellCompDirectiveNoFileComp
}
