package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ratioplot/pkg/pipeline"
)

// Keywords offered when completing --option and --draw-option.
var (
	optionWords = []string{
		"divsym\tplain ratio",
		"pois\tratio with asymmetric Poisson errors",
		"diff\tdifference",
		"diffsig\tdifference over error",
		"errasym\tasymmetric errors",
		"errfunc\terrors from the fitted function",
	}
	drawOptionWords = []string{
		"grid", "nogrid", "confint", "noconfint",
		"hideup", "hidelow", "fhideup", "fhidelow", "nohide",
	}
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ratioplot.

Besides command names the scripts complete histogram documents (.json,
.yaml, .yml) for render and view, TOML files for --style, output formats
for --format, and the keywords accepted by --option and --draw-option.

To load completions:

Bash:
  $ source <(ratioplot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ratioplot completion bash > /etc/bash_completion.d/ratioplot
  # macOS:
  $ ratioplot completion bash > $(brew --prefix)/etc/bash_completion.d/ratioplot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ratioplot completion zsh > "${fpath[1]}/_ratioplot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ratioplot completion fish | source

  # To load completions for each session, execute once:
  $ ratioplot completion fish > ~/.config/fish/completions/ratioplot.fish

PowerShell:
  PS> ratioplot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> ratioplot completion powershell > ratioplot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeDocuments limits positional completion to histogram documents.
func completeDocuments(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerPlotCompletions wires completion for the flags shared by render
// and view. Flags missing from cmd are skipped.
func registerPlotCompletions(cmd *cobra.Command) {
	words := func(list []string) cobra.CompletionFunc {
		return cobra.FixedCompletions(list, cobra.ShellCompDirectiveNoFileComp)
	}
	completions := map[string]cobra.CompletionFunc{
		"option":      words(optionWords),
		"draw-option": words(drawOptionWords),
		"format":      words([]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}),
		"style": func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
		},
	}
	for name, fn := range completions {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, fn)
	}
}
