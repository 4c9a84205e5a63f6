package cmd

import (
	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for wave. Collection and request names are
completed from the collection directory.

Bash:
  $ source <(wave completion bash)

Zsh:
  $ wave completion zsh > "${fpath[1]}/_wave"

Fish:
  $ wave completion fish > ~/.config/fish/completions/wave.fish

PowerShell:
  PS> wave completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	collectionCmd.ValidArgsFunction = completeCollectionRequest
	listCmd.ValidArgsFunction = completeCollectionRequest
	validateCmd.ValidArgsFunction = completeCollectionNames
}

func completionLoader() *collection.Loader {
	return collection.NewLoader(dirFlag)
}

// completeCollectionNames offers every collection in the directory.
func completeCollectionNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names, err := completionLoader().List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeCollectionRequest completes the collection name first, then the
// request names inside it. list takes only the collection.
func completeCollectionRequest(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch {
	case len(args) == 0:
		return completeCollectionNames(cmd, args, toComplete)
	case len(args) == 1 && cmd != listCmd:
		coll, err := completionLoader().Load(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return coll.RequestNames(), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
