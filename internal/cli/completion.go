package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/streamshub/alignreport/pkg/filter"
	"github.com/streamshub/alignreport/pkg/pom"
	"github.com/streamshub/alignreport/pkg/render"
	"github.com/streamshub/alignreport/pkg/report"
)

var mavenScopes = []string{filter.ScopeCompile, filter.ScopeRuntime, filter.ScopeTest, filter.ScopeProvided, filter.ScopeSystem}

// completionCommand prints a shell completion script. Besides subcommands
// and flags, the scripts complete report and diagram formats, Maven scopes
// and the module names of the reactor being analyzed.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Completion prints a completion script for the given shell.

  $ source <(alignreport completion bash)
  $ alignreport completion zsh > "${fpath[1]}/_alignreport"
  $ alignreport completion fish > ~/.config/fish/completions/alignreport.fish
  PS> alignreport completion powershell | Out-String | Invoke-Expression

With completion loaded, --exclude-modules and --tree offer the artifactIds of
the reactor named on the command line (pom.xml by default).`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
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
}

// completePOM restricts the positional argument to XML files.
func completePOM(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"xml"}, cobra.ShellCompDirectiveFilterFileExt
}

// reactorModules lists the artifactIds of the reactor named by args.
func reactorModules(args []string) []string {
	pomPath := defaultPOM
	if len(args) > 0 {
		pomPath = args[0]
	}
	projects, err := pom.Reactor(pomPath)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.ArtifactID)
	}
	return names
}

// completeModuleList completes the last element of a comma-separated module
// list, skipping modules already named.
func completeModuleList(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	named := map[string]bool{}
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		prefix = toComplete[:i+1]
		for _, m := range strings.Split(toComplete[:i], ",") {
			named[strings.TrimSpace(m)] = true
		}
	}
	var out []string
	for _, m := range reactorModules(args) {
		if !named[m] {
			out = append(out, prefix+m)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeTree offers "module=" prefixes; once one is typed, saved tree files.
func completeTree(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.Contains(toComplete, "=") {
		return []string{"json", "txt"}, cobra.ShellCompDirectiveFilterFileExt
	}
	var out []string
	for _, m := range reactorModules(args) {
		out = append(out, m+"=")
	}
	return out, cobra.ShellCompDirectiveNoSpace
}

func diagramFormats() []string {
	out := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		out[i] = string(f)
	}
	return out
}

func registerAnalyzeCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completePOM
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(report.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("graph-format", cobra.FixedCompletions(diagramFormats(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("scope", cobra.FixedCompletions(mavenScopes, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("exclude-modules", completeModuleList)
	_ = cmd.RegisterFlagCompletionFunc("tree", completeTree)
	_ = cmd.MarkFlagFilename("config", "toml")
}

func registerTreeCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completePOM
	_ = cmd.RegisterFlagCompletionFunc("scope", cobra.FixedCompletions(mavenScopes, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagFilename("from", "json", "txt")
}
