package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/cache"
	"github.com/streamshub/alignreport/pkg/filter"
	"github.com/streamshub/alignreport/pkg/tree"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string // JSON file; empty writes to stdout
	from     string // convert a saved tree instead of running Maven
	scope    string // -Dscope for Maven, and the scope kept in the output
	excludes string // artifact exclusion tokens removed from the output
	mvn      string // Maven executable
	offline  bool   // run Maven offline
	noCache  bool   // bypass the tree cache
}

// treeCommand creates the tree command. Its output is accepted by
// "analyze --tree", so a tree resolved once can be analyzed repeatedly.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [pom.xml]",
		Short: "Resolve the dependency tree of a POM and save it as JSON",
		Long: `Tree resolves the dependency tree of a single POM with Maven and writes it in
the JSON format of the Maven dependency plugin. With --from it converts a
saved text tree (mvn dependency:tree output) instead. --scope and --excludes
remove the filtered dependencies, with their subtrees, from the saved tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pomPath := defaultPOM
			if len(args) == 1 {
				pomPath = args[0]
			}
			scope, err := filter.ParseScope(opts.scope)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			root, err := resolveTree(ctx, pomPath, &opts)
			if err != nil {
				return err
			}
			root = artifact.Prune(root, filter.Any(filter.ParseArtifacts(opts.excludes).NodeFilter(), scope.NodeFilter()))

			if opts.output == "" {
				return tree.WriteJSON(cmd.OutOrStdout(), root)
			}
			var buf bytes.Buffer
			if err := tree.WriteJSON(&buf, root); err != nil {
				return err
			}
			if err := writeFile(opts.output, buf.Bytes()); err != nil {
				return err
			}
			printSuccess("Saved tree of %s (%d nodes)", root.Artifact, artifact.Count(root))
			printFile(opts.output)
			printNextStep("Analyze it", fmt.Sprintf("%s analyze --tree %s", appName, opts.output))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVar(&opts.from, "from", "", "convert a saved text or JSON tree instead of running Maven")
	f.StringVar(&opts.scope, "scope", "", "only keep dependencies visible in this Maven scope")
	f.StringVar(&opts.excludes, "excludes", "", "comma-separated [groupId]:[artifactId]:[type]:[version] exclusions")
	f.StringVar(&opts.mvn, "mvn", "", "Maven executable (default: mvn)")
	f.BoolVar(&opts.offline, "offline", false, "run Maven in offline mode")
	f.BoolVar(&opts.noCache, "no-cache", false, "resolve without the cache")
	registerTreeCompletions(cmd)

	return cmd
}

func resolveTree(ctx context.Context, pomPath string, opts *treeOpts) (*artifact.Node, error) {
	if opts.from != "" {
		return tree.Load(opts.from)
	}

	c, err := newCache(opts.noCache)
	if err != nil {
		return nil, err
	}
	defer closeCache(c)

	spinner := newSpinnerWithContext(ctx, "Resolving "+pomPath+"...")
	spinner.Start()

	b := &tree.MavenBuilder{
		Command: opts.mvn,
		Scope:   opts.scope,
		Offline: opts.offline,
		Cache:   c,
		TTL:     cache.DefaultTTL,
		Logger:  loggerFromContext(ctx),
	}
	root, err := b.Build(ctx, pomPath)
	if err != nil {
		spinner.StopWithError("Could not resolve " + pomPath)
		return nil, err
	}
	spinner.Stop()
	return root, nil
}
