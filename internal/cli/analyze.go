package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/streamshub/alignreport/pkg/align"
	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/cache"
	"github.com/streamshub/alignreport/pkg/config"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/filter"
	"github.com/streamshub/alignreport/pkg/pom"
	"github.com/streamshub/alignreport/pkg/render"
	"github.com/streamshub/alignreport/pkg/render/chains"
	"github.com/streamshub/alignreport/pkg/report"
	"github.com/streamshub/alignreport/pkg/shade"
	"github.com/streamshub/alignreport/pkg/tree"
)

const defaultParallel = 4

// analyzeOpts holds the command-line flags for the analyze command.
// Every flag except --config and --tree can also come from alignreport.toml.
type analyzeOpts struct {
	configPath string // explicit settings file

	pattern        string // alignment pattern (RE2)
	excludes       string // artifact exclusion tokens
	excludeModules string // module name globs
	scope          string // Maven scope filter

	output          string // report file; empty writes to stdout
	appendOutput    bool   // append to the report file instead of truncating it
	format          string // text, json or yaml
	failOnUnaligned bool   // exit with an error when anything is unaligned
	skip            bool   // do nothing
	aggregate       bool   // one report for the whole reactor

	analyzeShade            bool // match dependencies against relocation rules
	printShadeConfiguration bool // list relocation rules in the text report
	includeTransitiveShaded bool // match the whole tree, not only direct dependencies

	trees    []string // saved trees: "path" or "module=path"
	parallel int      // concurrent module analyses
	noCache  bool     // bypass the tree cache
	mvn      string   // Maven executable
	offline  bool     // run Maven offline

	graph         string // chain diagram file
	graphFormat   string // dot, svg, pdf or png; defaults to the file extension
	graphDetailed bool   // include type and scope in diagram labels

	stdout io.Writer // report destination when output is empty
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{format: "text", parallel: defaultParallel}

	cmd := &cobra.Command{
		Use:   "analyze [pom.xml]",
		Short: "Report dependency alignment for a Maven reactor",
		Long: `Analyze resolves the dependency tree of every reactor module and reports
direct dependencies whose version does not match the alignment pattern,
aligned direct dependencies that pull in unaligned transitive ones, and,
with --analyze-shade, which dependencies are relocated by the shade plugin.

Settings are read from alignreport.toml next to the POM unless --config names
another file. Flags given on the command line take precedence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pomPath := defaultPOM
			if len(args) == 1 {
				pomPath = args[0]
			}
			if err := loadConfig(cmd.Flags(), opts.configPath, pomPath, c.Logger); err != nil {
				return err
			}
			if opts.skip {
				printInfo("Skipping plugin execution")
				return nil
			}
			opts.stdout = cmd.OutOrStdout()
			ctx := withLogger(cmd.Context(), c.Logger)
			return runAnalyze(ctx, pomPath, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "settings file (default: alignreport.toml next to the POM)")
	f.StringVarP(&opts.pattern, "alignment-pattern", "p", "", "regular expression an aligned version must contain")
	f.StringVar(&opts.excludes, "excludes", "", "comma-separated [groupId]:[artifactId]:[type]:[version] exclusions")
	f.StringVar(&opts.excludeModules, "exclude-modules", "", "comma-separated module name globs to skip")
	f.StringVar(&opts.scope, "scope", "", "only consider dependencies visible in this Maven scope")
	f.StringVarP(&opts.output, "output", "o", "", "report file (default: stdout)")
	f.BoolVar(&opts.appendOutput, "append", false, "append to the report file")
	f.StringVarP(&opts.format, "format", "f", opts.format, "report format: "+strings.Join(report.Formats, ", "))
	f.BoolVar(&opts.failOnUnaligned, "fail-on-unaligned", false, "fail when unaligned dependencies are found")
	f.BoolVar(&opts.skip, "skip", false, "skip the analysis")
	f.BoolVar(&opts.aggregate, "aggregate", false, "write one report for the whole reactor")
	f.BoolVar(&opts.analyzeShade, "analyze-shade", false, "match dependencies against shade relocation rules")
	f.BoolVar(&opts.printShadeConfiguration, "print-shade-configurations", false, "list shade relocation rules in the report")
	f.BoolVar(&opts.includeTransitiveShaded, "include-transitive-shaded", false, "match transitive dependencies against shade rules")
	f.StringArrayVar(&opts.trees, "tree", nil, "read a saved dependency tree instead of running Maven (path or module=path, repeatable)")
	f.IntVar(&opts.parallel, "parallel", opts.parallel, "number of modules analyzed concurrently")
	f.BoolVar(&opts.noCache, "no-cache", false, "resolve trees without the cache")
	f.StringVar(&opts.mvn, "mvn", "", "Maven executable (default: mvn)")
	f.BoolVar(&opts.offline, "offline", false, "run Maven in offline mode")
	f.StringVar(&opts.graph, "graph", "", "write a diagram of the unaligned chains to this file")
	f.StringVar(&opts.graphFormat, "graph-format", "", "diagram format: dot, svg, pdf, png (default: from the file extension)")
	f.BoolVar(&opts.graphDetailed, "graph-detailed", false, "show type and scope in diagram labels")
	registerAnalyzeCompletions(cmd)

	return cmd
}

// loadConfig layers the settings file under the flags that were not set
// explicitly. An explicit --config must exist; the default file is optional.
func loadConfig(fs *pflag.FlagSet, path, pomPath string, logger *log.Logger) error {
	var (
		cfg   *config.Config
		found = true
		err   error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		path = filepath.Join(filepath.Dir(pomPath), config.FileName)
		cfg, found, err = config.Find(filepath.Dir(pomPath))
	}
	if err != nil {
		return err
	}
	if found {
		logger.Debugf("Using settings from %s", path)
	}
	return cfg.Apply(fs)
}

// runAnalyze executes the analyze pipeline: resolve trees, analyze, write.
func runAnalyze(ctx context.Context, pomPath string, opts *analyzeOpts) error {
	logger := loggerFromContext(ctx)

	ropts, err := opts.reportOptions()
	if err != nil {
		return err
	}
	ropts.Logger = logger
	if opts.appendOutput && opts.output != "" && opts.format != "" && opts.format != "text" {
		return errors.New(errors.ErrCodeInvalidInput, "--append requires the text format")
	}

	inputs, err := collectInputs(ctx, pomPath, opts)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		printWarning("Every module is excluded; nothing to analyze")
		return nil
	}

	prog := newProgress(logger)
	reports, err := report.AnalyzeAll(ctx, inputs, ropts, opts.parallel)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d %s", len(reports), plural(len(reports), "module", "modules")))

	if err := writeReports(reports, opts); err != nil {
		return err
	}
	if opts.graph != "" {
		if err := writeGraph(ctx, reports, opts); err != nil {
			return err
		}
	}

	failing := 0
	for _, r := range reports {
		printModuleStats(r.Module, len(r.AlignedDirect), len(r.UnalignedDirect), len(r.IncompletelyAligned))
		if report.Failure(r) != nil {
			failing++
		}
	}
	if failing == 0 {
		printSuccess("All dependencies are aligned")
		return nil
	}
	if opts.failOnUnaligned {
		for _, r := range reports {
			if err := report.Failure(r); err != nil {
				return err
			}
		}
	}
	printWarning("%d of %d %s %s unaligned dependencies", failing, len(reports),
		plural(len(reports), "module", "modules"), plural(failing, "has", "have"))
	if opts.graph == "" && hasChains(reports) {
		printNextStep("Inspect the unaligned chains", appName+" analyze --graph chains.svg")
	}
	return nil
}

// reportOptions validates the analysis flags.
func (o *analyzeOpts) reportOptions() (report.Options, error) {
	if strings.TrimSpace(o.pattern) == "" {
		return report.Options{}, errors.New(errors.ErrCodeInvalidInput, "an alignment pattern is required (--alignment-pattern)")
	}
	pattern, err := align.Compile(o.pattern)
	if err != nil {
		return report.Options{}, err
	}
	scope, err := filter.ParseScope(o.scope)
	if err != nil {
		return report.Options{}, err
	}
	if o.parallel < 1 {
		o.parallel = 1
	}
	return report.Options{
		Pattern:                  pattern,
		Exclude:                  filter.ParseArtifacts(o.excludes),
		Scope:                    scope,
		AnalyzeShade:             o.analyzeShade,
		IncludeTransitiveShaded:  o.includeTransitiveShaded,
		PrintShadeConfigurations: o.printShadeConfiguration,
		FailOnUnaligned:          o.failOnUnaligned,
	}, nil
}

// collectInputs reads the reactor, drops excluded modules and resolves the
// tree of each remaining one. With --aggregate the result is a single merged
// input named after the root project.
func collectInputs(ctx context.Context, pomPath string, opts *analyzeOpts) ([]report.Input, error) {
	logger := loggerFromContext(ctx)

	modules, err := filter.ParseModules(opts.excludeModules)
	if err != nil {
		return nil, err
	}
	saved, err := parseTrees(opts.trees)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(pomPath); os.IsNotExist(err) && saved.fallback != "" && len(saved.byModule) == 0 {
		// No POM: analyze the saved tree on its own.
		root, err := tree.Load(saved.fallback)
		if err != nil {
			return nil, err
		}
		logger.Debugf("No POM at %s; analyzing %s alone", pomPath, saved.fallback)
		return []report.Input{{Module: root.Artifact.ArtifactID, Root: root}}, nil
	}

	projects, err := pom.Reactor(pomPath)
	if err != nil {
		return nil, err
	}

	var (
		kept    []*pom.Project
		shades  []shade.ModuleConfig
		reactor []artifact.Coordinate
	)
	for _, p := range projects {
		reactor = append(reactor, p.Coordinate())
		if excluded, glob := modules.Excluded(p.ArtifactID); excluded {
			logger.Debugf("Excluding module %s (matches %s)", p.ArtifactID, glob)
			continue
		}
		kept = append(kept, p)
		shades = append(shades, p.ShadeModule())
	}
	if len(kept) == 0 {
		return nil, nil
	}

	builder, closeBuilder, err := newBuilder(projects, saved, opts, logger)
	if err != nil {
		return nil, err
	}
	defer closeBuilder()

	inputs, err := buildInputs(ctx, builder, kept)
	if err != nil {
		return nil, err
	}
	for i := range inputs {
		inputs[i].ShadeModules = shades
		inputs[i].ReactorArtifacts = reactor
	}

	if opts.aggregate {
		root := projects[0]
		merged := report.Merge(root.ArtifactID, inputs)
		merged.Title = root.DisplayName()
		return []report.Input{merged}, nil
	}
	return inputs, nil
}

// buildInputs resolves one tree per project, in reactor order.
func buildInputs(ctx context.Context, b tree.Builder, projects []*pom.Project) ([]report.Input, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %d %s...", len(projects), plural(len(projects), "module", "modules")))
	spinner.Start()

	inputs := make([]report.Input, 0, len(projects))
	for i, p := range projects {
		spinner.SetMessage(fmt.Sprintf("Resolving %s (%d/%d)...", p.ArtifactID, i+1, len(projects)))
		logger.Debugf("Resolving %s", p.Path)
		root, err := b.Build(ctx, p.Path)
		if err != nil {
			spinner.StopWithError("Could not resolve " + p.ArtifactID)
			return nil, err
		}
		inputs = append(inputs, report.Input{Module: p.ArtifactID, Title: p.DisplayName(), Root: root})
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %d dependency %s", len(inputs), plural(len(inputs), "tree", "trees")))
	return inputs, nil
}

// savedTrees is the parsed form of the --tree flags.
type savedTrees struct {
	byModule map[string]string
	fallback string
}

// parseTrees splits "module=path" entries from a plain fallback path.
func parseTrees(values []string) (savedTrees, error) {
	s := savedTrees{byModule: map[string]string{}}
	for _, v := range values {
		module, path, ok := strings.Cut(v, "=")
		if !ok {
			if s.fallback != "" {
				return savedTrees{}, errors.New(errors.ErrCodeInvalidInput, "more than one --tree without a module name")
			}
			s.fallback = v
			continue
		}
		if module == "" || path == "" {
			return savedTrees{}, errors.New(errors.ErrCodeInvalidInput, "invalid --tree value %q (want module=path)", v)
		}
		s.byModule[module] = path
	}
	return s, nil
}

func (s savedTrees) empty() bool { return s.fallback == "" && len(s.byModule) == 0 }

// newBuilder picks the tree source: saved files when any --tree is given,
// Maven otherwise. The returned func releases the cache.
func newBuilder(projects []*pom.Project, saved savedTrees, opts *analyzeOpts, logger *log.Logger) (tree.Builder, func(), error) {
	if !saved.empty() {
		fb := tree.FileBuilder{Paths: map[string]string{}, Default: saved.fallback}
		known := map[string]bool{}
		for _, p := range projects {
			known[p.ArtifactID] = true
			if path, ok := saved.byModule[p.ArtifactID]; ok {
				fb.Paths[p.Path] = path
			}
		}
		for module := range saved.byModule {
			if !known[module] {
				return nil, nil, errors.New(errors.ErrCodeModuleNotFound, "--tree names unknown module %q", module)
			}
		}
		return fb, func() {}, nil
	}

	c, err := newCache(opts.noCache)
	if err != nil {
		return nil, nil, err
	}
	mb := &tree.MavenBuilder{
		Command: opts.mvn,
		Scope:   opts.scope,
		Offline: opts.offline,
		Cache:   c,
		TTL:     cache.DefaultTTL,
		Logger:  logger,
	}
	return mb, func() { closeCache(c) }, nil
}

// writeReports writes every report to stdout or to the --output file. File
// output carries the module banner; stdout only does for several modules.
func writeReports(reports []*report.Report, opts *analyzeOpts) error {
	topts := report.TextOptions{
		Title:                    opts.output != "" || len(reports) > 1,
		PrintShadeConfigurations: opts.printShadeConfiguration,
	}
	if opts.output == "" {
		return report.Write(opts.stdout, opts.format, reports, topts)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if opts.appendOutput {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	f, err := os.OpenFile(opts.output, flags, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", opts.output)
	}
	if err := report.Write(f, opts.format, reports, topts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	printSuccess("Wrote report")
	printFile(opts.output)
	return nil
}

// writeGraph renders the chain diagram to the --graph file.
func writeGraph(ctx context.Context, reports []*report.Report, opts *analyzeOpts) error {
	format, err := render.FormatFor(opts.graph, opts.graphFormat)
	if err != nil {
		return err
	}
	data, err := chains.Render(ctx, reports, format, chains.Options{Detailed: opts.graphDetailed})
	if err != nil {
		return err
	}
	if err := writeFile(opts.graph, data); err != nil {
		return err
	}
	printSuccess("Wrote %s diagram", format)
	printFile(opts.graph)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func hasChains(reports []*report.Report) bool {
	for _, r := range reports {
		if len(r.Chains) > 0 {
			return true
		}
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
