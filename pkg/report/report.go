package report

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/streamshub/alignreport/pkg/align"
	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/filter"
	"github.com/streamshub/alignreport/pkg/observability"
	"github.com/streamshub/alignreport/pkg/paths"
	"github.com/streamshub/alignreport/pkg/shade"
)

// Options configures an analysis.
type Options struct {
	// Pattern decides whether a version is aligned. Required.
	Pattern *align.Pattern
	// Exclude hides matching nodes and their subtrees everywhere.
	Exclude filter.Artifacts
	// Scope limits the analysis to dependencies visible in a Maven scope.
	// The zero value includes every scope.
	Scope filter.Scope

	// AnalyzeShade enables matching against shade relocation rules.
	AnalyzeShade bool
	// IncludeTransitiveShaded matches every artifact in the tree instead of
	// direct dependencies only, and keeps the path of each shaded one.
	IncludeTransitiveShaded bool
	// PrintShadeConfigurations adds the configuration listing to text output.
	PrintShadeConfigurations bool
	// FailOnUnaligned makes callers treat [Failure] as fatal.
	FailOnUnaligned bool

	// Logger receives debug diagnostics. Nil discards them.
	Logger *log.Logger
}

func (o Options) exclude() artifact.Filter {
	return filter.Any(o.Exclude.NodeFilter(), o.Scope.NodeFilter())
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Input is everything known about one module.
type Input struct {
	// Module is the artifactId of the analyzed project.
	Module string
	// Title heads the text report. Defaults to Module.
	Title string
	// Root is the resolved tree; the root itself is the module and is never
	// reported.
	Root *artifact.Node
	// ShadeModules are the shade configurations of the reactor modules
	// considered for shade analysis.
	ShadeModules []shade.ModuleConfig
	// ReactorArtifacts are artifacts built by the reactor. They are not
	// reported as dependencies.
	ReactorArtifacts []artifact.Coordinate
}

// Report is the analysis result of one module.
type Report struct {
	Module  string
	Title   string
	Pattern string

	AlignedDirect   []artifact.Coordinate
	UnalignedDirect []artifact.Coordinate
	// IncompletelyAligned are aligned direct dependencies with at least one
	// unaligned node in their subtree.
	IncompletelyAligned []artifact.Coordinate
	Chains              []align.Chain

	// Shade is nil unless shade analysis was enabled.
	Shade *Shade
}

// Shade is the shade-aware part of a report.
type Shade struct {
	Configurations []shade.Configuration

	// Shaded and Unshaded partition the matched artifacts, sorted by (group, name).
	Shaded   []artifact.Coordinate
	Unshaded []artifact.Coordinate

	AlignedShaded   []artifact.Coordinate
	UnalignedShaded []artifact.Coordinate

	// Paths is nil unless transitive shade analysis was enabled.
	Paths *ShadedPaths
}

// ShadedPaths groups the path records of shaded artifacts. Each list is
// sorted by the artifact's string form.
type ShadedPaths struct {
	AlignedDirect       []paths.Record
	UnalignedDirect     []paths.Record
	AlignedTransitive   []paths.Record
	UnalignedTransitive []paths.Record
}

// Empty reports whether no shaded artifact has a path.
func (p *ShadedPaths) Empty() bool {
	return p == nil || len(p.AlignedDirect)+len(p.UnalignedDirect)+len(p.AlignedTransitive)+len(p.UnalignedTransitive) == 0
}

// Analyze computes the report of one module.
func Analyze(ctx context.Context, in Input, opts Options) (*Report, error) {
	if opts.Pattern == nil {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "no alignment pattern configured")
	}
	if in.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "module %s has no dependency tree", in.Module)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := opts.logger().With("module", in.Module)
	start := time.Now()
	observability.Analysis().OnAnalyzeStart(ctx, in.Module, artifact.Count(in.Root))

	exclude := opts.exclude()
	direct := directDependencies(in, exclude, logger)

	aligned, unaligned, alignedNodes := align.SplitDirect(direct, opts.Pattern)
	res := align.Detect(alignedNodes, opts.Pattern, exclude)

	r := &Report{
		Module:              in.Module,
		Title:               cmp.Or(in.Title, in.Module),
		Pattern:             opts.Pattern.String(),
		AlignedDirect:       aligned,
		UnalignedDirect:     unaligned,
		IncompletelyAligned: res.Summary,
		Chains:              res.Chains,
	}
	if opts.AnalyzeShade {
		r.Shade = analyzeShade(in, direct, exclude, opts, logger)
	}

	logger.Debug("analyzed",
		"aligned", len(r.AlignedDirect),
		"unaligned", len(r.UnalignedDirect),
		"incomplete", len(r.IncompletelyAligned),
		"chains", len(r.Chains),
	)
	observability.Analysis().OnAnalyzeComplete(ctx, in.Module, len(r.UnalignedDirect)+len(r.IncompletelyAligned), time.Since(start), nil)
	return r, nil
}

// directDependencies returns the root's children that survive exclusion and
// are not built by the reactor, in tree order.
func directDependencies(in Input, exclude artifact.Filter, logger *log.Logger) []*artifact.Node {
	reactor := make(map[string]bool, len(in.ReactorArtifacts))
	for _, c := range in.ReactorArtifacts {
		reactor[gav(c)] = true
	}

	var direct []*artifact.Node
	for _, n := range artifact.Direct(in.Root) {
		if exclude.Excluded(n) {
			continue
		}
		if reactor[gav(n.Artifact)] {
			logger.Debug("skipping reactor artifact", "artifact", n.Artifact)
			continue
		}
		logger.Debug("found direct dependency", "artifact", n.Artifact)
		direct = append(direct, n)
	}
	return direct
}

// gav identifies a reactor artifact. Type is ignored because a module's
// packaging (bundle, maven-plugin) often differs from the dependency type.
func gav(c artifact.Coordinate) string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

func analyzeShade(in Input, direct []*artifact.Node, exclude artifact.Filter, opts Options, logger *log.Logger) *Shade {
	s := &Shade{Configurations: shade.ParseAll(in.ShadeModules, logger)}

	var coords []artifact.Coordinate
	if opts.IncludeTransitiveShaded {
		records := paths.Collect(direct, exclude)
		logger.Debug("collected artifacts with paths for shade analysis", "count", len(records))
		coords = make([]artifact.Coordinate, len(records))
		for i, rec := range records {
			coords[i] = rec.Artifact
		}
		s.Paths = groupPaths(shade.FilterRecords(records, s.Configurations), opts.Pattern)
	} else {
		seen := make(map[artifact.Key]bool, len(direct))
		for _, n := range direct {
			if !seen[n.Artifact.Key()] {
				seen[n.Artifact.Key()] = true
				coords = append(coords, n.Artifact)
			}
		}
	}

	s.Shaded, s.Unshaded = shade.Partition(coords, s.Configurations)
	slices.SortStableFunc(s.Shaded, artifact.Compare)
	slices.SortStableFunc(s.Unshaded, artifact.Compare)
	for _, c := range s.Shaded {
		if opts.Pattern.Matches(c.Version) {
			s.AlignedShaded = append(s.AlignedShaded, c)
		} else {
			s.UnalignedShaded = append(s.UnalignedShaded, c)
		}
	}
	return s
}

func groupPaths(records []paths.Record, p *align.Pattern) *ShadedPaths {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b paths.Record) int {
		return strings.Compare(a.Artifact.String(), b.Artifact.String())
	})

	out := &ShadedPaths{}
	for _, rec := range sorted {
		aligned := p.Matches(rec.Artifact.Version)
		switch {
		case rec.Direct() && aligned:
			out.AlignedDirect = append(out.AlignedDirect, rec)
		case rec.Direct():
			out.UnalignedDirect = append(out.UnalignedDirect, rec)
		case aligned:
			out.AlignedTransitive = append(out.AlignedTransitive, rec)
		default:
			out.UnalignedTransitive = append(out.UnalignedTransitive, rec)
		}
	}
	return out
}

// Failure returns an UNALIGNED error describing the policy violations in r,
// or nil when every direct dependency and all their descendants are aligned.
func Failure(r *Report) error {
	unaligned, incomplete := len(r.UnalignedDirect), len(r.IncompletelyAligned)
	if unaligned == 0 && incomplete == 0 {
		return nil
	}

	var b strings.Builder
	if unaligned > 0 {
		fmt.Fprintf(&b, "There %s %d unaligned direct dependenc%s", isAre(unaligned), unaligned, yIes(unaligned))
	}
	if incomplete > 0 {
		if b.Len() > 0 {
			b.WriteString(" and there")
		} else {
			b.WriteString("There")
		}
		fmt.Fprintf(&b, " %s %d aligned direct dependenc%s with at least one unaligned transitive dependency",
			isAre(incomplete), incomplete, yIes(incomplete))
	} else {
		b.WriteString(".")
	}
	return errors.New(errors.ErrCodeUnaligned, "%s", b.String())
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

func yIes(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
