package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/shade"
)

// AnalyzeAll analyzes every input with at most limit modules in flight
// (limit <= 0 means unbounded). Reports are returned in input order. The
// first error cancels the remaining analyses.
func AnalyzeAll(ctx context.Context, inputs []Input, opts Options, limit int) ([]*Report, error) {
	reports := make([]*Report, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			r, err := Analyze(ctx, in, opts)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Merge combines the inputs of several modules into one aggregate input.
//
// The merged root's children are the union of every module's direct
// dependencies, keeping the first occurrence of each coordinate in input
// order. Shade configurations are combined by module name and reactor
// artifacts by coordinate.
func Merge(module string, inputs []Input) Input {
	out := Input{
		Module: module,
		Root:   artifact.NewNode(artifact.Coordinate{ArtifactID: module}),
	}

	seenDirect := map[artifact.Key]bool{}
	seenShade := map[string]bool{}
	seenReactor := map[artifact.Key]bool{}
	for _, in := range inputs {
		for _, n := range artifact.Direct(in.Root) {
			if k := n.Artifact.Key(); !seenDirect[k] {
				seenDirect[k] = true
				out.Root.Children = append(out.Root.Children, n)
			}
		}
		for _, m := range in.ShadeModules {
			if !seenShade[m.Module] {
				seenShade[m.Module] = true
				out.ShadeModules = append(out.ShadeModules, shade.ModuleConfig{Module: m.Module, Plugin: m.Plugin})
			}
		}
		for _, c := range in.ReactorArtifacts {
			if k := c.Key(); !seenReactor[k] {
				seenReactor[k] = true
				out.ReactorArtifacts = append(out.ReactorArtifacts, c)
			}
		}
	}
	return out
}
