package align

import (
	"slices"
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
)

// Chain is a path from a direct dependency (first element) down to an
// unaligned descendant (last element), inclusive at both ends.
type Chain []artifact.Coordinate

// Root returns the direct dependency the chain starts from.
func (c Chain) Root() artifact.Coordinate { return c[0] }

// Leaf returns the unaligned artifact the chain ends at.
func (c Chain) Leaf() artifact.Coordinate { return c[len(c)-1] }

// String renders the chain leaf first, each artifact followed by the one
// that pulls it in: "leaf <- parent <- ... <- root".
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, a := range c {
		parts[len(c)-1-i] = a.String()
	}
	return strings.Join(parts, " <- ")
}

// id is an exact-value identity for deduplication.
func (c Chain) id() string {
	var b strings.Builder
	for i, a := range c {
		if i > 0 {
			b.WriteByte('\x00')
		}
		b.WriteString(a.Key().String())
	}
	return b.String()
}

// Result holds the output of [Detect].
type Result struct {
	// Summary lists each direct dependency with at least one unaligned
	// node in its subtree, once, sorted by (group, name).
	Summary []artifact.Coordinate
	// Chains lists every distinct path to an unaligned node, stably sorted
	// by the (group, name) of the direct dependency it starts from.
	Chains []Chain
}

// Detect walks the subtree of every root and records unaligned nodes.
//
// The roots are expected to be aligned direct dependencies (see
// [SplitDirect]), but Detect does not check this: an unaligned root is
// reported as a one-element chain. Nodes for which exclude returns true are
// invisible together with their subtrees.
func Detect(roots []*artifact.Node, p *Pattern, exclude artifact.Filter) Result {
	d := &detector{
		pattern: p,
		exclude: exclude,
		inSum:   make(map[artifact.Key]bool),
	}
	for _, r := range roots {
		if exclude.Excluded(r) {
			continue
		}
		d.walk(r, nil)
	}
	return d.result()
}

// detector holds the accumulators of one Detect call.
type detector struct {
	pattern *Pattern
	exclude artifact.Filter

	summary []artifact.Coordinate
	inSum   map[artifact.Key]bool
	chains  []Chain
}

// walk visits n with path holding its ancestors. Children see path+n; the
// caller's view of path is never modified, only the spare capacity behind it.
func (d *detector) walk(n *artifact.Node, path Chain) {
	path = append(path, n.Artifact)

	for _, c := range n.Children {
		if d.exclude.Excluded(c) {
			continue
		}
		d.walk(c, path)
	}

	if Classify(n.Artifact.Version, d.pattern) == Aligned {
		return
	}
	root := path[0]
	if !d.inSum[root.Key()] {
		d.inSum[root.Key()] = true
		d.summary = append(d.summary, root)
	}
	d.chains = append(d.chains, slices.Clone(path))
}

func (d *detector) result() Result {
	seen := make(map[string]bool, len(d.chains))
	chains := make([]Chain, 0, len(d.chains))
	for _, c := range d.chains {
		id := c.id()
		if seen[id] {
			continue
		}
		seen[id] = true
		chains = append(chains, c)
	}
	slices.SortStableFunc(chains, func(a, b Chain) int {
		return artifact.Compare(a.Root(), b.Root())
	})

	summary := slices.Clone(d.summary)
	slices.SortStableFunc(summary, artifact.Compare)

	return Result{Summary: summary, Chains: chains}
}

// SplitDirect classifies the direct dependencies of a module.
//
// Direct nodes are first deduplicated by coordinate, keeping the first
// occurrence. It returns the aligned and unaligned coordinates, each sorted
// by (group, name), and the aligned nodes in input order, ready for [Detect].
func SplitDirect(direct []*artifact.Node, p *Pattern) (aligned, unaligned []artifact.Coordinate, alignedNodes []*artifact.Node) {
	seen := make(map[artifact.Key]bool, len(direct))
	for _, n := range direct {
		k := n.Artifact.Key()
		if seen[k] {
			continue
		}
		seen[k] = true

		if Classify(n.Artifact.Version, p) == Aligned {
			aligned = append(aligned, n.Artifact)
			alignedNodes = append(alignedNodes, n)
		} else {
			unaligned = append(unaligned, n.Artifact)
		}
	}
	slices.SortStableFunc(aligned, artifact.Compare)
	slices.SortStableFunc(unaligned, artifact.Compare)
	return aligned, unaligned, alignedNodes
}
