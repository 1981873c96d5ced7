package paths

import (
	"slices"

	"github.com/streamshub/alignreport/pkg/artifact"
)

// Collector is an insert-if-absent set of records keyed by artifact. It keeps
// insertion order. A Collector belongs to one traversal and is not safe for
// concurrent use.
type Collector struct {
	index   map[artifact.Key]int
	records []Record
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{index: make(map[artifact.Key]int)}
}

// Add stores r unless a record for the same artifact is already present.
// It reports whether r was stored.
func (c *Collector) Add(r Record) bool {
	k := r.Artifact.Key()
	if _, ok := c.index[k]; ok {
		return false
	}
	c.index[k] = len(c.records)
	c.records = append(c.records, r)
	return true
}

// Get returns the record stored for k.
func (c *Collector) Get(k artifact.Key) (Record, bool) {
	i, ok := c.index[k]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Len returns the number of distinct artifacts collected.
func (c *Collector) Len() int { return len(c.records) }

// Records returns the collected records in first-insertion order.
func (c *Collector) Records() []Record { return slices.Clone(c.records) }

// Artifacts returns the collected artifacts in first-insertion order.
func (c *Collector) Artifacts() []artifact.Coordinate {
	out := make([]artifact.Coordinate, len(c.records))
	for i, r := range c.records {
		out[i] = r.Artifact
	}
	return out
}

// Collect flattens the subtrees of the given direct dependencies into one
// record per distinct artifact, first-encountered path winning. Nodes for
// which exclude returns true are skipped with their subtrees.
func Collect(direct []*artifact.Node, exclude artifact.Filter) []Record {
	c := NewCollector()
	for _, d := range direct {
		if exclude.Excluded(d) {
			continue
		}
		collect(d, nil, exclude, c)
	}
	return c.Records()
}

func collect(n *artifact.Node, parent []artifact.Coordinate, exclude artifact.Filter, c *Collector) {
	// Each record owns its path; parent is never appended to in place.
	path := make([]artifact.Coordinate, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = n.Artifact

	c.Add(Record{Artifact: n.Artifact, Path: path})

	for _, child := range n.Children {
		if exclude.Excluded(child) {
			continue
		}
		collect(child, path, exclude, c)
	}
}
