package paths

import (
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
)

// Record is an artifact together with the path that reached it. Path runs
// from the direct dependency to Artifact, inclusive.
type Record struct {
	Artifact artifact.Coordinate
	Path     []artifact.Coordinate
}

// NewDirect returns the record of a direct dependency.
func NewDirect(c artifact.Coordinate) Record {
	return Record{Artifact: c, Path: []artifact.Coordinate{c}}
}

// Direct reports whether the artifact is a direct dependency.
func (r Record) Direct() bool { return len(r.Path) == 1 }

// Transitive reports whether the artifact was reached through another dependency.
func (r Record) Transitive() bool { return !r.Direct() }

// Root returns the direct dependency that brought the artifact in. For a
// direct dependency this is the artifact itself.
func (r Record) Root() artifact.Coordinate { return r.Path[0] }

// FormatDependencyPath renders "artifact (direct)" for direct dependencies and
// "artifact <- parent <- ... <- root" otherwise, nearest ancestor first.
func (r Record) FormatDependencyPath() string {
	if r.Direct() {
		return r.Artifact.String() + " (direct)"
	}

	var b strings.Builder
	b.WriteString(r.Artifact.String())
	for i := len(r.Path) - 2; i >= 0; i-- {
		b.WriteString(" <- ")
		b.WriteString(r.Path[i].String())
	}
	return b.String()
}

// String returns [Record.FormatDependencyPath].
func (r Record) String() string { return r.FormatDependencyPath() }
