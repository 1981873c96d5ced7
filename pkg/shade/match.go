package shade

import (
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/paths"
)

// IsShaded reports whether an artifact with the given group and name is
// plausibly affected by any relocation rule in configs. See the package
// documentation for the matching rules.
func IsShaded(group, name string, configs []Configuration) bool {
	for _, cfg := range configs {
		for _, r := range cfg.Relocations {
			if matches(group, name, r.Pattern) {
				return true
			}
		}
	}
	return false
}

func matches(group, name, pattern string) bool {
	// Group is the package prefix (the common case).
	if strings.HasPrefix(group, pattern) {
		return true
	}
	// Relocation pattern is a package under the group.
	if strings.HasPrefix(pattern, group) {
		return true
	}
	return strings.Contains(pattern, name)
}

// Partition splits coords into shaded and unshaded, preserving input order.
func Partition(coords []artifact.Coordinate, configs []Configuration) (shaded, unshaded []artifact.Coordinate) {
	for _, c := range coords {
		if IsShaded(c.GroupID, c.ArtifactID, configs) {
			shaded = append(shaded, c)
		} else {
			unshaded = append(unshaded, c)
		}
	}
	return shaded, unshaded
}

// FilterRecords keeps the records whose artifact is shaded, preserving order.
func FilterRecords(records []paths.Record, configs []Configuration) []paths.Record {
	out := make([]paths.Record, 0, len(records))
	for _, r := range records {
		if IsShaded(r.Artifact.GroupID, r.Artifact.ArtifactID, configs) {
			out = append(out, r)
		}
	}
	return out
}
