package filter

import (
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
)

// Artifacts is a set of exclusion patterns. The zero value excludes nothing.
type Artifacts struct {
	patterns [][]string
}

// ParseArtifacts parses a comma-separated list of exclusion patterns.
// Blank entries are ignored.
func ParseArtifacts(list string) Artifacts {
	var f Artifacts
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f.patterns = append(f.patterns, strings.Split(p, ":"))
	}
	return f
}

// Empty reports whether the filter has no patterns.
func (f Artifacts) Empty() bool { return len(f.patterns) == 0 }

// Patterns returns the patterns in their textual form.
func (f Artifacts) Patterns() []string {
	out := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = strings.Join(p, ":")
	}
	return out
}

// Excludes reports whether c matches any pattern.
func (f Artifacts) Excludes(c artifact.Coordinate) bool {
	tokens := []string{c.GroupID, c.ArtifactID, c.Type, c.Version}
	for _, p := range f.patterns {
		if matchTokens(tokens, p) {
			return true
		}
	}
	return false
}

// NodeFilter adapts f to an [artifact.Filter]. It returns nil for an empty
// filter so that callers pay nothing when no exclusions are configured.
func (f Artifacts) NodeFilter() artifact.Filter {
	if f.Empty() {
		return nil
	}
	return func(n *artifact.Node) bool { return f.Excludes(n.Artifact) }
}

func matchTokens(tokens, pattern []string) bool {
	if len(pattern) > len(tokens) {
		return false
	}
	for i, p := range pattern {
		if !matchToken(tokens[i], p) {
			return false
		}
	}
	return true
}

func matchToken(token, pattern string) bool {
	switch {
	case pattern == "" || pattern == "*":
		return true
	case len(pattern) > 1 && strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		return strings.Contains(token, pattern[1:len(pattern)-1])
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(token, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(token, pattern[:len(pattern)-1])
	default:
		return token == pattern
	}
}
