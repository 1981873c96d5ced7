package filter

import (
	"regexp"
	"strings"

	"github.com/streamshub/alignreport/pkg/errors"
)

// Modules excludes reactor modules by name. The zero value excludes nothing.
type Modules struct {
	globs []moduleGlob
}

type moduleGlob struct {
	source string
	re     *regexp.Regexp // nil for the match-all "*"
}

// ParseModules compiles a comma-separated list of module globs. Compilation
// happens here so that a bad pattern fails before any analysis starts.
func ParseModules(list string) (Modules, error) {
	var m Modules
	if strings.TrimSpace(list) == "" {
		return m, nil
	}
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g := moduleGlob{source: p}
		if p != "*" {
			re, err := regexp.Compile("^(?:" + strings.ReplaceAll(p, "*", ".*") + ")$")
			if err != nil {
				return Modules{}, errors.Wrap(errors.ErrCodeInvalidPattern, err, "module exclude pattern %q", p)
			}
			g.re = re
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Excluded reports whether name matches any glob, and which one.
func (m Modules) Excluded(name string) (bool, string) {
	for _, g := range m.globs {
		if g.re == nil || g.re.MatchString(name) {
			return true, g.source
		}
	}
	return false, ""
}

// Empty reports whether no globs are configured.
func (m Modules) Empty() bool { return len(m.globs) == 0 }
