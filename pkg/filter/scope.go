package filter

import (
	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
)

// Maven dependency scopes.
const (
	ScopeCompile  = "compile"
	ScopeProvided = "provided"
	ScopeRuntime  = "runtime"
	ScopeTest     = "test"
	ScopeSystem   = "system"
)

// scopeIncludes maps a requested scope to the dependency scopes it admits.
var scopeIncludes = map[string]map[string]bool{
	ScopeCompile:  {ScopeCompile: true, ScopeProvided: true, ScopeSystem: true},
	ScopeRuntime:  {ScopeCompile: true, ScopeRuntime: true},
	ScopeTest:     {ScopeCompile: true, ScopeProvided: true, ScopeRuntime: true, ScopeSystem: true, ScopeTest: true},
	ScopeProvided: {ScopeProvided: true},
	ScopeSystem:   {ScopeSystem: true},
}

// Scope admits dependencies whose scope is included by a requested scope.
// The zero value admits everything.
type Scope struct {
	name     string
	includes map[string]bool
}

// ParseScope returns the filter for scope. An empty scope admits everything.
func ParseScope(scope string) (Scope, error) {
	if scope == "" {
		return Scope{}, nil
	}
	inc, ok := scopeIncludes[scope]
	if !ok {
		return Scope{}, errors.New(errors.ErrCodeInvalidInput, "unknown scope %q (valid: compile, runtime, test, provided, system)", scope)
	}
	return Scope{name: scope, includes: inc}, nil
}

// Name returns the requested scope, or "" when unfiltered.
func (s Scope) Name() string { return s.name }

// Includes reports whether c passes the filter. Coordinates without a scope
// (the module itself) are always included.
func (s Scope) Includes(c artifact.Coordinate) bool {
	if s.includes == nil || c.Scope == "" {
		return true
	}
	return s.includes[c.Scope]
}

// NodeFilter adapts s to an [artifact.Filter] that hides excluded scopes.
func (s Scope) NodeFilter() artifact.Filter {
	if s.includes == nil {
		return nil
	}
	return func(n *artifact.Node) bool { return !s.Includes(n.Artifact) }
}

// Any combines filters; a node is hidden when any of them hides it.
// Nil filters are skipped and nil is returned when none remain.
func Any(filters ...artifact.Filter) artifact.Filter {
	var active []artifact.Filter
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(n *artifact.Node) bool {
		for _, f := range active {
			if f(n) {
				return true
			}
		}
		return false
	}
}
