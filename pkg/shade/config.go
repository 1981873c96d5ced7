package shade

import (
	"fmt"
	"strings"
)

// Relocation maps classes under Pattern to ShadedPattern at build time.
// Both are package-name prefixes and are not validated.
type Relocation struct {
	Pattern       string
	ShadedPattern string
}

// String renders "pattern -> shadedPattern".
func (r Relocation) String() string {
	return fmt.Sprintf("%s -> %s", r.Pattern, r.ShadedPattern)
}

// Apply returns the relocated name of pkg if it starts with the source
// pattern, and pkg unchanged otherwise.
func (r Relocation) Apply(pkg string) string {
	if r.Pattern == "" || !strings.HasPrefix(pkg, r.Pattern) {
		return pkg
	}
	return r.ShadedPattern + strings.TrimPrefix(pkg, r.Pattern)
}

// Configuration is the shading setup of one build module.
type Configuration struct {
	Module                     string
	Relocations                []Relocation
	CreateDependencyReducedPom bool
}

// HasRelocations reports whether the module declares at least one rule.
func (c Configuration) HasRelocations() bool { return len(c.Relocations) > 0 }

// PluginConfig is the raw shade-plugin configuration of a module as read
// from its build descriptor.
type PluginConfig struct {
	Configuration *Block
	Executions    []Execution
}

// Execution is one <execution> of the plugin.
type Execution struct {
	ID            string
	Configuration *Block
}

// Block is a <configuration> element. Nil pointers mean the element was
// absent.
type Block struct {
	CreateDependencyReducedPom *string
	Relocations                []RawRelocation
}

// RawRelocation is a <relocation> entry before validation.
type RawRelocation struct {
	Pattern       *string
	ShadedPattern *string
}

// ModuleConfig pairs a module name with its raw plugin configuration, which
// is nil when the module does not use the plugin.
type ModuleConfig struct {
	Module string
	Plugin *PluginConfig
}
