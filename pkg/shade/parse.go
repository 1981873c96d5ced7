package shade

import "strings"

// Logger receives low-severity diagnostics. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// Parse builds the configuration of one module. A nil plugin yields an empty
// configuration. logger may be nil.
func Parse(module string, plugin *PluginConfig, logger Logger) Configuration {
	logger = orNop(logger)
	cfg := Configuration{Module: module}
	if plugin == nil {
		logger.Debugf("No maven-shade-plugin found in project: %s", module)
		return cfg
	}

	if plugin.Configuration != nil {
		cfg.CreateDependencyReducedPom = parseBool(plugin.Configuration.CreateDependencyReducedPom)
		cfg.Relocations = append(cfg.Relocations, parseRelocations(plugin.Configuration, logger)...)
	}
	for _, exec := range plugin.Executions {
		if exec.Configuration == nil {
			continue
		}
		cfg.Relocations = append(cfg.Relocations, parseRelocations(exec.Configuration, logger)...)
	}
	return cfg
}

// ParseAll parses every module and returns only the configurations that
// declare at least one relocation, in input order.
func ParseAll(modules []ModuleConfig, logger Logger) []Configuration {
	logger = orNop(logger)
	var out []Configuration
	for _, m := range modules {
		cfg := Parse(m.Module, m.Plugin, logger)
		if !cfg.HasRelocations() {
			continue
		}
		logger.Debugf("Found shade configuration in project: %s with %d relocations", m.Module, len(cfg.Relocations))
		out = append(out, cfg)
	}
	return out
}

// parseBool is true only for a case-insensitive "true".
func parseBool(v *string) bool {
	return v != nil && strings.EqualFold(strings.TrimSpace(*v), "true")
}

func parseRelocations(b *Block, logger Logger) []Relocation {
	var out []Relocation
	for _, raw := range b.Relocations {
		if raw.Pattern == nil || raw.ShadedPattern == nil {
			logger.Debugf("Skipping incomplete relocation: pattern=%s shadedPattern=%s", deref(raw.Pattern), deref(raw.ShadedPattern))
			continue
		}
		r := Relocation{Pattern: *raw.Pattern, ShadedPattern: *raw.ShadedPattern}
		logger.Debugf("Found relocation: %s", r)
		out = append(out, r)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return "<missing>"
	}
	return *s
}
