// Package config loads alignreport.toml, the optional per-project settings
// file.
//
// Every key mirrors a command-line flag of the same name. Flags given on the
// command line always win; [Config.Apply] only fills flags the user left
// unset.
//
//	alignment-pattern = "redhat-\\d+"
//	excludes = "io.netty:*,*:*:test-jar"
//	exclude-modules = "*-test,systemtest"
//	scope = "runtime"
//	fail-on-unaligned = true
//
//	[shade]
//	analyze = true
//	include-transitive = true
//
//	[graph]
//	output = "target/alignment.svg"
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/streamshub/alignreport/pkg/errors"
)

// FileName is the settings file looked up next to the root POM.
const FileName = "alignreport.toml"

// Config is the decoded settings file. Zero values mean "not set".
type Config struct {
	AlignmentPattern string `toml:"alignment-pattern"`
	Excludes         string `toml:"excludes"`
	ExcludeModules   string `toml:"exclude-modules"`
	Scope            string `toml:"scope"`
	Output           string `toml:"output"`
	Append           bool   `toml:"append"`
	FailOnUnaligned  bool   `toml:"fail-on-unaligned"`
	Skip             bool   `toml:"skip"`
	Aggregate        bool   `toml:"aggregate"`
	Format           string `toml:"format"`
	Parallel         int    `toml:"parallel"`
	NoCache          bool   `toml:"no-cache"`

	Shade Shade `toml:"shade"`
	Graph Graph `toml:"graph"`
	Maven Maven `toml:"maven"`
}

// Shade holds shade analysis settings.
type Shade struct {
	Analyze            bool `toml:"analyze"`
	PrintConfiguration bool `toml:"print-configurations"`
	IncludeTransitive  bool `toml:"include-transitive"`
}

// Graph holds chain diagram settings.
type Graph struct {
	Output   string `toml:"output"`
	Format   string `toml:"format"`
	Detailed bool   `toml:"detailed"`
}

// Maven holds tree builder settings.
type Maven struct {
	Command string `toml:"command"`
	Offline bool   `toml:"offline"`
}

// Load decodes the file at path. Unknown keys are rejected so that typos do
// not silently disable a setting.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if c.Parallel < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: parallel must not be negative", path)
	}
	return &c, nil
}

// Find loads FileName from dir. A missing file yields an empty config and a
// found value of false.
func Find(dir string) (*Config, bool, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, false, nil
	}
	c, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// values maps flag names to the configured values. Unset values are absent.
func (c *Config) values() map[string]string {
	m := map[string]string{}
	str := func(name, v string) {
		if v != "" {
			m[name] = v
		}
	}
	flag := func(name string, v bool) {
		if v {
			m[name] = "true"
		}
	}

	str("alignment-pattern", c.AlignmentPattern)
	str("excludes", c.Excludes)
	str("exclude-modules", c.ExcludeModules)
	str("scope", c.Scope)
	str("output", c.Output)
	flag("append", c.Append)
	flag("fail-on-unaligned", c.FailOnUnaligned)
	flag("skip", c.Skip)
	flag("aggregate", c.Aggregate)
	str("format", c.Format)
	if c.Parallel > 0 {
		m["parallel"] = strconv.Itoa(c.Parallel)
	}
	flag("no-cache", c.NoCache)

	flag("analyze-shade", c.Shade.Analyze)
	flag("print-shade-configurations", c.Shade.PrintConfiguration)
	flag("include-transitive-shaded", c.Shade.IncludeTransitive)

	str("graph", c.Graph.Output)
	str("graph-format", c.Graph.Format)
	flag("graph-detailed", c.Graph.Detailed)

	str("mvn", c.Maven.Command)
	flag("offline", c.Maven.Offline)
	return m
}

// Apply sets every configured value on fs whose flag was not given on the
// command line. Values for flags that fs does not define are ignored.
func (c *Config) Apply(fs *pflag.FlagSet) error {
	for name, v := range c.values() {
		f := fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config value for %s", name)
		}
	}
	return nil
}
