package tree

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/cache"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/observability"
	"github.com/streamshub/alignreport/pkg/pom"
)

// Builder produces the resolved dependency tree of a single POM.
type Builder interface {
	Build(ctx context.Context, pomPath string) (*artifact.Node, error)
}

// MavenBuilder resolves trees by running the Maven dependency plugin.
//
// Output is cached under a key derived from the POM, its parent POMs and the
// Maven options, so an unchanged module is not resolved twice. A failed invocation is reported as a
// GRAPH_BUILD error and never retried.
type MavenBuilder struct {
	// Command is the Maven executable. Defaults to "mvn".
	Command string
	// Scope is passed as -Dscope when non-empty.
	Scope string
	// Offline adds -o to the invocation.
	Offline bool
	// Cache stores resolved trees. Nil disables caching.
	Cache cache.Cache
	// TTL is the cache entry lifetime. Zero means [cache.DefaultTTL].
	TTL time.Duration
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

const builderName = "maven"

// Build resolves the tree for the POM at pomPath.
func (b *MavenBuilder) Build(ctx context.Context, pomPath string) (*artifact.Node, error) {
	logger := b.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	content, err := os.ReadFile(pomPath)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "pom %s", pomPath)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "read %s", pomPath)
	}

	var key string
	if b.Cache != nil {
		key = b.key(pomPath, content, logger)
		if data, ok, err := b.Cache.Get(ctx, key); err == nil && ok {
			logger.Debug("tree cache hit", "pom", pomPath)
			return ReadJSON(bytes.NewReader(data))
		}
	}

	module := filepath.Base(filepath.Dir(pomPath))
	observability.Analysis().OnBuildStart(ctx, module, builderName)
	start := time.Now()
	data, err := b.run(ctx, pomPath)
	observability.Analysis().OnBuildComplete(ctx, module, builderName, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved tree", "pom", pomPath, "elapsed", time.Since(start).Round(time.Millisecond))

	root, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "parse %s output", b.command())
	}

	if b.Cache != nil {
		ttl := b.TTL
		if ttl == 0 {
			ttl = cache.DefaultTTL
		}
		if err := b.Cache.Set(ctx, key, data, ttl); err != nil {
			logger.Warn("cache write failed", "pom", pomPath, "error", err)
		}
	}
	return root, nil
}

// key derives the cache key from the POM, the ancestors it inherits from on
// disk and the options passed to Maven. An ancestor that cannot be read ends
// the lineage; the key then covers what was read.
func (b *MavenBuilder) key(pomPath string, content []byte, logger *log.Logger) string {
	in := cache.TreeInputs{
		POM:     pomPath,
		Lineage: [][]byte{content},
		Scope:   b.Scope,
		Offline: b.Offline,
		Command: b.command(),
		Builder: builderName,
	}
	if abs, err := filepath.Abs(pomPath); err == nil {
		in.POM = abs
	}

	lineage, err := pom.Lineage(pomPath)
	if err != nil {
		logger.Debug("parent POMs not part of the cache key", "pom", pomPath, "error", err)
		return cache.TreeKey(in)
	}
	for _, parent := range lineage[1:] {
		data, err := os.ReadFile(parent)
		if err != nil {
			break
		}
		in.Lineage = append(in.Lineage, data)
	}
	return cache.TreeKey(in)
}

func (b *MavenBuilder) command() string {
	if b.Command != "" {
		return b.Command
	}
	return "mvn"
}

// run invokes the dependency plugin and returns the JSON it wrote.
func (b *MavenBuilder) run(ctx context.Context, pomPath string) ([]byte, error) {
	bin := b.command()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "%s not found on PATH; pass --tree to analyze a saved tree instead", bin)
	}

	out, err := os.CreateTemp("", "alignreport-tree-*.json")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "create output file")
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, bin, b.args(pomPath, outPath)...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "%s dependency:tree on %s: %s", bin, pomPath, lastLines(output.String(), 5))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphBuild, err, "read %s output", bin)
	}
	return data, nil
}

func (b *MavenBuilder) args(pomPath, outPath string) []string {
	args := []string{"-q", "-B", "-f", pomPath}
	if b.Offline {
		args = append(args, "-o")
	}
	args = append(args,
		"dependency:tree",
		"-DoutputType=json",
		"-DoutputFile="+outPath,
		"-DappendOutput=false",
	)
	if b.Scope != "" {
		args = append(args, "-Dscope="+b.Scope)
	}
	return args
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// FileBuilder serves trees from files on disk instead of running Maven.
// Paths maps a POM path to its tree file; Default is used for POMs without an
// entry.
type FileBuilder struct {
	Paths   map[string]string
	Default string
}

// Build loads the tree file registered for pomPath.
func (b FileBuilder) Build(_ context.Context, pomPath string) (*artifact.Node, error) {
	path, ok := b.Paths[pomPath]
	if !ok {
		path = b.Default
	}
	if path == "" {
		return nil, errors.New(errors.ErrCodeGraphBuild, "no tree file for %s", pomPath)
	}
	return Load(path)
}

var (
	_ Builder = (*MavenBuilder)(nil)
	_ Builder = FileBuilder{}
)
