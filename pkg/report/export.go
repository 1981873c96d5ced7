package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/buildinfo"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/paths"
)

// Document is the structured export of one or more reports. Coordinates are
// rendered in their string form; chains run from the direct dependency to
// the unaligned artifact.
type Document struct {
	Generator string      `json:"generator" yaml:"generator"`
	Modules   []ModuleDoc `json:"modules" yaml:"modules"`
}

// ModuleDoc is the export of a single [Report].
type ModuleDoc struct {
	Module              string     `json:"module" yaml:"module"`
	Title               string     `json:"title,omitempty" yaml:"title,omitempty"`
	Pattern             string     `json:"pattern" yaml:"pattern"`
	AlignedDirect       []string   `json:"alignedDirect" yaml:"alignedDirect"`
	UnalignedDirect     []string   `json:"unalignedDirect" yaml:"unalignedDirect"`
	IncompletelyAligned []string   `json:"incompletelyAligned" yaml:"incompletelyAligned"`
	Chains              [][]string `json:"chains" yaml:"chains"`
	Shade               *ShadeDoc  `json:"shade,omitempty" yaml:"shade,omitempty"`
}

// ShadeDoc is the export of [Shade].
type ShadeDoc struct {
	Configurations []ConfigurationDoc `json:"configurations" yaml:"configurations"`
	Shaded         []string           `json:"shaded" yaml:"shaded"`
	Unshaded       []string           `json:"unshaded" yaml:"unshaded"`
	Aligned        []string           `json:"aligned" yaml:"aligned"`
	Unaligned      []string           `json:"unaligned" yaml:"unaligned"`
	Paths          []PathDoc          `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// ConfigurationDoc is one module's shade setup.
type ConfigurationDoc struct {
	Module                     string   `json:"module" yaml:"module"`
	CreateDependencyReducedPom bool     `json:"createDependencyReducedPom" yaml:"createDependencyReducedPom"`
	Relocations                []string `json:"relocations" yaml:"relocations"`
}

// PathDoc is a shaded artifact with the path that brought it in.
type PathDoc struct {
	Artifact string   `json:"artifact" yaml:"artifact"`
	Aligned  bool     `json:"aligned" yaml:"aligned"`
	Path     []string `json:"path" yaml:"path"`
}

// NewDocument converts reports into their export form.
func NewDocument(reports ...*Report) Document {
	doc := Document{Generator: buildinfo.UserAgent(), Modules: make([]ModuleDoc, 0, len(reports))}
	for _, r := range reports {
		doc.Modules = append(doc.Modules, moduleDoc(r))
	}
	return doc
}

func moduleDoc(r *Report) ModuleDoc {
	m := ModuleDoc{
		Module:              r.Module,
		Title:               r.Title,
		Pattern:             r.Pattern,
		AlignedDirect:       strs(r.AlignedDirect),
		UnalignedDirect:     strs(r.UnalignedDirect),
		IncompletelyAligned: strs(r.IncompletelyAligned),
		Chains:              make([][]string, len(r.Chains)),
	}
	for i, ch := range r.Chains {
		m.Chains[i] = strs(ch)
	}
	if r.Shade != nil {
		m.Shade = shadeDoc(r.Shade)
	}
	return m
}

func shadeDoc(s *Shade) *ShadeDoc {
	d := &ShadeDoc{
		Configurations: make([]ConfigurationDoc, len(s.Configurations)),
		Shaded:         strs(s.Shaded),
		Unshaded:       strs(s.Unshaded),
		Aligned:        strs(s.AlignedShaded),
		Unaligned:      strs(s.UnalignedShaded),
	}
	for i, cfg := range s.Configurations {
		rels := make([]string, len(cfg.Relocations))
		for j, rel := range cfg.Relocations {
			rels[j] = rel.String()
		}
		d.Configurations[i] = ConfigurationDoc{
			Module:                     cfg.Module,
			CreateDependencyReducedPom: cfg.CreateDependencyReducedPom,
			Relocations:                rels,
		}
	}
	if s.Paths != nil {
		add := func(recs []paths.Record, aligned bool) {
			for _, rec := range recs {
				d.Paths = append(d.Paths, PathDoc{Artifact: rec.Artifact.String(), Aligned: aligned, Path: strs(rec.Path)})
			}
		}
		add(s.Paths.AlignedDirect, true)
		add(s.Paths.UnalignedDirect, false)
		add(s.Paths.AlignedTransitive, true)
		add(s.Paths.UnalignedTransitive, false)
	}
	return d
}

func strs[S ~[]artifact.Coordinate](list S) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.String()
	}
	return out
}

// WriteJSON writes reports as an indented JSON [Document].
func WriteJSON(w io.Writer, reports ...*Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(reports...)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json report")
	}
	return nil
}

// WriteYAML writes reports as a YAML [Document].
func WriteYAML(w io.Writer, reports ...*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(reports...)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml report")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml report")
	}
	return nil
}

// Formats lists the values accepted by [Write].
var Formats = []string{"text", "json", "yaml"}

// Write renders reports in the named format. Text reports are written one
// after another.
func Write(w io.Writer, format string, reports []*Report, opts TextOptions) error {
	switch format {
	case "", "text":
		for _, r := range reports {
			if err := WriteText(w, r, opts); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return WriteJSON(w, reports...)
	case "yaml", "yml":
		return WriteYAML(w, reports...)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown report format %q (valid: text, json, yaml)", format)
	}
}
