// Package pom reads Maven project descriptors.
//
// Only the parts needed for alignment reporting are decoded: the project
// coordinates, the reactor module list and build plugin configuration. Parent
// POMs are not resolved; a project inherits group and version from its
// <parent> element when it does not declare them, and simple ${...}
// references to its own properties are expanded.
package pom

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/shade"
)

// DefaultPluginGroup is the group assumed for plugins that omit one.
const DefaultPluginGroup = "org.apache.maven.plugins"

// Project is a decoded pom.xml.
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Name       string
	Modules    []string
	Plugins    []Plugin

	// Parent is the <parent> element, nil when the project has none.
	Parent *Parent

	// Path is the file the project was read from.
	Path string
}

// Parent identifies the parent POM. RelativePath is nil when the element is
// absent, which Maven reads as "../pom.xml", and empty for <relativePath/>,
// which disables the local lookup.
type Parent struct {
	GroupID      string
	ArtifactID   string
	Version      string
	RelativePath *string
}

// Plugin is a <build><plugins><plugin> entry.
type Plugin struct {
	GroupID       string
	ArtifactID    string
	Version       string
	Configuration *Configuration
	Executions    []Execution
}

// Execution is a plugin <execution>.
type Execution struct {
	ID            string
	Configuration *Configuration
}

// Configuration holds the plugin configuration elements this tool reads.
// Unknown elements are ignored.
type Configuration struct {
	CreateDependencyReducedPom *string      `xml:"createDependencyReducedPom"`
	Relocations                []Relocation `xml:"relocations>relocation"`
}

// Relocation is a shade plugin <relocation>. Nil fields were absent.
type Relocation struct {
	Pattern       *string `xml:"pattern"`
	ShadedPattern *string `xml:"shadedPattern"`
}

type xmlProject struct {
	GroupID    string      `xml:"groupId"`
	ArtifactID string      `xml:"artifactId"`
	Version    string      `xml:"version"`
	Packaging  string      `xml:"packaging"`
	Name       string      `xml:"name"`
	Parent     *xmlParent  `xml:"parent"`
	Properties properties  `xml:"properties"`
	Modules    []string    `xml:"modules>module"`
	Plugins    []xmlPlugin `xml:"build>plugins>plugin"`
}

type xmlParent struct {
	GroupID      string  `xml:"groupId"`
	ArtifactID   string  `xml:"artifactId"`
	Version      string  `xml:"version"`
	RelativePath *string `xml:"relativePath"`
}

type xmlPlugin struct {
	GroupID       string         `xml:"groupId"`
	ArtifactID    string         `xml:"artifactId"`
	Version       string         `xml:"version"`
	Configuration *Configuration `xml:"configuration"`
	Executions    []struct {
		ID            string         `xml:"id"`
		Configuration *Configuration `xml:"configuration"`
	} `xml:"executions>execution"`
}

// properties decodes <properties> children into a name/value map.
type properties map[string]string

func (p *properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m := make(properties)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			m[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			*p = m
			return nil
		}
	}
}

// Read decodes the pom.xml at path.
func Read(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "pom %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s", path)
	}
	p.Path = path
	return p, nil
}

// Parse decodes pom.xml content.
func Parse(data []byte) (*Project, error) {
	var x xmlProject
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode pom")
	}

	p := &Project{
		GroupID:    strings.TrimSpace(x.GroupID),
		ArtifactID: strings.TrimSpace(x.ArtifactID),
		Version:    strings.TrimSpace(x.Version),
		Packaging:  strings.TrimSpace(x.Packaging),
		Name:       strings.TrimSpace(x.Name),
	}
	if x.Parent != nil {
		p.Parent = &Parent{
			GroupID:    strings.TrimSpace(x.Parent.GroupID),
			ArtifactID: strings.TrimSpace(x.Parent.ArtifactID),
			Version:    strings.TrimSpace(x.Parent.Version),
		}
		if rp := x.Parent.RelativePath; rp != nil {
			v := strings.TrimSpace(*rp)
			p.Parent.RelativePath = &v
		}
		if p.GroupID == "" {
			p.GroupID = strings.TrimSpace(x.Parent.GroupID)
		}
		if p.Version == "" {
			p.Version = strings.TrimSpace(x.Parent.Version)
		}
	}
	if p.Packaging == "" {
		p.Packaging = artifact.DefaultType
	}
	if p.ArtifactID == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "pom has no artifactId")
	}

	vars := map[string]string{
		"project.groupId":    p.GroupID,
		"project.artifactId": p.ArtifactID,
		"project.version":    p.Version,
	}
	if x.Parent != nil {
		vars["project.parent.version"] = strings.TrimSpace(x.Parent.Version)
		vars["project.parent.groupId"] = strings.TrimSpace(x.Parent.GroupID)
	}
	for k, v := range x.Properties {
		vars[k] = v
	}
	p.GroupID = interpolate(p.GroupID, vars)
	p.Version = interpolate(p.Version, vars)
	p.Name = interpolate(p.Name, vars)

	for _, m := range x.Modules {
		m = strings.TrimSpace(m)
		if err := errors.ValidateModuleName(m); err != nil {
			return nil, err
		}
		p.Modules = append(p.Modules, m)
	}
	for _, xp := range x.Plugins {
		pl := Plugin{
			GroupID:       strings.TrimSpace(xp.GroupID),
			ArtifactID:    strings.TrimSpace(xp.ArtifactID),
			Version:       strings.TrimSpace(xp.Version),
			Configuration: xp.Configuration.interpolate(vars),
		}
		if pl.GroupID == "" {
			pl.GroupID = DefaultPluginGroup
		}
		for _, e := range xp.Executions {
			pl.Executions = append(pl.Executions, Execution{ID: strings.TrimSpace(e.ID), Configuration: e.Configuration.interpolate(vars)})
		}
		p.Plugins = append(p.Plugins, pl)
	}
	return p, nil
}

// interpolate expands ${name} references found in vars. Unknown references
// are left as written.
func interpolate(s string, vars map[string]string) string {
	for range 8 {
		start := strings.Index(s, "${")
		if start < 0 {
			return s
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return s
		}
		name := s[start+2 : start+end]
		v, ok := vars[name]
		if !ok {
			return s
		}
		s = s[:start] + v + s[start+end+1:]
	}
	return s
}

// DisplayName is the project name, or its artifactId when unnamed.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ArtifactID
}

// Coordinate returns the project's own artifact. Its type is the packaging.
func (p *Project) Coordinate() artifact.Coordinate {
	return artifact.Coordinate{
		GroupID:    p.GroupID,
		ArtifactID: p.ArtifactID,
		Version:    p.Version,
		Type:       p.Packaging,
	}
}

// Plugin finds a build plugin by group and artifact.
func (p *Project) Plugin(groupID, artifactID string) *Plugin {
	for i := range p.Plugins {
		if p.Plugins[i].GroupID == groupID && p.Plugins[i].ArtifactID == artifactID {
			return &p.Plugins[i]
		}
	}
	return nil
}

// ShadePlugin returns the maven-shade-plugin configuration of the project,
// or nil when the project does not declare the plugin.
func (p *Project) ShadePlugin() *shade.PluginConfig {
	pl := p.Plugin(DefaultPluginGroup, "maven-shade-plugin")
	if pl == nil {
		return nil
	}
	out := &shade.PluginConfig{Configuration: pl.Configuration.block()}
	for _, e := range pl.Executions {
		out.Executions = append(out.Executions, shade.Execution{ID: e.ID, Configuration: e.Configuration.block()})
	}
	return out
}

// ShadeModule pairs the project's artifactId with its shade configuration.
func (p *Project) ShadeModule() shade.ModuleConfig {
	return shade.ModuleConfig{Module: p.ArtifactID, Plugin: p.ShadePlugin()}
}

// interpolate expands property references in the shade settings in place.
func (c *Configuration) interpolate(vars map[string]string) *Configuration {
	if c == nil {
		return nil
	}
	expand := func(v *string) *string {
		if v == nil {
			return nil
		}
		s := strings.TrimSpace(interpolate(*v, vars))
		return &s
	}
	c.CreateDependencyReducedPom = expand(c.CreateDependencyReducedPom)
	for i := range c.Relocations {
		c.Relocations[i].Pattern = expand(c.Relocations[i].Pattern)
		c.Relocations[i].ShadedPattern = expand(c.Relocations[i].ShadedPattern)
	}
	return c
}

func (c *Configuration) block() *shade.Block {
	if c == nil {
		return nil
	}
	b := &shade.Block{CreateDependencyReducedPom: c.CreateDependencyReducedPom}
	for _, r := range c.Relocations {
		b.Relocations = append(b.Relocations, shade.RawRelocation{Pattern: r.Pattern, ShadedPattern: r.ShadedPattern})
	}
	return b
}
