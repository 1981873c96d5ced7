package pom

import (
	"os"
	"path/filepath"
)

// Lineage returns the POM at path followed by every ancestor found on disk
// through <parent><relativePath>. The walk stops at the first parent that is
// missing, unreadable or whose coordinates differ from the <parent> element,
// since Maven then resolves it from a repository instead.
//
// A module's resolved tree depends on each file in its lineage: versions
// managed in a parent change the tree of an unchanged child.
func Lineage(path string) ([]string, error) {
	p, err := Read(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	out := []string{abs}
	seen := map[string]bool{abs: true}
	for p.Parent != nil {
		next := parentPath(abs, p.Parent)
		if next == "" || seen[next] {
			break
		}
		parent, err := Read(next)
		if err != nil || parent.GroupID != p.Parent.GroupID || parent.ArtifactID != p.Parent.ArtifactID {
			break
		}
		seen[next] = true
		out = append(out, next)
		p, abs = parent, next
	}
	return out, nil
}

// parentPath resolves the parent reference of the POM at child, or returns
// "" when the lookup is disabled.
func parentPath(child string, ref *Parent) string {
	rel := "../pom.xml"
	if ref.RelativePath != nil {
		rel = *ref.RelativePath
	}
	if rel == "" {
		return ""
	}
	path := filepath.Join(filepath.Dir(child), filepath.FromSlash(rel))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "pom.xml")
	}
	return path
}
