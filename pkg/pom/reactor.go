package pom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/streamshub/alignreport/pkg/errors"
)

// Reactor reads the project at rootPom and every module it lists,
// recursively. Projects are returned root first, then in declaration order,
// depth first. A module entry may name a directory containing pom.xml or a
// POM file directly. Each file is read once even if listed twice.
func Reactor(rootPom string) ([]*Project, error) {
	var (
		out  []*Project
		seen = map[string]bool{}
	)
	var visit func(path string) error
	visit = func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "resolve %s", path)
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true

		p, err := Read(path)
		if err != nil {
			return err
		}
		out = append(out, p)

		dir := filepath.Dir(path)
		for _, m := range p.Modules {
			child, err := modulePom(dir, m)
			if err != nil {
				return err
			}
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(rootPom); err != nil {
		return nil, err
	}
	return out, nil
}

func modulePom(dir, module string) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(module))
	if strings.HasSuffix(module, ".xml") {
		return path, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeModuleNotFound, err, "module %s", module)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeModuleNotFound, "module %s is not a directory", module)
	}
	return filepath.Join(path, "pom.xml"), nil
}
