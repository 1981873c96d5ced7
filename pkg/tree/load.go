package tree

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
)

// Load reads a tree file. Files ending in .json are decoded with [ReadJSON];
// anything else is parsed with [ReadText].
func Load(path string) (*artifact.Node, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "open %s", path)
	}
	defer f.Close()

	var root *artifact.Node
	if strings.EqualFold(filepath.Ext(path), ".json") {
		root, err = ReadJSON(f)
	} else {
		root, err = ReadText(f)
	}
	return root, err
}
