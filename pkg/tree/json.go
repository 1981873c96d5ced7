package tree

import (
	"encoding/json"
	"io"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
)

type jsonNode struct {
	GroupID    string      `json:"groupId"`
	ArtifactID string      `json:"artifactId"`
	Version    string      `json:"version"`
	Type       string      `json:"type,omitempty"`
	Classifier string      `json:"classifier,omitempty"`
	Scope      string      `json:"scope,omitempty"`
	Optional   string      `json:"optional,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

// ReadJSON decodes a dependency tree in the Maven dependency plugin's JSON
// format. Every node must carry a group, artifact and version; a missing type
// defaults to [artifact.DefaultType]. Child order is preserved.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*artifact.Node, error) {
	var root jsonNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode json tree")
	}
	return fromJSON(&root)
}

func fromJSON(n *jsonNode) (*artifact.Node, error) {
	c := artifact.Coordinate{
		GroupID:    n.GroupID,
		ArtifactID: n.ArtifactID,
		Version:    n.Version,
		Type:       n.Type,
		Classifier: n.Classifier,
		Scope:      n.Scope,
	}
	if c.Type == "" {
		c.Type = artifact.DefaultType
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "node %s:%s", n.GroupID, n.ArtifactID)
	}

	out := artifact.NewNode(c)
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		cn, err := fromJSON(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, cn)
	}
	return out, nil
}

// WriteJSON encodes a tree in the format read by [ReadJSON].
func WriteJSON(w io.Writer, root *artifact.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(root)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json tree")
	}
	return nil
}

func toJSON(n *artifact.Node) *jsonNode {
	if n == nil {
		return nil
	}
	out := &jsonNode{
		GroupID:    n.Artifact.GroupID,
		ArtifactID: n.Artifact.ArtifactID,
		Version:    n.Artifact.Version,
		Type:       n.Artifact.Type,
		Classifier: n.Artifact.Classifier,
		Scope:      n.Artifact.Scope,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}
