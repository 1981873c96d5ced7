package artifact

import (
	"cmp"
	"strings"

	"github.com/streamshub/alignreport/pkg/errors"
)

// DefaultType is the packaging type assumed when a coordinate omits one.
const DefaultType = "jar"

// Coordinate identifies a dependency. It is a value type; copies are
// independent and no method mutates the receiver.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
	Scope      string // not part of identity
}

// Key is the identity of a coordinate: everything except scope.
// It is comparable and safe to use as a map key.
type Key struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
}

// Key returns the identity tuple of c.
func (c Coordinate) Key() Key {
	return Key{
		GroupID:    c.GroupID,
		ArtifactID: c.ArtifactID,
		Version:    c.Version,
		Type:       c.Type,
		Classifier: c.Classifier,
	}
}

// Equal reports whether c and o identify the same artifact, ignoring scope.
func (c Coordinate) Equal(o Coordinate) bool { return c.Key() == o.Key() }

// String renders group:name:version:type[:classifier].
func (c Coordinate) String() string { return c.Key().String() }

// String renders group:name:version:type[:classifier].
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.GroupID)
	b.WriteByte(':')
	b.WriteString(k.ArtifactID)
	b.WriteByte(':')
	b.WriteString(k.Version)
	b.WriteByte(':')
	b.WriteString(k.Type)
	if k.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(k.Classifier)
	}
	return b.String()
}

// Compare orders coordinates by group then artifact name. Coordinates that
// differ only in version, type or classifier compare equal, so callers that
// need a stable result must use a stable sort.
func Compare(a, b Coordinate) int {
	return cmp.Or(
		cmp.Compare(a.GroupID, b.GroupID),
		cmp.Compare(a.ArtifactID, b.ArtifactID),
	)
}

// Parse reads a coordinate in the form printed by the Maven dependency tree:
//
//	group:artifact:version
//	group:artifact:type:version
//	group:artifact:type:version:scope
//	group:artifact:type:classifier:version:scope
//
// A six-segment form is the only one that carries a classifier. A missing
// type defaults to [DefaultType].
func Parse(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var c Coordinate
	switch len(parts) {
	case 3:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	case 4:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Version: parts[3]}
	case 5:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Version: parts[3], Scope: parts[4]}
	case 6:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Classifier: parts[3], Version: parts[4], Scope: parts[5]}
	default:
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "malformed coordinate %q", s)
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if err := c.Validate(); err != nil {
		return Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "coordinate %q", s)
	}
	return c, nil
}

// Validate checks that the required segments are present and well formed.
func (c Coordinate) Validate() error {
	if err := errors.ValidateCoordinate(c.GroupID, c.ArtifactID, c.Version); err != nil {
		return err
	}
	for _, seg := range []struct{ name, value string }{
		{"type", c.Type},
		{"classifier", c.Classifier},
		{"scope", c.Scope},
	} {
		if err := errors.ValidateSegment(seg.name, seg.value); err != nil {
			return err
		}
	}
	return nil
}
