package tree

import (
	"bufio"
	"io"
	"strings"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
)

const infoPrefix = "[INFO] "

// ReadText parses the Maven dependency plugin's text tree.
//
// The first line that parses as a coordinate becomes the root. Following
// lines are nested by their indentation, three columns per level. Console
// noise before the root is skipped, and the tree ends at the first line after
// the root that is not a tree line. Trailing annotations such as
// "(version managed from 1.0)" are dropped, and the verbose form's omitted
// entries, written wholly in parentheses, are skipped.
func ReadText(r io.Reader) (*artifact.Node, error) {
	var (
		root  *artifact.Node
		stack []*artifact.Node
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		text = strings.TrimPrefix(text, infoPrefix)

		if root == nil {
			c, err := artifact.Parse(stripAnnotation(text))
			if err != nil {
				continue
			}
			root = artifact.NewNode(c)
			stack = []*artifact.Node{root}
			continue
		}

		depth, rest, ok := splitIndent(text)
		if !ok {
			break
		}
		if strings.HasPrefix(rest, "(") {
			continue
		}
		if depth > len(stack) {
			return nil, errors.New(errors.ErrCodeInvalidTree, "line %d: unexpected indentation", line)
		}
		c, err := artifact.Parse(stripAnnotation(rest))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "line %d", line)
		}

		n := artifact.NewNode(c)
		parent := stack[depth-1]
		parent.Children = append(parent.Children, n)
		stack = append(stack[:depth], n)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "read text tree")
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "no root coordinate found")
	}
	return root, nil
}

// splitIndent measures the tree prefix of a line. Depth is the number of
// three-column units up to and including the branch marker.
func splitIndent(s string) (depth int, rest string, ok bool) {
	for len(s) >= 3 {
		unit := s[:3]
		switch unit {
		case "+- ", `\- `:
			return depth + 1, s[3:], true
		case "|  ", "   ":
			depth++
			s = s[3:]
		default:
			return 0, "", false
		}
	}
	return 0, "", false
}

func stripAnnotation(s string) string {
	if i := strings.Index(s, " ("); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
