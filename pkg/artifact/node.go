package artifact

// Node is one occurrence of a coordinate in a dependency tree.
//
// Nodes are treated as read-only once built; analysis never mutates them.
type Node struct {
	Artifact Coordinate
	Children []*Node
}

// NewNode creates a node with the given children.
func NewNode(c Coordinate, children ...*Node) *Node {
	return &Node{Artifact: c, Children: children}
}

// Direct returns the direct dependencies of root, i.e. its children.
// A nil root has no dependencies.
func Direct(root *Node) []*Node {
	if root == nil {
		return nil
	}
	return root.Children
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n, n included.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}

// Filter decides whether a node is hidden from analysis. A hidden node's
// whole subtree is hidden with it.
type Filter func(*Node) bool

// Excluded reports whether f hides n. A nil filter hides nothing.
func (f Filter) Excluded(n *Node) bool {
	return f != nil && f(n)
}

// Prune returns a copy of the tree rooted at n with every node for which
// exclude returns true removed together with its subtree. The root is never
// removed. The input tree is not modified.
func Prune(n *Node, exclude Filter) *Node {
	if n == nil {
		return nil
	}
	out := &Node{Artifact: n.Artifact}
	for _, c := range n.Children {
		if exclude.Excluded(c) {
			continue
		}
		out.Children = append(out.Children, Prune(c, exclude))
	}
	return out
}
