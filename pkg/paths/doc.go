// Package paths flattens a dependency tree into one path-annotated record per
// distinct artifact.
//
// [Collect] walks the tree in pre-order and emits a [Record] for every node,
// direct dependencies included, carrying the path from the direct dependency
// down to that node. Records are keyed by artifact coordinate and the first
// write wins: when an artifact is reachable along several paths, only the
// path met first in traversal order is kept. Later paths are discarded, not
// merged, and neither the shortest nor all paths are retained.
package paths
