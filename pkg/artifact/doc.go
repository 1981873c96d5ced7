// Package artifact defines Maven artifact coordinates and the dependency tree
// they form.
//
// # Coordinates
//
// A [Coordinate] identifies one resolved dependency: group, artifact name,
// version, type and an optional classifier. Scope is carried along for
// filtering but never takes part in identity: two coordinates that differ
// only in scope are the same artifact. Use [Coordinate.Key] wherever a
// coordinate is stored in a map.
//
// # Trees
//
// A [Node] is a coordinate plus its ordered children. The tree is rooted at
// the module under analysis; the root itself is never reported, only its
// children (the direct dependencies) and their descendants. The same
// coordinate may occur at several unrelated positions (diamond dependencies)
// and each occurrence is a distinct node.
//
// Child order is whatever the graph builder produced and is load-bearing:
// first-wins deduplication downstream depends on it.
package artifact
