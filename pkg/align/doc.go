// Package align classifies dependency versions against an alignment pattern
// and finds aligned direct dependencies that pull in unaligned versions.
//
// # Classification
//
// A version is aligned when the alignment pattern is found anywhere inside
// it. Matching is an unanchored, case-sensitive regular-expression search;
// the version string is compared verbatim, including build and qualifier
// suffixes:
//
//	p, _ := align.Compile("redhat")
//	align.Classify("1.2.3.redhat-00001", p) // Aligned
//	align.Classify("1.2.3", p)              // Unaligned
//
// Patterns are compiled once with [Compile]; a malformed expression fails
// there, before any tree is walked. [Classify] itself never fails and is
// safe for concurrent use.
//
// # Transitive instability
//
// [Detect] walks the subtree of each aligned direct dependency depth-first,
// tracking the path from the direct dependency down to the current node.
// Every unaligned node found on the way produces:
//
//   - its direct dependency in the summary (once per direct dependency), and
//   - the full path to it in the detail chains.
//
// Diamond dependencies are evaluated at every occurrence; nothing is cached
// between occurrences or between direct dependencies. The accumulators
// belong to one call, so independent modules can be analyzed concurrently
// with separate calls.
package align
