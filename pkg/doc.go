// Package pkg provides the libraries behind alignreport, a dependency
// alignment reporter for Maven builds.
//
// # Overview
//
// A product build often rebuilds its upstream dependencies and marks the
// rebuilt versions with a qualifier such as "redhat-00001". A dependency is
// aligned when its version carries that qualifier. alignreport tells which
// direct dependencies are aligned, which aligned ones still drag in unaligned
// transitive dependencies, and which artifacts the shade plugin relocates
// into the build output.
//
// # Architecture
//
// The typical data flow:
//
//	pom.xml reactor                 [pom]
//	         ↓
//	resolved dependency trees        [tree] (Maven or saved output, cached by [cache])
//	         ↓
//	classification + chain detection [align], [paths], [shade], [filter]
//	         ↓
//	per-module report                [report]
//	         ↓
//	text / JSON / YAML / Graphviz    [report], [render/chains]
//
// # Packages
//
//   - [artifact]: coordinates and dependency tree nodes
//   - [align]: alignment pattern, classifier and transitive instability detector
//   - [paths]: first-path-wins dependency path tracking
//   - [shade]: relocation rule parsing and shaded artifact matching
//   - [filter]: artifact, scope and module exclusion
//   - [report]: report composition, batching and rendering
//   - [errors], [observability], [buildinfo], [config]: ambient infrastructure
package pkg
