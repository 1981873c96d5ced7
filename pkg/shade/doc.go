// Package shade extracts relocation rules from a module's shade-plugin
// configuration and decides whether an artifact is plausibly affected by
// shading.
//
// # Parsing
//
// [Parse] reads a module's raw [PluginConfig]: the createDependencyReducedPom
// flag from the top-level configuration, then relocation rules from the
// top-level configuration followed by those of every execution, in
// declaration order and without deduplication. Rules missing either pattern
// are skipped. [ParseAll] drops modules that end up with no rules at all.
//
// # Matching
//
// [IsShaded] is a deliberately permissive heuristic. Maven group ids and Java
// package names are only loosely related, so an artifact is considered shaded
// when, for any rule:
//
//  1. its group starts with the rule's source pattern,
//  2. the source pattern starts with its group, or
//  3. the source pattern contains its artifact name.
//
// The result is a signal for reporting, not proof that any class was
// actually relocated; false positives are expected.
package shade
