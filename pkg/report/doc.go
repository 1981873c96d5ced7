// Package report composes alignment results for one module and renders them.
//
// [Analyze] runs the whole analysis over a resolved dependency tree:
//
//  1. Direct dependencies are the root's children, minus excluded nodes and
//     artifacts built by the reactor itself.
//  2. They are split into aligned and unaligned by the alignment pattern.
//  3. Aligned ones are walked for unaligned descendants.
//  4. Optionally, direct (or all) artifacts are matched against the reactor's
//     shade relocation rules.
//
// The resulting [Report] holds plain sorted lists. [WriteText] renders the
// human-readable report, and [WriteJSON] and [WriteYAML] export the same data
// for other tools. [Failure] turns a report into the build-breaking error
// used with --fail-on-unaligned.
//
// Every module is analyzed with its own accumulators, so [AnalyzeAll] can run
// modules in parallel.
package report
