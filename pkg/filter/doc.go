// Package filter implements the artifact, scope and module filters applied
// before analysis.
//
// [Artifacts] parses the comma-separated exclusion syntax
//
//	[groupId]:[artifactId]:[type]:[version]
//
// where every segment is optional, an empty segment is a wildcard and a
// segment may use '*' as a full, prefix, suffix or contains wildcard, e.g.
// "org.apache.*" or ":::*-SNAPSHOT".
//
// [Scope] applies Maven's scope inclusion rules, and [Modules] matches reactor
// module names against glob patterns. Module globs are translated naively:
// '*' becomes ".*" and every other character is handed to the regular
// expression engine unescaped, so "." matches any character and other
// metacharacters keep their regex meaning.
package filter
