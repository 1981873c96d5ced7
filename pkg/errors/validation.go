package errors

import (
	"strings"
	"unicode"
)

// maxSegmentLength bounds any single coordinate segment.
const maxSegmentLength = 256

// ValidateCoordinate checks the segments of a Maven coordinate read from an
// untrusted source (a tree file or mvn output).
//
// Group, artifact and version must be non-empty; no segment may contain
// whitespace, control characters or the ':' separator.
func ValidateCoordinate(group, artifact, version string) error {
	for _, seg := range []struct{ name, value string }{
		{"groupId", group},
		{"artifactId", artifact},
		{"version", version},
	} {
		if seg.value == "" {
			return New(ErrCodeInvalidCoordinate, "%s cannot be empty", seg.name)
		}
		if err := validateSegment(seg.name, seg.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSegment checks an optional coordinate segment (type, classifier, scope).
// Empty values are accepted.
func ValidateSegment(name, value string) error {
	if value == "" {
		return nil
	}
	return validateSegment(name, value)
}

func validateSegment(name, value string) error {
	if len(value) > maxSegmentLength {
		return New(ErrCodeInvalidCoordinate, "%s too long (max %d characters)", name, maxSegmentLength)
	}
	if strings.Contains(value, ":") {
		return New(ErrCodeInvalidCoordinate, "%s contains separator ':': %q", name, value)
	}
	for _, r := range value {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCoordinate, "%s contains invalid characters: %q", name, value)
		}
	}
	return nil
}

// ValidateModuleName validates a reactor module directory entry from a POM
// <modules> list. Module entries are relative paths inside the build.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "module name cannot be empty")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return New(ErrCodeInvalidManifest, "module %q must be a relative path", name)
	}
	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "module %q contains invalid characters", name)
		}
	}
	return nil
}
