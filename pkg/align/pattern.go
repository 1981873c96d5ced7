package align

import (
	"regexp"

	"github.com/streamshub/alignreport/pkg/errors"
)

// Verdict is the outcome of classifying one version.
type Verdict int

const (
	// Unaligned means the pattern was not found in the version.
	Unaligned Verdict = iota
	// Aligned means the pattern was found somewhere in the version.
	Aligned
)

// String returns "aligned" or "unaligned".
func (v Verdict) String() string {
	if v == Aligned {
		return "aligned"
	}
	return "unaligned"
}

// Pattern is a compiled alignment pattern. The zero value is not usable;
// create patterns with [Compile] or [MustCompile].
type Pattern struct {
	re *regexp.Regexp
}

// Compile parses expr as a regular expression. Errors carry
// [errors.ErrCodeInvalidPattern].
//
// The syntax is RE2: constructs such as look-around are rejected here
// rather than silently misbehaving later.
func Compile(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "alignment pattern cannot be empty")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "compile alignment pattern %q", expr)
	}
	return &Pattern{re: re}, nil
}

// MustCompile is like [Compile] but panics on error. Intended for tests and
// package-level variables.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string { return p.re.String() }

// Matches reports whether the pattern occurs anywhere in version.
func (p *Pattern) Matches(version string) bool {
	return p.re.MatchString(version)
}

// Classify returns [Aligned] iff p occurs anywhere within version.
func Classify(version string, p *Pattern) Verdict {
	if p.Matches(version) {
		return Aligned
	}
	return Unaligned
}
