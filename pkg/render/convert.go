package render

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/streamshub/alignreport/pkg/errors"
)

// Format is a diagram output format.
type Format string

const (
	FormatDOT Format = "dot" // Graphviz source, no rendering
	FormatSVG Format = "svg" // rendered by Graphviz
	FormatPDF Format = "pdf" // SVG converted with rsvg-convert
	FormatPNG Format = "png" // SVG converted with rsvg-convert at 2x
)

// Formats lists every supported diagram format.
var Formats = []Format{FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// pngScale renders PNG diagrams at twice their natural size so chain labels
// stay legible on high-DPI displays.
const pngScale = "2.00"

// Valid reports whether f is one of [Formats].
func (f Format) Valid() bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

// FormatFor picks the format of a diagram written to path: explicit when
// given, else the file extension, else SVG. An extension that is not a
// diagram format also yields SVG, so "chains.out" still gets a picture.
func FormatFor(path, explicit string) (Format, error) {
	if explicit != "" {
		f := Format(strings.ToLower(explicit))
		if !f.Valid() {
			return "", unknownFormat(explicit)
		}
		return f, nil
	}
	if f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f.Valid() {
		return f, nil
	}
	return FormatSVG, nil
}

// Convert turns a Graphviz SVG into f. SVG passes through unchanged; PDF and
// PNG need rsvg-convert from librsvg on PATH.
func Convert(ctx context.Context, svg []byte, f Format) ([]byte, error) {
	switch f {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return rsvgConvert(ctx, svg, f)
	case FormatPNG:
		return rsvgConvert(ctx, svg, f, "-z", pngScale)
	case FormatDOT:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "a rendered diagram cannot be converted back to dot")
	default:
		return nil, unknownFormat(string(f))
	}
}

func unknownFormat(name string) error {
	valid := make([]string, len(Formats))
	for i, f := range Formats {
		valid[i] = string(f)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown diagram format %q (valid: %s)", name, strings.Join(valid, ", "))
}

func rsvgConvert(ctx context.Context, svg []byte, f Format, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"a %s chain diagram needs rsvg-convert from librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin); write the diagram as .svg or .dot instead", f)
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", append([]string{"-f", string(f)}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert chain diagram to %s: %s", f, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
