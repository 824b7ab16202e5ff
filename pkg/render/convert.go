package render

import (
	"bytes"
	"os/exec"
	"strconv"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// converter is the librsvg command line tool used for PDF and PNG output.
var converter = "rsvg-convert"

// ToPDF converts an SVG drawing of the object graph to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, "pdf")
}

// ToPNG converts an SVG drawing of the object graph to PNG. scale
// multiplies the drawing size; large submodels stay legible at 2 or more.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convertSVG(svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', -1, 64))
}

func convertSVG(svg []byte, format string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"writing %s graphs needs %s from librsvg on PATH (package librsvg2-bin or librsvg); dot and svg output work without it",
			format, converter)
	}

	cmd := exec.Command(path, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s %s: %s", converter, format, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
