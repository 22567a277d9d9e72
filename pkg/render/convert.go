package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG at the given scale factor.
// A scale of 2.0 doubles the pixel dimensions.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// convert pipes the SVG through rsvg-convert. librsvg stays an optional
// runtime dependency: only PDF and PNG output need it installed.
func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command(converter, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", converter, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
