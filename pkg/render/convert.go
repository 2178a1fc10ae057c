package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// RenderPDF renders the page as PDF via SVG conversion.
func RenderPDF(p Page, opts ...SVGOption) ([]byte, error) {
	return ToPDF(RenderSVG(p, opts...))
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert at the given resolution.
func ToPNG(svg []byte, dpi float64) ([]byte, error) {
	d := fmt.Sprintf("%.0f", dpi)
	return rsvgConvert(svg, "png", "--dpi-x", d, "--dpi-y", d)
}

// HasConverter reports whether rsvg-convert is on PATH.
func HasConverter() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !HasConverter() {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
