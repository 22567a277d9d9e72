package pipeline

import (
	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/render/nodelink"
	"github.com/mvoelker/tourmaline/pkg/render/route"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Render generates output artifacts in the requested formats.
func Render(inst *tsp.Instance, sol *tsp.Solution, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsNodelink() {
		return renderNodelink(inst, sol, opts)
	}
	return renderRoute(inst, sol, opts)
}

// renderRoute generates route plot outputs.
func renderRoute(inst *tsp.Instance, sol *tsp.Solution, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = route.RenderSVG(inst, sol, svgOpts...)
		case FormatPNG:
			data, err = route.RenderPNG(inst, sol, route.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = route.RenderPDF(inst, sol, route.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = route.RenderJSON(inst, sol, route.WithJSONSize(opts.Width, opts.Height))
		case FormatText:
			data = route.RenderText(inst, sol)
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported route format: %s", format)
		}

		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates nodelink outputs. The DOT graph is generated
// once and shared by all formats.
func renderNodelink(inst *tsp.Instance, sol *tsp.Solution, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(inst, sol, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds route plot rendering options.
func buildSVGOptions(opts Options) []route.SVGOption {
	var svgOpts []route.SVGOption
	if opts.Width != 0 || opts.Height != 0 {
		svgOpts = append(svgOpts, route.WithSize(opts.Width, opts.Height))
	}
	return svgOpts
}
