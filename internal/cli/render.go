package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		parallel int
		timeout  time.Duration
		formats  string
		view     string
		output   string
		width    float64
		height   float64
		detailed bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "render <instance>",
		Short: "Solve an instance and write tour artifacts",
		Long: `Render solves the instance and writes the optimal tour in one or more
formats. Route plots place the cities on a circle with the tour drawn
through them; node-link diagrams lay the tour out with Graphviz.`,
		Example: `  tourmaline render cities.txt
  tourmaline render cities.txt --format svg,png,json
  tourmaline render cities.txt --view nodelink --format dot --detailed
  tourmaline render cities.txt --output out/tour --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, err := resolveInstancePath(args[0])
			if err != nil {
				return err
			}
			if path == "" {
				printDetail("No instance selected")
				return nil
			}
			if output != "" {
				if err := apperrors.ValidateOutputBase(output); err != nil {
					printError("%s", apperrors.UserMessage(err))
					return err
				}
			}

			opts := c.pipelineOptions(cmd, path, parallel, timeout, view, formats, width, height, detailed)

			runner := newRunner(ctx)
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(path)))
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				spinner.StopWithError(apperrors.UserMessage(err))
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Optimal tour for %s, cost %s", result.Instance.Name, trimFloat(result.Solution.Cost)))

			written, err := writeArtifacts(result.Artifacts, outputBase(output, path), path, force)
			if err != nil {
				printError("%s", apperrors.UserMessage(err))
				return err
			}
			for _, p := range written {
				printFile(p)
			}
			printStats(result.Stats.Cities, result.Solution.Stats.States, result.CacheInfo.SolveHit)
			prog.done(fmt.Sprintf("Wrote %d artifact(s)", len(written)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "solver workers (0 = one per CPU)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "abort the solve after this duration")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "render formats, comma-separated (svg, png, pdf, json, dot, txt)")
	cmd.Flags().StringVar(&view, "view", "", "render view: route or nodelink")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default next to the instance)")
	cmd.Flags().Float64Var(&width, "width", 0, "route plot width in points")
	cmd.Flags().Float64Var(&height, "height", 0, "route plot height in points")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label node-link edges with leg distances")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing artifact files")

	return cmd
}

// writeArtifacts writes each artifact to base.<format> in stable format
// order. Without force, existing files get a numbered suffix instead of
// being overwritten. The instance file itself is never overwritten.
func writeArtifacts(artifacts map[string][]byte, base, inputPath string, force bool) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "create output directory %s", dir)
		}
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if !force || filepath.Clean(path) == filepath.Clean(inputPath) {
			var err error
			if path, err = render.UniquePath(path); err != nil {
				return written, apperrors.Wrap(apperrors.ErrCodeResourceExhausted, err, "resolve output path")
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return written, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// outputBase derives the artifact base path from the --output flag, falling
// back to the instance path. A recognized extension is stripped so that
// "cities.txt" becomes the base for "cities.svg".
func outputBase(output, instancePath string) string {
	if output != "" {
		return stripArtifactExt(output)
	}
	return stripArtifactExt(instancePath)
}

// stripArtifactExt removes a recognized instance or artifact extension.
// Unknown extensions stay, so "rotterdam.v2" keeps its suffix.
func stripArtifactExt(path string) string {
	ext := filepath.Ext(path)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "svg", "png", "pdf", "json", "dot", "txt", "tsp":
		return strings.TrimSuffix(path, ext)
	}
	return path
}
