package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/pipeline"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		parallel int
		timeout  time.Duration
		doRender bool
		formats  string
		view     string
		output   string
		force    bool
		showLegs bool
	)

	cmd := &cobra.Command{
		Use:   "solve <instance>",
		Short: "Compute the optimal round trip for an instance",
		Long: `Solve parses a distance-matrix instance and computes the provably optimal
tour. Pass an instance file (labeled, bare, or TSPLIB explicit-matrix
format) or a directory to pick one of its instances interactively.`,
		Example: `  tourmaline solve cities.txt
  tourmaline solve examples/
  tourmaline solve cities.txt --legs
  tourmaline solve cities.txt --render --format svg,png`,
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

			if !doRender {
				for _, name := range []string{"format", "view", "output", "force"} {
					if cmd.Flags().Changed(name) {
						printWarning("--%s has no effect without --render", name)
					}
				}
			}

			opts := c.pipelineOptions(cmd, path, parallel, timeout, view, formats, 0, 0, false)

			runner := newRunner(ctx)
			defer runner.Close()

			// Parse up front so the spinner can name the instance.
			inst, err := runner.Parse(opts)
			if err != nil {
				printError("%s", apperrors.UserMessage(err))
				return err
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s (%d cities)...", inst.Name, inst.Matrix.Dim()))
			spinner.Start()
			sol, err := runner.Solve(ctx, inst, opts)
			if err != nil {
				spinner.StopWithError(apperrors.UserMessage(err))
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Optimal tour for %s", inst.Name))

			printNewline()
			printTour(tourStops(inst, sol))
			printNewline()
			printKeyValue("Cost", StyleSuccess.Render(trimFloat(sol.Cost)))
			if showLegs {
				printNewline()
				for _, leg := range sol.Legs {
					printLeg(inst.Labels[leg.From], inst.Labels[leg.To], leg.Distance)
				}
			}
			printStats(inst.Matrix.Dim(), sol.Stats.States, false)

			if !doRender {
				return nil
			}

			printNewline()
			artifacts, err := runner.Render(ctx, inst, sol, opts)
			if err != nil {
				printError("%s", apperrors.UserMessage(err))
				return err
			}
			written, err := writeArtifacts(artifacts, outputBase(output, path), path, force)
			if err != nil {
				printError("%s", apperrors.UserMessage(err))
				return err
			}
			printSuccess("Wrote %d artifact(s)", len(written))
			for _, p := range written {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "solver workers (0 = one per CPU)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "abort the solve after this duration")
	cmd.Flags().BoolVar(&showLegs, "legs", false, "print each leg with its distance")
	cmd.Flags().BoolVar(&doRender, "render", false, "also write render artifacts")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "render formats, comma-separated (svg, png, pdf, json, dot, txt)")
	cmd.Flags().StringVar(&view, "view", "", "render view: route or nodelink")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path for artifacts (default next to the instance)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing artifact files")

	return cmd
}

// pipelineOptions merges config defaults with command flags. Flags win when
// set, config values apply otherwise, and pipeline defaults fill the rest.
func (c *CLI) pipelineOptions(cmd *cobra.Command, path string, parallel int, timeout time.Duration, view, formats string, width, height float64, detailed bool) pipeline.Options {
	opts := pipeline.Options{
		Input:       path,
		Parallelism: c.Config.Parallelism,
		Timeout:     c.Config.Timeout.Duration,
		View:        c.Config.View,
		Formats:     c.Config.Formats,
		Width:       c.Config.Width,
		Height:      c.Config.Height,
		Detailed:    detailed,
		Logger:      c.Logger,
	}

	f := cmd.Flags()
	if f.Changed("parallel") {
		opts.Parallelism = parallel
	}
	if f.Changed("timeout") {
		opts.Timeout = timeout
	}
	if f.Changed("view") {
		opts.View = view
	}
	if f.Changed("format") {
		opts.Formats = parseFormats(formats)
	}
	if f.Changed("width") {
		opts.Width = width
	}
	if f.Changed("height") {
		opts.Height = height
	}
	return opts
}

// resolveInstancePath expands a directory argument into a concrete instance
// file via the interactive picker. Returns "" when the picker is dismissed.
func resolveInstancePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	entries, err := scanInstances(path)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", apperrors.New(apperrors.ErrCodeInvalidPath, "no instance files in %s", path)
	}
	return pickInstance(entries)
}

// tourStops maps the tour indices to display labels.
func tourStops(inst *tsp.Instance, sol *tsp.Solution) []string {
	stops := make([]string, len(sol.Tour))
	for i, city := range sol.Tour {
		stops[i] = inst.Labels[city]
	}
	return stops
}
