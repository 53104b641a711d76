package main

import (
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fluidview/internal/export"
	"github.com/san-kum/fluidview/internal/fluid"
	"github.com/san-kum/fluidview/internal/tui"
	"github.com/san-kum/fluidview/internal/viewer"
	"github.com/spf13/cobra"
)

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg.Controller.Help = true
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	res, err := probe(os.Stdout, opts, probeKeys, probeSteps, cfg.FPS)
	if err != nil {
		return err
	}
	if probeFrame != "" {
		if err := os.WriteFile(probeFrame, []byte(export.FrameSVG(res.frame, svgDotPitch, svgFluid)), 0644); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
		logger.Info("frame written", "path", probeFrame)
	}
	if probeEnergy != "" {
		if err := os.WriteFile(probeEnergy, []byte(export.SeriesSVG(res.energy, 800, 300, svgEnergy)), 0644); err != nil {
			return fmt.Errorf("failed to write energy plot: %w", err)
		}
		logger.Info("energy plot written", "path", probeEnergy)
	}
	return nil
}

const (
	svgDotPitch = 4
	svgFluid    = "#00a8cc"
	svgEnergy   = "#00ff88"
)

type probeResult struct {
	frame  [][]rune
	energy []float64
}

// probe drives a controller against a real solver with an off-screen
// display, then reports the overlay and the kinetic energy over time.
func probe(w io.Writer, opts viewer.Options, keys string, steps, fps int) (probeResult, error) {
	if steps < 0 || fps <= 0 {
		return probeResult{}, fmt.Errorf("steps and fps must be positive, got %d and %d", steps, fps)
	}
	sim := fluid.New()
	display := tui.NewDisplay(80, 24)
	ctrl, err := viewer.New(sim, display, opts)
	if err != nil {
		return probeResult{}, err
	}
	ctrl.Apply(true)
	for _, ch := range keys {
		if !ctrl.HandleKey(ch) {
			fmt.Fprintf(w, "unbound key %q\n", ch)
		}
	}

	energy := make([]float64, 0, steps)
	dt := 1 / float64(fps)
	for i := 0; i < steps; i++ {
		sim.Step(dt)
		energy = append(energy, sim.KineticEnergy())
	}

	controller, visibility := ctrl.Overlay()
	for _, l := range controller {
		fmt.Fprintln(w, l)
	}
	if len(visibility) > 0 {
		fmt.Fprintln(w)
		for _, l := range visibility {
			fmt.Fprintln(w, l)
		}
	}

	fmt.Fprintf(w, "\nscene %s, grid %d^2, %d particles, t=%.2fs\n",
		ctrl.Scene().Name, sim.GridSize(), len(sim.Particles()), sim.Time())
	if len(energy) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("kinetic energy")))
	}

	display.Render(sim)
	return probeResult{frame: display.Frame(), energy: energy}, nil
}
