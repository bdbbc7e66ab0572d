package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbodysim/internal/analysis"
	"github.com/san-kum/nbodysim/internal/automation"
	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/export"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/optim"
	"github.com/san-kum/nbodysim/internal/physics"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	dataDir string
	// session overrides
	configFile   string
	preset       string
	steps        int
	dt           float64
	gravity      float64
	minDistance  float64
	trailCap     int
	seed         int64
	randomBodies int
	// live view
	frameRate int
	// plots and exports
	bodyA, bodyB int
	xAxis, yAxis string
	svgWidth     int
	svgHeight    int
	outFile      string
	// bench and studies
	benchRuns   int
	benchSteps  int
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	mcPerturb   float64
	lyapPerturb float64
	trials      int
)

// main registers the nbodysim commands and opens the interactive viewer when
// no subcommand is given. It exits with status 1 if the command fails.
func main() {
	// interrupt stops long runs between ticks; they keep the partial result
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nbodysim",
		Short: "gravitational n-body simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodysim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a session headless and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSessionFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a session in the live terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot separation and energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyA, "a", 0, "first body of the separation plot")
	plotCmd.Flags().IntVar(&bodyB, "b", 1, "second body of the separation plot")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "orbit or phase portrait of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyA, "body", 0, "body index")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "component for the x-axis ("+strings.Join(analysis.Components, ", ")+")")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "y", "component for the y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period and conserved quantities of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyA, "a", 0, "first body of the pair")
	analyzeCmd.Flags().IntVar(&bodyB, "b", 1, "second body of the pair")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export body trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tRANDOM\tDT\tSTEPS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%d\n", name, len(cfg.Bodies), cfg.RandomBodies, cfg.Dt, cfg.Steps)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		Args:  cobra.NoArgs,
		RunE:  benchSessions,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "parallel sessions per size")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 500, "ticks per session")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report drift",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSessionFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "parameter to sweep ("+strings.Join(config.ParamNames, ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.001, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.032, "sweep end")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 6, "number of sweep points")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search dt and min_distance for the lowest energy drift",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSessionFlags(tuneCmd)

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the seed bodies and count bounded outcomes",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSessionFlags(montecarloCmd)
	montecarloCmd.Flags().Float64Var(&mcPerturb, "perturbation", 0.05, "max per-axis perturbation")
	montecarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent of a session",
		Args:  cobra.NoArgs,
		RunE:  runLyapunov,
	}
	addSessionFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&lyapPerturb, "perturbation", 1e-6, "initial displacement of body 0")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a YAML scenario and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage session config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a preset as a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sessionConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	addSessionFlags(configInitCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd, sweepCmd, tuneCmd, montecarloCmd, lyapunovCmd,
		scenarioCmd, configCmd)
	return rootCmd
}

func addSessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "reference", "preset configuration ("+strings.Join(config.ListPresets(), ", ")+")")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	f.Float64Var(&dt, "dt", 0.016, "timestep")
	f.Float64Var(&gravity, "g", 0.5, "gravitational constant")
	f.Float64Var(&minDistance, "min-distance", 0.1, "force distance floor")
	f.IntVar(&trailCap, "trail", 100, "trail capacity")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	f.IntVar(&randomBodies, "random", 0, "extra random bodies")
}

// sessionConfig resolves the config file or preset, then applies only the
// flags the user set explicitly.
func sessionConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}
	if flags.Changed("trail") {
		cfg.TrailCapacity = trailCap
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("random") {
		cfg.RandomBodies = randomBodies
	}
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Steps == 0 {
		return fmt.Errorf("%w: steps must be positive", dynamo.ErrParameterBounds)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults(cfg.Params()) {
		s.AddMetric(m)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s with %d bodies...\n", cfg.Name, s.Len())
	start := time.Now()

	result, err := s.Run(cmd.Context(), cfg.Steps)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(out, "stopped early: %v\n", err)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "energy drift: %.3e\n", result.EnergyDrift)
	fmt.Fprintln(out, "\nmetrics:")
	metricNames := make([]string, 0, len(result.Metrics))
	for m := range result.Metrics {
		metricNames = append(metricNames, m)
	}
	slices.Sort(metricNames)
	for _, m := range metricNames {
		fmt.Fprintf(out, "  %s %s\n", viz.MetricLabel.Render(fmt.Sprintf("%-18s", m)), viz.MetricValue.Render(fmt.Sprintf("%.6f", result.Metrics[m])))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tSTEPS\tDURATION\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2fs\t%.4fs\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Masses),
			run.Steps,
			run.Duration(),
			run.Dt,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	frames, meta, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.HeaderStyle.Render("run: "+meta.ID))
	fmt.Fprintf(out, "bodies: %d\n", len(meta.Masses))
	fmt.Fprintf(out, "samples: %d\n\n", len(frames))

	sep := analysis.SeparationSeries(frames, bodyA, bodyB)
	if len(sep) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(sep,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("separation b%d-b%d", bodyA, bodyB)),
		))
		fmt.Fprintln(out)
	}

	p := meta.Params()
	energy := make([]float64, len(frames))
	for i, f := range frames {
		energy[i] = physics.Energy(physics.FromFrame(f), p)
	}
	fmt.Fprintln(out, asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	frames, meta, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.OrbitPortrait(frames, bodyA, xAxis, yAxis)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "portrait: %s\n", meta.ID)
	fmt.Fprintf(out, "body %d, x-axis: %s, y-axis: %s\n\n", bodyA, xAxis, yAxis)
	fmt.Fprint(out, analysis.PortraitToASCII(portrait, 70, 30))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	frames, meta, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	p := meta.Params()
	first := physics.FromFrame(frames[0])
	last := physics.FromFrame(frames[len(frames)-1])

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.HeaderStyle.Render("analysis: "+meta.ID))
	fmt.Fprintln(out, viz.Separator(40))

	e0, e1 := physics.Energy(first, p), physics.Energy(last, p)
	fmt.Fprintf(out, "energy       %12.6f -> %12.6f\n", e0, e1)
	l0, l1 := physics.AngularMomentum(first), physics.AngularMomentum(last)
	fmt.Fprintf(out, "ang momentum %12.6f -> %12.6f\n", r3.Norm(l0), r3.Norm(l1))
	c := physics.CenterOfMass(last)
	fmt.Fprintf(out, "center       (%.4f, %.4f, %.4f)\n", c.X, c.Y, c.Z)

	sep := analysis.SeparationSeries(frames, bodyA, bodyB)
	if period, ok := analysis.DominantPeriod(sep, meta.Dt); ok {
		fmt.Fprintf(out, "separation b%d-b%d period: %.4f\n", bodyA, bodyB, period)
	} else {
		fmt.Fprintf(out, "separation b%d-b%d: no dominant period\n", bodyA, bodyB)
	}

	spectrum := analysis.PowerSpectrum(sep)
	if len(spectrum) > 2 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(spectrum[1:min(len(spectrum), 128)],
			asciigraph.Height(8),
			asciigraph.Width(64),
			asciigraph.Caption("separation power spectrum"),
		))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	width := 0
	for _, row := range states {
		width = max(width, len(row))
	}
	if err := w.Write(storage.StateHeader(width / 6)); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frames, _, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	svg := export.TrajectoriesToSVG(export.Paths(frames), svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no trajectory to export")
	}
	if outFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func benchSessions(cmd *cobra.Command, args []string) error {
	sizes := []int{3, 10, 30, 100}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d ticks x %d sessions\n\n", benchSteps, benchRuns)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSESSIONS\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range sizes {
		cfg := config.DefaultConfig()
		cfg.Bodies = nil
		cfg.RandomBodies = n

		start := time.Now()
		results, err := sim.NewEnsemble(cfg, benchRuns, 42).Run(cmd.Context(), benchSteps)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		ticks := 0
		for _, r := range results {
			ticks += r.StepsTaken
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", n, benchRuns, ticks, elapsed, float64(ticks)/elapsed.Seconds())
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepPoints,
		Steps:     cfg.Steps,
	}, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENERGY_DRIFT\tMOMENTUM_DRIFT\tBOUNDED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.3e\t%.3e\t%.2f\n", r.ParamValue, r.EnergyDrift, r.MomentumDrift, r.Bounded)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	g := optim.NewGridSearch(
		[]string{"dt", "min_distance"},
		[][]float64{{0.002, 0.004, 0.008, 0.016}, {0.05, 0.1, 0.2}},
	)
	best, drift, err := g.Search(cmd.Context(), cfg, cfg.Steps, "energy_drift")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "best: dt=%g min_distance=%g\n", best["dt"], best["min_distance"])
	fmt.Fprintf(out, "energy drift: %.3e\n", drift)
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: mcPerturb,
		NumTrials:    trials,
		Steps:        cfg.Steps,
		Radius:       50,
		Seed:         cfg.Seed,
	}, out)
	if err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	frac := 0.0
	if len(results) > 0 {
		frac = float64(stable) / float64(len(results))
	}
	fmt.Fprintf(out, "\nbounded: %d  escaped: %d\n", stable, unstable)
	fmt.Fprintln(out, viz.ProgressBar(frac, 40))
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	lambda, err := analysis.LyapunovExponent(cmd.Context(), cfg, cfg.Steps, lyapPerturb)
	if err != nil {
		return err
	}
	verdict := "regular"
	if lambda > 0 {
		verdict = "chaotic"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "lyapunov exponent: %.4f (%s)\n", lambda, verdict)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintln(out, viz.HeaderStyle.Render(sc.Name))
	}
	results, err := automation.RunScenario(cmd.Context(), sc, out)
	if err != nil {
		return err
	}
	for _, r := range results {
		runID, err := st.Save(r.Config, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  drift %.3e\n", runID, r.Result.EnergyDrift)
	}
	return nil
}
