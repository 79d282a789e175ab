package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/photonwalk/internal/analysis"
	"github.com/san-kum/photonwalk/internal/config"
	"github.com/san-kum/photonwalk/internal/experiment"
	"github.com/san-kum/photonwalk/internal/export"
	"github.com/san-kum/photonwalk/internal/logging"
	"github.com/san-kum/photonwalk/internal/metrics"
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/storage"
	"github.com/san-kum/photonwalk/internal/sweep"
	"github.com/san-kum/photonwalk/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logDev     bool

	photons      int
	stars        int
	mass         float64
	radius       float64
	opacity      float64
	seed         int64
	maxTicks     int
	densityFloor float64
	stride       int
	frameRate    int

	noSave   bool
	pngOut   string
	svgOut   string
	outPath  string
	numRuns  int
	workers  int
	samples  int
	atRadius float64
	points   int

	sweepPhotons []float64
	sweepMass    []float64
	sweepRadius  []float64
	sweepOpacity []float64
)

// walkFlags are shared by every command that starts a walk.
func walkFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("walk", pflag.ContinueOnError)
	fs.IntVar(&photons, "photons", config.DefaultPhotons, "number of photons (1-25)")
	fs.IntVar(&stars, "stars", config.DefaultBackgroundStars, "background stars (0-100)")
	fs.Float64Var(&mass, "mass", config.DefaultMass, "stellar mass in solar masses (0.1-25)")
	fs.Float64Var(&radius, "radius", config.DefaultRadius, "stellar radius in solar radii (0.2-2)")
	fs.Float64Var(&opacity, "opacity", config.DefaultOpacity, "opacity in m^2/kg (0.1-25)")
	fs.Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	fs.IntVar(&maxTicks, "max-ticks", 0, "stop after this many ticks (0 = no limit)")
	fs.Float64Var(&densityFloor, "density-floor", 0, "minimum density in kg/m^3 (default 1e-12)")
	fs.IntVar(&stride, "stride", config.DefaultRecordStride, "record every n-th tick")
	return fs
}

// main is the entry point for the photonwalk CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:          "photonwalk",
		Short:        "monte carlo photon random walk through a star",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(level, logDev)
			if err != nil {
				return err
			}
			cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default .photonwalk)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: info, debug or trace")
	rootCmd.PersistentFlags().BoolVar(&logDev, "log-dev", false, "human-readable development logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a walk to completion and store it",
		RunE:  runWalk,
	}
	runCmd.Flags().AddFlagSet(walkFlags())
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&pngOut, "png", "", "also render the walk to this PNG file")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "also render the walk to this SVG file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a walk with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().AddFlagSet(walkFlags())
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent walks concurrently and summarize escape ticks",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().AddFlagSet(walkFlags())
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 16, "number of walks")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "concurrent walks (default number of CPUs)")

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "run an ensemble and print prometheus metrics",
		RunE:  runMetrics,
	}
	metricsCmd.Flags().AddFlagSet(walkFlags())
	metricsCmd.Flags().IntVar(&numRuns, "runs", 4, "number of walks")
	metricsCmd.Flags().IntVar(&workers, "workers", 0, "concurrent walks (default number of CPUs)")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "check sampled step lengths against the exponential distribution",
		RunE:  sampleSteps,
	}
	sampleCmd.Flags().AddFlagSet(walkFlags())
	sampleCmd.Flags().IntVar(&samples, "n", 100000, "number of samples")
	sampleCmd.Flags().Float64Var(&atRadius, "at", 0, "radius as a fraction of the stellar radius")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "print density and mean free path from center to surface",
		RunE:  showProfile,
	}
	profileCmd.Flags().AddFlagSet(walkFlags())
	profileCmd.Flags().IntVar(&points, "points", 10, "number of radial intervals")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one walk per point of a parameter grid",
		RunE:  runSweep,
	}
	sweepCmd.Flags().AddFlagSet(walkFlags())
	sweepCmd.Flags().Float64SliceVar(&sweepPhotons, "sweep-photons", nil, "photon counts to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepMass, "sweep-mass", nil, "masses to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepRadius, "sweep-radius", nil, "radii to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepOpacity, "sweep-opacity", nil, "opacities to sweep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot furthest and mean radius of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render a run to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.png)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPHOTONS\tSTARS\tMASS\tRADIUS\tOPACITY\tMAX TICKS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%g\t%d\n", name,
					p.Params.Photons, p.Params.BackgroundStars, p.Params.Mass,
					p.Params.Radius, p.Params.Opacity, p.MaxTicks)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, metricsCmd, sampleCmd, profileCmd, sweepCmd,
		listCmd, plotCmd, exportJSONCmd, exportPNGCmd, exportSVGCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the run configuration. A config file wins over a
// preset; flags set on the command line win over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case preset != "":
		cfg, err = config.LoadPreset(preset)
		if err != nil {
			return nil, err
		}
	default:
		cfg, err = config.Load("")
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("photons") {
		cfg.Params.Photons = photons
	}
	if flags.Changed("stars") {
		cfg.Params.BackgroundStars = stars
	}
	if flags.Changed("mass") {
		cfg.Params.Mass = mass
	}
	if flags.Changed("radius") {
		cfg.Params.Radius = radius
	}
	if flags.Changed("opacity") {
		cfg.Params.Opacity = opacity
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("density-floor") {
		cfg.DensityFloor = densityFloor
	}
	if flags.Changed("stride") {
		cfg.RecordStride = stride
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, a := range exp.Adjustments() {
		fmt.Println(a.String())
	}
	return exp, nil
}

func runName() string {
	if preset != "" {
		return preset
	}
	return "walk"
}

func openStore() (*storage.Store, error) {
	dir := dataDir
	if dir == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		dir = cfg.DataDir
	}
	st := storage.New(dir)
	return st, st.Init()
}

func printResult(res *sim.Result) {
	fmt.Printf("reason: %s\n", res.Reason)
	fmt.Printf("ticks: %d\n", res.Ticks)
	fmt.Printf("furthest: %.3f steps\n", res.Furthest)
	fmt.Printf("escaped: %d/%d\n", res.Escaped, len(res.Population))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
}

func saveRun(exp *experiment.Experiment, res *sim.Result) error {
	st := storage.New(exp.Config().DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(exp.Metadata(runName(), res), exp.Frames())
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	p := exp.Config().Params
	fmt.Printf("walking %d photon(s) out of a %.2g M☉ / %.2g R☉ star...\n", p.Photons, p.Mass, p.Radius)
	start := time.Now()

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	if !noSave {
		if err := saveRun(exp, res); err != nil {
			return err
		}
	}
	printResult(res)

	if pngOut != "" {
		if err := export.WritePNG(pngOut, exp.Scene(), exp.Frames()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
	}
	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.TrajectorySVG(exp.Scene(), exp.Frames())), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	loop, err := exp.Build()
	if err != nil {
		return err
	}

	cfg := exp.Config()
	title := fmt.Sprintf("%s  %.2g M☉  %.2g R☉  κ=%.2g", runName(), cfg.Params.Mass, cfg.Params.Radius, cfg.Params.Opacity)
	res, err := viz.Live(cmd.Context(), loop, exp.Scene(), cfg.FrameRate, title)
	if err != nil {
		return err
	}

	if res.Reason == sim.ReasonEscaped && !noSave {
		if err := saveRun(exp, res); err != nil {
			return err
		}
	}
	printResult(res)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(exp.Factory(), numRuns, exp.Config().Seed)
	if workers > 0 {
		ens.SetWorkers(workers)
	}

	fmt.Printf("running %d walks...\n", numRuns)
	start := time.Now()
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	reasons := make(map[string]int)
	ticks := make([]float64, 0, len(results))
	for _, res := range results {
		reasons[res.Reason.String()]++
		if res.Reason == sim.ReasonEscaped {
			ticks = append(ticks, float64(res.Ticks))
		}
	}
	for _, name := range []string{sim.ReasonEscaped.String(), sim.ReasonCancelled.String()} {
		fmt.Printf("%s: %d\n", name, reasons[name])
	}

	if len(ticks) == 0 {
		return nil
	}
	summary, err := analysis.Summarize(ticks)
	if err != nil {
		return err
	}
	fmt.Printf("escape ticks: %s\n\n", summary)

	if len(ticks) > 1 {
		fmt.Println(asciigraph.Plot(ticks,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("escape tick per run"),
		))
	}
	return nil
}

func runMetrics(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg, exp.Properties().RadiusSteps())
	if err != nil {
		return err
	}

	build := exp.Factory()
	factory := func(seed int64) (*sim.Loop, error) {
		loop, err := build(seed)
		if err != nil {
			return nil, err
		}
		loop.AddObserver(collector.ForRun(strconv.FormatInt(seed, 10)))
		return loop, nil
	}

	ens := sim.NewEnsemble(factory, numRuns, exp.Config().Seed)
	if workers > 0 {
		ens.SetWorkers(workers)
	}
	if _, err := ens.Run(cmd.Context()); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}

func sampleSteps(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	props := exp.Properties()
	cfg := exp.Config()
	if atRadius < 0 || atRadius > 1 {
		return fmt.Errorf("--at must be within 0-1, got %g", atRadius)
	}
	rSteps := atRadius * props.RadiusSteps()
	lambda, err := sampling.MeanFreePath(cfg.Params.Opacity, props.DensityAtSteps(rSteps))
	if err != nil {
		return err
	}

	sampler := sampling.NewSampler(sampling.NewSeededSource(cfg.Seed))
	steps, err := analysis.SampleSteps(sampler, lambda, samples)
	if err != nil {
		return err
	}
	fit, err := analysis.CheckExponential(steps, lambda)
	if err != nil {
		return err
	}

	fmt.Printf("radius: %.1f steps (%.0f%% of surface)\n", rSteps, atRadius*100)
	fmt.Printf("density: %.6g kg/m^3\n", props.DensityAtSteps(rSteps))
	fmt.Printf("mean free path: %.6g m\n", lambda)
	fmt.Printf("sample mean: %.6g m (relative error %.4f)\n", fit.Mean, fit.RelErr)
	fmt.Printf("coefficient of variation: %.4f (exponential: 1)\n", fit.CV)
	return nil
}

func showProfile(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	props := exp.Properties()
	profile, err := analysis.RadialProfile(props, exp.Config().Params.Opacity, points)
	if err != nil {
		return err
	}

	fmt.Printf("central density: %.6g kg/m^3\n", props.CentralDensity)
	fmt.Printf("meters per step: %.6g\n\n", props.StepsToMeters)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "R (steps)\tDENSITY\tMFP (m)\tSTEP")
	for _, p := range profile {
		fmt.Fprintf(w, "%.1f\t%.4g\t%.4g\t%.4g\n", p.RSteps, p.Density, p.MFP, p.Step)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	grid := sweep.NewGrid(
		sweep.Axis{Name: "photons", Values: sweepPhotons},
		sweep.Axis{Name: "mass", Values: sweepMass},
		sweep.Axis{Name: "radius", Values: sweepRadius},
		sweep.Axis{Name: "opacity", Values: sweepOpacity},
	)
	if grid.Size() == 0 {
		return errors.New("nothing to sweep: pass at least one --sweep-* list")
	}

	build := func(values map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		if err := sweep.Apply(&cfg, values); err != nil {
			return nil, err
		}
		exp, err := experiment.New(&cfg)
		if err != nil {
			return nil, err
		}
		for _, a := range exp.Adjustments() {
			fmt.Printf("%v: %s\n", values, a)
		}
		return exp, nil
	}

	fmt.Printf("sweeping %d points...\n", grid.Size())
	results, err := grid.Run(cmd.Context(), build)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHOTONS\tMASS\tRADIUS\tOPACITY\tREASON\tTICKS\tFURTHEST")
	for _, p := range results {
		v := func(name string, fallback float64) float64 {
			if x, ok := p.Values[name]; ok {
				return x
			}
			return fallback
		}
		fmt.Fprintf(w, "%g\t%g\t%g\t%g\t%s\t%d\t%.1f\n",
			v("photons", float64(base.Params.Photons)),
			v("mass", base.Params.Mass),
			v("radius", base.Params.Radius),
			v("opacity", base.Params.Opacity),
			p.Result.Reason,
			p.Result.Ticks,
			p.Result.Furthest,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(results); ok {
		fmt.Printf("\nfastest escape: %v in %d ticks\n", best.Values, best.Result.Ticks)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPHOTONS\tMASS\tRADIUS\tOPACITY\tREASON\tTICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%g\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Photons,
			run.Params.Mass,
			run.Params.Radius,
			run.Params.Opacity,
			run.Reason,
			run.Ticks,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Frame, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("star: %g M☉, %g R☉, κ=%g\n", meta.Params.Mass, meta.Params.Radius, meta.Params.Opacity)
	fmt.Printf("frames: %d (stride %d)\n\n", len(frames), meta.Stride)

	furthest := make([]float64, len(frames))
	mean := make([]float64, len(frames))
	for i, f := range frames {
		furthest[i] = f.Population.Furthest()
		for _, p := range f.Population {
			mean[i] += p.R
		}
		if len(f.Population) > 0 {
			mean[i] /= float64(len(f.Population))
		}
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{furthest, fmt.Sprintf("furthest radius (surface at %.0f steps)", meta.RadiusSteps)},
		{mean, "mean radius"},
	} {
		if len(series.data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, *meta, frames)
	}
	return storage.ExportJSON(outPath, *meta, frames)
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = filepath.Clean(meta.ID + ".png")
	}
	sc := experiment.SceneFor(meta.RadiusSteps, meta.Params, meta.Seed)
	if err := export.WritePNG(path, sc, frames); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = filepath.Clean(meta.ID + ".svg")
	}
	sc := experiment.SceneFor(meta.RadiusSteps, meta.Params, meta.Seed)
	if err := os.WriteFile(path, []byte(export.TrajectorySVG(sc, frames)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
