package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/analysis"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/automation"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/optim"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sfx"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/storage"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	weapon     string
	jitter     float64
	gravity    float64
	friction   float64
	configFile string
	runName    string
	validate   bool
	asJSON     bool
	outPath    string
	gifPath    string
	play       bool
	atTime     float64
	trails     bool
	metricName string
	workers    int
	// sweep / monte carlo
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	trials    int
	// aim search
	yawSpan   float64
	pitchMin  float64
	pitchMax  float64
	gridSize  int
	maxWeapon float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sinuca",
		Short: "pool table physics with hit-scan shooting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sinuca", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a preset headless and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run id (default: preset and timestamp)")
	runCmd.Flags().BoolVar(&validate, "validate", false, "check body state every step")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "also print the full run as JSON")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot speeds and paths of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export frames, events and metrics to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-body speeds to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and settling of the cue ball speed",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "play a preset in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", "sinuca.gif", "where G writes recordings")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	weaponsCmd := &cobra.Command{
		Use:   "weapons",
		Short: "list weapons",
		RunE:  listWeapons,
	}
	weaponsCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one parameter of a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&paramName, "param", "gravity", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 5, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 15, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "repeat a preset over jittered racks",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of racks")
	monteCarloCmd.Flags().Float64Var(&jitter, "jitter", 0.002, "rack jitter")
	monteCarloCmd.Flags().Float64Var(&duration, "time", 5, "duration of each trial")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "seed of the first trial")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "parallel trials (0 = all)")

	aimCmd := &cobra.Command{
		Use:   "aim [preset]",
		Short: "grid search the opening shot",
		Args:  cobra.ExactArgs(1),
		RunE:  searchAim,
	}
	aimCmd.Flags().StringVar(&metricName, "metric", "pocketed", "metric to maximise")
	aimCmd.Flags().Float64Var(&yawSpan, "yaw-span", 0.1, "yaw is searched in ±span around the preset")
	aimCmd.Flags().Float64Var(&pitchMin, "pitch-min", 0.05, "lowest pitch")
	aimCmd.Flags().Float64Var(&pitchMax, "pitch-max", 0.3, "highest pitch")
	aimCmd.Flags().Float64Var(&maxWeapon, "max-multiplier", 0, "also search the opening multiplier up to this value")
	aimCmd.Flags().IntVar(&gridSize, "grid", 5, "values per parameter")
	aimCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = all)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark the tick",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}

	soundCmd := &cobra.Command{
		Use:   "sound [run_id]",
		Short: "render the events of a run to WAV",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSound,
	}
	soundCmd.Flags().StringVarP(&outPath, "output", "o", "", "wav file (default <run_id>.wav)")
	soundCmd.Flags().BoolVar(&play, "play", false, "play on the default audio device instead")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "draw a stored frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().Float64Var(&atTime, "at", -1, "frame time (default last frame)")
	snapshotCmd.Flags().BoolVar(&trails, "trails", false, "draw full paths instead of one frame")
	snapshotCmd.Flags().StringVarP(&outPath, "output", "o", "", "svg file (default <run_id>.svg)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, analyzeCmd, liveCmd,
		presetsCmd, weaponsCmd, scenarioCmd, sweepCmd, monteCarloCmd, aimCmd, benchCmd, soundCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "rack jitter seed")
	cmd.Flags().Float64Var(&jitter, "jitter", 0, "rack jitter")
	cmd.Flags().StringVar(&weapon, "weapon", "", "weapon for every scripted shot")
	cmd.Flags().Float64Var(&gravity, "gravity", sim.DefaultParams().Gravity, "gravity")
	cmd.Flags().Float64Var(&friction, "friction", sim.DefaultParams().Friction, "planar friction")
}

// loadConfig resolves the preset or config file, then applies only the
// flags the user actually set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case len(args) > 0:
		cfg, err = config.GetPreset(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	default:
		cfg, err = config.GetPreset("break")
		if err != nil {
			return nil, err
		}
	}

	if cfg.Preset == "" {
		cfg.Preset = "custom"
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("jitter") {
		cfg.Rack.Jitter = jitter
	}
	if flags.Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}
	if flags.Changed("friction") {
		cfg.Physics.Friction = friction
	}
	if flags.Changed("weapon") {
		for i := range cfg.Shots {
			cfg.Shots[i].Weapon = weapon
		}
	}
	if flags.Changed("validate") {
		cfg.Run.Validate = validate
	}
	return cfg, cfg.Validate()
}

func shotWeapon(cfg *config.Config) string {
	if len(cfg.Shots) == 0 {
		return ""
	}
	return cfg.Shots[0].Weapon
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	fmt.Printf("running %s...\n", cfg.Preset)
	start := time.Now()

	result, err := experiment.RunConfig(context.Background(), registry, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	info := storage.RunInfo{
		Name:     runName,
		Preset:   cfg.Preset,
		Weapon:   shotWeapon(cfg),
		Dt:       cfg.Run.Dt,
		Duration: cfg.Run.Duration,
		Seed:     cfg.Run.Seed,
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("events: %d ball, %d pocket, %d shot\n",
		result.Count(sim.EventBall), result.Count(sim.EventPocket), result.Count(sim.EventShot))
	fmt.Printf("pocketed: %v\n", result.Pocketed)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for _, name := range registry.ListMetrics() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	if asJSON {
		return storage.ExportJSONStdout(info, result)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tWEAPON\tTIME\tDURATION\tDT\tBALLS\tPOCKETED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Weapon,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
			len(run.Pocketed),
		)
	}
	return w.Flush()
}

// speedSeries returns the speed of body id in every frame.
func speedSeries(frames []sim.Frame, id int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.ID == id {
				out = append(out, b.Velocity.Len())
				break
			}
		}
	}
	return out
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(frames))

	cue := speedSeries(frames, 0)
	if len(cue) > 1 {
		fmt.Println(asciigraph.Plot(cue,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("cue ball speed"),
		))
		fmt.Println()
	}

	total := make([]float64, len(frames))
	for i, f := range frames {
		for _, b := range f.Bodies {
			total[i] += b.Velocity.Len()
		}
	}
	if len(total) > 1 {
		fmt.Println(asciigraph.Plot(total,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("sum of ball speeds"),
		))
		fmt.Println()
	}

	var paths []*analysis.Trajectory
	for _, b := range frames[0].Bodies {
		paths = append(paths, analysis.ExtractTrajectory(frames, b.ID))
	}
	fmt.Println(analysis.TrajectoryToASCII(physics.DefaultTable(), paths, 80, 24))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, frames, err := loadRun(runID)
	if err != nil {
		return err
	}
	events, err := storage.New(dataDir).LoadEvents(runID)
	if err != nil {
		return err
	}

	info := storage.RunInfo{Name: meta.ID, Preset: meta.Preset, Weapon: meta.Weapon, Dt: meta.Dt, Duration: meta.Duration, Seed: meta.Seed}
	result := &sim.Result{
		Frames:     frames,
		Events:     events,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
		Pocketed:   meta.Pocketed,
	}
	if outPath == "" {
		return storage.ExportJSONStdout(info, result)
	}
	if err := storage.ExportJSON(outPath, info, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"time", "id", "x", "z", "speed", "planar_speed"}); err != nil {
		return err
	}
	for _, f := range frames {
		for _, b := range f.Bodies {
			rec := []string{
				strconv.FormatFloat(f.Time, 'f', 6, 64),
				strconv.Itoa(b.ID),
				strconv.FormatFloat(b.Position.X(), 'f', 6, 64),
				strconv.FormatFloat(b.Position.Z(), 'f', 6, 64),
				strconv.FormatFloat(b.Velocity.Len(), 'f', 6, 64),
				strconv.FormatFloat(physics.Planarize(b.Velocity).Len(), 'f', 6, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	cue := speedSeries(frames, 0)
	times := make([]float64, len(frames))
	for i, f := range frames {
		times[i] = f.Time
	}

	sampleDt := meta.Dt
	if len(times) > 1 {
		sampleDt = times[1] - times[0]
	}

	ps := analysis.PowerSpectrum(cue)
	if plotData := ps[:max(len(ps)/4, min(len(ps), 2))]; len(plotData) > 1 {
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (cue ball speed)"),
		))
		fmt.Println()
	}

	freq := analysis.DominantFrequency(cue, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if settle := analysis.SettleTime(cue, times, automation.SettleThreshold); settle >= 0 {
		fmt.Printf("cue ball settles at: %.3f s\n", settle)
	} else {
		fmt.Println("cue ball never settles")
	}

	if len(cue) > 0 {
		traj := analysis.ExtractTrajectory(frames, 0)
		fmt.Printf("cue ball path length: %.3f\n", traj.PathLength())
	}

	fmt.Println("\nevents:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kind := range []sim.EventKind{sim.EventBall, sim.EventPocket, sim.EventShot} {
		fmt.Fprintf(w, "  %s\t%d\n", kind, meta.Events[kind.String()])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, gifPath)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROWS\tSHOTS\tWEAPON\tDURATION")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.1fs\n", name, cfg.Rack.Rows, len(cfg.Shots), shotWeapon(cfg), cfg.Run.Duration)
	}
	return w.Flush()
}

func listWeapons(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	weapons := experiment.NewRegistry().Weapons(cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMULTIPLIER\tOPENING")
	for _, name := range sim.WeaponNames(weapons) {
		wp := weapons[name]
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", wp.Name, wp.Multiplier, wp.OpeningMultiplier)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tPRESET\tCONTACTS\tPOCKETED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\n", i+1, scenario.Steps[i].Preset, r.Count(sim.EventBall), r.Pocketed)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Preset:    args[0],
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
	}
	results, err := automation.RunSweep(context.Background(), sweep, experiment.NewRegistry(), os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tPOCKETED\tCONTACTS\tPEAK ENERGY\tSETTLE\n", paramName)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%.4f\t%.3f\n", r.ParamValue, r.Pocketed, r.Contacts, r.PeakEnergy, r.SettleTime)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	mc := &automation.MonteCarloConfig{
		Preset:    args[0],
		Jitter:    jitter,
		NumTrials: trials,
		Duration:  duration,
		Seed:      seed,
		Workers:   workers,
	}
	start := time.Now()
	results, err := automation.RunMonteCarlo(context.Background(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}

	mean, best := automation.MonteCarloStats(results)
	fmt.Printf("%d trials in %v\n", len(results), time.Since(start))
	fmt.Printf("mean pocketed: %.3f\n", mean)
	if best >= 0 {
		fmt.Printf("best trial: #%d (seed %d) pocketed %v\n", results[best].TrialID, results[best].Seed, results[best].Pocketed)
	}
	return nil
}

func searchAim(cmd *cobra.Command, args []string) error {
	base, err := config.GetPreset(args[0])
	if err != nil {
		return err
	}
	if len(base.Shots) == 0 {
		return fmt.Errorf("preset %s has no shot to aim", args[0])
	}
	yaw := base.Shots[0].Yaw

	names := []string{"yaw", "pitch"}
	ranges := [][]float64{
		optim.Linspace(yaw-yawSpan, yaw+yawSpan, gridSize),
		optim.Linspace(pitchMin, pitchMax, gridSize),
	}
	if maxWeapon > 0 {
		names = append(names, "multiplier")
		ranges = append(ranges, optim.Linspace(1, maxWeapon, gridSize))
	}

	fmt.Printf("searching %d shots of %s for %s...\n", int(math.Pow(float64(gridSize), float64(len(names)))), args[0], metricName)
	start := time.Now()
	best, val, err := optim.NewGridSearch(names, ranges).
		Maximize().
		Workers(workers).
		Search(context.Background(), optim.AimBuilder(args[0]), metricName)
	if err != nil {
		return err
	}

	fmt.Printf("done in %v\n", time.Since(start))
	fmt.Printf("best %s: %.4f\n", metricName, val)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, best[name])
	}
	return nil
}

func benchPreset(cmd *cobra.Command, args []string) error {
	name := "break"
	if len(args) > 0 {
		name = args[0]
	}
	durations := []float64{1.0, 5.0}
	dts := []float64{0.001, 0.005, 0.01}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tBODIES\tSTEPS\tTIME\tSTEPS/SEC")
	for _, dur := range durations {
		for _, step := range dts {
			cfg, err := config.GetPreset(name)
			if err != nil {
				return err
			}
			cfg.Run.Dt, cfg.Run.Duration = step, dur

			exp := experiment.New(cfg)
			if err := exp.Setup(nil); err != nil {
				return err
			}
			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%d\t%v\t%.0f\n",
				dur, step, len(exp.GetSimulator().Scene().Bodies), result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func renderSound(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(runID)
	if err != nil {
		return err
	}

	if play {
		return sfx.Play(events, meta.Duration)
	}

	path := outPath
	if path == "" {
		path = runID + ".wav"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sfx.RenderWAV(f, events, meta.Duration); err != nil {
		return err
	}
	fmt.Printf("%d events rendered to %s\n", len(events), path)
	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	_, frames, err := loadRun(runID)
	if err != nil {
		return err
	}
	table := physics.DefaultTable()

	var svg string
	if trails {
		svg = viz.TrajectorySVG(frames, table)
	} else {
		frame := frames[len(frames)-1]
		if atTime >= 0 {
			frame = nearestFrame(frames, atTime)
		}
		svg = viz.SnapshotSVG(frame, table, sim.DefaultRack().Radius)
	}

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func nearestFrame(frames []sim.Frame, t float64) sim.Frame {
	best := frames[0]
	for _, f := range frames[1:] {
		if math.Abs(f.Time-t) < math.Abs(best.Time-t) {
			best = f
		}
	}
	return best
}
