package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/balloonsim/internal/analysis"
	"github.com/san-kum/balloonsim/internal/config"
	"github.com/san-kum/balloonsim/internal/gui"
	"github.com/san-kum/balloonsim/internal/metrics"
	"github.com/san-kum/balloonsim/internal/sim"
	"github.com/san-kum/balloonsim/internal/storage"
	"github.com/san-kum/balloonsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt          float64
	duration    float64
	stiffness   float64
	damping     float64
	gravityY    float64
	restitution float64
	policy      string
	ruptureAt   float64

	particle int
	sound    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "balloonsim",
		Short: "interactive 2D soft-body water balloon simulation",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the GUI, like clicking the thing you built.
			cfg, err := resolveConfig(cmd)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := gui.Run(cfg, sound); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".balloonsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", 1.0/60.0, "timestep")
	rootCmd.PersistentFlags().Float64Var(&duration, "time", 10.0, "duration (headless run)")
	rootCmd.PersistentFlags().Float64Var(&stiffness, "stiffness", 300, "spring stiffness k")
	rootCmd.PersistentFlags().Float64Var(&damping, "damping", 2, "spring damping c")
	rootCmd.PersistentFlags().Float64Var(&gravityY, "gravity", -9.8, "vertical gravity")
	rootCmd.PersistentFlags().Float64Var(&restitution, "restitution", 0.3, "ground bounce factor")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "all", "rupture policy (all|radial)")
	rootCmd.PersistentFlags().Float64Var(&ruptureAt, "rupture-at", 1.0, "scheduled pop time for headless runs (<0 disables)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		RunE:  runSimulation,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run in the terminal (click the balloon to pop it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			state, err := cfg.Build()
			if err != nil {
				return err
			}
			return viz.Run(state, cfg.Dt)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, sound)
		},
	}
	guiCmd.Flags().BoolVar(&sound, "sound", false, "play a pop on rupture")
	rootCmd.Flags().BoolVar(&sound, "sound", false, "play a pop on rupture")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a particle's height over a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", 0, "particle index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a particle trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particle, "particle", 0, "particle index")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [out.json]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], args[1])
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset < config file < explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("gravity") {
		cfg.GravityY = gravityY
	}
	if flags.Changed("restitution") {
		cfg.Restitution = restitution
	}
	if flags.Changed("policy") {
		cfg.RupturePolicy = policy
	}
	if flags.Changed("rupture-at") {
		cfg.RuptureAt = ruptureAt
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := cfg.Build()
	if err != nil {
		return err
	}

	runner := sim.New(state)
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewDispersal())
	runner.AddMetric(metrics.NewPeakSpeed())

	result, err := runner.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(presetName(), cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", runID)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "phase\t%s\n", result.FinalPhase)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func presetName() string {
	if preset != "" {
		return preset
	}
	return "custom"
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tPHASE\tPARTICLES\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\n", r.ID, r.Preset, r.Phase, r.Particles, r.Duration)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	trace, err := storage.New(dataDir).LoadTrace(args[0], particle)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(trace.Ys,
		asciigraph.Height(16), asciigraph.Width(100),
		asciigraph.Caption(fmt.Sprintf("particle %d height", particle))))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0], particle)
	if err != nil {
		return err
	}

	freq, err := analysis.DominantFrequency(trace.Ys, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("particle %d dominant frequency: %.3f Hz over %d samples\n",
		particle, freq, len(trace.Ys))
	return nil
}
