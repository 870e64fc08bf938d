package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/config"
	"github.com/colinbarry/verlet-cloth/internal/engine"
	"github.com/colinbarry/verlet-cloth/internal/export"
	"github.com/colinbarry/verlet-cloth/internal/geom"
	"github.com/colinbarry/verlet-cloth/internal/metrics"
	"github.com/colinbarry/verlet-cloth/internal/storage"
	"github.com/colinbarry/verlet-cloth/internal/viz"
)

var (
	dataDir    string
	columns    int
	rows       int
	dt         float64
	duration   float64
	iterations int
	seed       int64
	configFile string
	preset     string
	frameRate  int
	settle     float64
	outPath    string
	outFormat  string
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verlet-cloth",
		Short: "tearable cloth simulation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive view when no command is given.
			return viz.RunLive(config.DefaultConfig(), 0)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verlet-cloth", "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive simulation with mouse tearing",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&columns, "cols", config.DefaultColumns, "grid columns")
	liveCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	liveCmd.Flags().IntVar(&iterations, "iters", config.DefaultIterations, "relaxation passes per tick")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless simulation run",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&columns, "cols", config.DefaultColumns, "grid columns")
	runCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&iterations, "iters", config.DefaultIterations, "relaxation passes per tick")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "settle a cloth and export the mesh",
		RunE:  snapshotMesh,
	}
	snapshotCmd.Flags().IntVar(&columns, "cols", config.DefaultColumns, "grid columns")
	snapshotCmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	snapshotCmd.Flags().IntVar(&iterations, "iters", config.DefaultIterations, "relaxation passes per tick")
	snapshotCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	snapshotCmd.Flags().Float64Var(&settle, "settle", 2.0, "seconds to settle before export")
	snapshotCmd.Flags().StringVar(&outPath, "out", "mesh.svg", "output file")
	snapshotCmd.Flags().StringVar(&outFormat, "format", "svg", "output format (svg or json)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time simulation steps",
		RunE:  benchRun,
	}
	benchCmd.Flags().IntVar(&columns, "cols", 48, "grid columns")
	benchCmd.Flags().IntVar(&rows, "rows", 32, "grid rows")
	benchCmd.Flags().IntVar(&iterations, "iters", config.DefaultIterations, "relaxation passes per tick")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 10000, "steps to time")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCmd, snapshotCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and flags, with explicit flags
// winning over the file and the file winning over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("cols") {
		cfg.Columns = columns
	}
	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("iters") {
		cfg.Iterations = iterations
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, frameRate)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	topo, err := cloth.Build(cfg.Columns, cfg.Rows)
	if err != nil {
		return err
	}

	eng := engine.New(topo, cfg.Seed)
	eng.SetIterations(cfg.Iterations)
	eng.AddMetric(metrics.NewStretchEnergy())
	eng.AddMetric(metrics.NewMaxStretch())
	eng.AddMetric(metrics.NewAttrition())

	recorder := &storage.Recorder{}
	eng.AddObserver(recorder)

	runCfg := engine.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration}
	for _, c := range cfg.Cuts {
		runCfg.Cuts = append(runCfg.Cuts, engine.TimedCut{
			At:   c.At,
			From: geom.V(c.FromX, c.FromY),
			To:   geom.V(c.ToX, c.ToY),
		})
	}

	fmt.Printf("running %dx%d cloth...\n", cfg.Columns, cfg.Rows)
	start := time.Now()

	result, err := eng.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Columns:    cfg.Columns,
		Rows:       cfg.Rows,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Iterations: cfg.Iterations,
		CutsFired:  result.CutsFired,
		Metrics:    result.Metrics,
	}
	runID, err := st.Save(meta, recorder.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("points: %d  constraints: %d\n", topo.NumPoints(), topo.NumConstraints())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tGRID\tTIME\tDURATION\tDT\tITERS\tCUTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Columns,
			run.Rows,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Iterations,
			run.CutsFired,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Columns, meta.Rows)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(f storage.Frame) float64
	}{
		{"stretch energy", func(f storage.Frame) float64 { return f.Energy }},
		{"max stretch", func(f storage.Frame) float64 { return f.MaxStretch }},
		{"constraints", func(f storage.Frame) float64 { return float64(f.Constraints) }},
		{"points", func(f storage.Frame) float64 { return float64(f.Points) }},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

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

func snapshotMesh(cmd *cobra.Command, args []string) error {
	topo, err := cloth.Build(columns, rows)
	if err != nil {
		return err
	}
	eng := engine.New(topo, seed)
	eng.SetIterations(iterations)

	steps := int(settle / config.DefaultDt)
	for i := 0; i < steps; i++ {
		eng.Step(config.DefaultDt)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	switch outFormat {
	case "svg":
		if _, err := f.WriteString(export.MeshSVG(topo, 800, 800)); err != nil {
			return err
		}
	case "json":
		if err := export.WriteSnapshot(f, topo); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (want svg or json)", outFormat)
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func benchRun(cmd *cobra.Command, args []string) error {
	topo, err := cloth.Build(columns, rows)
	if err != nil {
		return err
	}
	eng := engine.New(topo, 1)
	eng.SetIterations(iterations)

	start := time.Now()
	for i := 0; i < benchSteps; i++ {
		eng.Step(config.DefaultDt)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d steps of %dx%d grid in %v (%.1f steps/sec)\n",
		benchSteps, columns, rows, elapsed,
		float64(benchSteps)/elapsed.Seconds())
	return nil
}
