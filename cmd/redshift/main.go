package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/redshift/internal/analysis"
	"github.com/san-kum/redshift/internal/config"
	"github.com/san-kum/redshift/internal/export"
	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/relativity"
	"github.com/san-kum/redshift/internal/storage"
	"github.com/san-kum/redshift/internal/sweep"
	"github.com/san-kum/redshift/internal/tui"
	"github.com/san-kum/redshift/internal/wave"
)

var (
	dataDir    string
	configFile string
	preset     string
	fidelity   string
	wavelength float64
	mass       float64
	radius     float64
	rate       int

	runTicks      int
	plotTicks     int
	snapshotTicks int
	frameRate     int
	live          bool
	save          bool
	scriptFile    string

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepTicks int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "redshift",
		Short:        "gravitational redshift lab",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&fidelity, "fidelity", config.DefaultFidelity, "command sequencing: reference or corrected")
	pf.Float64Var(&wavelength, "wavelength", config.DefaultWavelength, "emitted wavelength (nm)")
	pf.Float64Var(&mass, "mass", 0, "black hole mass (solar masses)")
	pf.Float64Var(&radius, "radius", 0, "emission radius (km)")
	pf.IntVar(&rate, "rate", config.DefaultTickRate, "ticks per second (0 = unthrottled)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the lab headless",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runTicks, "ticks", 1000, "number of ticks (0 = until interrupted)")
	runCmd.Flags().BoolVar(&live, "live", false, "print frames while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "yaml file with scheduled commands")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the field at x=0; runs the lab when no run id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotTicks, "ticks", 1000, "number of ticks for a fresh run")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure both frames' frequencies from a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg]",
		Short: "run the lab and write the final frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotTicks, "ticks", 0, "ticks to run before the snapshot")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "redshift ratio across a range of emission radii",
		RunE:  sweepRadii,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "smallest radius (km); defaults to just outside the horizon")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "largest radius (km); defaults to 20 Schwarzschild radii")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 40, "number of radii")
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 0, "ticks per lab to measure the redshift from the trace")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWAVELENGTH\tMASS\tRADIUS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				r := "unset"
				if p.EmissionRadius != nil {
					r = fmt.Sprintf("%g km", *p.EmissionRadius)
				}
				fmt.Fprintf(w, "%s\t%g nm\t%g M☉\t%s\n", name, p.Wavelength, p.BlackHoleMass, r)
			}
			return w.Flush()
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "print both frames' status after applying the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := cfg.Log.Logger(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			l, err := newLab(cfg, logger)
			if err != nil {
				return err
			}
			f := l.Frame()
			fmt.Fprintf(cmd.OutOrStdout(), "emitted\n%s\n\nobserved\n%s\n", f.Emitted.Status, f.Observed.Status)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, analyzeCmd, snapshotCmd, sweepCmd, listCmd, exportCmd, presetsCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
		}
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("wavelength") {
		cfg.Wavelength = wavelength
	}
	if flags.Changed("mass") {
		cfg.BlackHoleMass = mass
	}
	if flags.Changed("radius") {
		r := radius
		cfg.EmissionRadius = &r
	}
	if flags.Changed("rate") {
		cfg.Animation.TickRate = rate
	}
	if flags.Changed("fidelity") {
		cfg.Fidelity = fidelity
	}
	if scriptFile != "" {
		steps, err := config.LoadScript(scriptFile)
		if err != nil {
			return nil, err
		}
		cfg.Script = steps
	}
	return cfg, cfg.Validate()
}

// newLab builds a lab and brings it to the configured state through the
// same commands a user would enter.
func newLab(cfg *config.Config, logger *slog.Logger) (*lab.Lab, error) {
	opts, err := cfg.LabOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	l := lab.New(opts)
	for _, c := range cfg.InitialCommands() {
		if err := l.Apply(c); err != nil {
			return nil, fmt.Errorf("initial %s: %w", c, err)
		}
	}
	return l, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// stdout belongs to the terminal UI
	logger, closer, err := cfg.Log.Logger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	l, err := newLab(cfg, logger)
	if err != nil {
		return err
	}
	return tui.RunInteractive(l, cfg.Animation.TickRate, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := cfg.Log.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	l, err := newLab(cfg, logger)
	if err != nil {
		return err
	}

	rec := storage.NewRecorder()
	l.AddObserver(rec)
	if live {
		r := tui.NewLiveRenderer(os.Stdout, frameRate)
		l.AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := &lab.Loop{
		Lab:      l,
		Rate:     cfg.Animation.TickRate,
		MaxTicks: runTicks,
		Script:   cfg.Script,
		OnError: func(c lab.Command, err error) {
			logger.Warn("scripted command rejected", "command", c.String(), "error", err)
		},
	}

	logger.Info("running lab", "ticks", runTicks, "rate", cfg.Animation.TickRate, "fidelity", l.Fidelity())
	start := time.Now()
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	f := l.Frame()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "completed %d ticks in %v\n\n", f.Tick, elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "emitted\n%s\n\nobserved\n%s\n", indent(f.Emitted.Status), indent(f.Observed.Status))

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(metadata(cfg, l), rec.Rows())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func metadata(cfg *config.Config, l *lab.Lab) storage.RunMetadata {
	f := l.Frame()
	obs := l.Source(wave.Observer)
	meta := storage.RunMetadata{
		Preset:         preset,
		Fidelity:       l.Fidelity().String(),
		Wavelength:     l.LastWavelength(),
		BlackHoleMass:  obs.Mass(),
		Redshift:       obs.Redshift(),
		TickRate:       cfg.Animation.TickRate,
		Ticks:          f.Tick,
		EmittedStatus:  f.Emitted.Status,
		ObservedStatus: f.Observed.Status,
	}
	if r, ok := obs.EmissionRadius(); ok {
		meta.EmissionRadius = &r
	}
	return meta
}

func plotRun(cmd *cobra.Command, args []string) error {
	var (
		rows  []storage.TraceRow
		title string
	)
	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		if rows, err = st.LoadTrace(meta.ID); err != nil {
			return err
		}
		title = fmt.Sprintf("run: %s\nredshift ratio: %g", meta.ID, meta.Redshift)
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer, err := cfg.Log.Logger(os.Stderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		l, err := newLab(cfg, logger)
		if err != nil {
			return err
		}
		n := plotTicks
		if n <= 0 {
			n = 1000
		}
		rec := storage.NewRecorder()
		l.AddObserver(rec)
		loop := &lab.Loop{Lab: l, MaxTicks: n, Script: cfg.Script}
		if err := loop.Run(context.Background()); err != nil {
			return err
		}
		rows = rec.Rows()
		title = fmt.Sprintf("fresh run: %d ticks\nredshift ratio: %g", len(rows), l.Source(wave.Observer).Redshift())
	}

	if len(rows) < 2 {
		return fmt.Errorf("no data to plot")
	}

	emitted, observed := storage.Series(rows)
	fmt.Fprintln(cmd.OutOrStdout(), title)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), asciigraph.PlotMany([][]float64{emitted, observed},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.DarkOrange, asciigraph.Red),
		asciigraph.Caption("E at x=0 (emitted orange, observed red)"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadTrace(meta.ID)
	if err != nil {
		return err
	}

	et, ot := storage.Times(rows)
	ee, oe := storage.Series(rows)
	c, err := analysis.Compare(et, ee, ot, oe)
	if err != nil {
		return fmt.Errorf("%w (%d rows; run more ticks)", err, len(rows))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n\n", meta.ID)

	_, ov := analysis.Segment(ot, oe)
	ps := analysis.PowerSpectrum(ov)
	if len(ps) > 8 {
		fmt.Fprintln(out, asciigraph.Plot(ps[:len(ps)/8],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (observed, E at x=0)"),
		))
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tFREQUENCY (Hz)\tSPECTRAL PEAK (Hz)\tCROSSINGS")
	fmt.Fprintf(w, "emitted\t%.6g\t%.3g\t%d\n", c.Emitted.Frequency, c.Emitted.Peak, c.Emitted.Crossings)
	fmt.Fprintf(w, "observed\t%.6g\t%.3g\t%d\n", c.Observed.Frequency, c.Observed.Peak, c.Observed.Crossings)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nmeasured redshift ratio: %.6g\n", c.Redshift)
	fmt.Fprintf(out, "computed redshift ratio: %.6g\n", meta.Redshift)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := cfg.Log.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	l, err := newLab(cfg, logger)
	if err != nil {
		return err
	}
	if snapshotTicks > 0 {
		loop := &lab.Loop{Lab: l, MaxTicks: snapshotTicks, Script: cfg.Script}
		if err := loop.Run(context.Background()); err != nil {
			return err
		}
	}

	svg := export.FrameToSVG(l.Frame(), 1000, 640)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (tick %d)\n", args[0], l.Ticks())
	return nil
}

func sweepRadii(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.LabOptions()
	if err != nil {
		return err
	}
	if cfg.BlackHoleMass <= 0 {
		return fmt.Errorf("sweep needs a black hole: set --mass or a preset")
	}

	rs := relativity.SchwarzschildRadius(cfg.BlackHoleMass)
	lo, hi := sweepFrom, sweepTo
	if !cmd.Flags().Changed("from") {
		lo = rs * 1.05
	}
	if !cmd.Flags().Changed("to") {
		hi = rs * 20
	}

	s := &sweep.Sweep{Options: opts, Mass: cfg.BlackHoleMass, Ticks: sweepTicks}
	points, err := s.Run(context.Background(), sweep.Radii(lo, hi, sweepSteps))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	zs := make([]float64, len(points))
	for i, p := range points {
		zs[i] = p.Redshift
	}
	if len(zs) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(zs,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("z from r=%g km to r=%g km (rs=%g km)", lo, hi, rs)),
		))
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RADIUS (km)\tZ\tOBSERVED (nm)\tMEASURED Z")
	for _, p := range points {
		measured := "-"
		switch {
		case p.MeasuredErr != nil:
			measured = "too short"
		case sweepTicks > 0:
			measured = fmt.Sprintf("%.6g", p.Measured)
		}
		fmt.Fprintf(w, "%g\t%.6g\t%.6g\t%s\n", p.Radius, p.Redshift, p.ObservedWavelength, measured)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tMASS\tRADIUS\tZ\tTICKS\tFIDELITY")

	for _, run := range runs {
		r := "-"
		if run.EmissionRadius != nil {
			r = fmt.Sprintf("%g", *run.EmissionRadius)
		}
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%.6g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			p,
			run.BlackHoleMass,
			r,
			run.Redshift,
			run.Ticks,
			run.Fidelity,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
