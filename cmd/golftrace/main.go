package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LdDl/golf-trace/capture"
	"github.com/LdDl/golf-trace/config"
	"github.com/LdDl/golf-trace/pipeline"
	"github.com/LdDl/golf-trace/render"
	"github.com/LdDl/golf-trace/report"
	"github.com/LdDl/golf-trace/shotlog"
	"github.com/LdDl/golf-trace/trace"
	"github.com/pkg/errors"
)

func main() {
	input := flag.String("input", "", "Path to video clip of the shot")
	device := flag.Int("device", -1, "Camera index to read from instead of -input")
	configPath := flag.String("config", "", "Path to YAML configuration file")
	out := flag.String("out", "", "Path to overlay video (optional)")
	plotPath := flag.String("plot", "", "Path to trajectory plot, png/svg/pdf (optional)")
	dbPath := flag.String("db", "", "Path to sqlite shot log (optional)")
	sensitivity := flag.Float64("sensitivity", -1, "Detection sensitivity in [0.3, 1.0], overrides config")
	traceColor := flag.String("color", "", "Trace color as #rrggbb, overrides config")
	traceEffect := flag.String("effect", "", "Trace effect: electric, waves, fire, water. Overrides config")
	skipPreRoll := flag.Bool("skip-preroll", false, "Start tracking immediately without locking resting ball")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("golftrace: can't load configuration", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(cfg, *sensitivity, *traceColor, *traceEffect, *skipPreRoll, *out, *plotPath, *dbPath)

	source, err := openSource(*input, *device)
	if err != nil {
		slog.Error("golftrace: can't open frame source", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	session := trace.NewSession(cfg.DetectorParams(), append(cfg.SessionOptions(), trace.WithLogger(logger))...)
	style := cfg.Style()
	options := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithCadence(cfg.Cadence()),
		pipeline.WithRenderer(render.NewTrailRenderer(style)),
	}
	var sink *capture.VideoSink
	if cfg.Output.VideoPath != "" {
		sink = capture.NewVideoSink(cfg.Output.VideoPath, cfg.Cadence().MaxFPS)
		options = append(options, pipeline.WithSink(sink))
	}
	runner := pipeline.NewRunner(source, session, options...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shot, runErr := runner.Run(ctx)
	if sink != nil {
		if err := sink.Close(); err != nil {
			slog.Error("golftrace: can't finalize overlay video", "error", err)
		}
	}
	if runErr != nil {
		slog.Error("golftrace: processing failed", "error", runErr)
	}

	stats := runner.Stats()
	slog.Info("golftrace: frames",
		"received", stats.Received,
		"processed", stats.Processed,
		"dropped", stats.Dropped,
		"accepted", stats.Accepted,
	)

	summary := trace.Summarize(shot)
	printSummary(shot, summary)

	if err := saveArtifacts(cfg, shot, summary, style); err != nil {
		slog.Error("golftrace: can't save results", "error", err)
		os.Exit(1)
	}
	if runErr != nil {
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config, sensitivity float64, traceColor, traceEffect string, skipPreRoll bool, out, plotPath, dbPath string) {
	if sensitivity >= 0 {
		cfg.Sensitivity = &sensitivity
	}
	if traceColor != "" {
		cfg.TraceColor = traceColor
	}
	if traceEffect != "" {
		cfg.TraceEffect = traceEffect
	}
	if skipPreRoll {
		cfg.Timing.SkipPreRoll = true
	}
	if out != "" {
		cfg.Output.VideoPath = out
	}
	if plotPath != "" {
		cfg.Output.PlotPath = plotPath
	}
	if dbPath != "" {
		cfg.Output.DBPath = dbPath
	}
}

func openSource(input string, device int) (*capture.VideoSource, error) {
	if input != "" {
		return capture.OpenFile(input)
	}
	if device >= 0 {
		return capture.OpenDevice(device)
	}
	return nil, errors.New("either -input or -device must be set")
}

func printSummary(shot trace.Capture, summary trace.Summary) {
	if !summary.Valid {
		fmt.Printf("shot %s: %d points, not enough for a summary\n", shot.ID, summary.Points)
		return
	}
	fmt.Printf("shot %s\n", shot.ID)
	fmt.Printf("  shape:      %s\n", summary.Shape)
	fmt.Printf("  direction:  %.1f deg\n", summary.DirectionDegrees)
	fmt.Printf("  distance:   %.1f px (path %.1f px)\n", summary.PixelDistance, summary.PathLength)
	fmt.Printf("  curvature:  %.2f px\n", summary.Curvature)
	fmt.Printf("  duration:   %d ms, %d points\n", summary.DurationMillis, summary.Points)
}

func saveArtifacts(cfg *config.Config, shot trace.Capture, summary trace.Summary, style render.Style) error {
	if cfg.Output.PlotPath != "" {
		smoothed, err := cfg.Smoother().Smooth(shot.Trajectory)
		if err != nil {
			slog.Warn("golftrace: smoothing failed, plotting raw trajectory", "error", err)
			smoothed = shot.Trajectory
		}
		if err := report.SaveTrajectoryPlot(cfg.Output.PlotPath, shot, smoothed, summary); err != nil {
			return err
		}
		slog.Info("golftrace: plot saved", "path", cfg.Output.PlotPath)
	}
	if cfg.Output.DBPath != "" {
		db, err := shotlog.NewDB(cfg.Output.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		record := shotlog.NewShot(shot, summary, render.FormatTraceColor(style.Color), style.Effect.String(), time.Now())
		if err := db.RecordShot(record); err != nil {
			return err
		}
		slog.Info("golftrace: shot recorded", "db", cfg.Output.DBPath, "shot", shot.ID.String())
	}
	return nil
}
