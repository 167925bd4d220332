// Package main is the entry point for the spriteforge exporter CLI.
//
// The CLI drives the export pipeline against the built-in preview backend,
// which stands in for a hosting 3D engine. Real hosts embed
// internal/export directly against their own scene implementation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/spriteforge/internal/config"
	"github.com/Faultbox/spriteforge/internal/export"
	"github.com/Faultbox/spriteforge/internal/logger"
	"github.com/Faultbox/spriteforge/internal/preview"
)

var (
	flagName  = flag.String("name", "preview", "Animation name used in output filenames")
	flagStart = flag.Int("start", 0, "First animation frame (inclusive)")
	flagEnd   = flag.Int("end", 15, "Last animation frame (inclusive)")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Spriteforge ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	job := buildJob(cfg, *flagName, *flagStart, *flagEnd)

	scene := preview.NewScene(job.End - job.Start + 1)
	exporter := export.New(scene, scene)
	exporter.TempDir = cfg.Output.TempDir

	// Ctrl-C cancels between frames and routes through cleanup.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exporter.Export(ctx, job)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("export complete",
		zap.Int("frames", result.FrameCount),
		zap.Int("rows", result.Layout.Rows),
		zap.Int("cols", result.Layout.Cols),
	)
	for _, p := range result.Paths {
		fmt.Println(p)
	}
}

// buildJob assembles an export job from config defaults and CLI arguments.
func buildJob(cfg *config.Config, name string, start, end int) export.Job {
	job := export.Job{
		Name:         name,
		FrameWidth:   cfg.Export.FrameWidth,
		FrameHeight:  cfg.Export.FrameHeight,
		Start:        start,
		End:          end,
		FrameStep:    cfg.Export.FrameStep,
		Angle:        export.Angle(cfg.Export.Angle),
		Padding:      cfg.Export.Padding,
		Mirror:       cfg.Export.Mirror,
		Format:       export.Format(cfg.Export.Format),
		Mode:         export.Mode(cfg.Export.Mode),
		BoundsStride: cfg.Export.BoundsStride,
		OutputDir:    cfg.Output.Dir,
	}
	if !cfg.Export.AutoGrid {
		job.Grid = &export.GridSpec{Rows: cfg.Export.Rows, Cols: cfg.Export.Cols}
	}
	return job
}
