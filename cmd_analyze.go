package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/analysis"
	"github.com/jacokyle01/critical-moves/cache"
	"github.com/jacokyle01/critical-moves/config"
	"github.com/jacokyle01/critical-moves/engine"
	"github.com/jacokyle01/critical-moves/loader"
	"github.com/jacokyle01/critical-moves/report"
)

// uciEngine is the engine process lifecycle used by analyze.
type uciEngine interface {
	analysis.Engine
	Start() error
	Stop() error
	Name() string
}

var newEngine = func(c config.EngineConfig, log *zap.SugaredLogger) uciEngine {
	return engine.New(c.Path,
		engine.WithArgs(c.Args...),
		engine.WithOptions(c.Options),
		engine.WithLogger(log),
	)
}

// runAnalyze reports failures on the command output and returns normally.
func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if err := analyze(ctx, args[0], cfg, logger.Sugar(), out); err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		fmt.Fprintf(out, "Error during analysis: %v\n", err)
	}
	return nil
}

func analyze(ctx context.Context, inputDir string, cfg *config.Config, log *zap.SugaredLogger, out io.Writer) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eng := newEngine(cfg.Engine, log)
	defer func() {
		if err := eng.Stop(); err != nil {
			log.Errorw("Error stopping engine", "error", err)
		}
	}()
	if err := eng.Start(); err != nil {
		return err
	}

	var evaluator analysis.Engine = eng
	if cfg.Cache.Dir != "" {
		store, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			log.Warnw("Evaluation cache disabled", "dir", cfg.Cache.Dir, "error", err)
		} else {
			defer store.Close()
			cached := cache.Wrap(eng, store, log)
			defer func() {
				hits, misses := cached.Stats()
				log.Infof("Evaluation cache: %d hits, %d misses", hits, misses)
			}()
			evaluator = cached
		}
	}

	games, err := loader.New(log).Load(inputDir)
	if err != nil {
		return err
	}

	scanner := analysis.NewScanner(evaluator, cfg.Analysis.Depth, cfg.Analysis.Threshold, log)
	moves, err := analysis.NewBatch(scanner, log).Run(ctx, games)
	if err != nil {
		log.Warnw("Analysis interrupted, reporting partial results", "error", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No critical moves found!")
		return nil
	}
	fmt.Fprintf(out, "%d critical moves detected!\n", len(moves))

	rep := report.New(moves, cfg.Analysis.Threshold, cfg.Analysis.Depth, eng.Name())
	written, err := report.WriteFiles(cfg.Output.Dir, rep, report.Options{
		HTML:    cfg.Output.HTML,
		Prompts: cfg.Output.Prompts,
	})
	for _, path := range written {
		log.Infof("Report written: %s", path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Reports saved to: %s\n", cfg.Output.Dir)
	return nil
}
