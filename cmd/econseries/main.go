// Command econseries charts GDP growth and the Dow Jones Industrial Average
// at several frequencies, their quarterly relationship and the GDP growth
// autocorrelation.
package main

import (
	"fmt"
	"os"

	"github.com/sartorproj/econseries/internal/config"
	"github.com/sartorproj/econseries/internal/logger"
	"github.com/sartorproj/econseries/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	plan := pipeline.DefaultPlan(cfg.Plan.ACFLags)
	if cfg.Plan.File != "" {
		plan, err = pipeline.LoadPlan(cfg.Plan.File)
		if err != nil {
			log.Errorw("load plan", "file", cfg.Plan.File, "error", err)
			log.Sync()
			os.Exit(1)
		}
	}

	runner := pipeline.NewRunner(pipeline.Settings{
		DataDir:    cfg.Data.Dir,
		OutputDir:  cfg.Output.Dir,
		DateColumn: cfg.Data.DateColumn,
		Width:      cfg.Output.Width,
		Height:     cfg.Output.Height,
		ACFLags:    cfg.Plan.ACFLags,
	}, log)

	artifacts, err := runner.Run(plan)
	if err != nil {
		log.Errorw("run failed", "charts_written", len(artifacts), "error", err)
		log.Sync()
		os.Exit(1)
	}

	log.Infow("run complete", "charts", len(artifacts), "output_dir", cfg.Output.Dir)
}
