// Structural analysis batch: loads or synthesizes the gearless stress-test
// dataset, derives the safety and stress-to-weight metrics, and writes the
// stress-factor and joint-load breakdowns plus the benchmark comparison.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"armbench/adapters/report"
	"armbench/adapters/synthetic"
	"armbench/adapters/tabular"
	"armbench/domain/benchmark"
	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/analysis"
	"armbench/internal/config"
)

func main() {
	godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger := internal.DefaultLogger
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	t, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	pipeline := analysis.NewPipeline(cfg.Analysis.MaxGroupWorkers)
	plan := analysis.StructuralPlan(cfg.Benchmark, benchmark.DefaultGearless())
	result, err := pipeline.Run(context.Background(), t, plan)
	if err != nil {
		return err
	}

	writer := tabular.NewWriter()
	if err := writer.WriteTableCSV(filepath.Join(cfg.Paths.ProcessedDir, "structural_cleaned.csv"), result.Table); err != nil {
		return err
	}
	for _, group := range result.Groups {
		path := filepath.Join(cfg.Paths.ResultsDir, "structural_"+group.Name+".csv")
		if err := writer.WriteGroupsCSV(path, group); err != nil {
			return err
		}
	}
	if err := writer.WriteGroupsXLSX(filepath.Join(cfg.Paths.ResultsDir, "structural_groups.xlsx"), result.Groups); err != nil {
		return err
	}

	builder := report.NewBuilder()
	opts := report.StructuralOptions()
	md := builder.Build(result, opts)
	if err := builder.WriteMarkdown(filepath.Join(cfg.Paths.ResultsDir, "structural_report.md"), md); err != nil {
		return err
	}
	if err := builder.WriteMarkdown(filepath.Join(cfg.Paths.ResultsDir, "structural_report.html"), report.RenderHTML(opts.Title, md)); err != nil {
		return err
	}

	logger.Info("structural analysis complete, run %s", result.RunID)
	return nil
}

// loadDataset reads the configured data file, or generates and persists a
// synthetic dataset when none is configured
func loadDataset(cfg *config.Config) (*table.Table, error) {
	if cfg.Paths.StructuralFile != "" {
		return tabular.NewReader(cfg.Paths.StructuralFile).ReadTable()
	}

	gen := synthetic.NewStructuralGenerator(synthetic.StructuralConfig{
		Samples: cfg.Synthetic.StructuralSamples,
		Seed:    cfg.Synthetic.Seed,
	})
	t := gen.Generate()

	raw := filepath.Join(cfg.Paths.ProcessedDir, "structural_data.csv")
	if err := tabular.NewWriter().WriteTableCSV(raw, t); err != nil {
		return nil, err
	}
	return t, nil
}
