// Performance analysis batch: loads or synthesizes the performance test
// dataset, runs the payload and joint breakdowns plus the design comparison,
// and writes the aggregate tables and report under the results directory.
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
	result, err := pipeline.Run(context.Background(), t, analysis.PerformancePlan(cfg.Benchmark))
	if err != nil {
		return err
	}

	writer := tabular.NewWriter()
	if err := writer.WriteTableCSV(filepath.Join(cfg.Paths.ProcessedDir, "performance_cleaned.csv"), result.Table); err != nil {
		return err
	}
	for _, group := range result.Groups {
		path := filepath.Join(cfg.Paths.ResultsDir, "performance_"+group.Name+".csv")
		if err := writer.WriteGroupsCSV(path, group); err != nil {
			return err
		}
	}
	if err := writer.WriteGroupsXLSX(filepath.Join(cfg.Paths.ResultsDir, "performance_groups.xlsx"), result.Groups); err != nil {
		return err
	}

	builder := report.NewBuilder()
	opts := report.PerformanceOptions()
	md := builder.Build(result, opts)
	if err := builder.WriteMarkdown(filepath.Join(cfg.Paths.ResultsDir, "performance_report.md"), md); err != nil {
		return err
	}
	if err := builder.WriteMarkdown(filepath.Join(cfg.Paths.ResultsDir, "performance_report.html"), report.RenderHTML(opts.Title, md)); err != nil {
		return err
	}

	logger.Info("performance analysis complete, run %s", result.RunID)
	return nil
}

// loadDataset reads the configured data file, or generates and persists a
// synthetic dataset when none is configured
func loadDataset(cfg *config.Config) (*table.Table, error) {
	if cfg.Paths.PerformanceFile != "" {
		return tabular.NewReader(cfg.Paths.PerformanceFile).ReadTable()
	}

	gen := synthetic.NewPerformanceGenerator(synthetic.PerformanceConfig{
		Samples: cfg.Synthetic.PerformanceSamples,
		Seed:    cfg.Synthetic.Seed,
	})
	t := gen.Generate()

	raw := filepath.Join(cfg.Paths.ProcessedDir, "performance_data.csv")
	if err := tabular.NewWriter().WriteTableCSV(raw, t); err != nil {
		return nil, err
	}
	return t, nil
}
