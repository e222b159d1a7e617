package config

import (
	"os"
	"strconv"

	"armbench/domain/benchmark"
	"armbench/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths     PathConfig
	Synthetic SyntheticConfig
	Benchmark benchmark.Constants
	Server    ServerConfig
	Analysis  AnalysisConfig
}

// PathConfig holds file system paths for inputs and outputs
type PathConfig struct {
	PerformanceFile string // CSV/XLSX with performance test records, empty = synthesize
	StructuralFile  string // CSV/XLSX with structural test records, empty = synthesize
	ResultsDir      string
	ProcessedDir    string
}

// SyntheticConfig holds sample-data generation settings
type SyntheticConfig struct {
	Seed               int64
	PerformanceSamples int
	StructuralSamples  int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds pipeline tuning settings
type AnalysisConfig struct {
	MaxGroupWorkers int64 // concurrency bound for grouped reduction
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths: PathConfig{
			PerformanceFile: getEnvOrDefault("PERFORMANCE_DATA_FILE", ""),
			StructuralFile:  getEnvOrDefault("STRUCTURAL_DATA_FILE", ""),
			ResultsDir:      getEnvOrDefault("RESULTS_DIR", "results"),
			ProcessedDir:    getEnvOrDefault("PROCESSED_DIR", "processed_data"),
		},
		Synthetic: SyntheticConfig{
			Seed:               getEnvInt64OrDefault("SAMPLE_SEED", 42),
			PerformanceSamples: getEnvIntOrDefault("PERFORMANCE_SAMPLES", 200),
			StructuralSamples:  getEnvIntOrDefault("STRUCTURAL_SAMPLES", 1500),
		},
		Benchmark: loadBenchmark(),
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			MaxGroupWorkers: int64(getEnvIntOrDefault("MAX_GROUP_WORKERS", 4)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// loadBenchmark reads the traditional-design reference values, falling back
// to the literature defaults per field
func loadBenchmark() benchmark.Constants {
	defaults := benchmark.DefaultTraditional()
	return benchmark.Constants{
		MeanStressMPa:   getEnvFloatOrDefault("BENCHMARK_MEAN_STRESS", defaults.MeanStressMPa),
		WeightKg:        getEnvFloatOrDefault("BENCHMARK_WEIGHT_KG", defaults.WeightKg),
		PowerEfficiency: getEnvFloatOrDefault("BENCHMARK_POWER_EFFICIENCY", defaults.PowerEfficiency),
		AssemblyTimeHrs: getEnvFloatOrDefault("BENCHMARK_ASSEMBLY_TIME", defaults.AssemblyTimeHrs),
	}
}

func validateConfig(config *Config) error {
	if config.Synthetic.PerformanceSamples <= 0 {
		return errors.ConfigInvalid("PERFORMANCE_SAMPLES must be positive")
	}
	if config.Synthetic.StructuralSamples <= 0 {
		return errors.ConfigInvalid("STRUCTURAL_SAMPLES must be positive")
	}
	if config.Analysis.MaxGroupWorkers <= 0 {
		return errors.ConfigInvalid("MAX_GROUP_WORKERS must be positive")
	}
	if config.Benchmark.MeanStressMPa <= 0 || config.Benchmark.WeightKg <= 0 {
		return errors.ConfigInvalid("benchmark reference values must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
