// Package config loads and validates the pipeline configuration from an
// optional YAML file with environment-variable overrides, and parses the
// per-stage KEY=VALUE files that name each stage's inputs and outputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Config is the top-level pipeline configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Stages  StagesConfig  `yaml:"stages"`
	Model   ModelConfig   `yaml:"model"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PathsConfig holds the directories stage files and data live in.
type PathsConfig struct {
	ConfigDir string `yaml:"configDir"`
	DataDir   string `yaml:"dataDir"`
	ResultDir string `yaml:"resultDir"`
}

// StagesConfig names the KEY=VALUE file of each stage, relative to ConfigDir.
type StagesConfig struct {
	Index   string `yaml:"index"`
	Model   string `yaml:"model"`
	Queries string `yaml:"queries"`
	Search  string `yaml:"search"`
}

// ModelConfig controls vocabulary filtering and weighting in the vector
// model builder. Normalization selects the axis along which raw term
// frequencies are scaled into [0,1] before idf weighting.
type ModelConfig struct {
	MinTermLength int         `yaml:"minTermLength"`
	Normalization matrix.Axis `yaml:"normalization"`
	LogBase       float64     `yaml:"logBase"`
}

// SearchConfig controls the ranking stage.
type SearchConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls pushing run metrics to a Prometheus Pushgateway.
// An empty PushgatewayURL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string        `yaml:"pushgatewayURL"`
	Job            string        `yaml:"job"`
	PushAttempts   int           `yaml:"pushAttempts"`
	PushTimeout    time.Duration `yaml:"pushTimeout"`
}

// StagePath resolves a stage file name against ConfigDir.
func (c *Config) StagePath(name string) string {
	return filepath.Join(c.Paths.ConfigDir, name)
}

// DataPath resolves a file name against DataDir.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.Paths.DataDir, name)
}

// ResultPath resolves a file name against ResultDir.
func (c *Config) ResultPath(name string) string {
	return filepath.Join(c.Paths.ResultDir, name)
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrConfig, "config", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrConfig, "config", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config matching the layout of the reference pipeline:
// stage files in the working directory, inputs under data/, outputs under
// result/.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ConfigDir: ".",
			DataDir:   "data",
			ResultDir: "result",
		},
		Stages: StagesConfig{
			Index:   "GLI.CFG",
			Model:   "INDEX.CFG",
			Queries: "PC.CFG",
			Search:  "BUSCA.CFG",
		},
		Model: ModelConfig{
			MinTermLength: 2,
			Normalization: matrix.AxisNone,
			LogBase:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Job:          "vsm",
			PushAttempts: 3,
			PushTimeout:  5 * time.Second,
		},
	}
}

// Validate rejects values the builder and ranker cannot work with.
func (c *Config) Validate() error {
	if c.Model.MinTermLength < 1 {
		return apperrors.Newf(apperrors.ErrConfig, "config", "model.minTermLength",
			"must be at least 1, got %d", c.Model.MinTermLength)
	}
	if !c.Model.Normalization.Valid() {
		return apperrors.Newf(apperrors.ErrConfig, "config", "model.normalization",
			"unknown axis %q (want one of %v)", c.Model.Normalization, matrix.Axes)
	}
	if c.Model.LogBase <= 1 {
		return apperrors.Newf(apperrors.ErrConfig, "config", "model.logBase",
			"must be greater than 1, got %v", c.Model.LogBase)
	}
	if c.Search.Workers < 0 {
		return apperrors.Newf(apperrors.ErrConfig, "config", "search.workers",
			"must not be negative, got %d", c.Search.Workers)
	}
	if c.Metrics.PushAttempts < 0 || c.Metrics.PushTimeout < 0 {
		return apperrors.New(apperrors.ErrConfig, "config", "metrics",
			"pushAttempts and pushTimeout must not be negative")
	}
	return nil
}

// applyEnvOverrides reads VSM_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("VSM_CONFIG_DIR"); v != "" {
		cfg.Paths.ConfigDir = v
	}
	if v := os.Getenv("VSM_DATA_DIR"); v != "" {
		cfg.Paths.DataDir = v
	}
	if v := os.Getenv("VSM_RESULT_DIR"); v != "" {
		cfg.Paths.ResultDir = v
	}
	if v := os.Getenv("VSM_MODEL_MIN_TERM_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrConfig, "config", "VSM_MODEL_MIN_TERM_LENGTH", err)
		}
		cfg.Model.MinTermLength = n
	}
	if v := os.Getenv("VSM_MODEL_NORMALIZATION"); v != "" {
		cfg.Model.Normalization = matrix.Axis(v)
	}
	if v := os.Getenv("VSM_MODEL_LOG_BASE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrConfig, "config", "VSM_MODEL_LOG_BASE", err)
		}
		cfg.Model.LogBase = f
	}
	if v := os.Getenv("VSM_SEARCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrConfig, "config", "VSM_SEARCH_WORKERS", err)
		}
		cfg.Search.Workers = n
	}
	if v := os.Getenv("VSM_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VSM_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("VSM_METRICS_PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
	}
	return nil
}

// String renders the effective configuration for the startup log line.
func (c *Config) String() string {
	return fmt.Sprintf("dataDir=%s resultDir=%s minTermLength=%d normalization=%s logBase=%v workers=%d",
		c.Paths.DataDir, c.Paths.ResultDir, c.Model.MinTermLength,
		c.Model.Normalization, c.Model.LogBase, c.Search.Workers)
}
