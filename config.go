package pagescrape

import "time"

// Extractor names accepted by Config.Extractor.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Output names accepted by Config.Output.
const (
	OutputStdout  = "stdout"
	OutputDataset = "dataset"
	OutputSQLite  = "sqlite"
)

// Defaults applied by DefaultConfig.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultConcurrency = 4
	DefaultDatasetDir  = "storage/datasets/default"
)

// Config holds job runner settings.
type Config struct {
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	Extractor   string        `yaml:"extractor"`
	Concurrency int           `yaml:"concurrency"`

	// RPS limits requests per second per host. Zero disables limiting.
	RPS float64 `yaml:"rps"`

	Output      string `yaml:"output"`
	DatasetDir  string `yaml:"dataset_dir"`
	DBPath      string `yaml:"db_path"`
	MetricsFile string `yaml:"metrics_file"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Extractor:   ExtractorTrafilatura,
		Concurrency: DefaultConcurrency,
		Output:      OutputStdout,
		DatasetDir:  DefaultDatasetDir,
		DBPath:      "pagescrape.db",
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	switch c.Extractor {
	case ExtractorTrafilatura, ExtractorReadability:
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}
	switch c.Output {
	case OutputStdout, OutputDataset, OutputSQLite:
	default:
		return Errorf(EINVALID, "unknown output %q", c.Output)
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive")
	}
	if c.RPS < 0 {
		return Errorf(EINVALID, "rps must not be negative")
	}
	if c.Output == OutputDataset && c.DatasetDir == "" {
		return Errorf(EINVALID, "dataset directory required")
	}
	if c.Output == OutputSQLite && c.DBPath == "" {
		return Errorf(EINVALID, "database path required")
	}
	return nil
}
