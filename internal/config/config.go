package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ReportConfig controls which tables are produced and how.
type ReportConfig struct {
	Sheet          string `yaml:"sheet" envconfig:"SHEET"`
	Stdout         string `yaml:"stdout" envconfig:"STDOUT" validate:"oneof=counts summary detail none"`
	Format         string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv table"`
	BOMPrefix      bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
	FillDown       bool   `yaml:"fill_down" envconfig:"FILL_DOWN"`
	HeaderScanRows int    `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS" validate:"min=1,max=1000"`
}

// ColumnsConfig lists the header aliases used to locate each column.
type ColumnsConfig struct {
	Technician []string `yaml:"technician" envconfig:"TECHNICIAN" validate:"min=1,dive,required"`
	QuoteID    []string `yaml:"quote_id" envconfig:"QUOTE_ID" validate:"min=1,dive,required"`
	Labor      []string `yaml:"labor" envconfig:"LABOR" validate:"dive,required"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=stdout none"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file and BLUEBOOK_* environment variables, in increasing precedence.
// An empty configPath searches the usual locations; a non-empty one must exist.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = getConfigFilePath()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if configPath != "" {
		if err := loadFromFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the file keep their value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the first existing config file, or "".
func getConfigFilePath() string {
	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFilePath,
		},
		Report: ReportConfig{
			Sheet:          DefaultSheet,
			Stdout:         StdoutCounts,
			Format:         FormatCSV,
			BOMPrefix:      false,
			FillDown:       false,
			HeaderScanRows: DefaultHeaderScanRows,
		},
		Columns: ColumnsConfig{
			Technician: append([]string(nil), DefaultTechnicianHeaders...),
			QuoteID:    append([]string(nil), DefaultQuoteHeaders...),
			Labor:      append([]string(nil), DefaultLaborHeaders...),
		},
		Tracing: TracingConfig{
			Exporter:    TraceExporterNone,
			SampleRatio: 1.0,
		},
	}
}
