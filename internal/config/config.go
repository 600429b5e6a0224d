package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xll-gen/bin2c/internal/generator"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name picked up by `bin2c init`.
const DefaultFile = "bin2c.yaml"

// Config represents the run configuration, parsed from bin2c.yaml and then
// overridden by command line flags.
type Config struct {
	// Output controls where and how the C files are generated.
	Output OutputConfig `yaml:"output"`
	// Collision controls handling of inputs that share a symbol name.
	Collision CollisionConfig `yaml:"collision"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig configures the generated files.
type OutputConfig struct {
	// Dir is the directory receiving the .c and .h files.
	Dir string `yaml:"dir"`
	// Literal selects a string literal instead of a byte array.
	Literal bool `yaml:"literal"`
	// Attribute is appended to the data definition.
	Attribute string `yaml:"attribute"`
	// Includes are extra headers included by every .c file, in order.
	Includes []string `yaml:"includes"`
	// BytesPerLine is the array wrap width, in bytes. Nil means the default;
	// an explicit zero is rejected by Validate.
	BytesPerLine *int `yaml:"bytes_per_line"`
}

// CollisionConfig configures symbol collision handling.
type CollisionConfig struct {
	// Policy is "overwrite" or "error".
	Policy string `yaml:"policy"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stderr.
	Path string `yaml:"path"`
}

// Load reads and parses a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes yaml config data. Unknown keys are rejected and an empty
// document yields a zero Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.BytesPerLine == nil {
		n := generator.DefaultBytesPerLine
		cfg.Output.BytesPerLine = &n
	}
	if cfg.Collision.Policy == "" {
		cfg.Collision.Policy = string(generator.CollisionOverwrite)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	if n := cfg.Output.BytesPerLine; n != nil && *n <= 0 {
		return fmt.Errorf("invalid bytes_per_line: %d (must be positive)", *n)
	}

	switch generator.CollisionPolicy(cfg.Collision.Policy) {
	case "", generator.CollisionOverwrite, generator.CollisionFail:
		// ok
	default:
		return fmt.Errorf("invalid collision policy: %s (allowed: overwrite, error)", cfg.Collision.Policy)
	}

	for i, inc := range cfg.Output.Includes {
		if strings.TrimSpace(inc) == "" {
			return fmt.Errorf("include #%d is empty", i+1)
		}
		if strings.ContainsAny(inc, "\"\n") {
			return fmt.Errorf("include %q contains a quote or newline", inc)
		}
	}

	if strings.Contains(cfg.Output.Attribute, "\n") {
		return fmt.Errorf("attribute must be a single line")
	}

	if cfg.Logging.Level != "" {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", cfg.Logging.Level)
		}
	}

	return nil
}

// EncodeConfig builds the encoder settings shared by every conversion.
func (c *Config) EncodeConfig() generator.EncodeConfig {
	mode := generator.ByteArray
	if c.Output.Literal {
		mode = generator.StringLiteral
	}
	enc := generator.EncodeConfig{
		Mode:      mode,
		Attribute: c.Output.Attribute,
		Includes:  append([]string(nil), c.Output.Includes...),
	}
	if c.Output.BytesPerLine != nil {
		enc.BytesPerLine = *c.Output.BytesPerLine
	}
	return enc
}
