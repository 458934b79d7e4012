// Package config loads pseudoc settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

// EnvVar names the environment variable consulted by Discover.
const EnvVar = "PSEUDOC_CONFIG"

// Config holds the complete driver configuration.
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ParserConfig holds parser limits.
type ParserConfig struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // tree, text, brackets, json or yaml
	Color  string `toml:"color" yaml:"color"`   // auto, always or never
}

// REPLConfig holds settings for the interactive loop.
type REPLConfig struct {
	Prompt       string `toml:"prompt" yaml:"prompt"`
	Continuation string `toml:"continuation" yaml:"continuation"`
	HistoryFile  string `toml:"history_file" yaml:"history_file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Format identifies a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

var (
	outputFormats = []string{"tree", "text", "brackets", "json", "yaml"}
	colorModes    = []string{"auto", "always", "never"}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration file at path. The syntax is chosen by
// extension: .yaml and .yml are YAML, anything else is TOML. Missing
// fields take their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content in the given format, applies defaults and
// validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover locates a configuration file. The PSEUDOC_CONFIG variable wins;
// otherwise the working directory and the user config directory are
// searched. It returns "" when nothing is found.
func Discover() string {
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}

	candidates := []string{
		"pseudoc.toml",
		"pseudoc.yaml",
		"pseudoc.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(dir, "pseudoc", "config.toml"),
			filepath.Join(dir, "pseudoc", "config.yaml"),
		)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = syntax.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.REPL.Continuation == "" {
		c.REPL.Continuation = ".. "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".pseudoc_history")
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks that every field holds an accepted value.
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if !oneOf(c.Output.Format, outputFormats) {
		return fmt.Errorf("output.format must be one of %s, got %q",
			strings.Join(outputFormats, ", "), c.Output.Format)
	}
	if !oneOf(c.Output.Color, colorModes) {
		return fmt.Errorf("output.color must be one of %s, got %q",
			strings.Join(colorModes, ", "), c.Output.Color)
	}
	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %s, got %q",
			strings.Join(logLevels, ", "), c.Log.Level)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
