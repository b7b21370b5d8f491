package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsontree/internal/models"
	"gopkg.in/yaml.v3"
)

// Output modes
const (
	ModeCompact = "compact"
	ModePretty  = "pretty"
	ModeSum     = "sum"
	ModeStats   = "stats"
)

// Config represents the complete configuration for jsontree
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Skip   SkipConfig   `yaml:"skip"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Dev    DevConfig    `yaml:"dev"`
}

// LimitsConfig bounds what the parser accepts from untrusted input.
// Zero selects the default.
type LimitsConfig struct {
	MaxDepth    int `yaml:"max_depth"`
	MaxElements int `yaml:"max_elements"`
}

// Depth returns the nesting budget, falling back to models.DefaultMaxDepth.
func (l LimitsConfig) Depth() int {
	if l.MaxDepth > 0 {
		return l.MaxDepth
	}
	return models.DefaultMaxDepth
}

// Elements returns the container size cap, falling back to
// models.DefaultMaxElements.
func (l LimitsConfig) Elements() int {
	if l.MaxElements > 0 {
		return l.MaxElements
	}
	return models.DefaultMaxElements
}

// SkipConfig selects objects to leave out of sums. An object is left out
// when any of its members matches a key rule or holds a marker value.
type SkipConfig struct {
	Keys          []SkipRule `yaml:"keys"`
	Values        []string   `yaml:"values"`
	NormalizeKeys bool       `yaml:"normalize_keys"` // match key rules against snake_case keys
}

// SkipRule matches member keys by regular expression
type SkipRule struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// OutputConfig controls what is written for a parsed document
type OutputConfig struct {
	Mode   string `yaml:"mode"`
	Indent string `yaml:"indent"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Mode     string `yaml:"mode"`  // SIMPLE or FULL
	Level    string `yaml:"level"` // DEBUG, INFO, WARN, ERROR, FATAL
	Sink     string `yaml:"sink"`  // CONSOLE, FILE or MULTI
	Filename string `yaml:"filename"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxDepth:    models.DefaultMaxDepth,
			MaxElements: models.DefaultMaxElements,
		},
		Skip: SkipConfig{
			Keys:   []SkipRule{},
			Values: []string{},
		},
		Output: OutputConfig{
			Mode:   ModeCompact,
			Indent: "  ",
		},
		Log: LogConfig{
			Mode:  "SIMPLE",
			Level: "WARN",
			Sink:  "CONSOLE",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Limits.MaxDepth = cfg.Limits.Depth()
	cfg.Limits.MaxElements = cfg.Limits.Elements()

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsontree.yml", ".jsontree.yaml", "jsontree.yml", "jsontree.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option values that YAML cannot constrain
func (c *Config) Validate() error {
	switch c.Output.Mode {
	case ModeCompact, ModePretty, ModeSum, ModeStats:
	default:
		return fmt.Errorf("invalid output mode '%s'", c.Output.Mode)
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return fmt.Errorf("indent must contain only spaces and tabs, got %q", c.Output.Indent)
	}
	if c.Limits.MaxDepth < 0 || c.Limits.MaxElements < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Skip.Keys {
		rule := &c.Skip.Keys[i]
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid skip key pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}
	return nil
}

// MatchesKey checks if this skip rule matches the given member key
func (r *SkipRule) MatchesKey(key string) bool {
	if r.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		r.regex = regex
	}
	return r.regex.MatchString(key)
}

// Enabled reports whether any skip rule is configured
func (s *SkipConfig) Enabled() bool {
	return len(s.Keys) > 0 || len(s.Values) > 0
}

// ShouldSkip reports whether a member named key holding value disqualifies
// its enclosing object
func (c *Config) ShouldSkip(key string, value models.Value) bool {
	if len(c.Skip.Keys) > 0 {
		k := key
		if c.Skip.NormalizeKeys {
			k = strcase.ToSnake(key)
		}
		for i := range c.Skip.Keys {
			if c.Skip.Keys[i].MatchesKey(k) {
				return true
			}
		}
	}

	s, err := value.Str()
	if err != nil {
		return false
	}
	for _, marker := range c.Skip.Values {
		if s == marker {
			return true
		}
	}
	return false
}

// Overrides carries command-line settings that take precedence over the file
type Overrides struct {
	Mode        string
	Indent      string
	MaxDepth    int
	MaxElements int
	SkipKeys    []string
	SkipValues  []string
	Debug       bool
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Zero-valued overrides leave the file (or default) setting in place.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.Mode != "" {
		cfg.Output.Mode = o.Mode
	}
	if o.Indent != "" {
		cfg.Output.Indent = o.Indent
	}
	if o.MaxDepth > 0 {
		cfg.Limits.MaxDepth = o.MaxDepth
	}
	if o.MaxElements > 0 {
		cfg.Limits.MaxElements = o.MaxElements
	}
	for _, pattern := range o.SkipKeys {
		cfg.Skip.Keys = append(cfg.Skip.Keys, SkipRule{Pattern: pattern})
	}
	cfg.Skip.Values = append(cfg.Skip.Values, o.SkipValues...)
	if o.Debug {
		cfg.Dev.Debug = true
		cfg.Log.Level = "DEBUG"
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Limits.MaxDepth = cfg.Limits.Depth()
	cfg.Limits.MaxElements = cfg.Limits.Elements()
	return cfg, nil
}
