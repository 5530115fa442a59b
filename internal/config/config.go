// Package config loads and validates sympmatch configuration.
//
// Precedence, lowest to highest: built-in defaults, the YAML config
// file, environment variables (SYMPMATCH_*).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	symerrors "github.com/sympmatch/sympmatch/internal/errors"
)

// Config is the complete sympmatch configuration.
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Match   MatchConfig   `yaml:"match"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// CorpusConfig locates the two tabular inputs.
type CorpusConfig struct {
	// Path is the disease table (header: disease,symptoms,tips).
	Path string `yaml:"path"`
	// SynonymsPath is the synonym table (header: canonical,synonyms).
	// A missing file disables synonym expansion.
	SynonymsPath string `yaml:"synonyms_path"`
}

// MatchConfig sets query defaults.
type MatchConfig struct {
	// TopK is the default number of results per query.
	TopK int `yaml:"top_k"`
	// Threshold is the default minimum cosine similarity in [0,1].
	Threshold float64 `yaml:"threshold"`
}

// WatchConfig configures the background corpus watcher.
type WatchConfig struct {
	Enabled        bool     `yaml:"enabled"`
	PollInterval   Duration `yaml:"poll_interval"`
	DebounceWindow Duration `yaml:"debounce_window"`
}

// Duration wraps time.Duration so YAML values can be written as "2s"
// or "500ms". Plain integers are read as nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// FilePath is the log file; empty logs to stderr only.
	FilePath string `yaml:"file_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			Path:         "data/diseases.csv",
			SynonymsPath: "data/symptoms_synonyms.csv",
		},
		Match: MatchConfig{
			TopK:      3,
			Threshold: 0.2,
		},
		Watch: WatchConfig{
			Enabled:        true,
			PollInterval:   Duration(2 * time.Second),
			DebounceWindow: Duration(500 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, layered over defaults and under
// environment overrides. A missing file is fine: defaults plus env
// apply. An unreadable or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return Config{}, symerrors.Newf(symerrors.ErrCodeConfigNotFound, err, "read config %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, symerrors.Newf(symerrors.ErrCodeConfigInvalid, err, "parse config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays SYMPMATCH_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("SYMPMATCH_CORPUS"); v != "" {
		c.Corpus.Path = v
	}
	if v := os.Getenv("SYMPMATCH_SYNONYMS"); v != "" {
		c.Corpus.SynonymsPath = v
	}
	if v := os.Getenv("SYMPMATCH_TOPK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return symerrors.Newf(symerrors.ErrCodeConfigInvalid, err, "SYMPMATCH_TOPK=%q is not an integer", v)
		}
		c.Match.TopK = n
	}
	if v := os.Getenv("SYMPMATCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return symerrors.Newf(symerrors.ErrCodeConfigInvalid, err, "SYMPMATCH_THRESHOLD=%q is not a number", v)
		}
		c.Match.Threshold = f
	}
	if v := os.Getenv("SYMPMATCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string
	if c.Corpus.Path == "" {
		problems = append(problems, "corpus.path must not be empty")
	}
	if c.Match.TopK <= 0 {
		problems = append(problems, fmt.Sprintf("match.top_k must be positive, got %d", c.Match.TopK))
	}
	if c.Match.Threshold < 0 || c.Match.Threshold > 1 {
		problems = append(problems, fmt.Sprintf("match.threshold must be in [0,1], got %g", c.Match.Threshold))
	}
	if c.Watch.PollInterval <= 0 {
		problems = append(problems, "watch.poll_interval must be positive")
	}
	if c.Watch.DebounceWindow <= 0 {
		problems = append(problems, "watch.debounce_window must be positive")
	}
	if len(problems) > 0 {
		return symerrors.Newf(symerrors.ErrCodeConfigInvalid, nil, "invalid config: %v", problems)
	}
	return nil
}
