package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration lets time.Duration values be written as "10m" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	MergeGap             Duration `toml:"merge_gap"`
	ThreadGap            Duration `toml:"thread_gap"`
	Workers              int      `toml:"workers"`
	TaskTimeout          Duration `toml:"task_timeout"`
	RetryAttempts        int      `toml:"retry_attempts"`
	RetryInitialInterval Duration `toml:"retry_interval"`
	TimestampLayout      string   `toml:"timestamp_layout"`

	ClassifierURL     string   `toml:"classifier_url"`
	ClassifierToken   string   `toml:"classifier_api_key"`
	ClassifierTimeout Duration `toml:"classifier_timeout"`
	UseMockClassifier bool     `toml:"use_mock_classifier"`

	LogLevel    string `toml:"log_level"`
	Environment string `toml:"environment"`
}

func Defaults() Config {
	return Config{
		MergeGap:             Duration{10 * time.Minute},
		ThreadGap:            Duration{10 * time.Minute},
		Workers:              runtime.NumCPU(),
		TaskTimeout:          Duration{60 * time.Second},
		RetryAttempts:        3,
		RetryInitialInterval: Duration{500 * time.Millisecond},
		ClassifierTimeout:    Duration{25 * time.Second},
		LogLevel:             "info",
		Environment:          "local",
	}
}

// Load layers defaults, the optional TOML file at path (falling back to
// CHATLOG_CONFIG) and environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CHATLOG_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.MergeGap.Duration = envDuration("CHATLOG_MERGE_GAP", cfg.MergeGap.Duration)
	cfg.ThreadGap.Duration = envDuration("CHATLOG_THREAD_GAP", cfg.ThreadGap.Duration)
	cfg.Workers = envInt("CHATLOG_WORKERS", cfg.Workers)
	cfg.TaskTimeout.Duration = envDuration("CHATLOG_TASK_TIMEOUT", cfg.TaskTimeout.Duration)
	cfg.RetryAttempts = envInt("CHATLOG_RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.RetryInitialInterval.Duration = envDuration("CHATLOG_RETRY_INTERVAL", cfg.RetryInitialInterval.Duration)
	cfg.TimestampLayout = envStr("CHATLOG_TIMESTAMP_LAYOUT", cfg.TimestampLayout)
	cfg.ClassifierURL = envStr("CLASSIFIER_URL", cfg.ClassifierURL)
	cfg.ClassifierToken = envStr("CLASSIFIER_API_KEY", cfg.ClassifierToken)
	cfg.ClassifierTimeout.Duration = envDuration("CLASSIFIER_TIMEOUT", cfg.ClassifierTimeout.Duration)
	cfg.UseMockClassifier = envBool("USE_MOCK_CLASSIFIER", cfg.UseMockClassifier)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.Environment = envStr("ENVIRONMENT", cfg.Environment)

	return cfg, nil
}

// Validate checks the settings the analyze stage depends on.
func (c Config) Validate() error {
	switch {
	case c.MergeGap.Duration <= 0:
		return fmt.Errorf("merge gap must be positive, got %s", c.MergeGap)
	case c.ThreadGap.Duration <= 0:
		return fmt.Errorf("thread gap must be positive, got %s", c.ThreadGap)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.TaskTimeout.Duration <= 0:
		return fmt.Errorf("task timeout must be positive, got %s", c.TaskTimeout)
	case c.RetryAttempts <= 0:
		return fmt.Errorf("retry attempts must be positive, got %d", c.RetryAttempts)
	case !c.UseMockClassifier && c.ClassifierURL == "":
		return fmt.Errorf("CLASSIFIER_URL not configured (set USE_MOCK_CLASSIFIER=true to run offline)")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
