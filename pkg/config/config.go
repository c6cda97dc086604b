package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

// Environment variable names, kept in one place so tests and docs agree.
const (
	EnvAPIBaseURL = "CAREADM_API_BASE_URL"
	EnvAppEnv     = "CAREADM_APP_ENV"
	EnvLogLevel   = "CAREADM_LOG_LEVEL"
	EnvStateDir   = "CAREADM_STATE_DIR"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	State   StateConfig
	Listing ListingConfig
	Breaker BreakerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	if err := cfg.State.ensureDir(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAREADM_APP_ENV" default:"prod"`
	LogLevel     string `envconfig:"CAREADM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAREADM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "prod")
}

type APIConfig struct {
	BaseURL string        `envconfig:"CAREADM_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"CAREADM_API_TIMEOUT" default:"15s"`
}

func (a APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base url must be http or https, got %q", a.BaseURL)
	}
	return nil
}

type StateConfig struct {
	Dir string `envconfig:"CAREADM_STATE_DIR"`
}

// Path returns the keystore database location inside the state directory.
func (s StateConfig) Path() string {
	return filepath.Join(s.Dir, "careadm.db")
}

// LogPath returns the console log file location inside the state directory.
func (s StateConfig) LogPath() string {
	return filepath.Join(s.Dir, "careadm.log")
}

func (s *StateConfig) ensureDir() error {
	if strings.TrimSpace(s.Dir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home dir: %w", err)
		}
		s.Dir = filepath.Join(home, ".careadm")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	return nil
}

type ListingConfig struct {
	PageSize       int           `envconfig:"CAREADM_PAGE_SIZE" default:"25"`
	SearchDebounce time.Duration `envconfig:"CAREADM_SEARCH_DEBOUNCE" default:"300ms"`
}

type BreakerConfig struct {
	MaxRequests uint32        `envconfig:"CAREADM_BREAKER_MAX_REQUESTS" default:"3"`
	Interval    time.Duration `envconfig:"CAREADM_BREAKER_INTERVAL" default:"60s"`
	Timeout     time.Duration `envconfig:"CAREADM_BREAKER_TIMEOUT" default:"30s"`
	MinRequests uint32        `envconfig:"CAREADM_BREAKER_MIN_REQUESTS" default:"5"`
	FailureRate float64       `envconfig:"CAREADM_BREAKER_FAILURE_RATE" default:"0.6"`
}
