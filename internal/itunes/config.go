package itunes

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the client tuning knobs. Values come from ASOSCOPE_*
// environment variables; the defaults keep a sequential run under Apple's
// documented ~20 calls/minute ceiling.
type Config struct {
	SearchURL   string        `envconfig:"SEARCH_URL" default:"https://itunes.apple.com/search"`
	HintsURL    string        `envconfig:"HINTS_URL" default:"https://search.itunes.apple.com/WebObjects/MZSearchHints.woa/wa/hints"`
	MinInterval time.Duration `envconfig:"MIN_INTERVAL" default:"3.5s"`
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	RetryWait   time.Duration `envconfig:"RETRY_WAIT" default:"5s"`
	BackoffBase time.Duration `envconfig:"BACKOFF_BASE" default:"10s"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"15s"`
}

// LoadConfig resolves the client configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("asoscope", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load client config: %w", err)
	}
	return cfg, nil
}
