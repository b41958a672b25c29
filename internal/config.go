package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the organizer
type Config struct {
	Source         string         `json:"source" toml:"source"`
	Destination    string         `json:"destination" toml:"destination"`
	StripIllegal   bool           `json:"strip_illegal" toml:"strip_illegal"`
	ConflictPolicy ConflictPolicy `json:"conflict_policy" toml:"conflict_policy"`
	LogLevel       string         `json:"log_level" toml:"log_level"`
	Lock           bool           `json:"lock" toml:"lock"`
	Watch          *WatchConfig   `json:"watch,omitempty" toml:"watch,omitempty"`
}

// WatchConfig holds watch-mode configuration
type WatchConfig struct {
	DebounceTime string `json:"debounce_time" toml:"debounce_time"` // Duration string e.g. "2s"
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		StripIllegal:   true,
		ConflictPolicy: PolicyAsk,
		LogLevel:       "info",
		Lock:           true,
		Watch:          nil, // Watch config is optional
	}
}

// DefaultWatchConfig returns watch config with sensible defaults
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceTime: "2s",
	}
}

// Debounce parses DebounceTime.
func (w *WatchConfig) Debounce() (time.Duration, error) {
	if w == nil || w.DebounceTime == "" {
		return 2 * time.Second, nil
	}
	d, err := time.ParseDuration(w.DebounceTime)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce_time %q: %w", w.DebounceTime, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("debounce_time must be positive, got %s", d)
	}
	return d, nil
}

// LoadConfig loads configuration from a JSON or TOML file, picked by the
// file extension. Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &config)
	default:
		err = json.Unmarshal(b, &config)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the settings a run depends on.
func (c Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source directory is required"))
	}
	if c.Destination == "" {
		errs = append(errs, errors.New("destination directory is required"))
	}
	if c.Source != "" && c.Destination != "" && filepath.Clean(c.Source) == filepath.Clean(c.Destination) {
		errs = append(errs, errors.New("source and destination must differ"))
	}
	if !c.ConflictPolicy.Valid() {
		errs = append(errs, fmt.Errorf("unknown conflict_policy %q", c.ConflictPolicy))
	}
	if c.Watch != nil {
		if _, err := c.Watch.Debounce(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Request builds the pipeline request for this configuration.
func (c Config) Request() Request {
	return Request{
		Source:       c.Source,
		Destination:  c.Destination,
		StripIllegal: c.StripIllegal,
	}
}
