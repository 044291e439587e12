// control/settings.go
// Author: momentics <momentics@gmail.com>
//
// Typed runtime settings loaded from YAML and mirrored into a ConfigStore.

package control

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-core/api"
)

// Settings is the process-wide runtime configuration. It is resolved once
// at startup; the atomic backend itself is a build tag, not a setting.
type Settings struct {
	// RingBackend is "lockfree" (default) or "locked".
	RingBackend string `yaml:"ring_backend"`
	// AllocationLimit caps object.Allocate payloads, in bytes.
	AllocationLimit uint64 `yaml:"allocation_limit"`

	Log    LogSettings    `yaml:"log"`
	Statsd StatsdSettings `yaml:"statsd"`
}

// LogSettings selects logger level and format.
type LogSettings struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error, fatal
	Format string `yaml:"format"` // text, json, none
	Pretty bool   `yaml:"pretty"`
}

// StatsdSettings configures the metrics reporter. An empty Address mutes it.
type StatsdSettings struct {
	Address     string        `yaml:"address"`
	Prefix      string        `yaml:"prefix"`
	FlushPeriod time.Duration `yaml:"flush_period"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		RingBackend:     "lockfree",
		AllocationLimit: 1 << 30,
		Log:             LogSettings{Level: "info", Format: "text"},
		Statsd:          StatsdSettings{Prefix: "hioload", FlushPeriod: time.Second},
	}
}

// ParseSettings decodes YAML over the defaults and validates the result.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("control: parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads and parses a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("control: load settings: %w", err)
	}
	return ParseSettings(data)
}

// Validate rejects unknown enumerations.
func (s Settings) Validate() error {
	switch s.RingBackend {
	case "", "lockfree", "locked":
	default:
		return api.NewError(api.ErrCodeInvalidArgument, "control: unknown ring_backend").
			WithContext("ring_backend", s.RingBackend)
	}
	switch s.Log.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return api.NewError(api.ErrCodeInvalidArgument, "control: unknown log level").
			WithContext("level", s.Log.Level)
	}
	switch s.Log.Format {
	case "", "text", "json", "none":
	default:
		return api.NewError(api.ErrCodeInvalidArgument, "control: unknown log format").
			WithContext("format", s.Log.Format)
	}
	return nil
}

// Map flattens s into dotted config keys.
func (s Settings) Map() map[string]any {
	return map[string]any{
		"ring.backend":        s.RingBackend,
		"object.alloc_limit":  s.AllocationLimit,
		"log.level":           s.Log.Level,
		"log.format":          s.Log.Format,
		"statsd.address":      s.Statsd.Address,
		"statsd.prefix":       s.Statsd.Prefix,
		"statsd.flush_period": s.Statsd.FlushPeriod,
	}
}
