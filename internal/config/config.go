// Package config loads the truman settings file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/truman/pkg/adapters/serial"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Settings is the whole settings file.
type Settings struct {
	Autonomous domain.Config     `mapstructure:"autonomous"`
	Tick       TickSettings      `mapstructure:"tick"`
	Telemetry  TelemetrySettings `mapstructure:"telemetry"`
	Serial     SerialSettings    `mapstructure:"serial"`
	HTTP       HTTPSettings      `mapstructure:"http"`
	Log        LogSettings       `mapstructure:"log"`
}

type TickSettings struct {
	Period time.Duration `mapstructure:"period"`
}

// TelemetrySettings configures the Redis publisher. An empty Redis address
// disables it.
type TelemetrySettings struct {
	Redis         string        `mapstructure:"redis"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

type SerialSettings struct {
	Port               string `mapstructure:"port"`
	serial.PortOptions `mapstructure:",squash"`
}

type HTTPSettings struct {
	Addr string `mapstructure:"addr"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Autonomous: domain.DefaultConfig(),
		Tick:       TickSettings{Period: 20 * time.Millisecond},
		Telemetry: TelemetrySettings{
			Prefix:        "truman:",
			FlushInterval: 100 * time.Millisecond,
		},
		Serial: SerialSettings{PortOptions: serial.PortOptions{BaudRate: 115200}},
		HTTP:   HTTPSettings{Addr: ":8080"},
		Log:    LogSettings{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults. Unknown keys are errors.
func Parse(data []byte) (Settings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}

	s := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused: true,
		Result:      &s,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every section.
func (s Settings) Validate() error {
	if err := s.Autonomous.Validate(); err != nil {
		return err
	}
	if s.Tick.Period <= 0 {
		return fmt.Errorf("%w: tick period must be positive", domain.ErrInvalidConfig)
	}
	if s.Telemetry.Redis != "" && s.Telemetry.FlushInterval <= 0 {
		return fmt.Errorf("%w: telemetry flush interval must be positive", domain.ErrInvalidConfig)
	}
	if _, err := s.Serial.Normalize(); err != nil {
		return fmt.Errorf("%w: serial: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}
