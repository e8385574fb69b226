package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

type Settings struct {
	Calculation Calculation `yaml:"calculation" json:"calculation"`
	Watch       Watch       `yaml:"watch" json:"watch"`
	Output      Output      `yaml:"output" json:"output"`
}

type Calculation struct {
	// Clock rates used by the rates command when none are given
	Rates []float64 `yaml:"rates" json:"rates"`

	// Mods applied when the snapshot doesn't set any, e.g. "HDDT"
	Mods string `yaml:"mods" json:"mods"`

	// LogSteps prints progress of step calculations
	LogSteps bool `yaml:"log_steps" json:"log_steps"`
}

type Watch struct {
	DebounceMS int `yaml:"debounce_ms" json:"debounce_ms"`
}

type Output struct {
	Format string `yaml:"format" json:"format"`
}

func Default() *Settings {
	return &Settings{
		Calculation: Calculation{
			Rates: []float64{0.75, 1, 1.5},
		},
		Watch: Watch{
			DebounceMS: 250,
		},
		Output: Output{
			Format: FormatTable,
		},
	}
}

func (s *Settings) Debounce() time.Duration {
	return time.Duration(s.Watch.DebounceMS) * time.Millisecond
}

// ApplyDefaults fills values left empty by a partial file.
func (s *Settings) ApplyDefaults() {
	def := Default()

	if len(s.Calculation.Rates) == 0 {
		s.Calculation.Rates = def.Calculation.Rates
	}

	if s.Watch.DebounceMS <= 0 {
		s.Watch.DebounceMS = def.Watch.DebounceMS
	}

	if s.Output.Format == "" {
		s.Output.Format = def.Output.Format
	}
}

func (s *Settings) Validate() error {
	for _, rate := range s.Calculation.Rates {
		if rate <= 0 {
			return fmt.Errorf("calculation.rates: rate must be positive, got %v", rate)
		}
	}

	switch s.Output.Format {
	case FormatTable, FormatYAML:
	default:
		return fmt.Errorf("output.format: unknown format %q", s.Output.Format)
	}

	return nil
}

// Load reads settings from path. A missing file yields the defaults.
// Environment overrides are applied on top in both cases.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		b, err := os.ReadFile(path)

		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read settings: %w", err)
		default:
			s = &Settings{}
			if err := yaml.Unmarshal(b, s); err != nil {
				return nil, fmt.Errorf("parse settings %s: %w", path, err)
			}

			s.ApplyDefaults()
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}
