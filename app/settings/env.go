package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDebounce = "DIFFCALC_DEBOUNCE_MS"
	EnvRates    = "DIFFCALC_RATES"
	EnvFormat   = "DIFFCALC_FORMAT"
)

// applyEnv overrides settings from environment variables
func (s *Settings) applyEnv() error {
	if val := os.Getenv(EnvDebounce); val != "" {
		ms, err := strconv.Atoi(val)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%s: expected a positive integer, got %q", EnvDebounce, val)
		}

		s.Watch.DebounceMS = ms
	}

	if val := os.Getenv(EnvRates); val != "" {
		rates, err := ParseRates(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRates, err)
		}

		s.Calculation.Rates = rates
	}

	if val := os.Getenv(EnvFormat); val != "" {
		s.Output.Format = strings.ToLower(val)
	}

	return nil
}

// ParseRates parses a comma separated list of clock rates.
func ParseRates(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	rates := make([]float64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rate, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse rate %q: %w", part, err)
		}

		rates = append(rates, rate)
	}

	return rates, nil
}
