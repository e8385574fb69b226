package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "diffcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), s)
	assert.Equal(t, 250*time.Millisecond, s.Debounce())
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeFile(t, `
calculation:
  mods: HR
  log_steps: true
output:
  format: yaml
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "HR", s.Calculation.Mods)
	assert.True(t, s.Calculation.LogSteps)
	assert.Equal(t, FormatYAML, s.Output.Format)
	assert.Equal(t, []float64{0.75, 1, 1.5}, s.Calculation.Rates)
	assert.Equal(t, 250, s.Watch.DebounceMS)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "output: ["))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "output:\n  format: xml\n"))
	assert.ErrorContains(t, err, "output.format")

	_, err = Load(writeFile(t, "calculation:\n  rates: [1, -1]\n"))
	assert.ErrorContains(t, err, "calculation.rates")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvDebounce, "40")
	t.Setenv(EnvRates, "1, 1.25,1.5")
	t.Setenv(EnvFormat, "YAML")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 40*time.Millisecond, s.Debounce())
	assert.Equal(t, []float64{1, 1.25, 1.5}, s.Calculation.Rates)
	assert.Equal(t, FormatYAML, s.Output.Format)

	t.Setenv(EnvDebounce, "soon")

	_, err = Load("")
	assert.ErrorContains(t, err, EnvDebounce)
}

func TestParseRates(t *testing.T) {
	rates, err := ParseRates("0.5,,2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2}, rates)

	_, err = ParseRates("fast")
	assert.Error(t, err)
}
