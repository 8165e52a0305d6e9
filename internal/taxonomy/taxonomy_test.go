package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tax := Default()

	require.Len(t, tax.Themes, 12)
	assert.Equal(t, "speed", tax.Themes[0].Name)
	assert.Equal(t, "estimate", tax.Themes[11].Name)
	assert.Contains(t, tax.Themes[11].Triggers, "quote")

	assert.NotEmpty(t, tax.PositiveIndicators)
	assert.NotEmpty(t, tax.NegativeIndicators)
	assert.Len(t, tax.Services, 17)
	require.Len(t, tax.PricingPatterns, 8)

	// First pattern matches bare currency amounts.
	assert.Equal(t, "$8,500", tax.PricingPatterns[0].FindString("the quote was $8,500."))
}

func TestLoadFile_OverridesServices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - drain cleaning
  - water heater
`), 0o644))

	tax, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"drain cleaning", "water heater"}, tax.Services)
	// Untouched sections fall back to defaults.
	assert.Len(t, tax.Themes, 12)
	assert.Len(t, tax.PricingPatterns, 8)
}

func TestLoadFile_OverridesThemes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
themes:
  - name: punctuality
    triggers: [on time, late]
`), 0o644))

	tax, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tax.Themes, 1)
	assert.Equal(t, "punctuality", tax.Themes[0].Name)
}

func TestLoadFile_RejectsEmptyTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
themes:
  - name: empty
    triggers: []
`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_RejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pricing_patterns:
  - "[unclosed"
`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/tax.yaml")
	assert.Error(t, err)
}
