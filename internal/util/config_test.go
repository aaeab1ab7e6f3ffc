package util

import (
	"newt/internal/printer"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newt.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, printer.DefaultMaxElements, config.PrintMaxElements)
	assert.Equal(t, printer.DefaultMaxStringLength, config.PrintMaxStringLength)
	assert.Equal(t, ".", config.RootPath)
}

func TestLoadConfigurationMissingFileIsNotAnError(t *testing.T) {
	config, err := LoadConfiguration(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, printer.DefaultMaxElements, config.PrintMaxElements)
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `
root_path = "/srv/newt"
print_max_elements = 2
print_max_string_length = 16
`)

	config, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/newt", config.RootPath)
	assert.Equal(t, 2, config.PrintMaxElements)
	assert.Equal(t, 16, config.PrintMaxStringLength)
}

func TestLoadConfigurationPartialOverride(t *testing.T) {
	path := writeConfig(t, `print_max_elements = 8`)

	config, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, 8, config.PrintMaxElements)
	assert.Equal(t, printer.DefaultMaxStringLength, config.PrintMaxStringLength)
}

func TestLoadConfigurationRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `print_max_elements = "lots"`)

	_, err := LoadConfiguration(path)
	assert.Error(t, err)
}

func TestLoadConfigurationRejectsInvalidLimits(t *testing.T) {
	path := writeConfig(t, `print_max_elements = 0`)
	_, err := LoadConfiguration(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "print_max_elements")

	path = writeConfig(t, `print_max_string_length = -3`)
	_, err = LoadConfiguration(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "print_max_string_length")
}

func TestApplyPushesLimitsToPrinter(t *testing.T) {
	defer printer.Configure(printer.DefaultMaxElements, printer.DefaultMaxStringLength)

	config := DefaultConfiguration()
	config.PrintMaxElements = 3
	config.PrintMaxStringLength = 20
	config.Apply()

	elements, stringLength := printer.Limits()
	assert.Equal(t, 3, elements)
	assert.Equal(t, 20, stringLength)
}
