package util

import (
	"fmt"
	"newt/internal/printer"
	"os"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	RootPath  string `toml:"root_path"`
	NewtHome  string `toml:"-"`

	// Diagnostic rendering limits; see the printer package for how they are
	// applied.
	PrintMaxElements     int `toml:"print_max_elements"`
	PrintMaxStringLength int `toml:"print_max_string_length"`
}

// DefaultConfiguration returns a configuration with the built-in rendering
// limits filled in.
func DefaultConfiguration() Configuration {
	return Configuration{
		RootPath:             ".",
		PrintMaxElements:     printer.DefaultMaxElements,
		PrintMaxStringLength: printer.DefaultMaxStringLength,
	}
}

// LoadConfiguration reads a TOML configuration file over the defaults. A
// missing file is not an error; a malformed one is.
func LoadConfiguration(path string) (Configuration, error) {
	config := DefaultConfiguration()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}

	if config.PrintMaxElements < 1 {
		return config, fmt.Errorf("print_max_elements must be at least 1, got %d", config.PrintMaxElements)
	}
	if config.PrintMaxStringLength < 1 {
		return config, fmt.Errorf("print_max_string_length must be at least 1, got %d", config.PrintMaxStringLength)
	}
	return config, nil
}

// Apply pushes the rendering limits into the shared printer state.
func (c Configuration) Apply() {
	printer.Configure(c.PrintMaxElements, c.PrintMaxStringLength)
}
