// Package config handles amn.toml user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the user-tunable settings of the command line tools.
type Config struct {
	// Machine selects the default instruction set, AM0 or AM1.
	Machine string `toml:"machine"`

	// Prompt is written before each shell command line.
	Prompt string `toml:"prompt"`

	// InputPrompt is written before each interactively read input value.
	InputPrompt string `toml:"input-prompt"`

	// HistoryFile stores the shell history, empty disables persistence.
	HistoryFile string `toml:"history-file"`
}

// Default returns the configuration used without an amn.toml file.
func Default() Config {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".amn_history")
	}
	return Config{
		Machine:     "AM0",
		Prompt:      "AMN >> ",
		InputPrompt: "Input: ",
		HistoryFile: historyFile,
	}
}

// Path returns the configuration file location: $AMN_CONFIG when set,
// otherwise amn/amn.toml below the user configuration directory.
func Path() string {
	if path := os.Getenv("AMN_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "amn", "amn.toml")
}

// Load reads the configuration from path, filling unset fields with
// defaults. A missing or empty path yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return config, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return config, config.validate()
}

func (c *Config) validate() error {
	machine := strings.ToUpper(c.Machine)
	switch machine {
	case "AM0", "AM1":
		c.Machine = machine
		return nil
	}
	return fmt.Errorf("unknown machine %q, expected AM0 or AM1", c.Machine)
}
