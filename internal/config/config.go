// config.go defines corvidtool's optional configuration file,
// following the teacher pack's BurntSushi/toml-tagged-struct plus
// DefaultConfig() pattern (grounded on the arm-emulator example's
// config/config.go). The core corvidc binary never reads this file —
// its CLI contract is flags-free, one positional argument — only
// corvidtool consults it, for developer-experience knobs that do not
// change compiled output.

package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Repl configures the interactive REPL subcommand.
type Repl struct {
	// Color turns on ANSI coloring for the REPL's prompts. When false
	// (the default), prompts are never colorized; when true, corvidtool
	// still checks internal/term and colorizes only when stdout is a
	// terminal. Diagnostics are always printed uncolored.
	Color bool `toml:"color"`

	// History is the path readline persists line history to.
	History string `toml:"history"`
}

// Dump holds settings for the tokens/ast/asm dump subcommands. Those
// subcommands do not load corvid.toml, so these values are read and
// defaulted here but do not change their output.
type Dump struct {
	// Indent is the number of spaces for AST JSON indentation. The AST
	// JSON renderer (parser.ASTJSON) does not read it and always
	// indents by two spaces.
	Indent int `toml:"indent"`
}

// Config is corvidtool's top-level configuration shape.
type Config struct {
	Repl Repl `toml:"repl"`
	Dump Dump `toml:"dump"`
}

// DefaultConfig returns the configuration corvidtool runs with when no
// corvid.toml is found or one is found but omits a field.
func DefaultConfig() *Config {
	return &Config{
		Repl: Repl{
			Color:   false,
			History: ".corvid_history",
		},
		Dump: Dump{
			Indent: 2,
		},
	}
}

// Load reads path, overlaying its contents onto DefaultConfig. A
// missing file is not an error — it simply yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
