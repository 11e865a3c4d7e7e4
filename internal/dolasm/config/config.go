// Package config loads dolasm settings from a JSON file. Command-line flags
// override file values.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"dolasm/internal/analysis"
	"dolasm/internal/ppc"
)

// FileName is looked up in the working directory when --config is not given.
const FileName = ".dolasm.json"

// Config represents configuration for dolasm
type Config struct {
	Debug           bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
	MaxInstructions int    `json:"maxInstructions,omitempty" jsonschema:"title=Max Instructions,description=Instruction cap for the function boundary heuristic,minimum=1"`
	MaxFunctions    int    `json:"maxFunctions,omitempty" jsonschema:"title=Max Functions,description=Function cap for trace,minimum=1"`
	Syntax          string `json:"syntax,omitempty" jsonschema:"title=Syntax,description=Instruction rendering,enum=struct,enum=gnu,enum=go"`
	NoColor         bool   `json:"noColor,omitempty" jsonschema:"title=No Color,description=Disable listing highlighting"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		MaxInstructions: analysis.DefaultMaxInstructions,
		MaxFunctions:    analysis.DefaultMaxFunctions,
		Syntax:          string(ppc.SyntaxStruct),
	}
}

// Load reads path over the defaults. An empty path tries FileName in dir and
// returns the defaults when it does not exist.
func Load(path, dir string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch ppc.Syntax(c.Syntax) {
	case ppc.SyntaxStruct, ppc.SyntaxGNU, ppc.SyntaxGo:
	default:
		return fmt.Errorf("unknown syntax %q", c.Syntax)
	}
	if c.MaxInstructions < 0 || c.MaxFunctions < 0 {
		return errors.New("limits must not be negative")
	}
	return nil
}

// Options returns the heuristic options for this config.
func (c Config) Options() analysis.Options {
	return analysis.Options{MaxInstructions: c.MaxInstructions}
}

func (c Config) TraceOptions() analysis.TraceOptions {
	return analysis.TraceOptions{Options: c.Options(), MaxFunctions: c.MaxFunctions}
}

// Schema renders the JSON schema of Config.
func Schema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	return json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
}
