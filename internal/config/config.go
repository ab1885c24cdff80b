// Package config loads the optional lucid.yaml workspace file. Settings
// missing from the file keep their defaults, so a partial file is fine.
package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// DefaultName is the file name looked up in the working directory.
const DefaultName = "lucid.yaml"

// Config is the workspace configuration shared by the CLI, the REPL and
// the language server.
type Config struct {
	Translator TranslatorConfig `yaml:"translator"`
	REPL       REPLConfig       `yaml:"repl"`
	LSP        LSPConfig        `yaml:"lsp"`
	CLI        CLIConfig        `yaml:"cli"`
}

// TranslatorConfig controls the Lucid-to-Noema translator.
type TranslatorConfig struct {
	// Version overrides the translator version stamped into proofs and
	// versioning_info. Empty keeps the built-in version.
	Version string `yaml:"version"`
	// ProofLog keeps an in-memory record of every proof the translator
	// produced, keyed by program fingerprint.
	ProofLog bool `yaml:"proof_log"`
}

// REPLConfig controls the interactive session.
type REPLConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

// LSPConfig controls the language server.
type LSPConfig struct {
	// LogLevel is the commonlog verbosity: 0 quiet, 1 info, 2 debug.
	LogLevel int `yaml:"log_level"`
}

// CLIConfig controls terminal output.
type CLIConfig struct {
	NoColor bool `yaml:"no_color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Translator: TranslatorConfig{ProofLog: true},
		REPL: REPLConfig{
			Prompt:      ">> ",
			HistoryFile: ".lucid_history",
		},
		LSP: LSPConfig{LogLevel: 1},
	}
}

// Load reads the file at path and overlays it on the defaults. A missing
// file is not an error; a malformed one is.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	fs := afs.New()
	exists, err := fs.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe config %s: %w", path, err)
	}
	if !exists {
		return cfg, nil
	}

	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
