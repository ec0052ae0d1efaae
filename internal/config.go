// Package internal provides the application initialization and runtime logic.
package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Vault   VaultConfig       `yaml:"vault"`
	Journal JournalConfig     `yaml:"journal"`
	Prompt  PromptConfig      `yaml:"prompt"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	return c.Prompt.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// VaultConfig holds the path to the Markdown vault directory.
//
// Scaffold controls whether missing layout directories and base templates
// are created on startup; disable it for vaults managed elsewhere.
type VaultConfig struct {
	Path     string `yaml:"path"`
	Scaffold bool   `yaml:"scaffold"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// JournalConfig holds the SQLite journal location. An empty path disables
// the journal entirely.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// PromptConfig bounds the interactive retry loops.
type PromptConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// Validate validates the prompt configuration.
func (c *PromptConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxAttempts, validation.Required, validation.Min(1), validation.Max(10)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Vault: VaultConfig{
			Path:     "./vault",
			Scaffold: true,
		},
		Journal: JournalConfig{
			Path: "./ansuz.db",
		},
		Prompt: PromptConfig{
			MaxAttempts: 3,
		},
	}
}
