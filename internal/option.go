package internal

import "github.com/starford/ansuz/internal/prompt"

// Run modes.
const (
	ModeCreate  = "create"
	ModeHistory = "history"
	ModeMCP     = "mcp"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	mode     string
	prompter prompt.Prompter
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMode selects the run mode (create, history, mcp).
func WithMode(mode string) Option {
	return func(a *application) {
		a.mode = mode
	}
}

// WithPrompter overrides the terminal prompter, mainly for tests.
func WithPrompter(p prompt.Prompter) Option {
	return func(a *application) {
		a.prompter = p
	}
}
