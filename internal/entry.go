package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/ansuz/internal/assemble"
	"github.com/starford/ansuz/internal/builder"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/workflow"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{mode: ModeCreate}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// Stdout belongs to the interactive prompts, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	if cfg.Vault.Scaffold {
		if err := assemble.ScaffoldVault(store, logger); err != nil {
			return fmt.Errorf("scaffold vault: %w", err)
		}
	}

	var jnl *journal.Journal
	if cfg.Journal.Path != "" {
		jnl, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("init journal: %w", err)
		}
		defer jnl.Close()
	}

	switch app.mode {
	case ModeCreate:
		prompter := app.prompter
		if prompter == nil {
			prompter = prompt.NewTerminal()
		}
		return runCreate(store, jnl, prompter, logger, cfg)
	case ModeHistory:
		return runHistory(jnl)
	case ModeMCP:
		logger.Info("starting MCP server on stdio", slog.String("vault", cfg.Vault.Path))
		return mcpserver.New(store, jnl, logger).ServeStdio()
	default:
		return fmt.Errorf("unknown mode %q", app.mode)
	}
}

// runCreate makes a fresh draft in the inbox and runs the workflow on it.
func runCreate(store storage.Provider, jnl *journal.Journal, prompter prompt.Prompter,
	logger *slog.Logger, cfg *Config) error {

	draft := draftPath(store)
	if err := store.Write(draft, []byte("# Untitled\n")); err != nil {
		return fmt.Errorf("create draft: %w", err)
	}
	logger.Debug("draft created", slog.String("path", draft))

	categories := registry.NewCategories(store, logger)
	types := registry.NewNoteTypes(store, logger)
	symbols := registry.NewSymbolPicker(logger, cfg.Prompt.MaxAttempts)
	b := builder.New(store, categories, types, symbols, prompter, logger, cfg.Prompt.MaxAttempts)
	pipeline := assemble.NewPipeline(store, logger)

	o := workflow.New(store, b, pipeline, types, symbols, jnl, prompter, logger, cfg.Prompt.MaxAttempts)
	_, dest, err := o.Run(draft)
	if err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	fmt.Println(dest)
	return nil
}

// runHistory prints the most recent journal entries.
func runHistory(jnl *journal.Journal) error {
	if jnl == nil {
		return fmt.Errorf("history requires a journal path in the configuration")
	}
	entries, err := jnl.Recent(20)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-18s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Category, e.Path)
	}
	return nil
}

// draftPath picks an unused draft location in the inbox.
func draftPath(store storage.Provider) string {
	p := filepath.Join(models.InboxDir, "Untitled.md")
	for i := 2; store.Exists(p); i++ {
		p = filepath.Join(models.InboxDir, fmt.Sprintf("Untitled %d.md", i))
	}
	return p
}
