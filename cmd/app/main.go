package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func runMode(mode string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := internal.NewDefaultConfig()
		if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if v := cmd.String("vault"); v != "" {
			cfg.Vault.Path = v
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithMode(mode),
		}
		if err := internal.Run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	}
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("ANSUZ_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "vault",
			Usage:   "Path to the Markdown vault (overrides config)",
			Sources: cli.EnvVars("ANSUZ_VAULT"),
		},
	}

	cmd := &cli.Command{
		Name:   "ansuz",
		Usage:  "Interactive note scaffolding for adversary-simulation Markdown vaults",
		Flags:  flags,
		Action: runMode(internal.ModeCreate),
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a new note interactively (default)",
				Flags:  flags,
				Action: runMode(internal.ModeCreate),
			},
			{
				Name:   "history",
				Usage:  "List recently generated notes",
				Flags:  flags,
				Action: runMode(internal.ModeHistory),
			},
			{
				Name:   "mcp",
				Usage:  "Serve the scaffolding tools over MCP stdio",
				Flags:  flags,
				Action: runMode(internal.ModeMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
