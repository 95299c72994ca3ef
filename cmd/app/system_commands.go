package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/ClavisPass/ClavisPass-sub001/cmd/app/commands"
	"github.com/ClavisPass/ClavisPass-sub001/internal/app"
	"github.com/ClavisPass/ClavisPass-sub001/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the SQL vault storage",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if !cfg.UsesDatabase() {
					return errors.New("migrate requires VAULT_STORAGE=postgres or VAULT_STORAGE=mysql")
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
	}
}
