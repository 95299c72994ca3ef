package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ClavisPass/ClavisPass-sub001/cmd/app/commands"
	"github.com/ClavisPass/ClavisPass-sub001/internal/app"
	"github.com/ClavisPass/ClavisPass-sub001/internal/config"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// withContentUseCase builds a container for a single file command and tears it down
// afterwards. File commands never touch vault storage.
func withContentUseCase(
	ctx context.Context,
	run func(uc vaultUseCase.ContentUseCase, container *app.Container) error,
) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()

	uc, err := container.ContentUseCase()
	if err != nil {
		return err
	}
	return run(uc, container)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-vault",
			Usage: "Encrypt a plaintext vault document as a v1 vault file (password on stdin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "in",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Path to the plaintext vault JSON",
				},
				&cli.StringFlag{
					Name:     "out",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Path of the encrypted vault file to write",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContentUseCase(ctx, func(uc vaultUseCase.ContentUseCase, container *app.Container) error {
					return commands.RunEncryptVault(
						ctx,
						uc,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("in"),
						cmd.String("out"),
					)
				})
			},
		},
		{
			Name:  "decrypt-vault",
			Usage: "Decrypt a vault file and print its contents (password on stdin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "in",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Path to the vault file",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContentUseCase(ctx, func(uc vaultUseCase.ContentUseCase, container *app.Container) error {
					return commands.RunDecryptVault(
						ctx,
						uc,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("in"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "migrate-vault",
			Usage: "Upgrade a legacy vault file to the v1 format in place (password on stdin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Path to the vault file",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContentUseCase(ctx, func(uc vaultUseCase.ContentUseCase, container *app.Container) error {
					return commands.RunMigrateVault(
						ctx,
						uc,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("file"),
					)
				})
			},
		},
		{
			Name:  "inspect-vault",
			Usage: "Show the envelope format and KDF parameters of a vault file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "in",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Path to the vault file",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContentUseCase(ctx, func(uc vaultUseCase.ContentUseCase, container *app.Container) error {
					return commands.RunInspectVault(
						ctx,
						uc,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("in"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "rekey-vault",
			Usage: "Change the master password of a vault file (current and new password on stdin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Required: true,
					Usage:    "Path to the vault file",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContentUseCase(ctx, func(uc vaultUseCase.ContentUseCase, container *app.Container) error {
					return commands.RunRekeyVault(
						ctx,
						uc,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("file"),
					)
				})
			},
		},
	}
}
