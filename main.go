package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/app"
	"github.com/Black-And-White-Club/mask-tipper/config"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "mask-tipper",
		Usage: "scoreboard service for masked singer tipping rounds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			tokenCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and event handlers",
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			obs, err := observability.Init(ctx, config.ToObsConfig(cfg))
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}
			logger := obs.Provider.Logger
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := obs.Shutdown(shutdownCtx); err != nil {
					logger.Error("Failed to flush telemetry", "error", err)
				}
			}()

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return err
			}
			defer application.Close()

			logger.InfoContext(ctx, "Starting mask-tipper", "version", config.Version)
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info("mask-tipper stopped")
			return nil
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue an API token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Required: true, Usage: "who the token is issued to"},
			&cli.StringFlag{Name: "role", Value: string(jwt.RoleHost), Usage: "host or viewer"},
			&cli.StringFlag{Name: "ttl", Usage: `lifetime such as "12h" or "next sunday at 1am"`},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			role, ok := jwt.ParseRole(c.String("role"))
			if !ok {
				return fmt.Errorf("unknown role %q", c.String("role"))
			}
			ttl, err := jwt.ParseTTL(c.String("ttl"), time.Now())
			if err != nil {
				return err
			}

			token, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL).GenerateToken(c.String("subject"), role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
