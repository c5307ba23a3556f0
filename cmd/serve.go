package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"db-bridge/internal/dialect"
	"db-bridge/internal/mcpserver"
	"db-bridge/internal/ops"
	"db-bridge/internal/pool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the operation catalog over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetDBConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		d, err := dialect.Get(cfg.Engine)
		if err != nil {
			return err
		}

		p, err := pool.Open(d.DriverName(), d.DSN(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name), log)
		if err != nil {
			return fmt.Errorf("failed to open pool: %w", err)
		}
		defer p.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		// A failed probe is logged, not fatal: the server stays up so the
		// operator can diagnose instead of crash-looping.
		if err := p.Ping(ctx); err != nil {
			log.Error("startup connectivity probe failed", "engine", cfg.Engine, "host", cfg.Host, "error", err)
		} else {
			log.Info("connected", "engine", cfg.Engine, "host", cfg.Host, "database", cfg.Name)
		}

		dispatcher := ops.New(log, p, d, cfg.Name)
		server, err := mcpserver.New(log, dispatcher, version)
		if err != nil {
			return err
		}
		return server.Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
