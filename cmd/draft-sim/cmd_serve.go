package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored batches over a read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			store, err := a.requireStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			server := api.NewServer(&api.Config{
				Port:           a.cfg.Server.Port,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				Logger:         a.logger,
			}, store, a.cfg.ArchetypeTable())

			if err := server.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API server running at http://localhost:%d\n", server.Port())

			<-cmd.Context().Done()
			a.logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			a.logger.Info("API server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides server.port)")

	return cmd
}
