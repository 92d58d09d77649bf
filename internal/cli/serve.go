package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowkit/flowkit/internal/server"
)

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graph storage HTTP API",
		Long: `Run the graph storage HTTP API.

Stores named graph definitions and serves exports (json, dot, yuml, svg).
The store backend (memory or mongo) and artifact cache backend are taken
from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			c, err := openCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer c.Close()

			srv := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: server.New(st, c, logger).Handler(),
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving", "addr", cfg.Server.Addr, "store", cfg.Store.Backend)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
