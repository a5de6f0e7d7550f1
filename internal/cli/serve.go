package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/server"
)

func newServeCmd(state *rootState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve the dashboard HTTP API",
		Long: `Serve the HTTP API until interrupted. Files given as arguments are ingested
before the server starts.`,
		Example: `  scopezero serve
  scopezero serve --addr 127.0.0.1:9090 shipments.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results, err := state.app.IngestFiles(ctx, args)
			for i, r := range results {
				printCommit(cmd, args[i], r)
			}
			if err != nil {
				return err
			}

			cfg := state.app.Config
			if addr == "" {
				addr = cfg.Server.Addr
			}
			svc := server.New(
				state.app.Store, state.app.Ingestor, state.app.Factors, state.app.Metrics, logger,
				server.Options{
					CORSOrigins: cfg.Server.CORSOrigins,
					MaxUploadMB: cfg.Ingest.MaxUploadMB,
					ReadTimeout: cfg.Server.ReadTimeout,
				},
			)
			cmd.PrintErrf("Serving on %s\n", addr)
			return svc.Serve(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
