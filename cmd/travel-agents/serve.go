package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bububa/travel-agents/server"
	"github.com/bububa/travel-agents/store"
)

func newServeCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if dbPath == "" {
				dbPath = cfg.Server.DBPath
			}
			st, err := store.New(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			srv := server.New(newTravelAgent(), st,
				server.WithAddr(addr),
				server.WithLogger(log),
			)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (defaults to config)")
	return cmd
}
