package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/cache"
	"github.com/abhisek/certprep/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exam sessions over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		source, _, err := buildSource(ctx, st.EventRepo())
		if err != nil {
			return err
		}

		deps := server.Deps{
			Source:    source,
			Results:   st.ResultRepo(),
			Snapshots: st.SnapshotRepo(),
		}
		if cfg.Redis.URL != "" {
			rdb, err := cache.Connect(ctx, cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer rdb.Close()
			deps.Cache = cache.NewSnapshotCache(rdb, cache.DefaultTTL)
		}

		srv := server.New(server.Config{
			Addr:           cfg.Server.Addr,
			GinMode:        cfg.Server.GinMode,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			SessionTTL:     cfg.Server.SessionTTL,
			ShutdownGrace:  cfg.Server.ShutdownGrace,
		}, deps)

		log.Info().
			Str("addr", cfg.Server.Addr).
			Bool("redis", deps.Cache != nil).
			Msg("starting server")

		return srv.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
}
