package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the encode and decode endpoints over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if cmd.Flags().Changed("address") {
			cfg.Server.Address = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, newCodec(cfg, nil), log.Logger)
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
		log.Info().Msg("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "address", "a", ":8080", "Listen address (overrides the config file)")
}
