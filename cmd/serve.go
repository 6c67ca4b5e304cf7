package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"chordscope/config"
	"chordscope/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chord recognition over HTTP",
	Long: `Serves chord recognition over HTTP.

  POST /recognize  {"notes":[60,64,67],"octaves":true}
  GET  /templates
  GET  /health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return server.ListenAndServe(ctx, addr, server.NewHandler(cfg.Server.AllowedOrigins))
	},
}
