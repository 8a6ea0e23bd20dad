package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-requirements-extractor/internal/server"
	"github.com/jonathan/job-requirements-extractor/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /analyze, the stored analysis history
(when DATABASE_URL is set) and GET /health.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, appOptions{connectDB: true})
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	var store server.Store
	if a.database != nil {
		store = a.database
	}

	srv := server.New(server.Config{
		Port:          port,
		MaxTextLength: a.cfg.MaxTextLength,
		RateLimit:     ratelimit.LoadConfig(),
		Logger:        a.logger,
	}, a.service, store)

	return srv.Start(ctx)
}
