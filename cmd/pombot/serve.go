package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		cfg.Server.Port = p
	}

	a, loadErr, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if loadErr != nil {
		if cfg.Server.RequireCatalog {
			return fmt.Errorf("initial catalog load: %w", loadErr)
		}
		log.WithError(loadErr).Warn("serving without a catalog until a reload succeeds", nil)
	}

	srv := server.New(a.resolver, a.gateway, server.Options{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		AllowOrigin:     cfg.Server.AllowOrigin,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Provider:        cfg.LLM.Provider,
		Model:           cfg.LLM.Model,
		Document:        cfg.Catalog.Path,
	}, log.With(map[string]interface{}{"component": "http"}))
	return srv.Run(ctx)
}
