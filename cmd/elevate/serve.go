package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/elevate/internal/config"
	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/llm"
	"github.com/jonathan/elevate/internal/observability"
	"github.com/jonathan/elevate/internal/server"
	"github.com/jonathan/elevate/internal/server/ratelimit"
	"github.com/jonathan/elevate/internal/session"
	"github.com/jonathan/elevate/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port    int
		docPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local editor server",
		Long:  "Start an HTTP server on the loopback interface that serves the document API, live previews, generation and export for one session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
			}
			if docPath != "" {
				cfg.Document = docPath
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVarP(&docPath, "doc", "d", "", "Document JSON to open (starts empty if unset)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	logger := observability.NewLogger(cfg.Verbose)
	defer logger.Sync() //nolint:errcheck

	doc := types.NewDocument()
	if cfg.Document != "" {
		loaded, err := document.Load(cfg.Document)
		if err != nil {
			return fmt.Errorf("failed to open document: %w", err)
		}
		doc = loaded
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	sess := session.New(doc, generation.NewService(client), logger)
	exporter := export.NewExporter(export.NewChromeRenderer(cfg.ExportOptions(), logger), logger)

	srv := server.New(server.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
		RateLimit:  ratelimit.GenerationConfig(cfg.GenerationLimit, time.Duration(cfg.GenerationWindow), cfg.GenerationBurst),
	}, sess, exporter, logger)

	logger.Info("editor ready",
		zap.String("addr", cfg.Addr()),
		zap.String("document", cfg.Document),
		zap.String("model", client.GetModel(llm.TierStandard)))
	return srv.Start(ctx)
}
