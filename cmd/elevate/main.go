// Package main provides the elevate command: a local resume and portfolio
// builder with a browser editor, HTML previews, PDF export and AI-assisted
// writing.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/elevate/internal/config"
	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/observability"
	"github.com/jonathan/elevate/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "elevate",
		Short:         "Student resume and portfolio builder",
		Long:          "Elevate edits one student's resume and portfolio, renders them in several visual variants, exports PDFs and drafts text with Gemini.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newExportCmd(opts),
		newValidateCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file, if any, fills defaults, overlays the
// environment and validates the result.
func (o *rootOptions) loadConfig() (config.Config, error) {
	file := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}

	cfg := file.MergeWithDefaults(config.Defaults())
	if o.verbose {
		cfg.Verbose = true
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// logger returns a debug logger in verbose mode and a no-op logger otherwise,
// so command output stays clean.
func (o *rootOptions) logger(cfg config.Config) *zap.Logger {
	if !cfg.Verbose {
		return zap.NewNop()
	}
	return observability.NewLogger(true)
}

// loadDocument reads the document named by path, falling back to the
// configured document.
func loadDocument(path string, cfg config.Config) (types.Document, error) {
	if path == "" {
		path = cfg.Document
	}
	if path == "" {
		return types.Document{}, fmt.Errorf("no document given: pass --doc or set \"document\" in the config file")
	}
	return document.Load(path)
}
