package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/rendering"
	"github.com/jonathan/elevate/internal/types"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	docPath  string
	kind     string
	template string
	accent   string
	font     string
	tech     string
	out      string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a resume or portfolio page as HTML",
		Long:  "Renders the document in one resume or portfolio variant and writes a self-contained HTML page.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			doc, err := loadDocument(opts.docPath, cfg)
			if err != nil {
				return err
			}
			return runRender(cmd.OutOrStdout(), doc, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.docPath, "doc", "d", "", "Path to document JSON")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "resume", "Page kind: resume or portfolio")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Variant name (defaults to the document's choice)")
	cmd.Flags().StringVar(&opts.accent, "accent", "", "Portfolio accent colour, e.g. #3b82f6")
	cmd.Flags().StringVar(&opts.font, "font", "", "Portfolio font style: sans, serif, mono or display")
	cmd.Flags().StringVar(&opts.tech, "tech", "", "Comma-separated technologies; only matching projects are shown")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output HTML file (stdout if unset)")
	return cmd
}

func runRender(stdout io.Writer, doc types.Document, opts *renderOptions) error {
	view := document.FilteredView(doc, types.ParseSkills(opts.tech))

	var (
		page string
		err  error
	)
	switch opts.kind {
	case "resume":
		variant := view.ResumeTemplate
		if opts.template != "" {
			variant = types.ResumeTemplate(opts.template)
		}
		page, err = rendering.RenderResume(view, variant)
	case "portfolio":
		variant := view.PortfolioTemplate
		if opts.template != "" {
			variant = types.PortfolioTemplate(opts.template)
		}
		accent := view.AccentColor
		if opts.accent != "" {
			accent = opts.accent
		}
		font := view.FontStyle
		if opts.font != "" {
			font = types.FontStyle(opts.font)
		}
		page, err = rendering.RenderPortfolio(view, variant, accent, font)
	default:
		return fmt.Errorf("unknown kind %q: must be resume or portfolio", opts.kind)
	}
	if err != nil {
		return err
	}

	if opts.out == "" || opts.out == "-" {
		_, err := io.WriteString(stdout, page)
		return err
	}

	if dir := filepath.Dir(opts.out); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.out, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stdout, "Rendered %s to %s\n", opts.kind, opts.out) //nolint:errcheck
	return nil
}
