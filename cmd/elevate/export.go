package main

import (
	"fmt"
	"os"

	"github.com/jonathan/elevate/internal/config"
	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newPDFRenderer builds the renderer used by the export command.
var newPDFRenderer = func(cfg config.Config, logger *zap.Logger) export.PDFRenderer {
	return export.NewChromeRenderer(cfg.ExportOptions(), logger)
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		docPath    string
		out        string
		tech       string
		letterPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the resume as PDF",
		Long: `Renders the resume in the document's chosen variant and converts it to a
letter-size PDF with headless Chrome. Use --out - to write the PDF to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			doc, err := loadDocument(docPath, cfg)
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.ExportDir
			}

			logger := root.logger(cfg)
			exporter := export.NewExporter(newPDFRenderer(cfg, logger), logger)
			view := document.FilteredView(doc, types.ParseSkills(tech))

			if out == "-" {
				return exporter.WriteResume(cmd.Context(), cmd.OutOrStdout(), view)
			}

			path, err := exporter.ExportResume(cmd.Context(), view, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path) //nolint:errcheck

			if letterPath != "" {
				text, err := os.ReadFile(letterPath)
				if err != nil {
					return fmt.Errorf("failed to read cover letter: %w", err)
				}
				path, err := exporter.ExportCoverLetter(string(text), out)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&docPath, "doc", "d", "", "Path to document JSON")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory, or - for stdout (defaults to export_dir)")
	cmd.Flags().StringVar(&tech, "tech", "", "Comma-separated technologies; only matching projects are exported")
	cmd.Flags().StringVar(&letterPath, "letter", "", "Cover letter text file to export alongside the resume")
	return cmd
}
