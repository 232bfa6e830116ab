package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/elevate/internal/rendering"
	"github.com/jonathan/elevate/internal/types"
	"go.uber.org/zap"
)

// DefaultResumeFilename is used when the document has no full name.
const DefaultResumeFilename = "Resume.pdf"

// CoverLetterFilename is the fixed name of an exported cover letter.
const CoverLetterFilename = "Cover_Letter.txt"

// ResumeFilename returns "<full name>.pdf", or Resume.pdf when the name is empty.
// Path separators in the name are replaced so the result is always a bare file name.
func ResumeFilename(doc types.Document) string {
	name := strings.TrimSpace(doc.FullName)
	if name == "" {
		return DefaultResumeFilename
	}
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if name == "." || name == ".." {
		return DefaultResumeFilename
	}
	return name + ".pdf"
}

// Exporter writes resume PDFs and cover letters.
type Exporter struct {
	renderer PDFRenderer
	logger   *zap.Logger
}

// NewExporter creates an exporter that converts resumes with renderer.
func NewExporter(renderer PDFRenderer, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{renderer: renderer, logger: logger}
}

// ResumePDF renders view with its selected resume variant and converts it to PDF.
// view should be the technology-filtered document shown on screen.
func (e *Exporter) ResumePDF(ctx context.Context, view types.Document) ([]byte, error) {
	page, err := rendering.RenderResume(view, view.ResumeTemplate)
	if err != nil {
		return nil, &ExportError{Message: "failed to render resume", Cause: err}
	}
	pdf, err := e.renderer.RenderPDF(ctx, page)
	if err != nil {
		e.logger.Warn("resume export failed", zap.Error(err))
		return nil, &ExportError{Message: "failed to produce PDF", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &ExportError{Message: "PDF renderer returned no data"}
	}
	return pdf, nil
}

// WriteResume streams the resume PDF of view to w.
func (e *Exporter) WriteResume(ctx context.Context, w io.Writer, view types.Document) error {
	pdf, err := e.ResumePDF(ctx, view)
	if err != nil {
		return err
	}
	if _, err := w.Write(pdf); err != nil {
		return &ExportError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// ExportResume writes the resume PDF of view into dir and returns its path.
func (e *Exporter) ExportResume(ctx context.Context, view types.Document, dir string) (string, error) {
	pdf, err := e.ResumePDF(ctx, view)
	if err != nil {
		return "", err
	}
	path, err := writeFile(dir, ResumeFilename(view), pdf)
	if err != nil {
		return "", err
	}
	e.logger.Info("exported resume", zap.String("path", path), zap.Int("bytes", len(pdf)))
	return path, nil
}

// ExportCoverLetter writes text verbatim into dir as Cover_Letter.txt and
// returns its path. A blank letter is an error.
func (e *Exporter) ExportCoverLetter(text, dir string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ExportError{Message: "no cover letter to export"}
	}
	path, err := writeFile(dir, CoverLetterFilename, []byte(text))
	if err != nil {
		return "", err
	}
	e.logger.Info("exported cover letter", zap.String("path", path))
	return path, nil
}

// WriteCoverLetter streams text verbatim to w. A blank letter is an error.
func WriteCoverLetter(w io.Writer, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ExportError{Message: "no cover letter to export"}
	}
	if _, err := io.WriteString(w, text); err != nil {
		return &ExportError{Message: "failed to write cover letter", Cause: err}
	}
	return nil
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to create %s", dir), Cause: err}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return path, nil
}
