package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/elevate/internal/export"
	"go.uber.org/zap"
)

// handleExportResume renders the filtered document to PDF and returns it as a download
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	view := s.session.View()

	pdf, err := s.exporter.ResumePDF(r.Context(), view)
	if err != nil {
		s.logger.Error("resume export failed", zap.Error(err))
		s.errorFromErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(export.ResumeFilename(view)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Warn("error writing pdf", zap.Error(err))
	}
}

// handleExportCoverLetter returns the cover letter as a plain text download
func (s *Server) handleExportCoverLetter(w http.ResponseWriter, _ *http.Request) {
	text := s.session.CoverLetter()
	if strings.TrimSpace(text) == "" {
		s.errorResponse(w, http.StatusNotFound, "no cover letter to export")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(export.CoverLetterFilename))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCoverLetter(w, text); err != nil {
		s.logger.Warn("error writing cover letter", zap.Error(err))
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
