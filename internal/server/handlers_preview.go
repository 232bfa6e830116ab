package server

import (
	"net/http"

	"github.com/jonathan/elevate/internal/rendering"
	"github.com/jonathan/elevate/internal/types"
)

// handlePreviewResume renders the filtered document as a resume. The
// "template" query parameter overrides the document's chosen variant.
func (s *Server) handlePreviewResume(w http.ResponseWriter, r *http.Request) {
	view := s.session.View()
	variant := view.ResumeTemplate
	if q := r.URL.Query().Get("template"); q != "" {
		variant = types.ResumeTemplate(q)
	}

	page, err := rendering.RenderResume(view, variant)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.htmlResponse(w, page)
}

// handlePreviewPortfolio renders the filtered document as a portfolio.
// "template", "accent" and "font" override the document's settings.
func (s *Server) handlePreviewPortfolio(w http.ResponseWriter, r *http.Request) {
	view := s.session.View()
	q := r.URL.Query()

	variant := view.PortfolioTemplate
	if t := q.Get("template"); t != "" {
		variant = types.PortfolioTemplate(t)
	}
	accent := view.AccentColor
	if a := q.Get("accent"); a != "" {
		accent = a
	}
	font := view.FontStyle
	if f := q.Get("font"); f != "" {
		font = types.FontStyle(f)
	}

	page, err := rendering.RenderPortfolio(view, variant, accent, font)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.htmlResponse(w, page)
}

// handlePreviewCoverLetter renders the current cover letter
func (s *Server) handlePreviewCoverLetter(w http.ResponseWriter, _ *http.Request) {
	page, err := rendering.RenderCoverLetter(s.session.CoverLetter())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.htmlResponse(w, page)
}
