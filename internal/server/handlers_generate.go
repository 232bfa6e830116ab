package server

import (
	"net/http"

	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/fetch"
	"github.com/jonathan/elevate/internal/types"
)

// TextResponse carries one generated text.
type TextResponse struct {
	Text     string         `json:"text"`
	Document types.Document `json:"document"`
}

// ApplicationRequest is the body of POST /generate/application.
// When JobURL is set the description is read from that posting instead.
type ApplicationRequest struct {
	JobDescription string `json:"jobDescription"`
	JobURL         string `json:"jobUrl,omitempty"`
}

// ApplicationResponse reports both halves of an application request.
// A failed half carries its error message instead of a result.
type ApplicationResponse struct {
	CoverLetter      string             `json:"coverLetter,omitempty"`
	CoverLetterError string             `json:"coverLetterError,omitempty"`
	Match            *types.MatchResult `json:"match,omitempty"`
	MatchError       string             `json:"matchError,omitempty"`
}

// SkillsRequest is the body of POST /generate/skills.
type SkillsRequest struct {
	CareerGoal string `json:"careerGoal"`
}

// handleGenerateSummary writes a new professional summary
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.session.GenerateSummary(r.Context())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: summary, Document: s.session.Document()})
}

// handleRefine rewrites the description of one experience entry or project
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	list, ok := s.parseList(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var (
		text string
		err  error
	)
	switch list {
	case document.ListExperience:
		text, err = s.session.RefineExperience(r.Context(), id)
	case document.ListProjects:
		text, err = s.session.RefineProject(r.Context(), id)
	default:
		s.errorFromErr(w, &ErrValidation{Field: "list", Message: "only experience and projects can be refined"})
		return
	}
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: text, Document: s.session.Document()})
}

// handleGenerateApplication produces a cover letter and a match score for a
// job description. It succeeds when at least one half does.
func (s *Server) handleGenerateApplication(w http.ResponseWriter, r *http.Request) {
	var req ApplicationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.JobURL != "" {
		jd, err := fetch.JobDescription(r.Context(), req.JobURL, nil)
		if err != nil {
			s.errorFromErr(w, err)
			return
		}
		req.JobDescription = jd
	}

	res := s.session.GenerateApplication(r.Context(), req.JobDescription)
	if res.CoverLetterErr != nil && res.MatchErr != nil {
		s.errorFromErr(w, res.Err())
		return
	}

	resp := ApplicationResponse{CoverLetter: res.CoverLetter, Match: res.Match}
	if res.CoverLetterErr != nil {
		resp.CoverLetterError = res.CoverLetterErr.Error()
	}
	if res.MatchErr != nil {
		resp.MatchError = res.MatchErr.Error()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeSkills runs a skill-gap analysis against a career goal
func (s *Server) handleAnalyzeSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	gaps, err := s.session.AnalyzeSkills(r.Context(), req.CareerGoal)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]types.SkillGap{"gaps": gaps})
}
