package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/session"
	"github.com/jonathan/elevate/internal/types"
	"go.uber.org/zap"
)

// DocumentResponse is the body of every document read or write.
type DocumentResponse struct {
	Version  uint64         `json:"version"`
	Document types.Document `json:"document"`
}

// EntityResponse is returned after adding an entity.
type EntityResponse struct {
	ID       string         `json:"id"`
	Document types.Document `json:"document"`
}

func (s *Server) documentResponse(w http.ResponseWriter, status int, doc types.Document) {
	s.jsonResponse(w, status, DocumentResponse{
		Version:  s.session.Store().Version(),
		Document: doc,
	})
}

// handleGetDocument returns the full document
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.documentResponse(w, http.StatusOK, s.session.Document())
}

// handlePatchDocument merges root-level fields into the document. A patch
// that would leave the document invalid is rejected and nothing changes.
func (s *Server) handlePatchDocument(w http.ResponseWriter, r *http.Request) {
	var patch document.Patch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	if patch.Skills != nil {
		skills := types.NormalizeSkills(*patch.Skills)
		patch.Skills = &skills
	}

	if err := document.UpdateField(s.session.Document(), patch).Validate(); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "document", Message: err.Error()})
		return
	}

	doc := s.session.Store().Apply(func(d types.Document) types.Document {
		return document.UpdateField(d, patch)
	})
	s.documentResponse(w, http.StatusOK, doc)
}

// handleAddEntity appends a new project, experience or education entry.
// The request body, if any, seeds the new entry's fields.
func (s *Server) handleAddEntity(w http.ResponseWriter, r *http.Request) {
	list, ok := s.parseList(w, r)
	if !ok {
		return
	}

	var add func(types.Document) (types.Document, string)
	switch list {
	case document.ListProjects:
		var seed types.Project
		if !s.decodeJSON(w, r, &seed) {
			return
		}
		add = func(d types.Document) (types.Document, string) { return document.AddProject(d, seed) }
	case document.ListExperience:
		var seed types.Experience
		if !s.decodeJSON(w, r, &seed) {
			return
		}
		add = func(d types.Document) (types.Document, string) { return document.AddExperience(d, seed) }
	case document.ListEducation:
		var seed types.Education
		if !s.decodeJSON(w, r, &seed) {
			return
		}
		add = func(d types.Document) (types.Document, string) { return document.AddEducation(d, seed) }
	}

	var id string
	doc := s.session.Store().Apply(func(d types.Document) types.Document {
		d, id = add(d)
		return d
	})

	s.logger.Debug("entity added", zap.String("list", string(list)), zap.String("id", id))
	s.jsonResponse(w, http.StatusCreated, EntityResponse{ID: id, Document: doc})
}

// handlePatchEntity merges fields into one entry of a list
func (s *Server) handlePatchEntity(w http.ResponseWriter, r *http.Request) {
	list, ok := s.parseList(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if !document.Has(s.session.Document(), list, id) {
		s.errorFromErr(w, &session.NotFoundError{List: list, ID: id})
		return
	}

	var replace func(types.Document) types.Document
	switch list {
	case document.ListProjects:
		var patch document.ProjectPatch
		if !s.decodeJSON(w, r, &patch) {
			return
		}
		replace = func(d types.Document) types.Document { return document.ReplaceProject(d, id, patch) }
	case document.ListExperience:
		var patch document.ExperiencePatch
		if !s.decodeJSON(w, r, &patch) {
			return
		}
		replace = func(d types.Document) types.Document { return document.ReplaceExperience(d, id, patch) }
	case document.ListEducation:
		var patch document.EducationPatch
		if !s.decodeJSON(w, r, &patch) {
			return
		}
		replace = func(d types.Document) types.Document { return document.ReplaceEducation(d, id, patch) }
	}

	s.documentResponse(w, http.StatusOK, s.session.Store().Apply(replace))
}

// handleRemoveEntity deletes one entry. Unknown ids are a no-op.
func (s *Server) handleRemoveEntity(w http.ResponseWriter, r *http.Request) {
	list, ok := s.parseList(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	doc := s.session.Store().Apply(func(d types.Document) types.Document {
		return document.Remove(d, list, id)
	})
	s.documentResponse(w, http.StatusOK, doc)
}

// handleUploadIcon replaces a project's icon with an uploaded image. The image
// is read from the "icon" multipart field, or from the raw body otherwise.
func (s *Server) handleUploadIcon(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !document.Has(s.session.Document(), document.ListProjects, id) {
		s.errorFromErr(w, &session.NotFoundError{List: document.ListProjects, ID: id})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, icons.MaxUploadBytes+(64<<10))

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("icon")
		if err != nil {
			s.errorFromErr(w, &ErrValidation{Field: "icon", Message: err.Error()})
			return
		}
		defer file.Close() //nolint:errcheck
		src = file
	}

	icon, err := icons.FromUpload(src, icons.MaxUploadDimension)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	doc := s.session.Store().Apply(func(d types.Document) types.Document {
		return document.ReplaceProject(d, id, document.ProjectPatch{Icon: &icon})
	})
	s.documentResponse(w, http.StatusOK, doc)
}

// handleTechnologies lists every technology tag with the current selection
func (s *Server) handleTechnologies(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{
		"technologies": document.AllTechnologies(s.session.Document()),
		"selected":     s.session.State().SelectedTechs,
	})
}

// FiltersRequest replaces or toggles the project technology filter.
type FiltersRequest struct {
	Technologies *[]string `json:"technologies,omitempty"`
	Toggle       string    `json:"toggle,omitempty"`
}

// handleSetFilters updates the project filter
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	switch {
	case req.Technologies != nil:
		s.session.SetTechnologies(*req.Technologies)
	case req.Toggle != "":
		s.session.ToggleTechnology(req.Toggle)
	default:
		s.session.ClearTechnologies()
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{
		"selected": s.session.State().SelectedTechs,
	})
}

// StatePatch updates the session view state. Nil fields are left untouched.
type StatePatch struct {
	Tab            *session.Tab     `json:"tab,omitempty"`
	Preview        *session.Preview `json:"preview,omitempty"`
	JobDescription *string          `json:"jobDescription,omitempty"`
	CareerGoal     *string          `json:"careerGoal,omitempty"`
	CoverLetter    *string          `json:"coverLetter,omitempty"`
}

// handleGetState returns the view state
func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.State())
}

// handlePatchState updates the view state
func (s *Server) handlePatchState(w http.ResponseWriter, r *http.Request) {
	var patch StatePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}

	if patch.Tab != nil {
		if !validTab(*patch.Tab) {
			s.errorFromErr(w, &ErrValidation{Field: "tab", Message: "unknown tab " + string(*patch.Tab)})
			return
		}
		s.session.SetTab(*patch.Tab)
	}
	if patch.Preview != nil {
		switch *patch.Preview {
		case session.PreviewResume, session.PreviewPortfolio, session.PreviewCoverLetter:
			s.session.SetPreview(*patch.Preview)
		default:
			s.errorFromErr(w, &ErrValidation{Field: "preview", Message: "unknown preview " + string(*patch.Preview)})
			return
		}
	}
	if patch.JobDescription != nil {
		s.session.SetJobDescription(*patch.JobDescription)
	}
	if patch.CareerGoal != nil {
		s.session.SetCareerGoal(*patch.CareerGoal)
	}
	if patch.CoverLetter != nil {
		s.session.SetCoverLetter(*patch.CoverLetter)
	}

	s.jsonResponse(w, http.StatusOK, s.session.State())
}

// handleEvents streams a "document" event with the current document, then one
// per commit until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	store := s.session.Store()
	updates := make(chan DocumentResponse, 16)
	cancel := store.Subscribe(func(doc types.Document, version uint64) {
		select {
		case updates <- DocumentResponse{Version: version, Document: doc}:
		default:
			s.logger.Debug("dropping document event for slow subscriber")
		}
	})
	defer cancel()

	if err := sse.WriteEvent(store.Version(), "document", DocumentResponse{Version: store.Version(), Document: store.Snapshot()}); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if err := sse.Ping(); err != nil {
				return
			}
		case update := <-updates:
			if err := sse.WriteEvent(update.Version, "document", update); err != nil {
				s.logger.Debug("event stream closed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) parseList(w http.ResponseWriter, r *http.Request) (document.List, bool) {
	list, err := document.ParseList(r.PathValue("list"))
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "list", Message: err.Error()})
		return "", false
	}
	return list, true
}

func validTab(t session.Tab) bool {
	for _, tab := range session.Tabs {
		if tab == t {
			return true
		}
	}
	return false
}
