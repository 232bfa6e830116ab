// Package session holds one user's working state: the document store plus the
// ephemeral view state around it, and runs generation requests against it.
//
// Generation calls may overlap freely. Each one reads the document when it
// starts and commits its result through the store when it finishes; a result
// that arrives after a manual edit of the same field overwrites it.
package session

import (
	"context"
	"sync"

	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/types"
	"go.uber.org/zap"
)

// Generator is the generation service as seen by a session.
type Generator interface {
	GenerateSummary(ctx context.Context, in generation.SummaryInput) (string, error)
	RefineBullet(ctx context.Context, text string) (string, error)
	GenerateCoverLetter(ctx context.Context, doc types.Document, jobDescription string) (string, error)
	AnalyzeSkillGaps(ctx context.Context, skills []string, careerGoal string) ([]types.SkillGap, error)
	ScoreMatch(ctx context.Context, doc types.Document, jobDescription string) (types.MatchResult, error)
}

// Tab is the active editor section.
type Tab string

// Editor tabs.
const (
	TabPersonal    Tab = "personal"
	TabEducation   Tab = "education"
	TabExperience  Tab = "experience"
	TabProjects    Tab = "projects"
	TabSkills      Tab = "skills"
	TabSummary     Tab = "summary"
	TabAnalysis    Tab = "analysis"
	TabCoverLetter Tab = "cover-letter"
)

// Tabs lists the editor tabs in display order.
var Tabs = []Tab{TabPersonal, TabEducation, TabExperience, TabProjects, TabSkills, TabSummary, TabAnalysis, TabCoverLetter}

// Preview is the active preview pane.
type Preview string

// Preview panes.
const (
	PreviewResume      Preview = "resume"
	PreviewPortfolio   Preview = "portfolio"
	PreviewCoverLetter Preview = "cover-letter"
)

// Task identifies a kind of generation request for the in-flight indicators.
type Task string

// Generation tasks.
const (
	TaskSummary     Task = "summary"
	TaskRefine      Task = "refine"
	TaskApplication Task = "application"
	TaskSkills      Task = "skills"
)

// State is a copy of the session's view state.
type State struct {
	Tab            Tab                `json:"tab"`
	Preview        Preview            `json:"preview"`
	SelectedTechs  []string           `json:"selectedTechs"`
	JobDescription string             `json:"jobDescription"`
	CareerGoal     string             `json:"careerGoal"`
	CoverLetter    string             `json:"coverLetter"`
	SkillGaps      []types.SkillGap   `json:"skillGaps"`
	Match          *types.MatchResult `json:"match,omitempty"`
	Generating     []Task             `json:"generating"`
}

// Session is safe for concurrent use.
type Session struct {
	store  *document.Store
	gen    Generator
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	inflight map[Task]int
}

// New creates a session around doc. A nil logger disables logging.
func New(doc types.Document, gen Generator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:  document.NewStore(doc),
		gen:    gen,
		logger: logger,
		state: State{
			Tab:           TabPersonal,
			Preview:       PreviewResume,
			SelectedTechs: []string{},
			SkillGaps:     []types.SkillGap{},
		},
		inflight: make(map[Task]int),
	}
}

// Store returns the document store. Manual edits go straight through it.
func (s *Session) Store() *document.Store {
	return s.store
}

// Document returns the current document.
func (s *Session) Document() types.Document {
	return s.store.Snapshot()
}

// View returns the document as previewed and exported: projects narrowed to
// the selected technologies.
func (s *Session) View() types.Document {
	s.mu.Lock()
	selected := append([]string(nil), s.state.SelectedTechs...)
	s.mu.Unlock()
	return document.FilteredView(s.store.Snapshot(), selected)
}

// State returns a copy of the view state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.SelectedTechs = append([]string{}, s.state.SelectedTechs...)
	st.SkillGaps = append([]types.SkillGap{}, s.state.SkillGaps...)
	if s.state.Match != nil {
		m := *s.state.Match
		m.Suggestions = append([]string{}, m.Suggestions...)
		st.Match = &m
	}
	st.Generating = make([]Task, 0, len(s.inflight))
	for _, t := range []Task{TaskSummary, TaskRefine, TaskApplication, TaskSkills} {
		if s.inflight[t] > 0 {
			st.Generating = append(st.Generating, t)
		}
	}
	return st
}

// IsGenerating reports whether a request of the given kind is in flight.
func (s *Session) IsGenerating(t Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[t] > 0
}

// SetTab switches the active editor tab.
func (s *Session) SetTab(t Tab) {
	s.update(func(st *State) { st.Tab = t })
}

// SetPreview switches the active preview pane.
func (s *Session) SetPreview(p Preview) {
	s.update(func(st *State) { st.Preview = p })
}

// ToggleTechnology adds or removes tag from the project filter.
func (s *Session) ToggleTechnology(tag string) []string {
	var out []string
	s.update(func(st *State) {
		st.SelectedTechs = document.ToggleTechnology(st.SelectedTechs, tag)
		out = append([]string{}, st.SelectedTechs...)
	})
	return out
}

// SetTechnologies replaces the project filter.
func (s *Session) SetTechnologies(tags []string) {
	s.update(func(st *State) { st.SelectedTechs = append([]string{}, tags...) })
}

// ClearTechnologies empties the project filter, showing every project.
func (s *Session) ClearTechnologies() {
	s.SetTechnologies(nil)
}

// SetJobDescription stores the job description used for applications.
func (s *Session) SetJobDescription(text string) {
	s.update(func(st *State) { st.JobDescription = text })
}

// SetCareerGoal stores the career goal used for skill-gap analysis.
func (s *Session) SetCareerGoal(text string) {
	s.update(func(st *State) { st.CareerGoal = text })
}

// SetCoverLetter replaces the cover letter text, e.g. after a manual edit.
func (s *Session) SetCoverLetter(text string) {
	s.update(func(st *State) { st.CoverLetter = text })
}

// CoverLetter returns the current cover letter text.
func (s *Session) CoverLetter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CoverLetter
}

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

// begin marks a task in flight and returns the func that clears it.
func (s *Session) begin(t Task) func() {
	s.mu.Lock()
	s.inflight[t]++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inflight[t]--
		s.mu.Unlock()
	}
}
