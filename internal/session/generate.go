package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NotFoundError is returned when a refine request names an entity that does not exist.
type NotFoundError struct {
	List document.List
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s entry with id %q", e.List, e.ID)
}

// GenerateSummary writes a new professional summary into the document.
func (s *Session) GenerateSummary(ctx context.Context) (string, error) {
	defer s.begin(TaskSummary)()

	in := generation.SummaryInputFrom(s.store.Snapshot())
	summary, err := s.gen.GenerateSummary(ctx, in)
	if err != nil {
		s.logFailure(TaskSummary, err)
		return "", err
	}

	s.store.Apply(func(d types.Document) types.Document {
		return document.UpdateField(d, document.Patch{Summary: &summary})
	})
	s.logger.Info("summary generated", zap.Int("length", len(summary)))
	return summary, nil
}

// RefineExperience rewrites the description of one experience entry. The
// description is read when the request starts; the result replaces whatever
// the field holds when it returns. If the entry was removed meanwhile the
// result is dropped.
func (s *Session) RefineExperience(ctx context.Context, id string) (string, error) {
	exp, ok := document.FindExperience(s.store.Snapshot(), id)
	if !ok {
		return "", &NotFoundError{List: document.ListExperience, ID: id}
	}
	return s.refine(ctx, document.ListExperience, id, exp.Description, func(d types.Document, text string) types.Document {
		return document.ReplaceExperience(d, id, document.ExperiencePatch{Description: &text})
	})
}

// RefineProject rewrites the description of one project.
func (s *Session) RefineProject(ctx context.Context, id string) (string, error) {
	proj, ok := document.FindProject(s.store.Snapshot(), id)
	if !ok {
		return "", &NotFoundError{List: document.ListProjects, ID: id}
	}
	return s.refine(ctx, document.ListProjects, id, proj.Description, func(d types.Document, text string) types.Document {
		return document.ReplaceProject(d, id, document.ProjectPatch{Description: &text})
	})
}

func (s *Session) refine(ctx context.Context, list document.List, id, text string, apply func(types.Document, string) types.Document) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &generation.EmptyInputError{Field: "description"}
	}
	defer s.begin(TaskRefine)()

	refined, err := s.gen.RefineBullet(ctx, text)
	if err != nil {
		s.logFailure(TaskRefine, err, zap.String("list", string(list)), zap.String("id", id))
		return "", err
	}

	s.store.Apply(func(d types.Document) types.Document { return apply(d, refined) })
	return refined, nil
}

// ApplicationResult reports the two halves of an application request
// independently; either may have failed while the other succeeded.
type ApplicationResult struct {
	CoverLetter    string
	CoverLetterErr error
	Match          *types.MatchResult
	MatchErr       error
}

// Err returns the first failure, if any.
func (r ApplicationResult) Err() error {
	if r.CoverLetterErr != nil {
		return r.CoverLetterErr
	}
	return r.MatchErr
}

// GenerateApplication issues the cover letter and match score requests
// concurrently for jobDescription. Neither request cancels the other; each
// successful result is stored regardless of how the other one ends.
func (s *Session) GenerateApplication(ctx context.Context, jobDescription string) ApplicationResult {
	s.SetJobDescription(jobDescription)
	if strings.TrimSpace(jobDescription) == "" {
		err := &generation.EmptyInputError{Field: "job description"}
		return ApplicationResult{CoverLetterErr: err, MatchErr: err}
	}
	defer s.begin(TaskApplication)()

	doc := s.store.Snapshot()
	var res ApplicationResult

	var g errgroup.Group
	g.Go(func() error {
		letter, err := s.gen.GenerateCoverLetter(ctx, doc, jobDescription)
		if err != nil {
			s.logFailure(TaskApplication, err, zap.String("part", "cover-letter"))
			res.CoverLetterErr = err
			return err
		}
		s.SetCoverLetter(letter)
		res.CoverLetter = letter
		return nil
	})
	g.Go(func() error {
		match, err := s.gen.ScoreMatch(ctx, doc, jobDescription)
		if err != nil {
			s.logFailure(TaskApplication, err, zap.String("part", "match-score"))
			res.MatchErr = err
			return err
		}
		s.update(func(st *State) { st.Match = &match })
		res.Match = &match
		return nil
	})
	// Without a shared context a failed half never stops the other; Wait
	// returns nil only when both succeeded.
	if err := g.Wait(); err == nil {
		s.logger.Info("application generated", zap.Int("score", res.Match.Score))
	}
	return res
}

// AnalyzeSkills runs a skill-gap analysis of the current skills against goal.
func (s *Session) AnalyzeSkills(ctx context.Context, goal string) ([]types.SkillGap, error) {
	s.SetCareerGoal(goal)
	defer s.begin(TaskSkills)()

	gaps, err := s.gen.AnalyzeSkillGaps(ctx, s.store.Snapshot().Skills, goal)
	if err != nil {
		s.logFailure(TaskSkills, err)
		return nil, err
	}
	s.update(func(st *State) { st.SkillGaps = gaps })
	return gaps, nil
}

func (s *Session) logFailure(t Task, err error, fields ...zap.Field) {
	if generation.IsEmptyInput(err) {
		return
	}
	s.logger.Warn("generation failed", append(fields, zap.String("task", string(t)), zap.Error(err))...)
}
