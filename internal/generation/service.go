// Package generation turns document data into model prompts and interprets the
// responses: summaries, bullet refinement, cover letters, skill-gap analysis
// and job-match scoring. Each call issues exactly one request and is never retried.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/llm"
	"github.com/jonathan/elevate/internal/prompts"
	"github.com/jonathan/elevate/internal/schemas"
	"github.com/jonathan/elevate/internal/types"
)

// Service issues generation requests against an llm.Client.
type Service struct {
	client    llm.Client
	sanitizer *textSanitizer
	tier      llm.ModelTier
}

// Option configures a Service.
type Option func(*Service)

// WithTier selects the model tier used for every request.
func WithTier(tier llm.ModelTier) Option {
	return func(s *Service) { s.tier = tier }
}

// NewService creates a generation service. The client is not closed by the service.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client:    client,
		sanitizer: newTextSanitizer(),
		tier:      llm.TierStandard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummaryInput is the read-only slice of a document used for summaries.
type SummaryInput struct {
	Profile            types.Profile
	Skills             []string
	ProjectTitles      []string
	EducationSummaries []string
}

// SummaryInputFrom extracts the summary input from doc.
func SummaryInputFrom(doc types.Document) SummaryInput {
	return SummaryInput{
		Profile:            doc.Profile(),
		Skills:             doc.Skills,
		ProjectTitles:      doc.ProjectTitles(),
		EducationSummaries: doc.EducationSummaries(),
	}
}

// GenerateSummary writes a short professional summary.
func (s *Service) GenerateSummary(ctx context.Context, in SummaryInput) (string, error) {
	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeySummary, map[string]string{
		"FullName":  in.Profile.FullName,
		"Skills":    types.JoinList(in.Skills),
		"Projects":  types.JoinList(in.ProjectTitles),
		"Education": types.JoinList(in.EducationSummaries),
	})
	if err != nil {
		return "", &GenerationError{Operation: OpSummary, Cause: err}
	}
	return s.generateText(ctx, OpSummary, prompt, s.sanitizer.Clean)
}

// RefineBullet rewrites one description into a stronger, action-oriented form.
// Blank text is rejected before any request is made.
func (s *Service) RefineBullet(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &EmptyInputError{Field: "text"}
	}
	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeyRefineBullet, map[string]string{
		"Text": text,
	})
	if err != nil {
		return "", &GenerationError{Operation: OpRefine, Cause: err}
	}
	return s.generateText(ctx, OpRefine, prompt, s.sanitizer.CleanQuoted)
}

// GenerateCoverLetter writes a cover letter for doc targeting jobDescription.
func (s *Service) GenerateCoverLetter(ctx context.Context, doc types.Document, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", &EmptyInputError{Field: "job description"}
	}
	docJSON, err := promptDocument(doc)
	if err != nil {
		return "", &GenerationError{Operation: OpCoverLetter, Cause: err}
	}
	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeyCoverLetter, map[string]string{
		"Document":       docJSON,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return "", &GenerationError{Operation: OpCoverLetter, Cause: err}
	}
	return s.generateText(ctx, OpCoverLetter, prompt, s.sanitizer.Clean)
}

// AnalyzeSkillGaps suggests skills missing for careerGoal. The model is asked
// for three to five entries but any number, including none, is accepted.
func (s *Service) AnalyzeSkillGaps(ctx context.Context, skills []string, careerGoal string) ([]types.SkillGap, error) {
	if strings.TrimSpace(careerGoal) == "" {
		return nil, &EmptyInputError{Field: "career goal"}
	}
	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeySkillGaps, map[string]string{
		"Skills":     types.JoinList(skills),
		"CareerGoal": careerGoal,
	})
	if err != nil {
		return nil, &GenerationError{Operation: OpSkillGaps, Cause: err}
	}

	var raw []types.SkillGap
	if err := s.generateJSON(ctx, OpSkillGaps, prompt, schemas.SkillGaps, &raw); err != nil {
		return nil, err
	}

	gaps := make([]types.SkillGap, 0, len(raw))
	for _, g := range raw {
		skill := s.sanitizer.Clean(g.Skill)
		if skill == "" {
			continue
		}
		gaps = append(gaps, types.SkillGap{Skill: skill, Reason: s.sanitizer.Clean(g.Reason)})
	}
	return gaps, nil
}

// matchResponse mirrors match_score.schema.json.
type matchResponse struct {
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// ScoreMatch rates doc against jobDescription on a 0-100 scale with
// suggestions for improvement. Out-of-range scores are clamped.
func (s *Service) ScoreMatch(ctx context.Context, doc types.Document, jobDescription string) (types.MatchResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return types.MatchResult{}, &EmptyInputError{Field: "job description"}
	}
	docJSON, err := promptDocument(doc)
	if err != nil {
		return types.MatchResult{}, &GenerationError{Operation: OpMatchScore, Cause: err}
	}
	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeyMatchScore, map[string]string{
		"Document":       docJSON,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return types.MatchResult{}, &GenerationError{Operation: OpMatchScore, Cause: err}
	}

	var raw matchResponse
	if err := s.generateJSON(ctx, OpMatchScore, prompt, schemas.MatchScore, &raw); err != nil {
		return types.MatchResult{}, err
	}

	result := types.MatchResult{
		Score:       ClampScore(raw.Score),
		Suggestions: make([]string, 0, len(raw.Suggestions)),
	}
	for _, sg := range raw.Suggestions {
		if sg = s.sanitizer.Clean(sg); sg != "" {
			result.Suggestions = append(result.Suggestions, sg)
		}
	}
	return result, nil
}

// ClampScore rounds score to the nearest integer within 0-100.
func ClampScore(score float64) int {
	switch {
	case math.IsNaN(score) || score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return int(math.Round(score))
	}
}

func (s *Service) generateText(ctx context.Context, op Operation, prompt string, clean func(string) string) (string, error) {
	text, err := s.client.GenerateContent(ctx, prompt, s.tier)
	if err != nil {
		return "", &GenerationError{Operation: op, Cause: &APICallError{Message: "failed to generate content from LLM", Cause: err}}
	}
	text = clean(text)
	if text == "" {
		return "", &GenerationError{Operation: op, Cause: &ParseError{Message: "model returned no text"}}
	}
	return text, nil
}

func (s *Service) generateJSON(ctx context.Context, op Operation, prompt, schema string, out any) error {
	text, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return &GenerationError{Operation: op, Cause: &APICallError{Message: "failed to generate JSON from LLM", Cause: err}}
	}
	text = llm.CleanJSONBlock(text)

	if err := schemas.ValidateNamed(schema, text); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return &GenerationError{Operation: op, Cause: ve}
		}
		return &GenerationError{Operation: op, Cause: &ParseError{Message: "response is not valid JSON", Cause: err}}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &GenerationError{Operation: op, Cause: &ParseError{Message: "failed to parse JSON response", Cause: err}}
	}
	return nil
}

// promptDocument serialises doc for inclusion in a prompt. Embedded image
// icons carry no useful text and are dropped to keep the prompt small.
func promptDocument(doc types.Document) (string, error) {
	projects := make([]types.Project, len(doc.Projects))
	for i, p := range doc.Projects {
		if p.Icon.Kind == icons.KindImage && strings.HasPrefix(p.Icon.Value, "data:") {
			p.Icon = icons.Icon{}
		}
		projects[i] = p
	}
	doc.Projects = projects

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
