package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/elevate/internal/icons"
	"github.com/jonathan/elevate/internal/llm"
	"github.com/jonathan/elevate/internal/llm/llmtest"
	"github.com/jonathan/elevate/internal/schemas"
	"github.com/jonathan/elevate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textClient(reply string, err error) *llmtest.MockClient {
	return &llmtest.MockClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return reply, err
		},
	}
}

func jsonClient(reply string) *llmtest.MockClient {
	return &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return reply, nil
		},
	}
}

func sampleDocument() types.Document {
	doc := types.NewDocument()
	doc.FullName = "Jane Doe"
	doc.Skills = []string{"Go", "React"}
	doc.Projects = []types.Project{{ID: "p1", Title: "Portfolio Site", Technologies: []string{"React"}, Icon: icons.Builtin("Globe")}}
	doc.Education = []types.Education{{ID: "e1", School: "State", Degree: "BSc", Field: "Computer Science"}}
	return doc
}

func TestGenerateSummary(t *testing.T) {
	client := textClient("  Jane is a <b>driven</b> engineer &amp; builder.  ", nil)
	svc := NewService(client)

	summary, err := svc.GenerateSummary(context.Background(), SummaryInputFrom(sampleDocument()))
	require.NoError(t, err)
	assert.Equal(t, "Jane is a driven engineer & builder.", summary)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Name: Jane Doe")
	assert.Contains(t, calls[0].Prompt, "Skills: Go, React")
	assert.Contains(t, calls[0].Prompt, "Top Projects: Portfolio Site")
	assert.Contains(t, calls[0].Prompt, "Education: BSc in Computer Science")
	assert.Equal(t, llm.TierStandard, calls[0].Tier)
	assert.False(t, calls[0].JSON)
}

func TestGenerateSummary_APIFailure(t *testing.T) {
	svc := NewService(textClient("", errors.New("quota exceeded")))

	_, err := svc.GenerateSummary(context.Background(), SummaryInputFrom(sampleDocument()))
	require.Error(t, err)
	assert.True(t, IsGenerationFailure(err))

	var apiErr *APICallError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateCoverLetter_BlockedResponse(t *testing.T) {
	svc := NewService(textClient("", fmt.Errorf("%w: finish reason FinishReasonSafety", llm.ErrBlocked)))

	_, err := svc.GenerateCoverLetter(context.Background(), sampleDocument(), "Backend intern")
	assert.True(t, IsGenerationFailure(err))
	assert.ErrorIs(t, err, llm.ErrBlocked)
}

func TestGenerateSummary_EmptyResponseIsFailure(t *testing.T) {
	svc := NewService(textClient("   <p></p> ", nil))

	_, err := svc.GenerateSummary(context.Background(), SummaryInput{})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, IsGenerationFailure(err))
}

func TestRefineBullet(t *testing.T) {
	client := textClient(`"Led a team of 4 to ship a React dashboard used by 200 students."`, nil)
	svc := NewService(client)

	out, err := svc.RefineBullet(context.Background(), "made a dashboard")
	require.NoError(t, err)
	assert.Equal(t, "Led a team of 4 to ship a React dashboard used by 200 students.", out)
	assert.Contains(t, client.Calls()[0].Prompt, `Original: "made a dashboard"`)
}

func TestRefineBullet_BlankInputMakesNoCall(t *testing.T) {
	client := textClient("should not be used", nil)
	svc := NewService(client)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := svc.RefineBullet(context.Background(), in)
		assert.True(t, IsEmptyInput(err))
		assert.False(t, IsGenerationFailure(err))
	}
	assert.Empty(t, client.Calls())
}

func TestGenerateCoverLetter(t *testing.T) {
	client := textClient("Dear Hiring Manager,\n\nI'm excited to apply.", nil)
	svc := NewService(client)

	doc := sampleDocument()
	doc.Projects[0].Icon = icons.Image("data:image/png;base64,AAAA")

	letter, err := svc.GenerateCoverLetter(context.Background(), doc, "Frontend intern, React")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\n\nI'm excited to apply.", letter)

	prompt := client.Calls()[0].Prompt
	assert.Contains(t, prompt, `"fullName": "Jane Doe"`)
	assert.Contains(t, prompt, "Frontend intern, React")
	assert.NotContains(t, prompt, "base64", "embedded images stay out of prompts")
	assert.Equal(t, "data:image/png;base64,AAAA", doc.Projects[0].Icon.Value, "caller's document untouched")
}

func TestGenerateCoverLetter_BlankJobDescription(t *testing.T) {
	client := textClient("x", nil)
	_, err := NewService(client).GenerateCoverLetter(context.Background(), sampleDocument(), "  ")
	assert.True(t, IsEmptyInput(err))
	assert.Empty(t, client.Calls())
}

func TestAnalyzeSkillGaps(t *testing.T) {
	client := jsonClient("```json\n" + `[
		{"skill": "Docker", "reason": "Containers are standard for deployment."},
		{"skill": "SQL", "reason": "Most backends use relational data."},
		{"skill": "Testing", "reason": "Teams expect automated tests."}
	]` + "\n```")
	svc := NewService(client)

	gaps, err := svc.AnalyzeSkillGaps(context.Background(), []string{"Go"}, "Backend engineer")
	require.NoError(t, err)
	require.Len(t, gaps, 3)
	assert.Equal(t, types.SkillGap{Skill: "Docker", Reason: "Containers are standard for deployment."}, gaps[0])
	assert.Equal(t, "Testing", gaps[2].Skill)

	call := client.Calls()[0]
	assert.True(t, call.JSON)
	assert.Contains(t, call.Prompt, `career goal: "Backend engineer"`)
}

func TestAnalyzeSkillGaps_AcceptsAnyLength(t *testing.T) {
	gaps, err := NewService(jsonClient(`[]`)).AnalyzeSkillGaps(context.Background(), nil, "Designer")
	require.NoError(t, err)
	assert.NotNil(t, gaps)
	assert.Empty(t, gaps)
}

func TestAnalyzeSkillGaps_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		check func(t *testing.T, err error)
	}{
		{
			name:  "malformed JSON",
			reply: `[{"skill": "Docker",`,
			check: func(t *testing.T, err error) {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
			},
		},
		{
			name:  "schema mismatch",
			reply: `{"skills": ["Docker"]}`,
			check: func(t *testing.T, err error) {
				var ve *schemas.ValidationError
				assert.True(t, errors.As(err, &ve))
			},
		},
		{
			name:  "missing reason",
			reply: `[{"skill": "Docker"}]`,
			check: func(t *testing.T, err error) {
				var ve *schemas.ValidationError
				assert.True(t, errors.As(err, &ve))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps, err := NewService(jsonClient(tt.reply)).AnalyzeSkillGaps(context.Background(), []string{"Go"}, "Backend")
			require.Error(t, err)
			assert.Nil(t, gaps)
			assert.True(t, IsGenerationFailure(err))
			tt.check(t, err)
		})
	}
}

func TestAnalyzeSkillGaps_BlankGoal(t *testing.T) {
	_, err := NewService(jsonClient(`[]`)).AnalyzeSkillGaps(context.Background(), []string{"Go"}, "")
	assert.True(t, IsEmptyInput(err))
}

func TestScoreMatch(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantScore int
		wantSugg  []string
	}{
		{
			name:      "typical",
			reply:     `{"score": 72, "suggestions": ["Add metrics", "Mention React", "Link GitHub"]}`,
			wantScore: 72,
			wantSugg:  []string{"Add metrics", "Mention React", "Link GitHub"},
		},
		{
			name:      "clamped high",
			reply:     `{"score": 140, "suggestions": []}`,
			wantScore: 100,
			wantSugg:  []string{},
		},
		{
			name:      "clamped low",
			reply:     `{"score": -5, "suggestions": ["x"]}`,
			wantScore: 0,
			wantSugg:  []string{"x"},
		},
		{
			name:      "fractional is rounded",
			reply:     `{"score": 66.6}`,
			wantScore: 67,
			wantSugg:  []string{},
		},
		{
			name:      "blank suggestions dropped",
			reply:     `{"score": 50, "suggestions": ["", "  Add a summary "]}`,
			wantScore: 50,
			wantSugg:  []string{"Add a summary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewService(jsonClient(tt.reply)).ScoreMatch(context.Background(), sampleDocument(), "Frontend intern")
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantSugg, result.Suggestions)
		})
	}
}

func TestScoreMatch_NonNumericScoreFails(t *testing.T) {
	for _, reply := range []string{`{"score": "high"}`, `{"suggestions": ["x"]}`, `not json`} {
		_, err := NewService(jsonClient(reply)).ScoreMatch(context.Background(), sampleDocument(), "Frontend intern")
		assert.True(t, IsGenerationFailure(err), reply)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-0.4))
	assert.Equal(t, 0, ClampScore(0.4))
	assert.Equal(t, 100, ClampScore(100.2))
	assert.Equal(t, 81, ClampScore(80.5))
}

func TestWithTier(t *testing.T) {
	client := textClient("ok", nil)
	_, err := NewService(client, WithTier(llm.TierLite)).RefineBullet(context.Background(), "did stuff")
	require.NoError(t, err)
	assert.Equal(t, llm.TierLite, client.Calls()[0].Tier)
}
