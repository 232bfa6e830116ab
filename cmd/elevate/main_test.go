package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/elevate/internal/config"
	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/session"
	"github.com/jonathan/elevate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var validDoc = filepath.Join("..", "..", "internal", "schemas", "testdata", "valid_document.json")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fakeRenderer struct {
	page string
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.page = html
	return []byte("%PDF-1.4 test"), nil
}

func useFakeRenderer(t *testing.T) *fakeRenderer {
	t.Helper()
	fake := &fakeRenderer{}
	orig := newPDFRenderer
	newPDFRenderer = func(config.Config, *zap.Logger) export.PDFRenderer { return fake }
	t.Cleanup(func() { newPDFRenderer = orig })
	return fake
}

type fakeGenerator struct {
	matchErr error
	job      string
}

func (f *fakeGenerator) GenerateSummary(_ context.Context, in generation.SummaryInput) (string, error) {
	return "Summary for " + in.Profile.FullName, nil
}

func (f *fakeGenerator) RefineBullet(_ context.Context, text string) (string, error) {
	return text, nil
}

func (f *fakeGenerator) GenerateCoverLetter(_ context.Context, _ types.Document, jd string) (string, error) {
	f.job = jd
	return "Dear hiring team,", nil
}

func (f *fakeGenerator) AnalyzeSkillGaps(context.Context, []string, string) ([]types.SkillGap, error) {
	return []types.SkillGap{{Skill: "Docker", Reason: "Common in backend roles"}}, nil
}

func (f *fakeGenerator) ScoreMatch(context.Context, types.Document, string) (types.MatchResult, error) {
	if f.matchErr != nil {
		return types.MatchResult{}, f.matchErr
	}
	return types.MatchResult{Score: 74, Suggestions: []string{"Add metrics"}}, nil
}

func useFakeGenerator(t *testing.T, gen *fakeGenerator) {
	t.Helper()
	orig := newGenerator
	newGenerator = func(context.Context, config.Config) (session.Generator, func() error, error) {
		return gen, func() error { return nil }, nil
	}
	t.Cleanup(func() { newGenerator = orig })
}

func TestRender_ResumeToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site", "resume.html")

	output, err := execute(t, "render", "--doc", validDoc, "--template", "tech", "--out", out)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Rendered resume to")

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), `data-template="tech"`)
	assert.Contains(t, string(page), "Jane Doe")
}

func TestRender_PortfolioToStdout(t *testing.T) {
	output, err := execute(t, "render", "--doc", validDoc, "--kind", "portfolio", "--template", "bento", "--accent", "#3b82f6")
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(output))
	require.NoError(t, err)
	tmpl, _ := dom.Find("body").Attr("data-template")
	assert.Equal(t, "bento", tmpl)
	assert.Contains(t, output, "--accent: #3b82f6;")
}

func TestRender_TechFilter(t *testing.T) {
	output, err := execute(t, "render", "--doc", validDoc, "--tech", "Rust")
	require.NoError(t, err)
	assert.NotContains(t, output, "Portfolio</h3>")
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, "render", "--doc", validDoc, "--kind", "letter")
	assert.ErrorContains(t, err, "unknown kind")

	_, err = execute(t, "render", "--doc", validDoc, "--template", "fancy")
	assert.ErrorContains(t, err, "unknown resume template")

	_, err = execute(t, "render")
	assert.ErrorContains(t, err, "no document given")
}

func TestValidate_ValidDocument(t *testing.T) {
	output, err := execute(t, "validate", "--doc", validDoc)
	require.NoError(t, err)
	assert.Contains(t, output, "DOCUMENT IS VALID")
	assert.Contains(t, output, "Jane Doe")
}

func TestValidate_SchemaProblems(t *testing.T) {
	invalid := filepath.Join("..", "..", "internal", "schemas", "testdata", "invalid_document.json")

	output, err := execute(t, "validate", "--doc", invalid)
	assert.ErrorIs(t, err, errInvalidDocument)
	assert.Contains(t, output, "VALIDATION PROBLEMS")
}

func TestValidate_InvariantProblems(t *testing.T) {
	path := writeFile(t, "dup.json", `{"projects":[{"id":"a"},{"id":"a"}]}`)

	output, err := execute(t, "validate", "--doc", path)
	assert.ErrorIs(t, err, errInvalidDocument)
	assert.Contains(t, output, "unique")
}

func TestExport_WritesPDFAndLetter(t *testing.T) {
	fake := useFakeRenderer(t)
	dir := t.TempDir()
	letter := writeFile(t, "letter.txt", "Dear team,\nThanks.")

	output, err := execute(t, "export", "--doc", validDoc, "--out", dir, "--letter", letter)
	require.NoError(t, err, output)

	pdf, err := os.ReadFile(filepath.Join(dir, "Jane Doe.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(pdf))
	assert.Contains(t, fake.page, `data-template="modern"`)

	text, err := os.ReadFile(filepath.Join(dir, export.CoverLetterFilename))
	require.NoError(t, err)
	assert.Equal(t, "Dear team,\nThanks.", string(text))
}

func TestExport_Stdout(t *testing.T) {
	useFakeRenderer(t)

	output, err := execute(t, "export", "--doc", validDoc, "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", output)
}

func TestGenerate_Summary(t *testing.T) {
	useFakeGenerator(t, &fakeGenerator{})

	output, err := execute(t, "generate", "summary", "--doc", validDoc)
	require.NoError(t, err)
	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "Summary for Jane Doe")
}

func TestGenerate_Skills(t *testing.T) {
	useFakeGenerator(t, &fakeGenerator{})

	output, err := execute(t, "generate", "skills", "--doc", validDoc, "--goal", "backend engineer")
	require.NoError(t, err)
	assert.Contains(t, output, "SKILL GAPS")
	assert.Contains(t, output, "1. Docker")
}

func TestGenerate_Application(t *testing.T) {
	useFakeGenerator(t, &fakeGenerator{})
	dir := t.TempDir()
	job := writeFile(t, "job.txt", "Backend intern, Go and SQL\n")

	output, err := execute(t, "generate", "application", "--doc", validDoc, "--job-file", job, "--out", dir)
	require.NoError(t, err, output)
	assert.Contains(t, output, "COVER LETTER")
	assert.Contains(t, output, "Score: 74/100")

	text, err := os.ReadFile(filepath.Join(dir, export.CoverLetterFilename))
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring team,", string(text))
}

func TestGenerate_ApplicationFromURL(t *testing.T) {
	gen := &fakeGenerator{}
	useFakeGenerator(t, gen)
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><h1>Backend Intern</h1><p>Go and SQL.</p></main></body></html>`))
	}))
	defer posting.Close()

	output, err := execute(t, "generate", "application", "--doc", validDoc, "--job-url", posting.URL)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Score: 74/100")
	assert.Equal(t, "Backend Intern\nGo and SQL.", gen.job)

	_, err = execute(t, "generate", "application", "--doc", validDoc, "--job", "x", "--job-url", posting.URL)
	assert.Error(t, err)
}

func TestGenerate_ApplicationPartialFailure(t *testing.T) {
	useFakeGenerator(t, &fakeGenerator{matchErr: errors.New("quota exceeded")})

	output, err := execute(t, "generate", "application", "--doc", validDoc, "--job", "Backend intern")
	require.NoError(t, err)
	assert.Contains(t, output, "COVER LETTER")
	assert.Contains(t, output, "Match score failed: quota exceeded")
}

func TestGenerate_EmptyJobDescription(t *testing.T) {
	useFakeGenerator(t, &fakeGenerator{})

	_, err := execute(t, "generate", "application", "--doc", validDoc)
	var empty *generation.EmptyInputError
	assert.ErrorAs(t, err, &empty)
}

func TestServe_RequiresAPIKey(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")

	_, err := execute(t, "serve", "--port", "0")
	assert.ErrorContains(t, err, config.EnvAPIKey)
}

func TestConfigFlag(t *testing.T) {
	cfgPath := writeFile(t, "elevate.json", `{"port": 70000}`)

	_, err := execute(t, "--config", cfgPath, "render", "--doc", validDoc)
	assert.ErrorContains(t, err, "'port' failed 'max' check")
}
