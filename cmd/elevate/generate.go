package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/elevate/internal/config"
	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/fetch"
	"github.com/jonathan/elevate/internal/generation"
	"github.com/jonathan/elevate/internal/llm"
	"github.com/jonathan/elevate/internal/observability"
	"github.com/jonathan/elevate/internal/session"
	"github.com/spf13/cobra"
)

// newGenerator builds the generation backend for one command run. The
// returned func releases it.
var newGenerator = func(ctx context.Context, cfg config.Config) (session.Generator, func() error, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return generation.NewService(client), client.Close, nil
}

type generateOptions struct {
	docPath string
	goal    string
	job     string
	jobFile string
	jobURL  string
	out     string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft text for a document with Gemini",
	}
	cmd.PersistentFlags().StringVarP(&opts.docPath, "doc", "d", "", "Path to document JSON")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Write a professional summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, root, opts, func(ctx context.Context, sess *session.Session, printer *observability.Printer) error {
				text, err := sess.GenerateSummary(ctx)
				if err != nil {
					return err
				}
				printer.PrintText("Summary", text)
				return nil
			})
		},
	}

	skills := &cobra.Command{
		Use:   "skills",
		Short: "Suggest skills to learn for a career goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, root, opts, func(ctx context.Context, sess *session.Session, printer *observability.Printer) error {
				gaps, err := sess.AnalyzeSkills(ctx, opts.goal)
				if err != nil {
					return err
				}
				printer.PrintSkillGaps(opts.goal, gaps)
				return nil
			})
		},
	}
	skills.Flags().StringVarP(&opts.goal, "goal", "g", "", "Career goal, e.g. \"backend engineer\"")

	application := &cobra.Command{
		Use:   "application",
		Short: "Write a cover letter and score the match for a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jd, err := opts.jobDescription(cmd.Context())
			if err != nil {
				return err
			}
			return withSession(cmd, root, opts, func(ctx context.Context, sess *session.Session, printer *observability.Printer) error {
				res := sess.GenerateApplication(ctx, jd)
				if res.CoverLetterErr != nil && res.MatchErr != nil {
					return res.Err()
				}

				printer.PrintText("Cover Letter", res.CoverLetter)
				printer.PrintMatchResult(res.Match)
				if res.CoverLetterErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Cover letter failed: %v\n", res.CoverLetterErr) //nolint:errcheck
				}
				if res.MatchErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Match score failed: %v\n", res.MatchErr) //nolint:errcheck
				}

				if opts.out != "" && res.CoverLetterErr == nil {
					path, err := export.NewExporter(nil, nil).ExportCoverLetter(res.CoverLetter, opts.out)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path) //nolint:errcheck
				}
				return nil
			})
		},
	}
	application.Flags().StringVarP(&opts.job, "job", "j", "", "Job description text")
	application.Flags().StringVar(&opts.jobFile, "job-file", "", "File containing the job description")
	application.Flags().StringVar(&opts.jobURL, "job-url", "", "URL of a job posting to read the description from")
	application.MarkFlagsMutuallyExclusive("job", "job-file", "job-url")
	application.Flags().StringVarP(&opts.out, "out", "o", "", "Directory to write Cover_Letter.txt to")

	cmd.AddCommand(summary, skills, application)
	return cmd
}

func (o *generateOptions) jobDescription(ctx context.Context) (string, error) {
	switch {
	case o.jobFile != "":
		data, err := os.ReadFile(o.jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case o.jobURL != "":
		return fetch.JobDescription(ctx, o.jobURL, nil)
	default:
		return o.job, nil
	}
}

// withSession loads the document, opens a generation session around it and
// runs fn.
func withSession(cmd *cobra.Command, root *rootOptions, opts *generateOptions, fn func(context.Context, *session.Session, *observability.Printer) error) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(opts.docPath, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGen() //nolint:errcheck

	sess := session.New(doc, gen, root.logger(cfg))
	return fn(ctx, sess, observability.NewPrinter(cmd.OutOrStdout()))
}
