package main

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/elevate/internal/document"
	"github.com/jonathan/elevate/internal/observability"
	"github.com/jonathan/elevate/internal/schemas"
	"github.com/spf13/cobra"
)

// errInvalidDocument is returned after the problems have been printed.
var errInvalidDocument = errors.New("document is invalid")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a document against the schema and its invariants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if docPath == "" {
				docPath = cfg.Document
			}
			if docPath == "" {
				return fmt.Errorf("no document given: pass --doc or set \"document\" in the config file")
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			problems, err := validateDocument(docPath)
			if err != nil {
				return err
			}
			printer.PrintValidation(problems)
			if len(problems) > 0 {
				return errInvalidDocument
			}

			doc, err := document.Load(docPath)
			if err != nil {
				return err
			}
			printer.PrintDocument(&doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docPath, "doc", "d", "", "Path to document JSON")
	return cmd
}

// validateDocument lists schema violations, then invariant violations of a
// schema-valid document. Errors other than validation failures are returned.
func validateDocument(path string) ([]string, error) {
	err := schemas.ValidateFile(schemas.Document, path)
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		problems := make([]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			problems = append(problems, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return problems, nil
	case err != nil:
		return nil, err
	}

	_, err = document.Load(path)
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		problems := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s: failed '%s' check", fe.Namespace(), fe.Tag()))
		}
		return problems, nil
	case err != nil:
		return nil, err
	}
	return nil, nil
}
