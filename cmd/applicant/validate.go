package applicant

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/applicant/answer"
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

// Result is the validation outcome of one bound question.
type Result struct {
	QuestionID int64    `json:"question_id"`
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Text       string   `json:"text"`
	Errors     []string `json:"errors"`
}

func NewValidateCommand() *cobra.Command {
	var (
		file   string
		id     string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an applicant document against the up-to-date questions",
		Long: `Validate an applicant document against the up-to-date questions.

The document is the applicant's JSON answer tree rooted at "applicant", read
from --file (or stdin with "-"). Questions repeated under an enumerator are
checked once per listed entity. With --strict the command fails when any
answer has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applicantID := uuid.New()
			if id != "" {
				parsed, err := uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid applicant id %q: %w", id, err)
				}
				applicantID = parsed
			}

			doc, err := readDocument(cmd, file)
			if err != nil {
				return err
			}
			data, err := applicant.FromJSON(applicantID, doc)
			if err != nil {
				return fmt.Errorf("failed to parse applicant document: %w", err)
			}

			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, cfg *config.Config) error {
				if !data.HasPath(path.Create("applicant.preferred_locale")) {
					data.SetPreferredLocale(cfg.DefaultLocale())
				}

				c, err := svc.Catalog(ctx)
				if err != nil {
					return err
				}
				results := Validate(answer.Bind(c.UpToDateQuestions(), data, answer.WithPhoneRegion(cfg.Catalog.PhoneRegion)))
				if err := cmdutil.PrintJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
				if strict && failed(results) {
					return fmt.Errorf("applicant %s has invalid answers", data.ID())
				}
				return nil
			}, &svc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "applicant document JSON file")
	cmd.Flags().StringVar(&id, "id", "", "applicant id (random when empty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any answer is invalid")

	return cmd
}

// Validate collects the errors of every bound question.
func Validate(questions []*answer.ApplicantQuestion) []Result {
	results := make([]Result, 0, len(questions))
	for _, q := range questions {
		def := q.Definition()
		results = append(results, Result{
			QuestionID: def.ID(),
			Name:       def.Name(),
			Path:       q.ContextualizedPath().String(),
			Text:       q.QuestionText(),
			Errors:     answer.Messages(q.Errors()),
		})
	}
	return results
}

func failed(results []Result) bool {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return true
		}
	}
	return false
}

func readDocument(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	doc, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read applicant document: %w", err)
	}
	return doc, nil
}
