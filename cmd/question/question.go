// Package question holds the admin commands for the question catalog.
package question

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/internal/question"
)

func NewQuestionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Create, edit and publish questions",
	}

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewCreateCommand())
	cmd.AddCommand(NewUpdateCommand())
	cmd.AddCommand(NewPublishCommand())

	return cmd
}

// readDefinition decodes a question definition from path, or stdin for "-".
func readDefinition(cmd *cobra.Command, path string) (*question.Definition, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open definition: %w", err)
		}
		defer f.Close()
		r = f
	}

	def := &question.Definition{}
	if err := json.NewDecoder(r).Decode(def); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return def, nil
}

func printIssues(w io.Writer, issues question.Issues) error {
	fmt.Fprintln(w, "Question rejected:")
	for _, msg := range issues.Messages() {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
	return fmt.Errorf("%d validation issue(s)", len(issues))
}
