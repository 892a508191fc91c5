// Package applicant holds the commands that check applicant answers
// against the current questions.
package applicant

import "github.com/spf13/cobra"

func NewApplicantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applicant",
		Short: "Work with applicant answer documents",
	}

	cmd.AddCommand(NewValidateCommand())

	return cmd
}
