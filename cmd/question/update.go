package question

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

func NewUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a question in the draft version",
		Long: `Edit a question in the draft version.

The definition is read as JSON from --file (or stdin with "-") and must carry
the id of an existing question. Name, path, type and enumerator cannot change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readDefinition(cmd, file)
			if err != nil {
				return err
			}

			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, _ *config.Config) error {
				updated, issues, err := svc.Update(ctx, def)
				if err != nil {
					return err
				}
				if !issues.Empty() {
					return printIssues(cmd.ErrOrStderr(), issues)
				}
				slog.InfoContext(ctx, "question updated", "id", updated.ID(), "name", updated.Name())
				return cmdutil.PrintJSON(cmd.OutOrStdout(), updated)
			}, &svc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "definition JSON file")

	return cmd
}
