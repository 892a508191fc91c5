package question

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

func NewCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a new question to the draft version",
		Long: `Add a new question to the draft version.

The definition is read as JSON from --file (or stdin with "-") and must not
carry an id. Names and paths may not collide with an existing question.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readDefinition(cmd, file)
			if err != nil {
				return err
			}

			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, _ *config.Config) error {
				created, issues, err := svc.Create(ctx, def)
				if err != nil {
					return err
				}
				if !issues.Empty() {
					return printIssues(cmd.ErrOrStderr(), issues)
				}
				slog.InfoContext(ctx, "question created", "id", created.ID(), "name", created.Name())
				return cmdutil.PrintJSON(cmd.OutOrStdout(), created)
			}, &svc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "definition JSON file")

	return cmd
}
