package question

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the current definition of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q: %w", args[0], err)
			}

			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, _ *config.Config) error {
				c, err := svc.Catalog(ctx)
				if err != nil {
					return err
				}
				def, err := c.QuestionDefinition(id)
				if err != nil {
					return err
				}
				return cmdutil.PrintJSON(cmd.OutOrStdout(), def)
			}, &svc)
		},
	}

	return cmd
}
