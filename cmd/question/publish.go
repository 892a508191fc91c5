package question

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

func NewPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Make the draft version active and open a new draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, _ *config.Config) error {
				v, err := svc.Publish(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published version %d with %d question(s).\n", v.ID(), v.Len())
				return nil
			}, &svc)
		},
	}

	return cmd
}
