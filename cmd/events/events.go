// Package events holds the long-running event consumers.
package events

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/internal/app"
)

func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Consume question and version events",
	}

	cmd.AddCommand(NewTailCommand())

	return cmd
}

func NewTailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Log every question and version event until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Nats.URL == "" {
				return fmt.Errorf("nats.url is not configured")
			}

			fx.New(
				fx.Supply(cfg),
				app.InfraModule,
				app.WorkerModule,
				fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
			).Run()
			return nil
		},
	}

	return cmd
}
