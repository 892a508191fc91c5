package system

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the databases listed in server.databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdutil.Timeout(cmd, cfg)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), "Initializing databases...")
			if err := database.InitializeDatabases(ctx, cfg); err != nil {
				return fmt.Errorf("failed to initialize databases: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Databases initialized successfully.")
			return nil
		},
	}

	return cmd
}
