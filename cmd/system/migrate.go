package system

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/internal/repo/postgres"
	"github.com/Alijeyrad/uat_backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the question and version tables and the initial versions",
		Long: `Create the question catalog tables if they are missing.

A fresh database also gets an empty active version and an empty draft so
that questions can be created right away.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdutil.Timeout(cmd, cfg)
			defer cancel()

			drv, err := database.NewDriver(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			store := postgres.New(drv)
			defer store.Close()

			slog.InfoContext(ctx, "running catalog migrations", "database", cfg.Database.DBName)
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}
