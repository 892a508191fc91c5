// Package cmdutil holds helpers shared by the command trees.
package cmdutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/app"
	"github.com/Alijeyrad/uat_backend/pkg/logs"
)

// LoadConfig reads the file named by the root --config flag and installs
// the configured logger as the slog default.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	slog.SetDefault(logs.New(cfg))
	return cfg, nil
}

// Timeout bounds a command by server.timeout_seconds.
func Timeout(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

// WithApp loads config, starts the application with targets populated, runs
// fn and stops the application.
func WithApp(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config) error, targets ...any) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := Timeout(cmd, cfg)
	defer cancel()

	stop, err := app.Start(ctx, cfg, targets...)
	if err != nil {
		return err
	}
	runErr := fn(ctx, cfg)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
