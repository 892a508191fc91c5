// Package app assembles the application with uber/fx.
package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/uat_backend/config"
)

// Start builds and starts an application for a one-shot command, filling
// targets (pointers to provided types) via fx.Populate. The returned stop
// function runs the shutdown hooks.
func Start(ctx context.Context, cfg *config.Config, targets ...any) (func(context.Context) error, error) {
	fxApp := fx.New(
		fx.Supply(cfg),
		InfraModule,
		ServiceModule,
		fx.Populate(targets...),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	)
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}
	if err := fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("start application: %w", err)
	}
	return fxApp.Stop, nil
}
