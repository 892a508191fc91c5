package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/events"
)

// WorkerModule registers the NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc  fx.Lifecycle
	Cfg *config.Config
	NC  *nats.Conn `optional:"true"`
}

// RegisterWorkers starts the audit worker, which logs every question and
// version event. Without NATS there is nothing to subscribe to.
func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Warn("nats not configured, no workers started")
		return
	}

	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			sub, err = events.Subscribe(p.NC, p.Cfg.Nats.SubjectPrefix, auditEvent)
			return err
		},
		OnStop: func(ctx context.Context) error {
			if sub == nil {
				return nil
			}
			return sub.Unsubscribe()
		},
	})
}

func auditEvent(ctx context.Context, e events.Event) {
	attrs := []any{"kind", e.Kind, "id", e.ID, "at", e.At}
	switch e.Kind {
	case events.KindQuestionCreated, events.KindQuestionUpdated:
		attrs = append(attrs, "name", e.Name, "type", e.Type)
	case events.KindVersionPublished:
		attrs = append(attrs, "questions", len(e.QuestionIDs))
	}
	slog.InfoContext(ctx, "audit_worker: event", attrs...)
}
