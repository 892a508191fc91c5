package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/samber/lo"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATS publishes events on a core NATS connection.
type NATS struct {
	nc     Conn
	prefix string
	now    func() time.Time
}

var _ Publisher = (*NATS)(nil)

func NewNATS(nc Conn, prefix string) *NATS {
	return &NATS{nc: nc, prefix: prefix, now: time.Now}
}

func (p *NATS) QuestionCreated(ctx context.Context, def *question.Definition) {
	p.publishQuestion(ctx, KindQuestionCreated, def)
}

func (p *NATS) QuestionUpdated(ctx context.Context, def *question.Definition) {
	p.publishQuestion(ctx, KindQuestionUpdated, def)
}

func (p *NATS) VersionPublished(ctx context.Context, v *version.Version) {
	p.publish(ctx, Event{
		Kind:        KindVersionPublished,
		ID:          v.ID(),
		QuestionIDs: lo.Map(v.Questions(), func(q *question.Definition, _ int) int64 { return q.ID() }),
		At:          p.now().UTC(),
	})
}

func (p *NATS) publishQuestion(ctx context.Context, kind string, def *question.Definition) {
	p.publish(ctx, Event{
		Kind: kind,
		ID:   def.ID(),
		Name: def.Name(),
		Type: string(def.Type()),
		At:   p.now().UTC(),
	})
}

func (p *NATS) publish(ctx context.Context, e Event) {
	data := encode(e)
	if data == nil {
		return
	}
	subject := Subject(p.prefix, e.Kind, e.ID)
	if err := p.nc.Publish(subject, data); err != nil {
		slog.WarnContext(ctx, "publish event failed", "subject", subject, "error", err)
	}
}

// Handler receives decoded events.
type Handler func(ctx context.Context, e Event)

// Subscribe delivers every event under prefix to h until the returned
// subscription is drained.
func Subscribe(nc *nats.Conn, prefix string, h Handler) (*nats.Subscription, error) {
	return nc.Subscribe(prefix+".>", func(msg *nats.Msg) {
		kind, id, err := ParseSubject(prefix, msg.Subject)
		if err != nil {
			slog.Warn("ignoring event", "subject", msg.Subject, "error", err)
			return
		}
		var e Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			slog.Warn("ignoring undecodable event", "subject", msg.Subject, "error", err)
			return
		}
		e.Kind, e.ID = kind, id
		h(context.Background(), e)
	})
}
