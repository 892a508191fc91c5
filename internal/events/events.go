// Package events announces question and version changes on NATS.
//
// Subjects are "<prefix>.question.created.<id>", "<prefix>.question.updated.<id>"
// and "<prefix>.version.published.<id>". Payloads are JSON.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

const (
	KindQuestionCreated  = "question.created"
	KindQuestionUpdated  = "question.updated"
	KindVersionPublished = "version.published"
)

// Publisher is notified after a mutation has been persisted. Failures never
// undo the mutation.
type Publisher interface {
	QuestionCreated(ctx context.Context, def *question.Definition)
	QuestionUpdated(ctx context.Context, def *question.Definition)
	VersionPublished(ctx context.Context, v *version.Version)
}

// Event is the payload of every message.
type Event struct {
	Kind        string    `json:"kind"`
	ID          int64     `json:"id"`
	Name        string    `json:"name,omitempty"`
	Type        string    `json:"type,omitempty"`
	QuestionIDs []int64   `json:"question_ids,omitempty"`
	At          time.Time `json:"at"`
}

// Subject builds the subject an event is published on.
func Subject(prefix, kind string, id int64) string {
	return strings.Join([]string{prefix, kind, strconv.FormatInt(id, 10)}, ".")
}

// ParseSubject is the inverse of Subject.
func ParseSubject(prefix, subject string) (kind string, id int64, err error) {
	rest, ok := strings.CutPrefix(subject, prefix+".")
	if !ok {
		return "", 0, fmt.Errorf("subject %q outside prefix %q", subject, prefix)
	}
	i := strings.LastIndexByte(rest, '.')
	if i < 0 {
		return "", 0, fmt.Errorf("malformed subject %q", subject)
	}
	id, err = strconv.ParseInt(rest[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed subject %q: %w", subject, err)
	}
	return rest[:i], id, nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) QuestionCreated(context.Context, *question.Definition) {}
func (Nop) QuestionUpdated(context.Context, *question.Definition) {}
func (Nop) VersionPublished(context.Context, *version.Version)    {}

func encode(e Event) []byte {
	raw, err := json.Marshal(e)
	if err != nil {
		slog.Warn("encode event", "kind", e.Kind, "id", e.ID, "error", err)
		return nil
	}
	return raw
}
