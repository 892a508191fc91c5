package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	sent []message
	err  error
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, message{subject, data})
	return nil
}

func sample(id int64) *question.Definition {
	return question.NewBuilder().
		SetID(id).
		SetName("income").
		SetDescription("monthly income").
		SetPathSegment("income").
		SetType(question.TypeNumber).
		SetQuestionText(question.LocalizedStrings{language.AmericanEnglish: "Income?"}).
		MustBuild()
}

func TestSubjectRoundTrip(t *testing.T) {
	subject := Subject("uat", KindQuestionCreated, 42)
	assert.Equal(t, "uat.question.created.42", subject)

	kind, id, err := ParseSubject("uat", subject)
	require.NoError(t, err)
	assert.Equal(t, KindQuestionCreated, kind)
	assert.Equal(t, int64(42), id)

	_, _, err = ParseSubject("uat", "other.question.created.1")
	assert.Error(t, err)
	_, _, err = ParseSubject("uat", "uat.question.created.x")
	assert.Error(t, err)
}

func TestNATS_Publishes(t *testing.T) {
	conn := &fakeConn{}
	p := NewNATS(conn, "uat")
	p.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	ctx := context.Background()

	p.QuestionCreated(ctx, sample(7))
	p.QuestionUpdated(ctx, sample(7))
	p.VersionPublished(ctx, version.MustNew(3, version.StageActive, sample(7)))

	require.Len(t, conn.sent, 3)
	assert.Equal(t, "uat.question.created.7", conn.sent[0].subject)
	assert.Equal(t, "uat.question.updated.7", conn.sent[1].subject)
	assert.Equal(t, "uat.version.published.3", conn.sent[2].subject)

	var e Event
	require.NoError(t, json.Unmarshal(conn.sent[2].data, &e))
	assert.Equal(t, KindVersionPublished, e.Kind)
	assert.Equal(t, []int64{7}, e.QuestionIDs)
}

func TestNATS_PublishFailureIsSwallowed(t *testing.T) {
	p := NewNATS(&fakeConn{err: errors.New("disconnected")}, "uat")
	assert.NotPanics(t, func() { p.QuestionCreated(context.Background(), sample(1)) })
}
