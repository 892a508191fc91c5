package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/version"
	"github.com/Alijeyrad/uat_backend/pkg/database"
)

// newRepository connects to UAT_TEST_DATABASE_DSN, which must point at a
// disposable database. Tests are skipped when it is unset.
func newRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := os.Getenv("UAT_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("UAT_TEST_DATABASE_DSN not set")
	}

	drv, err := database.OpenDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	for _, table := range []string{revisionsTable, versionsTable, questionsTable} {
		require.NoError(t, drv.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table), []any{}, nil))
	}

	r := New(drv)
	require.NoError(t, r.Migrate(ctx))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func textQuestion(name, segment string) *question.Definition {
	return question.NewBuilder().
		SetName(name).
		SetDescription("description").
		SetPathSegment(segment).
		SetType(question.TypeText).
		SetQuestionText(question.LocalizedStrings{language.AmericanEnglish: "What?"}).
		SetRules(question.TextRules(1, 10)).
		MustBuild()
}

func TestRepository_Lifecycle(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	created, err := r.InsertQuestion(ctx, textQuestion("favorite_color", "favorite_color"))
	require.NoError(t, err)
	require.True(t, created.IsPersisted())

	loaded, err := r.LookupQuestion(ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, created.Equal(loaded))

	conflict, err := r.FindConflictingQuestion(ctx, textQuestion("other", "favorite_color"))
	require.NoError(t, err)
	assert.Equal(t, created.ID(), conflict.ID())

	_, err = r.FindConflictingQuestion(ctx, created)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	byName, err := r.FindConflictingQuestion(ctx, textQuestion("favorite_color", "other_segment"))
	require.NoError(t, err)
	assert.Equal(t, created.ID(), byName.ID())

	published, err := r.Publish(ctx)
	require.NoError(t, err)
	assert.Equal(t, version.StageActive, published.LifecycleStage())
	_, ok := published.QuestionByID(created.ID())
	assert.True(t, ok)

	edited := question.BuilderFrom(created).SetDescription("edited").MustBuild()
	_, err = r.UpdateOrCreateDraft(ctx, edited)
	require.NoError(t, err)

	draft, err := r.DraftVersion(ctx)
	require.NoError(t, err)
	got, ok := draft.QuestionByID(created.ID())
	require.True(t, ok)
	assert.Equal(t, "edited", got.Description())

	active, err := r.ActiveVersion(ctx)
	require.NoError(t, err)
	got, ok = active.QuestionByID(created.ID())
	require.True(t, ok)
	assert.Equal(t, "description", got.Description())

	_, err = r.LookupQuestion(ctx, created.ID()+1000)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
