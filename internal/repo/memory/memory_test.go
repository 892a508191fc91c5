package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

func newDef(id int64, name, segment string) *question.Definition {
	return question.NewBuilder().
		SetID(id).
		SetName(name).
		SetDescription("description").
		SetPathSegment(segment).
		SetType(question.TypeText).
		SetQuestionText(question.LocalizedStrings{language.AmericanEnglish: "text"}).
		MustBuild()
}

func TestInsertQuestion_AddsToDraft(t *testing.T) {
	ctx := context.Background()
	s := New()

	persisted, err := s.InsertQuestion(ctx, newDef(0, "q", "q"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), persisted.ID())

	draft, err := s.DraftVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, version.StageDraft, draft.LifecycleStage())
	got, ok := draft.QuestionByID(1)
	require.True(t, ok)
	assert.True(t, got.Equal(persisted))

	active, err := s.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, active.Len())
}

func TestFindConflictingQuestion(t *testing.T) {
	ctx := context.Background()
	s := NewWith(newDef(5, "existing", "income"))

	conflict, err := s.FindConflictingQuestion(ctx, newDef(0, "new", "income"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), conflict.ID())

	_, err = s.FindConflictingQuestion(ctx, newDef(5, "existing", "income"))
	assert.ErrorIs(t, err, repo.ErrNotFound, "a question never conflicts with itself")

	_, err = s.FindConflictingQuestion(ctx, newDef(0, "new", "other"))
	assert.ErrorIs(t, err, repo.ErrNotFound)

	byName, err := s.FindConflictingQuestion(ctx, newDef(0, "existing", "other"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), byName.ID())

	next, err := s.InsertQuestion(ctx, newDef(0, "new", "other"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), next.ID(), "ids continue above seeded questions")

	// "new" now exists on "other"; a definition using that name on
	// "income" collides with both, and the storage match is returned.
	both, err := s.FindConflictingQuestion(ctx, newDef(0, "new", "income"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), both.ID())
}

func TestUpdateOrCreateDraft_KeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewWith(newDef(1, "q", "q"))

	edited := question.BuilderFrom(newDef(1, "q", "q")).SetDescription("edited").MustBuild()
	_, err := s.UpdateOrCreateDraft(ctx, edited)
	require.NoError(t, err)

	latest, err := s.LookupQuestion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "edited", latest.Description())

	active, err := s.ActiveVersion(ctx)
	require.NoError(t, err)
	published, _ := active.QuestionByID(1)
	assert.Equal(t, "description", published.Description())

	_, err = s.UpdateOrCreateDraft(ctx, newDef(99, "ghost", "ghost"))
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	s := NewWith(newDef(1, "kept", "kept"), newDef(2, "edited", "edited"), newDef(3, "renamed", "old"))

	_, err := s.UpdateOrCreateDraft(ctx, question.BuilderFrom(newDef(2, "edited", "edited")).SetDescription("v2").MustBuild())
	require.NoError(t, err)
	_, err = s.InsertQuestion(ctx, newDef(0, "renamed", "new"))
	require.NoError(t, err)

	oldActive, err := s.ActiveVersion(ctx)
	require.NoError(t, err)

	published, err := s.Publish(ctx)
	require.NoError(t, err)

	assert.Equal(t, version.StageActive, published.LifecycleStage())
	assert.False(t, published.SubmitTime().IsZero())
	assert.Equal(t, 3, published.Len())

	edited, _ := published.QuestionByName("edited")
	assert.Equal(t, "v2", edited.Description())
	renamed, _ := published.QuestionByName("renamed")
	assert.Equal(t, "new", renamed.PathSegment())
	_, ok := published.QuestionByName("kept")
	assert.True(t, ok)

	draft, err := s.DraftVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, draft.Len())
	assert.Greater(t, draft.ID(), published.ID())

	current, err := s.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, oldActive.ID(), current.ID())
}
