package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/repo/memory"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

type countingRepo struct {
	repo.Repository
	activeCalls int
	// duringPublish runs inside Publish before the underlying promotion.
	duringPublish func()
	publishErr    error
}

func (c *countingRepo) Publish(ctx context.Context) (*version.Version, error) {
	if c.duringPublish != nil {
		c.duringPublish()
	}
	if c.publishErr != nil {
		return nil, c.publishErr
	}
	return c.Repository.Publish(ctx)
}

func (c *countingRepo) ActiveVersion(ctx context.Context) (*version.Version, error) {
	c.activeCalls++
	return c.Repository.ActiveVersion(ctx)
}

func setup(t *testing.T) (*Repository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	seed := question.NewBuilder().
		SetID(1).
		SetName("q").
		SetDescription("d").
		SetPathSegment("q").
		SetType(question.TypeText).
		SetQuestionText(question.LocalizedStrings{language.AmericanEnglish: "Q?"}).
		MustBuild()

	inner := &countingRepo{Repository: memory.NewWith(seed)}
	return New(inner, rdb, "uat", time.Minute), inner, mr
}

func TestActiveVersion_ServedFromCache(t *testing.T) {
	r, inner, mr := setup(t)
	ctx := context.Background()

	first, err := r.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("uat:version:active"))
	assert.Equal(t, time.Minute, mr.TTL("uat:version:active"))

	second, err := r.ActiveVersion(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.activeCalls)
	assert.Equal(t, first.ID(), second.ID())
	got, ok := second.QuestionByID(1)
	require.True(t, ok)
	want, _ := first.QuestionByID(1)
	assert.True(t, want.Equal(got))
}

func TestActiveVersion_CorruptEntryFallsThrough(t *testing.T) {
	r, inner, mr := setup(t)
	require.NoError(t, mr.Set("uat:version:active", "{not json"))

	v, err := r.ActiveVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 1, inner.activeCalls)
}

func TestPublish_ReplacesCachedVersion(t *testing.T) {
	r, inner, _ := setup(t)
	ctx := context.Background()

	before, err := r.ActiveVersion(ctx)
	require.NoError(t, err)

	published, err := r.Publish(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.ID(), published.ID())

	after, err := r.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, published.ID(), after.ID())
	assert.Equal(t, 1, inner.activeCalls)
}

func TestPublish_ReadDuringPublishDoesNotSurvive(t *testing.T) {
	r, inner, _ := setup(t)
	ctx := context.Background()

	var stale *version.Version
	inner.duringPublish = func() {
		var err error
		stale, err = r.ActiveVersion(ctx)
		require.NoError(t, err)
	}

	published, err := r.Publish(ctx)
	require.NoError(t, err)
	require.NotNil(t, stale)
	require.NotEqual(t, stale.ID(), published.ID())

	after, err := r.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, published.ID(), after.ID())
}

func TestPublish_FailureKeepsCachedVersion(t *testing.T) {
	r, inner, mr := setup(t)
	ctx := context.Background()

	before, err := r.ActiveVersion(ctx)
	require.NoError(t, err)

	inner.publishErr = errors.New("commit failed")
	_, err = r.Publish(ctx)
	require.Error(t, err)
	assert.True(t, mr.Exists("uat:version:active"))

	after, err := r.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ID(), after.ID())
	assert.Equal(t, 1, inner.activeCalls)
}
