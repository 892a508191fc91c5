// Package repo defines the persistence contract for questions and versions.
package repo

import (
	"context"
	"errors"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

var (
	// ErrNotFound is returned when a question or version does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoDraft is returned by Publish when there is nothing to promote.
	ErrNoDraft = errors.New("no draft version")
)

// Repository stores question identities and their per-version revisions.
// There is always exactly one active and one draft version.
type Repository interface {
	// LookupQuestion returns the newest revision of question id.
	LookupQuestion(ctx context.Context, id int64) (*question.Definition, error)

	// FindConflictingQuestion returns a question other than def itself that
	// shares def's name, or its enumerator and path segment, or ErrNotFound.
	// A storage match wins over a name match.
	FindConflictingQuestion(ctx context.Context, def *question.Definition) (*question.Definition, error)

	// InsertQuestion assigns def a new identity and adds it to the draft.
	InsertQuestion(ctx context.Context, def *question.Definition) (*question.Definition, error)

	ActiveVersion(ctx context.Context) (*version.Version, error)
	DraftVersion(ctx context.Context) (*version.Version, error)

	// UpdateOrCreateDraft writes def as the draft revision of its question.
	UpdateOrCreateDraft(ctx context.Context, def *question.Definition) (*question.Definition, error)

	// Publish makes the draft active, carrying over every active question
	// whose name the draft does not hold, retires the old active version
	// and opens an empty draft. It returns the new active version.
	Publish(ctx context.Context) (*version.Version, error)
}

// SameStorage reports whether a and b would write answers to the same place.
func SameStorage(a, b *question.Definition) bool {
	if a.PathSegment() != b.PathSegment() {
		return false
	}
	aEnum, aOK := a.EnumeratorID()
	bEnum, bOK := b.EnumeratorID()
	return aOK == bOK && aEnum == bEnum
}
