// Package questionsvc creates and edits questions in the draft version and
// publishes the draft.
package questionsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Alijeyrad/uat_backend/internal/events"
	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/service/catalog"
	"github.com/Alijeyrad/uat_backend/internal/version"
	"github.com/Alijeyrad/uat_backend/pkg/observability"
)

const noEnumerator = "[no enumerator]"

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Service mutates the draft version. Create and Update return problems with
// the submitted definition as Issues and write nothing when there are any;
// the error return is reserved for precondition and storage failures.
type Service interface {
	Create(ctx context.Context, def *question.Definition) (*question.Definition, question.Issues, error)
	Update(ctx context.Context, def *question.Definition) (*question.Definition, question.Issues, error)
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Publish(ctx context.Context) (*version.Version, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type questionService struct {
	repo   repo.Repository
	events events.Publisher
	ops    *observability.Operations
}

func New(r repo.Repository, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &questionService{
		repo:   r,
		events: pub,
		ops:    observability.NewOperations("uat_question_mutations_total", "Question mutations by operation and outcome"),
	}
}

func (s *questionService) Create(ctx context.Context, def *question.Definition) (*question.Definition, question.Issues, error) {
	ctx, op := s.ops.Start(ctx, "question.create", attribute.String("question.name", def.Name()))

	if def.IsPersisted() {
		err := fmt.Errorf("%w: id %d", ErrAlreadyPersisted, def.ID())
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}

	issues := def.Validate()
	conflicts, err := s.checkConflicts(ctx, def)
	if err != nil {
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}
	issues = issues.With(conflicts...)

	if !issues.Empty() {
		slog.DebugContext(ctx, "question create rejected", "name", def.Name(), "issues", len(issues))
		op.End(observability.OutcomeRejected, nil)
		return nil, issues, nil
	}

	persisted, err := s.repo.InsertQuestion(ctx, def)
	if err != nil {
		err = fmt.Errorf("insert question: %w", err)
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}

	op.SetAttributes(attribute.Int64("question.id", persisted.ID()))
	op.End(observability.OutcomeOK, nil)
	slog.InfoContext(ctx, "question created", "id", persisted.ID(), "name", persisted.Name(), "type", persisted.Type())
	s.events.QuestionCreated(ctx, persisted)

	return persisted, nil, nil
}

// checkConflicts reports another question already writing answers to the
// same enumerator and path segment, or already using the name. It only
// applies to new questions: an edit keeps its name, path segment and
// enumerator, so it can only collide with its own earlier revisions.
func (s *questionService) checkConflicts(ctx context.Context, def *question.Definition) (question.Issues, error) {
	conflict, err := s.repo.FindConflictingQuestion(ctx, def)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conflicting question: %w", err)
	}

	var issues question.Issues
	if repo.SameStorage(conflict, def) {
		if enumID, ok := def.EnumeratorID(); ok {
			issues = issues.With(question.Issuef(
				"Question '%s' with Enumerator ID %d conflicts with question id: %d",
				def.PathSegment(), enumID, conflict.ID(),
			))
		} else {
			issues = issues.With(question.Issuef(
				"Question '%s' conflicts with question id: %d",
				def.PathSegment(), conflict.ID(),
			))
		}
	}
	if conflict.Name() == def.Name() {
		issues = issues.With(question.Issuef(
			"Question name '%s' is already used by question id: %d",
			def.Name(), conflict.ID(),
		))
	}
	return issues, nil
}

func (s *questionService) Update(ctx context.Context, def *question.Definition) (*question.Definition, question.Issues, error) {
	ctx, op := s.ops.Start(ctx, "question.update",
		attribute.String("question.name", def.Name()),
		attribute.Int64("question.id", def.ID()),
	)

	if !def.IsPersisted() {
		op.End(observability.OutcomeError, ErrNotPersisted)
		return nil, nil, ErrNotPersisted
	}

	issues := def.Validate()

	existing, err := s.repo.LookupQuestion(ctx, def.ID())
	if errors.Is(err, repo.ErrNotFound) {
		err = fmt.Errorf("%w: question with id %d does not exist", ErrQuestionNotFound, def.ID())
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}
	if err != nil {
		err = fmt.Errorf("lookup question %d: %w", def.ID(), err)
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}

	issues = issues.With(immutableMemberIssues(existing, def)...)
	if !issues.Empty() {
		slog.DebugContext(ctx, "question update rejected", "id", def.ID(), "issues", len(issues))
		op.End(observability.OutcomeRejected, nil)
		return nil, issues, nil
	}

	updated, err := s.repo.UpdateOrCreateDraft(ctx, def)
	if err != nil {
		err = fmt.Errorf("write draft of question %d: %w", def.ID(), err)
		op.End(observability.OutcomeError, err)
		return nil, nil, err
	}

	op.End(observability.OutcomeOK, nil)
	slog.InfoContext(ctx, "question updated", "id", updated.ID(), "name", updated.Name())
	s.events.QuestionUpdated(ctx, updated)

	return updated, nil, nil
}

// immutableMemberIssues lists every field that changed but must not: name,
// enumerator, path segment and type.
func immutableMemberIssues(existing, toUpdate *question.Definition) question.Issues {
	var issues question.Issues

	if existing.Name() != toUpdate.Name() {
		issues = append(issues, question.Issuef(
			"question names mismatch: %s does not match %s", existing.Name(), toUpdate.Name()))
	}

	oldEnum, newEnum := enumeratorLabel(existing), enumeratorLabel(toUpdate)
	if oldEnum != newEnum {
		issues = append(issues, question.Issuef(
			"question enumerator ids mismatch: %s does not match %s", oldEnum, newEnum))
	}

	if existing.PathSegment() != toUpdate.PathSegment() {
		issues = append(issues, question.Issuef(
			"question path segment mismatch: %s does not match %s", existing.PathSegment(), toUpdate.PathSegment()))
	}

	if existing.Type() != toUpdate.Type() {
		issues = append(issues, question.Issuef(
			"question types mismatch: %s does not match %s", existing.Type(), toUpdate.Type()))
	}

	return issues
}

func enumeratorLabel(d *question.Definition) string {
	if id, ok := d.EnumeratorID(); ok {
		return strconv.FormatInt(id, 10)
	}
	return noEnumerator
}

// Catalog merges the current active and draft versions.
func (s *questionService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	ctx, op := s.ops.Start(ctx, "question.catalog")

	active, err := s.repo.ActiveVersion(ctx)
	if err != nil {
		err = fmt.Errorf("load active version: %w", err)
		op.End(observability.OutcomeError, err)
		return nil, err
	}
	draft, err := s.repo.DraftVersion(ctx)
	if err != nil {
		err = fmt.Errorf("load draft version: %w", err)
		op.End(observability.OutcomeError, err)
		return nil, err
	}

	c, err := catalog.New(active, draft)
	if err != nil {
		op.End(observability.OutcomeError, err)
		return nil, err
	}
	op.End(observability.OutcomeOK, nil)
	return c, nil
}

// Publish promotes the draft to active.
func (s *questionService) Publish(ctx context.Context) (*version.Version, error) {
	ctx, op := s.ops.Start(ctx, "question.publish")

	v, err := s.repo.Publish(ctx)
	if err != nil {
		err = fmt.Errorf("publish draft: %w", err)
		op.End(observability.OutcomeError, err)
		return nil, err
	}

	op.SetAttributes(attribute.Int64("version.id", v.ID()))
	op.End(observability.OutcomeOK, nil)
	slog.InfoContext(ctx, "version published", "version", v.ID(), "questions", v.Len())
	s.events.VersionPublished(ctx, v)

	return v, nil
}
