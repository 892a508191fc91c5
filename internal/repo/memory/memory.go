// Package memory is an in-process Repository used by tests and by the CLI
// when catalog.storage is "memory".
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

type versionRecord struct {
	id         int64
	stage      version.LifecycleStage
	submitTime time.Time
	revisions  []*question.Definition
}

// put replaces the revision of def's question or appends a new one.
func (r *versionRecord) put(def *question.Definition) {
	for i, existing := range r.revisions {
		if existing.ID() == def.ID() {
			r.revisions[i] = def
			return
		}
	}
	r.revisions = append(r.revisions, def)
}

func (r *versionRecord) snapshot() (*version.Version, error) {
	return version.New(r.id, r.stage, r.submitTime, r.revisions...)
}

// Store keeps every version in memory. It is safe for concurrent use.
type Store struct {
	mu             sync.RWMutex
	now            func() time.Time
	nextQuestionID int64
	nextVersionID  int64
	identities     []int64
	versions       []*versionRecord
}

var _ repo.Repository = (*Store)(nil)

// New returns a store holding an empty active and an empty draft version.
func New() *Store {
	s := &Store{now: time.Now}
	s.openVersion(version.StageActive)
	s.openVersion(version.StageDraft)
	return s
}

// NewWith seeds the store with published questions. Definitions keep their
// ids; later ids are allocated above the highest one seen.
func NewWith(active ...*question.Definition) *Store {
	s := New()
	rec := s.find(version.StageActive)
	for _, def := range active {
		rec.put(def)
		s.identities = append(s.identities, def.ID())
		if def.ID() > s.nextQuestionID {
			s.nextQuestionID = def.ID()
		}
	}
	return s
}

func (s *Store) openVersion(stage version.LifecycleStage) *versionRecord {
	s.nextVersionID++
	rec := &versionRecord{id: s.nextVersionID, stage: stage}
	s.versions = append(s.versions, rec)
	return rec
}

func (s *Store) find(stage version.LifecycleStage) *versionRecord {
	for i := len(s.versions) - 1; i >= 0; i-- {
		if s.versions[i].stage == stage {
			return s.versions[i]
		}
	}
	return nil
}

// latest returns the newest revision of id across all versions.
func (s *Store) latest(id int64) *question.Definition {
	for i := len(s.versions) - 1; i >= 0; i-- {
		for _, def := range s.versions[i].revisions {
			if def.ID() == id {
				return def
			}
		}
	}
	return nil
}

func (s *Store) LookupQuestion(_ context.Context, id int64) (*question.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if def := s.latest(id); def != nil {
		return def, nil
	}
	return nil, fmt.Errorf("question %d: %w", id, repo.ErrNotFound)
}

func (s *Store) FindConflictingQuestion(_ context.Context, def *question.Definition) (*question.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var byName *question.Definition
	for _, id := range s.identities {
		if def.IsPersisted() && id == def.ID() {
			continue
		}
		existing := s.latest(id)
		if existing == nil {
			continue
		}
		if repo.SameStorage(existing, def) {
			return existing, nil
		}
		if byName == nil && existing.Name() == def.Name() {
			byName = existing
		}
	}
	if byName != nil {
		return byName, nil
	}
	return nil, repo.ErrNotFound
}

func (s *Store) InsertQuestion(_ context.Context, def *question.Definition) (*question.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuestionID++
	persisted, err := question.BuilderFrom(def).SetID(s.nextQuestionID).Build()
	if err != nil {
		s.nextQuestionID--
		return nil, err
	}
	s.identities = append(s.identities, persisted.ID())
	s.find(version.StageDraft).put(persisted)
	return persisted, nil
}

func (s *Store) ActiveVersion(_ context.Context) (*version.Version, error) {
	return s.snapshot(version.StageActive)
}

func (s *Store) DraftVersion(_ context.Context) (*version.Version, error) {
	return s.snapshot(version.StageDraft)
}

func (s *Store) snapshot(stage version.LifecycleStage) (*version.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.find(stage)
	if rec == nil {
		return nil, fmt.Errorf("%s version: %w", stage, repo.ErrNotFound)
	}
	return rec.snapshot()
}

func (s *Store) UpdateOrCreateDraft(_ context.Context, def *question.Definition) (*question.Definition, error) {
	if !def.IsPersisted() {
		return nil, fmt.Errorf("question %q has no id: %w", def.Name(), repo.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest(def.ID()) == nil {
		return nil, fmt.Errorf("question %d: %w", def.ID(), repo.ErrNotFound)
	}
	s.find(version.StageDraft).put(def)
	return def, nil
}

func (s *Store) Publish(_ context.Context) (*version.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, draft := s.find(version.StageActive), s.find(version.StageDraft)
	if draft == nil {
		return nil, repo.ErrNoDraft
	}

	if active != nil {
		inDraft := make(map[string]struct{}, len(draft.revisions))
		for _, def := range draft.revisions {
			inDraft[def.Name()] = struct{}{}
		}
		for _, def := range active.revisions {
			if _, ok := inDraft[def.Name()]; !ok {
				draft.put(def)
			}
		}
		active.stage = version.StageObsolete
	}

	draft.stage = version.StageActive
	draft.submitTime = s.now().UTC()
	s.openVersion(version.StageDraft)

	return draft.snapshot()
}
