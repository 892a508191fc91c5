// Package version models tagged snapshots of question definitions.
package version

import (
	"fmt"
	"time"

	"github.com/Alijeyrad/uat_backend/internal/question"
)

// LifecycleStage tags a Version.
type LifecycleStage string

const (
	// StageActive is the last published, immutable snapshot.
	StageActive LifecycleStage = "active"
	// StageDraft is the single in-progress snapshot.
	StageDraft LifecycleStage = "draft"
	// StageObsolete marks a previously active snapshot.
	StageObsolete LifecycleStage = "obsolete"
)

func (s LifecycleStage) Valid() bool {
	switch s {
	case StageActive, StageDraft, StageObsolete:
		return true
	default:
		return false
	}
}

// Version is an immutable, name-keyed set of question definitions.
type Version struct {
	id         int64
	stage      LifecycleStage
	submitTime time.Time
	questions  []*question.Definition
	byName     map[string]int
}

// New builds a version. A later definition with the same name replaces an
// earlier one in place, so the result never holds two entries per name.
func New(id int64, stage LifecycleStage, submitTime time.Time, questions ...*question.Definition) (*Version, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("invalid lifecycle stage %q", stage)
	}
	v := &Version{
		id:         id,
		stage:      stage,
		submitTime: submitTime,
		byName:     make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if q == nil {
			continue
		}
		if i, ok := v.byName[q.Name()]; ok {
			v.questions[i] = q
			continue
		}
		v.byName[q.Name()] = len(v.questions)
		v.questions = append(v.questions, q)
	}
	return v, nil
}

// MustNew is New for fixtures with a known-good stage.
func MustNew(id int64, stage LifecycleStage, questions ...*question.Definition) *Version {
	v, err := New(id, stage, time.Time{}, questions...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Version) ID() int64                      { return v.id }
func (v *Version) LifecycleStage() LifecycleStage { return v.stage }
func (v *Version) SubmitTime() time.Time          { return v.submitTime }

// Questions returns the definitions in insertion order.
func (v *Version) Questions() []*question.Definition {
	out := make([]*question.Definition, len(v.questions))
	copy(out, v.questions)
	return out
}

func (v *Version) QuestionByName(name string) (*question.Definition, bool) {
	i, ok := v.byName[name]
	if !ok {
		return nil, false
	}
	return v.questions[i], true
}

func (v *Version) QuestionByID(id int64) (*question.Definition, bool) {
	for _, q := range v.questions {
		if q.ID() == id {
			return q, true
		}
	}
	return nil, false
}

func (v *Version) Len() int {
	return len(v.questions)
}
