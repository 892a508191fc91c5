// Package catalog merges the active and draft versions into the read-only
// view that forms are built from.
package catalog

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

// Catalog is an immutable overlay of a draft version on top of an active one.
// Draft entries win both by id and by name.
type Catalog struct {
	questionsByID map[int64]*question.Definition
	allOrder      []int64
	upToDate      []*question.Definition
	activeDraft   *ActiveAndDraft
}

// New merges active and draft. Passing versions with the wrong lifecycle
// stage is a caller bug and fails with ErrLifecycleStage.
func New(active, draft *version.Version) (*Catalog, error) {
	if active == nil || draft == nil {
		return nil, ErrMissingVersion
	}
	if active.LifecycleStage() != version.StageActive {
		return nil, fmt.Errorf("%w: supposedly active version %d is %s", ErrLifecycleStage, active.ID(), active.LifecycleStage())
	}
	if draft.LifecycleStage() != version.StageDraft {
		return nil, fmt.Errorf("%w: supposedly draft version %d is %s", ErrLifecycleStage, draft.ID(), draft.LifecycleStage())
	}

	c := &Catalog{
		questionsByID: make(map[int64]*question.Definition, active.Len()+draft.Len()),
		activeDraft:   newActiveAndDraft(active, draft),
	}

	namesInDraft := make(map[string]struct{}, draft.Len())
	for _, q := range draft.Questions() {
		c.record(q)
		namesInDraft[q.Name()] = struct{}{}
		c.upToDate = append(c.upToDate, q)
	}
	for _, q := range active.Questions() {
		c.record(q)
		if _, shadowed := namesInDraft[q.Name()]; !shadowed {
			c.upToDate = append(c.upToDate, q)
		}
	}

	return c, nil
}

// record indexes q by id unless an earlier (draft) entry already holds it.
func (c *Catalog) record(q *question.Definition) {
	if _, seen := c.questionsByID[q.ID()]; seen {
		return
	}
	c.questionsByID[q.ID()] = q
	c.allOrder = append(c.allOrder, q.ID())
}

// AllQuestions returns one definition per id, draft first.
func (c *Catalog) AllQuestions() []*question.Definition {
	return lo.Map(c.allOrder, func(id int64, _ int) *question.Definition { return c.questionsByID[id] })
}

// UpToDateQuestions returns the draft's questions plus active questions whose
// name the draft does not hold.
func (c *Catalog) UpToDateQuestions() []*question.Definition {
	out := make([]*question.Definition, len(c.upToDate))
	copy(out, c.upToDate)
	return out
}

func (c *Catalog) UpToDateEnumeratorQuestions() []*question.Definition {
	return lo.Filter(c.upToDate, isEnumerator)
}

func (c *Catalog) AllEnumeratorQuestions() []*question.Definition {
	return lo.Filter(c.AllQuestions(), isEnumerator)
}

// QuestionDefinition looks a question up by id.
func (c *Catalog) QuestionDefinition(id int64) (*question.Definition, error) {
	q, ok := c.questionsByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
	}
	return q, nil
}

// ActiveAndDraft pairs each question name with its active and draft entries.
func (c *Catalog) ActiveAndDraft() *ActiveAndDraft {
	return c.activeDraft
}

func isEnumerator(q *question.Definition, _ int) bool {
	return q.IsEnumerator()
}
