package answer

import (
	"strings"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// EnumeratorView answers ENUMERATOR questions: a list of named entities,
// each of which is the context of the questions repeated under it.
type EnumeratorView struct {
	q        *ApplicantQuestion
	entities cached[[]string]
}

func (q *ApplicantQuestion) AsEnumerator() *EnumeratorView {
	q.assertType("ENUMERATOR", question.TypeEnumerator)
	return &EnumeratorView{q: q}
}

// EntityNames returns the entity names in order.
func (v *EnumeratorView) EntityNames() []string {
	names, _ := v.entities.get(func() ([]string, bool) {
		names := v.q.data.ReadRepeatedEntities(v.q.ContextualizedPath())
		return names, names != nil
	})
	return names
}

func (v *EnumeratorView) IsAnswered() bool {
	return v.q.data.HasPath(v.q.ContextualizedPath().WithoutArrayReference())
}

// EntityContexts returns one context path per entity, e.g.
// "applicant.members[0]", for binding the repeated questions.
func (v *EnumeratorView) EntityContexts() []path.Path {
	names := v.EntityNames()
	out := make([]path.Path, len(names))
	for i := range names {
		out[i] = v.q.ContextualizedPath().AtIndex(i)
	}
	return out
}

func (v *EnumeratorView) QuestionErrors() []ValidationError {
	return nil
}

// TypeSpecificErrors rejects blank and duplicate entity names.
func (v *EnumeratorView) TypeSpecificErrors() []ValidationError {
	names := v.EntityNames()
	seen := make(map[string]struct{}, len(names))

	var blank, duplicate bool
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			blank = true
			continue
		}
		if _, ok := seen[name]; ok {
			duplicate = true
		}
		seen[name] = struct{}{}
	}

	var errs []ValidationError
	if blank {
		errs = append(errs, errorf("Please enter a value for each line."))
	}
	if duplicate {
		errs = append(errs, errorf("Please enter a unique value for each line."))
	}
	return errs
}
