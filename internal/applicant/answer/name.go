package answer

import (
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// NameView is the answer to a NAME question. First and last name are
// required once answered; middle name is optional.
type NameView struct {
	q      *ApplicantQuestion
	first  cached[string]
	middle cached[string]
	last   cached[string]
}

func (q *ApplicantQuestion) AsName() *NameView {
	q.assertType("NAME", question.TypeName)
	return &NameView{q: q}
}

func (v *NameView) FirstNamePath() path.Path  { return v.q.scalarPath(question.ScalarFirstName) }
func (v *NameView) MiddleNamePath() path.Path { return v.q.scalarPath(question.ScalarMiddleName) }
func (v *NameView) LastNamePath() path.Path   { return v.q.scalarPath(question.ScalarLastName) }

func (v *NameView) FirstNameValue() (string, bool) {
	return v.first.get(func() (string, bool) { return v.q.data.ReadString(v.FirstNamePath()) })
}

func (v *NameView) MiddleNameValue() (string, bool) {
	return v.middle.get(func() (string, bool) { return v.q.data.ReadString(v.MiddleNamePath()) })
}

func (v *NameView) LastNameValue() (string, bool) {
	return v.last.get(func() (string, bool) { return v.q.data.ReadString(v.LastNamePath()) })
}

func (v *NameView) HasFirstNameValue() bool {
	_, ok := v.FirstNameValue()
	return ok
}

func (v *NameView) HasMiddleNameValue() bool {
	_, ok := v.MiddleNameValue()
	return ok
}

func (v *NameView) HasLastNameValue() bool {
	_, ok := v.LastNameValue()
	return ok
}

func (v *NameView) FirstNameErrors() []ValidationError {
	if v.q.data.HasPath(v.FirstNamePath()) && !v.HasFirstNameValue() {
		return one(errorf("First name is required."))
	}
	return nil
}

func (v *NameView) LastNameErrors() []ValidationError {
	if v.q.data.HasPath(v.LastNamePath()) && !v.HasLastNameValue() {
		return one(errorf("Last name is required."))
	}
	return nil
}

// QuestionErrors is empty: NAME questions have no configurable rules.
func (v *NameView) QuestionErrors() []ValidationError {
	return nil
}

func (v *NameView) TypeSpecificErrors() []ValidationError {
	return append(v.FirstNameErrors(), v.LastNameErrors()...)
}
