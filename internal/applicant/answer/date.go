package answer

import (
	"time"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

type DateView struct {
	q    *ApplicantQuestion
	date cached[time.Time]
}

func (q *ApplicantQuestion) AsDate() *DateView {
	q.assertType("DATE", question.TypeDate)
	return &DateView{q: q}
}

func (v *DateView) DatePath() path.Path { return v.q.scalarPath(question.ScalarDateValue) }

func (v *DateView) DateValue() (time.Time, bool) {
	return v.date.get(func() (time.Time, bool) { return v.q.data.ReadDate(v.DatePath()) })
}

func (v *DateView) HasDateValue() bool {
	_, ok := v.DateValue()
	return ok
}

func (v *DateView) QuestionErrors() []ValidationError     { return nil }
func (v *DateView) TypeSpecificErrors() []ValidationError { return nil }
