package answer

import (
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

type NumberView struct {
	q      *ApplicantQuestion
	number cached[int64]
}

func (q *ApplicantQuestion) AsNumber() *NumberView {
	q.assertType("NUMBER", question.TypeNumber)
	return &NumberView{q: q}
}

func (v *NumberView) NumberPath() path.Path { return v.q.scalarPath(question.ScalarNumber) }

// NumberValue is readable even when it violates the question's rules.
func (v *NumberView) NumberValue() (int64, bool) {
	return v.number.get(func() (int64, bool) { return v.q.data.ReadLong(v.NumberPath()) })
}

func (v *NumberView) HasNumberValue() bool {
	_, ok := v.NumberValue()
	return ok
}

func (v *NumberView) QuestionErrors() []ValidationError {
	n, ok := v.NumberValue()
	if !ok {
		return nil
	}
	rules := v.q.def.Rules()

	var errs []ValidationError
	if rules.Min != nil && n < *rules.Min {
		errs = append(errs, errorf("This answer must be at least %d.", *rules.Min))
	}
	if rules.Max != nil && n > *rules.Max {
		errs = append(errs, errorf("This answer must be at most %d.", *rules.Max))
	}
	return errs
}

func (v *NumberView) TypeSpecificErrors() []ValidationError {
	return nil
}
