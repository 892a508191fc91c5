package answer

import (
	"unicode/utf8"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

type TextView struct {
	q    *ApplicantQuestion
	text cached[string]
}

func (q *ApplicantQuestion) AsText() *TextView {
	q.assertType("TEXT", question.TypeText)
	return &TextView{q: q}
}

func (v *TextView) TextPath() path.Path { return v.q.scalarPath(question.ScalarText) }

func (v *TextView) TextValue() (string, bool) {
	return v.text.get(func() (string, bool) { return v.q.data.ReadString(v.TextPath()) })
}

func (v *TextView) HasTextValue() bool {
	_, ok := v.TextValue()
	return ok
}

// QuestionErrors checks the configured length bounds, counted in characters.
// An unanswered question has no errors.
func (v *TextView) QuestionErrors() []ValidationError {
	text, ok := v.TextValue()
	if !ok {
		return nil
	}
	rules := v.q.def.Rules()
	n := utf8.RuneCountInString(text)

	var errs []ValidationError
	if rules.MinLength != nil && n < *rules.MinLength {
		errs = append(errs, errorf("This answer must be at least %d characters long.", *rules.MinLength))
	}
	if rules.MaxLength != nil && n > *rules.MaxLength {
		errs = append(errs, errorf("This answer must be at most %d characters long.", *rules.MaxLength))
	}
	return errs
}

func (v *TextView) TypeSpecificErrors() []ValidationError {
	return nil
}
