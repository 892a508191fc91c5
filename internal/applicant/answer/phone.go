package answer

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// PhoneView answers PHONE questions. Numbers without a country code are
// read in the configured region.
type PhoneView struct {
	q     *ApplicantQuestion
	phone cached[string]
}

func (q *ApplicantQuestion) AsPhone() *PhoneView {
	q.assertType("PHONE", question.TypePhone)
	return &PhoneView{q: q}
}

func (v *PhoneView) PhonePath() path.Path { return v.q.scalarPath(question.ScalarPhone) }

func (v *PhoneView) PhoneValue() (string, bool) {
	return v.phone.get(func() (string, bool) { return v.q.data.ReadString(v.PhonePath()) })
}

func (v *PhoneView) HasPhoneValue() bool {
	_, ok := v.PhoneValue()
	return ok
}

// E164 returns the stored number normalized, e.g. "+12025550123".
func (v *PhoneView) E164() (string, bool) {
	num, ok := v.parse()
	if !ok {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

func (v *PhoneView) parse() (*phonenumbers.PhoneNumber, bool) {
	raw, ok := v.PhoneValue()
	if !ok {
		return nil, false
	}
	num, err := phonenumbers.Parse(raw, v.q.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, false
	}
	return num, true
}

func (v *PhoneView) QuestionErrors() []ValidationError {
	return nil
}

func (v *PhoneView) TypeSpecificErrors() []ValidationError {
	if !v.HasPhoneValue() {
		return nil
	}
	if _, ok := v.parse(); !ok {
		return one(errorf("Invalid phone number."))
	}
	return nil
}
