package answer

import (
	"slices"

	"github.com/samber/lo"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// SingleSelectView answers DROPDOWN and RADIO_BUTTON questions. The stored
// selection is not checked against the options here; forms only offer
// values from the same option list.
type SingleSelectView struct {
	q         *ApplicantQuestion
	selection cached[string]
}

func (q *ApplicantQuestion) AsSingleSelect() *SingleSelectView {
	q.assertType("SINGLE_SELECT", question.TypeDropdown, question.TypeRadioButton)
	return &SingleSelectView{q: q}
}

func (v *SingleSelectView) SelectionPath() path.Path { return v.q.scalarPath(question.ScalarSelection) }

// Options are the choices in the applicant's preferred locale.
func (v *SingleSelectView) Options() []string {
	return v.q.def.Options().GetOrDefault(v.q.locale())
}

func (v *SingleSelectView) SelectedOptionValue() (string, bool) {
	return v.selection.get(func() (string, bool) { return v.q.data.ReadString(v.SelectionPath()) })
}

func (v *SingleSelectView) HasValue() bool {
	_, ok := v.SelectedOptionValue()
	return ok
}

func (v *SingleSelectView) QuestionErrors() []ValidationError     { return nil }
func (v *SingleSelectView) TypeSpecificErrors() []ValidationError { return nil }

// CheckboxView answers CHECKBOX questions, which allow several options.
type CheckboxView struct {
	q          *ApplicantQuestion
	selections cached[[]string]
}

func (q *ApplicantQuestion) AsCheckbox() *CheckboxView {
	q.assertType("CHECKBOX", question.TypeCheckbox)
	return &CheckboxView{q: q}
}

func (v *CheckboxView) SelectionsPath() path.Path { return v.q.scalarPath(question.ScalarSelections) }

func (v *CheckboxView) Options() []string {
	return v.q.def.Options().GetOrDefault(v.q.locale())
}

func (v *CheckboxView) SelectedOptions() ([]string, bool) {
	return v.selections.get(func() ([]string, bool) { return v.q.data.ReadStringList(v.SelectionsPath()) })
}

func (v *CheckboxView) IsSelected(option string) bool {
	selected, _ := v.SelectedOptions()
	return slices.Contains(selected, option)
}

// QuestionErrors checks the configured number of choices once answered.
func (v *CheckboxView) QuestionErrors() []ValidationError {
	if !v.q.data.HasPath(v.SelectionsPath()) {
		return nil
	}
	selected, _ := v.SelectedOptions()
	rules := v.q.def.Rules()

	var errs []ValidationError
	if rules.MinChoices != nil && len(selected) < *rules.MinChoices {
		errs = append(errs, errorf("Please select at least %d.", *rules.MinChoices))
	}
	if rules.MaxChoices != nil && len(selected) > *rules.MaxChoices {
		errs = append(errs, errorf("Please select at most %d.", *rules.MaxChoices))
	}
	return errs
}

// TypeSpecificErrors reports selections that are not an option in any locale.
func (v *CheckboxView) TypeSpecificErrors() []ValidationError {
	selected, ok := v.SelectedOptions()
	if !ok {
		return nil
	}
	var known []string
	for _, opts := range v.q.def.Options() {
		known = append(known, opts...)
	}
	if unknown := lo.Without(selected, known...); len(unknown) > 0 {
		return one(errorf("Invalid selection."))
	}
	return nil
}
