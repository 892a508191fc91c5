package question

import (
	"encoding/json"
	"fmt"
)

// definitionJSON is the storage and interchange shape of a Definition.
type definitionJSON struct {
	ID           int64            `json:"id,omitempty"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	EnumeratorID *int64           `json:"enumerator_id,omitempty"`
	PathSegment  string           `json:"path_segment"`
	Type         string           `json:"type"`
	QuestionText LocalizedStrings `json:"question_text"`
	HelpText     LocalizedStrings `json:"help_text,omitempty"`
	Rules        *ValidationRules `json:"validation,omitempty"`
	Options      LocalizedOptions `json:"options,omitempty"`
}

func (d *Definition) MarshalJSON() ([]byte, error) {
	w := definitionJSON{
		ID:           d.id,
		Name:         d.name,
		Description:  d.description,
		EnumeratorID: d.enumeratorID,
		PathSegment:  d.pathSegment,
		Type:         string(d.qtype),
		QuestionText: d.questionText,
		HelpText:     d.helpText,
		Options:      d.options,
	}
	if !d.rules.IsZero() {
		rules := d.rules
		w.Rules = &rules
	}
	return json.Marshal(w)
}

func (d *Definition) UnmarshalJSON(b []byte) error {
	var w definitionJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t, err := ParseType(w.Type)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, w.Type)
	}

	builder := NewBuilder().
		SetID(w.ID).
		SetName(w.Name).
		SetDescription(w.Description).
		SetPathSegment(w.PathSegment).
		SetType(t).
		SetQuestionText(w.QuestionText).
		SetHelpText(w.HelpText).
		SetOptions(w.Options)
	if w.EnumeratorID != nil {
		builder.SetEnumeratorID(*w.EnumeratorID)
	}
	if w.Rules != nil {
		builder.SetRules(*w.Rules)
	}

	built, err := builder.Build()
	if err != nil {
		return err
	}
	*d = *built
	return nil
}
