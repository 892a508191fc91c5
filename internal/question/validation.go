package question

// ValidationRules are the admin-configured predicates of a question. Only the
// fields relevant to the question type are honored; the rest must be unset.
type ValidationRules struct {
	MinLength  *int   `json:"min_length,omitempty"`  // TEXT
	MaxLength  *int   `json:"max_length,omitempty"`  // TEXT
	Min        *int64 `json:"min,omitempty"`         // NUMBER
	Max        *int64 `json:"max,omitempty"`         // NUMBER
	MinChoices *int   `json:"min_choices,omitempty"` // CHECKBOX
	MaxChoices *int   `json:"max_choices,omitempty"` // CHECKBOX
}

// TextRules builds length rules; a negative bound means "no bound".
func TextRules(minLength, maxLength int) ValidationRules {
	var r ValidationRules
	if minLength >= 0 {
		r.MinLength = &minLength
	}
	if maxLength >= 0 {
		r.MaxLength = &maxLength
	}
	return r
}

// NumberRules builds value range rules.
func NumberRules(minValue, maxValue *int64) ValidationRules {
	return ValidationRules{Min: copyPtr(minValue), Max: copyPtr(maxValue)}
}

// ChoiceRules builds multi-select count rules; a negative bound means "no bound".
func ChoiceRules(minChoices, maxChoices int) ValidationRules {
	var r ValidationRules
	if minChoices >= 0 {
		r.MinChoices = &minChoices
	}
	if maxChoices >= 0 {
		r.MaxChoices = &maxChoices
	}
	return r
}

func (r ValidationRules) IsZero() bool {
	return r.MinLength == nil && r.MaxLength == nil &&
		r.Min == nil && r.Max == nil &&
		r.MinChoices == nil && r.MaxChoices == nil
}

func (r ValidationRules) clone() ValidationRules {
	return ValidationRules{
		MinLength:  copyPtr(r.MinLength),
		MaxLength:  copyPtr(r.MaxLength),
		Min:        copyPtr(r.Min),
		Max:        copyPtr(r.Max),
		MinChoices: copyPtr(r.MinChoices),
		MaxChoices: copyPtr(r.MaxChoices),
	}
}

func (r ValidationRules) equal(o ValidationRules) bool {
	return ptrEqual(r.MinLength, o.MinLength) && ptrEqual(r.MaxLength, o.MaxLength) &&
		ptrEqual(r.Min, o.Min) && ptrEqual(r.Max, o.Max) &&
		ptrEqual(r.MinChoices, o.MinChoices) && ptrEqual(r.MaxChoices, o.MaxChoices)
}

// validate checks the rules make sense for t.
func (r ValidationRules) validate(t Type) Issues {
	var issues Issues

	if t != TypeText && (r.MinLength != nil || r.MaxLength != nil) {
		issues = issues.With(Issuef("length rules are only allowed on %s questions", TypeText))
	}
	if t != TypeNumber && (r.Min != nil || r.Max != nil) {
		issues = issues.With(Issuef("value rules are only allowed on %s questions", TypeNumber))
	}
	if t != TypeCheckbox && (r.MinChoices != nil || r.MaxChoices != nil) {
		issues = issues.With(Issuef("choice rules are only allowed on %s questions", TypeCheckbox))
	}

	if r.MinLength != nil && *r.MinLength < 0 {
		issues = issues.With(Issuef("minimum length must be non-negative, got %d", *r.MinLength))
	}
	if r.MaxLength != nil && *r.MaxLength < 0 {
		issues = issues.With(Issuef("maximum length must be non-negative, got %d", *r.MaxLength))
	}
	if r.MinLength != nil && r.MaxLength != nil && *r.MinLength > *r.MaxLength {
		issues = issues.With(Issuef("minimum length %d is greater than maximum length %d", *r.MinLength, *r.MaxLength))
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		issues = issues.With(Issuef("minimum value %d is greater than maximum value %d", *r.Min, *r.Max))
	}
	if r.MinChoices != nil && *r.MinChoices < 0 {
		issues = issues.With(Issuef("minimum choices must be non-negative, got %d", *r.MinChoices))
	}
	if r.MaxChoices != nil && *r.MaxChoices < 0 {
		issues = issues.With(Issuef("maximum choices must be non-negative, got %d", *r.MaxChoices))
	}
	if r.MinChoices != nil && r.MaxChoices != nil && *r.MinChoices > *r.MaxChoices {
		issues = issues.With(Issuef("minimum choices %d is greater than maximum choices %d", *r.MinChoices, *r.MaxChoices))
	}

	return issues
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
