package question

import "fmt"

// Builder assembles a Definition. A Builder is single-use scratch space;
// Build copies everything so later setter calls never leak into a built value.
type Builder struct {
	d Definition
}

func NewBuilder() *Builder {
	return &Builder{d: Definition{
		questionText: LocalizedStrings{},
		helpText:     LocalizedStrings{},
		options:      LocalizedOptions{},
	}}
}

// BuilderFrom seeds a builder with every field of d.
func BuilderFrom(d *Definition) *Builder {
	b := NewBuilder()
	b.d = *d
	b.d.enumeratorID = copyPtr(d.enumeratorID)
	b.d.questionText = d.questionText.clone()
	b.d.helpText = d.helpText.clone()
	b.d.rules = d.rules.clone()
	b.d.options = d.options.clone()
	return b
}

func (b *Builder) SetID(id int64) *Builder {
	b.d.id = id
	return b
}

func (b *Builder) SetName(name string) *Builder {
	b.d.name = name
	return b
}

func (b *Builder) SetDescription(description string) *Builder {
	b.d.description = description
	return b
}

func (b *Builder) SetEnumeratorID(id int64) *Builder {
	b.d.enumeratorID = &id
	return b
}

func (b *Builder) ClearEnumeratorID() *Builder {
	b.d.enumeratorID = nil
	return b
}

func (b *Builder) SetPathSegment(segment string) *Builder {
	b.d.pathSegment = segment
	return b
}

func (b *Builder) SetType(t Type) *Builder {
	b.d.qtype = t
	return b
}

func (b *Builder) SetQuestionText(text LocalizedStrings) *Builder {
	b.d.questionText = text.clone()
	return b
}

func (b *Builder) SetHelpText(text LocalizedStrings) *Builder {
	b.d.helpText = text.clone()
	return b
}

func (b *Builder) SetRules(rules ValidationRules) *Builder {
	b.d.rules = rules.clone()
	return b
}

func (b *Builder) SetOptions(options LocalizedOptions) *Builder {
	b.d.options = options.clone()
	return b
}

// Build produces the definition. It fails only when the type is unknown;
// field-level problems are reported by Definition.Validate.
func (b *Builder) Build() (*Definition, error) {
	if !b.d.qtype.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, b.d.qtype)
	}
	built := *BuilderFrom(&b.d)
	return &built.d, nil
}

// MustBuild is Build for fixtures and tests.
func (b *Builder) MustBuild() *Definition {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
