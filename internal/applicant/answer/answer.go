// Package answer binds a question definition to an applicant document and
// validates the stored answer according to the question type.
//
// Views are single-use: they cache every scalar read, so a view built before
// a write to the document keeps reporting the old value.
package answer

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

const defaultPhoneRegion = "US"

// View is implemented by every typed answer view.
type View interface {
	// QuestionErrors are violations of rules the administrator configured.
	QuestionErrors() []ValidationError
	// TypeSpecificErrors are structural problems of the answer itself.
	TypeSpecificErrors() []ValidationError
}

// Option configures an ApplicantQuestion.
type Option func(*ApplicantQuestion)

// WithPhoneRegion sets the ISO 3166-1 region phone answers are parsed in.
func WithPhoneRegion(region string) Option {
	return func(q *ApplicantQuestion) {
		if region != "" {
			q.phoneRegion = region
		}
	}
}

// ApplicantQuestion is one question as seen by one applicant.
type ApplicantQuestion struct {
	def         *question.Definition
	data        *applicant.Data
	context     path.Path
	phoneRegion string
	view        View
}

// New binds def to data. context is where the question lives: the applicant
// root, or one repeated entity of an enumerator such as "applicant.members[1]".
// An empty context means the applicant root.
func New(def *question.Definition, data *applicant.Data, context path.Path, opts ...Option) *ApplicantQuestion {
	if context.IsEmpty() {
		context = path.Applicant()
	}
	q := &ApplicantQuestion{
		def:         def,
		data:        data,
		context:     context,
		phoneRegion: defaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *ApplicantQuestion) Definition() *question.Definition { return q.def }
func (q *ApplicantQuestion) Data() *applicant.Data           { return q.data }
func (q *ApplicantQuestion) Type() question.Type              { return q.def.Type() }

// ContextualizedPath is the question's path below its context.
func (q *ApplicantQuestion) ContextualizedPath() path.Path {
	return q.def.Path(q.context)
}

func (q *ApplicantQuestion) scalarPath(scalar string) path.Path {
	return q.def.ScalarPath(q.context, scalar)
}

// QuestionText is the prompt in the applicant's preferred locale.
func (q *ApplicantQuestion) QuestionText() string {
	return q.def.QuestionText().GetOrDefault(q.locale())
}

// HelpText is the help text in the applicant's preferred locale.
func (q *ApplicantQuestion) HelpText() string {
	return q.def.HelpText().GetOrDefault(q.locale())
}

func (q *ApplicantQuestion) locale() language.Tag {
	return q.data.PreferredLocale()
}

// View returns the typed view for the question's type. The view is built
// once, so repeated error checks share its cached reads.
func (q *ApplicantQuestion) View() View {
	if q.view == nil {
		q.view = q.newView()
	}
	return q.view
}

func (q *ApplicantQuestion) newView() View {
	switch q.def.Type() {
	case question.TypeAddress:
		return q.AsAddress()
	case question.TypeCheckbox:
		return q.AsCheckbox()
	case question.TypeDate:
		return q.AsDate()
	case question.TypeDropdown, question.TypeRadioButton:
		return q.AsSingleSelect()
	case question.TypeEnumerator:
		return q.AsEnumerator()
	case question.TypeName:
		return q.AsName()
	case question.TypeNumber:
		return q.AsNumber()
	case question.TypePhone:
		return q.AsPhone()
	case question.TypeText:
		return q.AsText()
	default:
		panic(fmt.Sprintf("no answer view for question type %q", q.def.Type()))
	}
}

// Errors returns question errors followed by type-specific errors.
func (q *ApplicantQuestion) Errors() []ValidationError {
	v := q.View()
	return append(v.QuestionErrors(), v.TypeSpecificErrors()...)
}

func (q *ApplicantQuestion) HasErrors() bool {
	return len(q.Errors()) > 0
}

func (q *ApplicantQuestion) HasQuestionErrors() bool {
	return len(q.View().QuestionErrors()) > 0
}

func (q *ApplicantQuestion) HasTypeSpecificErrors() bool {
	return len(q.View().TypeSpecificErrors()) > 0
}

// assertType panics when a typed view is requested for the wrong question.
func (q *ApplicantQuestion) assertType(view string, types ...question.Type) {
	for _, t := range types {
		if q.def.Type() == t {
			return
		}
	}
	panic(fmt.Sprintf("question is not a %s question: %s (type: %s)", view, q.ContextualizedPath(), q.def.Type()))
}
