package answer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

func newDef(t question.Type, segment string) *question.Builder {
	return question.NewBuilder().
		SetID(1).
		SetName(segment).
		SetDescription("description").
		SetPathSegment(segment).
		SetType(t).
		SetQuestionText(question.LocalizedStrings{
			language.AmericanEnglish: "In English",
			language.Spanish:         "En español",
		}).
		SetHelpText(question.LocalizedStrings{language.AmericanEnglish: "help"})
}

func int64Ptr(v int64) *int64 { return &v }

func TestName_RequiredOnlyOnceAnswered(t *testing.T) {
	def := newDef(question.TypeName, "name").MustBuild()

	data := applicant.New()
	view := New(def, data, path.Path{}).AsName()
	assert.Empty(t, view.FirstNameErrors(), "never written")
	assert.Empty(t, view.LastNameErrors())

	data.PutString(path.Create("applicant.name.first"), "")
	data.PutString(path.Create("applicant.name.last"), "Lovelace")

	view = New(def, data, path.Path{}).AsName()
	assert.Equal(t, []string{"First name is required."}, Messages(view.FirstNameErrors()))
	assert.Empty(t, view.LastNameErrors())
	assert.False(t, view.HasMiddleNameValue())
	assert.Empty(t, view.QuestionErrors())

	q := New(def, data, path.Path{})
	assert.True(t, q.HasErrors())
	assert.True(t, q.HasTypeSpecificErrors())
	assert.False(t, q.HasQuestionErrors())
}

func TestView_CachesFirstRead(t *testing.T) {
	def := newDef(question.TypeText, "color").MustBuild()
	data := applicant.New()
	data.PutString(path.Create("applicant.color.text"), "blue")

	view := New(def, data, path.Path{}).AsText()
	got, ok := view.TextValue()
	require.True(t, ok)
	assert.Equal(t, "blue", got)

	data.PutString(path.Create("applicant.color.text"), "green")
	got, _ = view.TextValue()
	assert.Equal(t, "blue", got, "a view keeps its first read")

	got, _ = New(def, data, path.Path{}).AsText().TextValue()
	assert.Equal(t, "green", got)
}

func TestApplicantQuestion_ErrorChecksShareOneView(t *testing.T) {
	def := newDef(question.TypeText, "color").SetRules(question.TextRules(3, -1)).MustBuild()
	data := applicant.New()
	data.PutString(path.Create("applicant.color.text"), "ab")

	q := New(def, data, path.Path{})
	assert.Same(t, q.View(), q.View())
	require.True(t, q.HasQuestionErrors())

	data.PutString(path.Create("applicant.color.text"), "abcd")
	assert.True(t, q.HasErrors(), "later checks reuse the first read")
	assert.Len(t, q.Errors(), 1)
	assert.False(t, New(def, data, path.Path{}).HasErrors())
}

func TestText_LengthRules(t *testing.T) {
	def := newDef(question.TypeText, "nickname").SetRules(question.TextRules(3, 5)).MustBuild()

	tests := []struct {
		value string
		want  []string
	}{
		{"ab", []string{"This answer must be at least 3 characters long."}},
		{"abcd", []string{}},
		{"ñandú", []string{}},
		{"abcdef", []string{"This answer must be at most 5 characters long."}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			data := applicant.New()
			data.PutString(path.Create("applicant.nickname.text"), tt.value)
			assert.Equal(t, tt.want, Messages(New(def, data, path.Path{}).AsText().QuestionErrors()))
		})
	}

	assert.Empty(t, New(def, applicant.New(), path.Path{}).AsText().QuestionErrors())
}

func TestNumber_RangeDoesNotHideValue(t *testing.T) {
	def := newDef(question.TypeNumber, "income").
		SetRules(question.NumberRules(nil, int64Ptr(100))).
		MustBuild()

	data := applicant.New()
	data.PutLong(path.Create("applicant.income.number"), 1000000)

	view := New(def, data, path.Path{}).AsNumber()
	assert.Equal(t, []string{"This answer must be at most 100."}, Messages(view.QuestionErrors()))
	got, ok := view.NumberValue()
	require.True(t, ok)
	assert.Equal(t, int64(1000000), got)
}

func TestNumber_ReadsDecodedDocument(t *testing.T) {
	def := newDef(question.TypeNumber, "age").
		SetRules(question.NumberRules(int64Ptr(18), nil)).
		MustBuild()

	data, err := applicant.FromJSON(applicant.New().ID(), []byte(`{"applicant":{"age":{"number":17}}}`))
	require.NoError(t, err)

	view := New(def, data, path.Path{}).AsNumber()
	assert.Equal(t, []string{"This answer must be at least 18."}, Messages(view.QuestionErrors()))
}

func TestAddress_ZipAndRequired(t *testing.T) {
	def := newDef(question.TypeAddress, "home").MustBuild()

	data := applicant.New()
	data.PutString(path.Create("applicant.home.street"), "1 Main St")
	data.PutString(path.Create("applicant.home.city"), "")
	data.PutString(path.Create("applicant.home.zip"), "not a zip code")

	view := New(def, data, path.Path{}).AsAddress()
	assert.Equal(t, []string{"Invalid zip code."}, Messages(view.ZipErrors()))
	assert.Equal(t, []string{"City is required."}, Messages(view.CityErrors()))
	assert.Empty(t, view.StreetErrors())
	assert.Empty(t, view.StateErrors(), "state never written")

	data = applicant.New()
	data.PutString(path.Create("applicant.home.zip"), "98101-1234")
	assert.Empty(t, New(def, data, path.Path{}).AsAddress().ZipErrors())

	data.PutString(path.Create("applicant.home.zip"), "")
	assert.Equal(t, []string{"Zip code is required."}, Messages(New(def, data, path.Path{}).AsAddress().ZipErrors()))
}

func TestSingleSelect_LocalizedOptions(t *testing.T) {
	def := newDef(question.TypeDropdown, "color").
		SetOptions(question.LocalizedOptions{
			language.AmericanEnglish: {"red", "blue"},
			language.Spanish:         {"rojo", "azul"},
		}).
		MustBuild()

	data := applicant.New()
	data.SetPreferredLocale(language.Spanish)
	data.PutString(path.Create("applicant.color.selection"), "azul")

	q := New(def, data, path.Path{})
	view := q.AsSingleSelect()
	assert.Equal(t, []string{"rojo", "azul"}, view.Options())
	got, ok := view.SelectedOptionValue()
	require.True(t, ok)
	assert.Equal(t, "azul", got)
	assert.Equal(t, "En español", q.QuestionText())
	assert.Equal(t, "help", q.HelpText(), "falls back to the default locale")
	assert.False(t, q.HasErrors())
}

func TestCheckbox(t *testing.T) {
	def := newDef(question.TypeCheckbox, "pets").
		SetOptions(question.LocalizedOptions{language.AmericanEnglish: {"cat", "dog", "fish"}}).
		SetRules(question.ChoiceRules(1, 2)).
		MustBuild()

	tests := []struct {
		name         string
		selections   []string
		wantQuestion []string
		wantType     []string
	}{
		{"none selected", []string{}, []string{"Please select at least 1."}, []string{}},
		{"within range", []string{"cat"}, []string{}, []string{}},
		{"too many", []string{"cat", "dog", "fish"}, []string{"Please select at most 2."}, []string{}},
		{"unknown option", []string{"snake"}, []string{}, []string{"Invalid selection."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := applicant.New()
			data.PutStringList(path.Create("applicant.pets.selections"), tt.selections)

			view := New(def, data, path.Path{}).AsCheckbox()
			assert.Equal(t, tt.wantQuestion, Messages(view.QuestionErrors()))
			assert.Equal(t, tt.wantType, Messages(view.TypeSpecificErrors()))
		})
	}

	assert.Empty(t, New(def, applicant.New(), path.Path{}).AsCheckbox().QuestionErrors())
}

func TestDate(t *testing.T) {
	def := newDef(question.TypeDate, "birthday").MustBuild()
	data := applicant.New()
	data.PutDate(path.Create("applicant.birthday.date"), time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC))

	got, ok := New(def, data, path.Path{}).AsDate().DateValue()
	require.True(t, ok)
	assert.Equal(t, 1990, got.Year())
	assert.Equal(t, time.April, got.Month())
}

func TestPhone(t *testing.T) {
	def := newDef(question.TypePhone, "contact").MustBuild()

	data := applicant.New()
	data.PutString(path.Create("applicant.contact.phone"), "(650) 253-0000")
	view := New(def, data, path.Path{}).AsPhone()
	assert.Empty(t, view.TypeSpecificErrors())
	e164, ok := view.E164()
	require.True(t, ok)
	assert.Equal(t, "+16502530000", e164)

	data.PutString(path.Create("applicant.contact.phone"), "12")
	assert.Equal(t, []string{"Invalid phone number."}, Messages(New(def, data, path.Path{}).AsPhone().TypeSpecificErrors()))

	data.PutString(path.Create("applicant.contact.phone"), "030 123456")
	view = New(def, data, path.Path{}, WithPhoneRegion("DE")).AsPhone()
	assert.Empty(t, view.TypeSpecificErrors())
}

func TestEnumerator(t *testing.T) {
	enum := newDef(question.TypeEnumerator, "members").MustBuild()
	nested := newDef(question.TypeText, "job").SetID(2).SetEnumeratorID(1).MustBuild()

	data := applicant.New()
	data.PutRepeatedEntities(path.Create("applicant.members[]"), []string{"Ada", "", "Ada"})

	q := New(enum, data, path.Path{})
	assert.Equal(t, "applicant.members[]", q.ContextualizedPath().String())

	view := q.AsEnumerator()
	assert.Equal(t, []string{"Ada", "", "Ada"}, view.EntityNames())
	assert.True(t, view.IsAnswered())
	assert.Equal(t,
		[]string{"Please enter a value for each line.", "Please enter a unique value for each line."},
		Messages(view.TypeSpecificErrors()),
	)

	contexts := view.EntityContexts()
	require.Len(t, contexts, 3)
	assert.Equal(t, "applicant.members[1]", contexts[1].String())

	data.PutString(nested.ScalarPath(contexts[0], question.ScalarText), "engineer")
	text, ok := New(nested, data, contexts[0]).AsText().TextValue()
	require.True(t, ok)
	assert.Equal(t, "engineer", text)
	assert.Equal(t, []string{"Ada", "", "Ada"}, New(enum, data, path.Path{}).AsEnumerator().EntityNames(),
		"nested answers do not disturb entity names")
}

func TestTypedViewPanicsOnMismatch(t *testing.T) {
	q := New(newDef(question.TypeText, "color").MustBuild(), applicant.New(), path.Path{})

	assert.Panics(t, func() { q.AsName() })
	assert.Panics(t, func() { q.AsAddress() })
	assert.Panics(t, func() { q.AsSingleSelect() })
	assert.NotPanics(t, func() { q.AsText() })
}

func TestViewDispatch(t *testing.T) {
	for _, typ := range question.Types() {
		b := newDef(typ, "q")
		if typ.HasOptions() {
			b.SetOptions(question.LocalizedOptions{language.AmericanEnglish: {"a"}})
		}
		q := New(b.MustBuild(), applicant.New(), path.Path{})
		assert.NotPanics(t, func() { _ = q.View() }, "type %s", typ)
		assert.False(t, q.HasErrors(), "empty document for %s", typ)
	}
}
