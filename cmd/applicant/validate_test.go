package applicant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/applicant/answer"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

func TestValidate(t *testing.T) {
	color := question.NewBuilder().
		SetID(1).
		SetName("color").
		SetDescription("favorite color").
		SetPathSegment("color").
		SetType(question.TypeText).
		SetQuestionText(question.LocalizedStrings{language.AmericanEnglish: "What is your favorite color?"}).
		SetRules(question.TextRules(3, -1)).
		MustBuild()

	data, err := applicant.FromJSON(uuid.New(), []byte(`{"applicant":{"color":{"text":"re"}}}`))
	require.NoError(t, err)

	results := Validate(answer.Bind([]*question.Definition{color}, data))
	require.Len(t, results, 1)
	assert.Equal(t, "applicant.color", results[0].Path)
	assert.Equal(t, "What is your favorite color?", results[0].Text)
	assert.NotEmpty(t, results[0].Errors)
	assert.True(t, failed(results))

	assert.False(t, failed([]Result{{Errors: []string{}}}))
}
