package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

func TestBind_RepeatsUnderEachEntity(t *testing.T) {
	color := newDef(question.TypeText, "color").SetID(1).MustBuild()
	members := newDef(question.TypeEnumerator, "members").SetID(2).MustBuild()
	job := newDef(question.TypeText, "job").SetID(3).SetEnumeratorID(2).MustBuild()
	pets := newDef(question.TypeEnumerator, "pets").SetID(4).SetEnumeratorID(2).MustBuild()
	petName := newDef(question.TypeText, "pet_name").SetID(5).SetEnumeratorID(4).MustBuild()
	orphan := newDef(question.TypeText, "orphan").SetID(6).SetEnumeratorID(99).MustBuild()

	data := applicant.New()
	data.PutRepeatedEntities(path.Create("applicant.members[]"), []string{"Ada", "Grace"})
	data.PutRepeatedEntities(path.Create("applicant.members[1].pets[]"), []string{"Rex"})

	bound := Bind([]*question.Definition{petName, job, color, members, pets, orphan}, data)

	got := make([]string, 0, len(bound))
	for _, q := range bound {
		got = append(got, q.ContextualizedPath().String())
	}
	assert.Equal(t, []string{
		"applicant.color",
		"applicant.members[]",
		"applicant.members[0].job",
		"applicant.members[0].pets[]",
		"applicant.members[1].job",
		"applicant.members[1].pets[]",
		"applicant.members[1].pets[0].pet_name",
	}, got)
}

func TestBind_NoEntitiesNoRepeats(t *testing.T) {
	members := newDef(question.TypeEnumerator, "members").SetID(2).MustBuild()
	job := newDef(question.TypeText, "job").SetID(3).SetEnumeratorID(2).MustBuild()

	bound := Bind([]*question.Definition{members, job}, applicant.New())
	require.Len(t, bound, 1)
	assert.Same(t, members, bound[0].Definition())
}
