package applicant

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/path"
)

func TestPutAndReadString(t *testing.T) {
	d := New()
	p := path.Create("applicant.name.first")

	_, ok := d.ReadString(p)
	assert.False(t, ok)
	assert.False(t, d.HasPath(p))

	d.PutString(p, "Alice")
	got, ok := d.ReadString(p)
	require.True(t, ok)
	assert.Equal(t, "Alice", got)

	d.PutString(p, "Bob")
	got, _ = d.ReadString(p)
	assert.Equal(t, "Bob", got, "last write wins")
}

func TestEmptyStringIsAnsweredWithoutValue(t *testing.T) {
	d := New()
	p := path.Create("applicant.name.first")

	d.PutString(p, "")

	assert.True(t, d.HasPath(p))
	assert.False(t, d.HasValueAtPath(p))
	_, ok := d.ReadString(p)
	assert.False(t, ok)
}

func TestTypeMismatchReadsAsAbsent(t *testing.T) {
	d := New()
	num := path.Create("applicant.age.number")
	text := path.Create("applicant.nickname.text")

	d.PutLong(num, 42)
	d.PutString(text, "forty-two")

	_, ok := d.ReadString(num)
	assert.False(t, ok)
	_, ok = d.ReadLong(text)
	assert.False(t, ok)
	_, ok = d.ReadDate(text)
	assert.False(t, ok)

	n, ok := d.ReadLong(num)
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
}

func TestDates(t *testing.T) {
	d := New()
	p := path.Create("applicant.birthday.date")

	d.PutDate(p, time.Date(1990, time.March, 14, 15, 0, 0, 0, time.UTC))

	got, ok := d.ReadDate(p)
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestRepeatedEntities(t *testing.T) {
	d := New()
	members := path.Create("applicant.members[]")

	d.PutRepeatedEntities(members, []string{"Ann", "Ben", "Cat"})
	d.PutString(members.AtIndex(1).Join("name.first"), "Benjamin")

	assert.Equal(t, []string{"Ann", "Ben", "Cat"}, d.ReadRepeatedEntities(members))

	d.PutRepeatedEntities(members, []string{"Ann", "Ben"})
	assert.Equal(t, []string{"Ann", "Ben"}, d.ReadRepeatedEntities(members))

	first, ok := d.ReadString(members.AtIndex(1).Join("name.first"))
	require.True(t, ok, "nested answers survive a rename")
	assert.Equal(t, "Benjamin", first)

	_, ok = d.ReadString(members.Join("name.first"))
	assert.False(t, ok, "unbound array paths never resolve")
}

func TestIndexedWriteCreatesIntermediateEntities(t *testing.T) {
	d := New()
	p := path.Create("applicant.jobs[2].employer.text")

	d.PutString(p, "ACME")

	got, ok := d.ReadString(p)
	require.True(t, ok)
	assert.Equal(t, "ACME", got)
	assert.Len(t, d.ReadRepeatedEntities(path.Create("applicant.jobs")), 3)
}

func TestStringList(t *testing.T) {
	d := New()
	p := path.Create("applicant.colors.selections")

	d.PutStringList(p, []string{"red", "blue"})

	got, ok := d.ReadStringList(p)
	require.True(t, ok)
	assert.Equal(t, []string{"red", "blue"}, got)
	assert.True(t, d.HasValueAtPath(p))
}

func TestJSONRoundTripKeepsIntegers(t *testing.T) {
	d := New()
	d.PutLong(path.Create("applicant.income.number"), 1000000)
	d.PutString(path.Create("applicant.name.first"), "")
	d.SetPreferredLocale(language.French)

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	loaded, err := FromJSON(uuid.New(), raw)
	require.NoError(t, err)

	n, ok := loaded.ReadLong(path.Create("applicant.income.number"))
	require.True(t, ok)
	assert.Equal(t, int64(1000000), n)
	assert.True(t, loaded.HasPath(path.Create("applicant.name.first")))
	assert.Equal(t, language.French, loaded.PreferredLocale())
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON(uuid.New(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPreferredLocaleDefault(t *testing.T) {
	assert.Equal(t, language.AmericanEnglish, New().PreferredLocale())
}
