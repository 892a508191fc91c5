// Package question describes administrator-defined questions.
//
// A Definition is an immutable value. Edits never mutate a Definition; they
// go through a Builder seeded from the existing value and produce a new one.
package question

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Alijeyrad/uat_backend/internal/path"
)

var ErrUnsupportedType = errors.New("unsupported question type")

var pathSegmentPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Definition describes one question. The zero ID marks a definition that
// has not been persisted yet.
type Definition struct {
	id           int64
	name         string
	description  string
	enumeratorID *int64
	pathSegment  string
	qtype        Type
	questionText LocalizedStrings
	helpText     LocalizedStrings
	rules        ValidationRules
	options      LocalizedOptions
}

func (d *Definition) ID() int64 { return d.id }

// IsPersisted reports whether the definition has a backing identity.
func (d *Definition) IsPersisted() bool { return d.id != 0 }

func (d *Definition) Name() string        { return d.name }
func (d *Definition) Description() string { return d.description }
func (d *Definition) PathSegment() string { return d.pathSegment }
func (d *Definition) Type() Type          { return d.qtype }

// EnumeratorID is the enumerator question this one repeats under, if any.
func (d *Definition) EnumeratorID() (int64, bool) {
	if d.enumeratorID == nil {
		return 0, false
	}
	return *d.enumeratorID, true
}

func (d *Definition) QuestionText() LocalizedStrings { return d.questionText.clone() }
func (d *Definition) HelpText() LocalizedStrings     { return d.helpText.clone() }
func (d *Definition) Rules() ValidationRules         { return d.rules.clone() }
func (d *Definition) Options() LocalizedOptions      { return d.options.clone() }

func (d *Definition) IsEnumerator() bool {
	return d.qtype == TypeEnumerator
}

// Path is where this question's answers live below context, which is the
// applicant root or a repeated entity such as "applicant.members[1]".
// Enumerator paths end with an unbound array marker.
func (d *Definition) Path(context path.Path) path.Path {
	p := context.Join(d.pathSegment)
	if d.IsEnumerator() {
		return p.AsArrayElement()
	}
	return p
}

// ScalarPath is the path of one named scalar of this question below context.
func (d *Definition) ScalarPath(context path.Path, scalar string) path.Path {
	return d.Path(context).Join(scalar)
}

// Validate runs field-level checks and returns every problem found.
func (d *Definition) Validate() Issues {
	var issues Issues

	if strings.TrimSpace(d.name) == "" {
		issues = issues.With(Issuef("blank name"))
	}
	if strings.TrimSpace(d.description) == "" {
		issues = issues.With(Issuef("blank description"))
	}
	if d.questionText.IsEmpty() {
		issues = issues.With(Issuef("no question text"))
	}
	if !pathSegmentPattern.MatchString(d.pathSegment) {
		issues = issues.With(Issuef("invalid path segment %q: use lowercase letters, digits and underscores", d.pathSegment))
	}
	if !d.qtype.Valid() {
		issues = issues.With(Issuef("missing question type"))
	}
	if d.enumeratorID != nil {
		if *d.enumeratorID <= 0 {
			issues = issues.With(Issuef("invalid enumerator id %d", *d.enumeratorID))
		} else if d.id != 0 && *d.enumeratorID == d.id {
			issues = issues.With(Issuef("question %d cannot repeat under itself", d.id))
		}
	}

	switch {
	case d.qtype.HasOptions() && d.options.IsEmpty():
		issues = issues.With(Issuef("no options"))
	case !d.qtype.HasOptions() && len(d.options) > 0:
		issues = issues.With(Issuef("options are only allowed on select questions"))
	}

	return issues.With(d.rules.validate(d.qtype)...)
}

// Equal compares every field.
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.id == o.id &&
		d.name == o.name &&
		d.description == o.description &&
		ptrEqual(d.enumeratorID, o.enumeratorID) &&
		d.pathSegment == o.pathSegment &&
		d.qtype == o.qtype &&
		d.questionText.equal(o.questionText) &&
		d.helpText.equal(o.helpText) &&
		d.rules.equal(o.rules) &&
		d.options.equal(o.options)
}

func (d *Definition) String() string {
	return fmt.Sprintf("%s question %d %q (%s)", d.qtype, d.id, d.name, d.pathSegment)
}
