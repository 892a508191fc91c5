package answer

import (
	"github.com/samber/lo"

	"github.com/Alijeyrad/uat_backend/internal/applicant"
	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// Bind binds every question in defs to data. Top-level questions sit at the
// applicant root. Questions repeated under an enumerator are bound once per
// entity the applicant listed, nesting as deep as the enumerators do. A
// repeated question whose enumerator is not in defs is skipped.
func Bind(defs []*question.Definition, data *applicant.Data, opts ...Option) []*ApplicantQuestion {
	children := lo.GroupBy(lo.Filter(defs, isRepeated), enumeratorOf)
	roots := lo.Reject(defs, isRepeated)

	var out []*ApplicantQuestion
	var bind func(defs []*question.Definition, context path.Path)
	bind = func(defs []*question.Definition, context path.Path) {
		for _, def := range defs {
			q := New(def, data, context, opts...)
			out = append(out, q)
			if !def.IsEnumerator() {
				continue
			}
			nested := children[def.ID()]
			if len(nested) == 0 {
				continue
			}
			for _, entity := range q.AsEnumerator().EntityContexts() {
				bind(nested, entity)
			}
		}
	}
	bind(roots, path.Applicant())
	return out
}

func isRepeated(d *question.Definition, _ int) bool {
	_, ok := d.EnumeratorID()
	return ok
}

func enumeratorOf(d *question.Definition) int64 {
	id, _ := d.EnumeratorID()
	return id
}
