package catalog

import (
	"sort"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/version"
)

// ActiveAndDraft shows, per question name, what is published and what is
// being edited. Admin listings use it to flag questions with pending edits.
type ActiveAndDraft struct {
	active map[string]*question.Definition
	draft  map[string]*question.Definition
	names  []string
}

func newActiveAndDraft(active, draft *version.Version) *ActiveAndDraft {
	ad := &ActiveAndDraft{
		active: make(map[string]*question.Definition, active.Len()),
		draft:  make(map[string]*question.Definition, draft.Len()),
	}
	seen := map[string]struct{}{}
	for _, q := range active.Questions() {
		ad.active[q.Name()] = q
		seen[q.Name()] = struct{}{}
	}
	for _, q := range draft.Questions() {
		ad.draft[q.Name()] = q
		seen[q.Name()] = struct{}{}
	}
	for name := range seen {
		ad.names = append(ad.names, name)
	}
	sort.Strings(ad.names)
	return ad
}

// Names lists every question name in either version, sorted.
func (ad *ActiveAndDraft) Names() []string {
	return append([]string(nil), ad.names...)
}

func (ad *ActiveAndDraft) Active(name string) (*question.Definition, bool) {
	q, ok := ad.active[name]
	return q, ok
}

func (ad *ActiveAndDraft) Draft(name string) (*question.Definition, bool) {
	q, ok := ad.draft[name]
	return q, ok
}

// HasDraftEdit reports whether name is both published and edited in the draft.
func (ad *ActiveAndDraft) HasDraftEdit(name string) bool {
	_, inActive := ad.active[name]
	_, inDraft := ad.draft[name]
	return inActive && inDraft
}
