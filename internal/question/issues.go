package question

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Issue is a user-facing problem found while validating or saving a
// definition. Issues are returned as data, never as errors.
type Issue struct {
	Message string `json:"message"`
}

func Issuef(format string, args ...any) Issue {
	return Issue{Message: fmt.Sprintf(format, args...)}
}

// Issues is an ordered set: adding a message twice keeps the first.
type Issues []Issue

// With returns a new set holding is followed by more, without duplicates.
func (is Issues) With(more ...Issue) Issues {
	all := make(Issues, 0, len(is)+len(more))
	all = append(all, is...)
	all = append(all, more...)
	return lo.Uniq(all)
}

func (is Issues) Empty() bool {
	return len(is) == 0
}

func (is Issues) Messages() []string {
	return lo.Map(is, func(i Issue, _ int) string { return i.Message })
}

func (is Issues) String() string {
	return strings.Join(is.Messages(), "; ")
}
