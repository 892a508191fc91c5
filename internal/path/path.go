// Package path addresses values inside an applicant document.
//
// A Path is a dot-delimited list of segments such as
// "applicant.household_members[2].name.first". A segment may carry an array
// index ("members[2]") or an unbound array marker ("members[]") used by
// enumerator questions before a concrete entity is selected.
package path

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	separator    = "."
	arraySuffix  = "[]"
	ApplicantKey = "applicant"
)

// Path is an immutable document address. The zero value is the empty path.
type Path struct {
	segments []string
}

// Create parses a dot-delimited path. Surrounding whitespace and empty
// segments are dropped.
func Create(p string) Path {
	var segs []string
	for _, s := range strings.Split(strings.TrimSpace(p), separator) {
		s = strings.TrimSpace(s)
		if s != "" {
			segs = append(segs, s)
		}
	}
	return Path{segments: segs}
}

// Applicant is the root path of every applicant answer.
func Applicant() Path {
	return Create(ApplicantKey)
}

func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Join appends one or more dot-delimited segments.
func (p Path) Join(other string) Path {
	return p.JoinPath(Create(other))
}

func (p Path) JoinPath(other Path) Path {
	segs := make([]string, 0, len(p.segments)+len(other.segments))
	segs = append(segs, p.segments...)
	segs = append(segs, other.segments...)
	return Path{segments: segs}
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return Path{segments: p.Segments()[:len(p.segments)-1]}
}

// KeyName is the last segment stripped of any array suffix.
func (p Path) KeyName() string {
	if len(p.segments) == 0 {
		return ""
	}
	name, _, _ := parseSegment(p.segments[len(p.segments)-1])
	return name
}

// IsArrayElement reports whether the last segment carries a concrete index.
func (p Path) IsArrayElement() bool {
	if len(p.segments) == 0 {
		return false
	}
	_, idx, _ := parseSegment(p.segments[len(p.segments)-1])
	return idx >= 0
}

// IsUnboundArray reports whether the last segment ends with "[]".
func (p Path) IsUnboundArray() bool {
	if len(p.segments) == 0 {
		return false
	}
	_, _, unbound := parseSegment(p.segments[len(p.segments)-1])
	return unbound
}

// AsArrayElement marks the last segment as an unbound array: "a.b" -> "a.b[]".
func (p Path) AsArrayElement() Path {
	if len(p.segments) == 0 || p.IsUnboundArray() {
		return p
	}
	segs := p.Segments()
	name, _, _ := parseSegment(segs[len(segs)-1])
	segs[len(segs)-1] = name + arraySuffix
	return Path{segments: segs}
}

// AtIndex binds the last segment to index i: "a.b[]" or "a.b" -> "a.b[i]".
func (p Path) AtIndex(i int) Path {
	if len(p.segments) == 0 {
		return p
	}
	segs := p.Segments()
	name, _, _ := parseSegment(segs[len(segs)-1])
	segs[len(segs)-1] = fmt.Sprintf("%s[%d]", name, i)
	return Path{segments: segs}
}

// WithoutArrayReference strips any index or marker from the last segment.
func (p Path) WithoutArrayReference() Path {
	if len(p.segments) == 0 {
		return p
	}
	segs := p.Segments()
	name, _, _ := parseSegment(segs[len(segs)-1])
	segs[len(segs)-1] = name
	return Path{segments: segs}
}

func (p Path) String() string {
	return strings.Join(p.segments, separator)
}

func (p Path) Equal(other Path) bool {
	return p.String() == other.String()
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(b []byte) error {
	*p = Create(string(b))
	return nil
}

// Step is one resolved segment: a key and an optional array index.
type Step struct {
	Key     string
	Index   int // -1 when the segment is not indexed
	Unbound bool
}

// Steps resolves every segment into its key and array reference.
func (p Path) Steps() []Step {
	steps := make([]Step, 0, len(p.segments))
	for _, s := range p.segments {
		key, idx, unbound := parseSegment(s)
		steps = append(steps, Step{Key: key, Index: idx, Unbound: unbound})
	}
	return steps
}

// parseSegment splits "name[3]" into ("name", 3, false) and "name[]" into
// ("name", -1, true). Malformed indexes are treated as part of the key.
func parseSegment(s string) (string, int, bool) {
	if strings.HasSuffix(s, arraySuffix) {
		return strings.TrimSuffix(s, arraySuffix), -1, true
	}
	open := strings.LastIndex(s, "[")
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return s, -1, false
	}
	idx, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || idx < 0 {
		return s, -1, false
	}
	return s[:open], idx, false
}
