package question

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// DefaultLocale is the fallback for text missing in the requested locale.
var DefaultLocale = language.AmericanEnglish

// LocalizedStrings maps a locale to a translation.
type LocalizedStrings map[language.Tag]string

// Get returns the exact translation for tag.
func (l LocalizedStrings) Get(tag language.Tag) (string, bool) {
	s, ok := l[tag]
	return s, ok
}

// GetOrDefault returns the closest translation for tag, then the
// DefaultLocale translation, then "".
func (l LocalizedStrings) GetOrDefault(tag language.Tag) string {
	if s, ok := l[tag]; ok {
		return s
	}
	if best, ok := closest(l.Locales(), tag); ok {
		return l[best]
	}
	return l[DefaultLocale]
}

// Locales returns the translated locales sorted by tag string.
func (l LocalizedStrings) Locales() []language.Tag {
	tags := make([]language.Tag, 0, len(l))
	for tag := range l {
		tags = append(tags, tag)
	}
	sortTags(tags)
	return tags
}

func (l LocalizedStrings) IsEmpty() bool {
	for _, s := range l {
		if s != "" {
			return false
		}
	}
	return true
}

func (l LocalizedStrings) clone() LocalizedStrings {
	out := make(LocalizedStrings, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

func (l LocalizedStrings) equal(other LocalizedStrings) bool {
	if len(l) != len(other) {
		return false
	}
	for k, v := range l {
		if w, ok := other[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func (l LocalizedStrings) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(l))
	for tag, s := range l {
		m[tag.String()] = s
	}
	return json.Marshal(m)
}

func (l *LocalizedStrings) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(LocalizedStrings, len(m))
	for k, s := range m {
		tag, err := language.Parse(k)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", k, err)
		}
		out[tag] = s
	}
	*l = out
	return nil
}

// LocalizedOptions maps a locale to the ordered option list of a select question.
type LocalizedOptions map[language.Tag][]string

// GetOrDefault mirrors LocalizedStrings.GetOrDefault for option lists.
func (o LocalizedOptions) GetOrDefault(tag language.Tag) []string {
	if opts, ok := o[tag]; ok {
		return append([]string(nil), opts...)
	}
	tags := make([]language.Tag, 0, len(o))
	for t := range o {
		tags = append(tags, t)
	}
	sortTags(tags)
	if best, ok := closest(tags, tag); ok {
		return append([]string(nil), o[best]...)
	}
	return append([]string(nil), o[DefaultLocale]...)
}

func (o LocalizedOptions) IsEmpty() bool {
	for _, opts := range o {
		if len(opts) > 0 {
			return false
		}
	}
	return true
}

func (o LocalizedOptions) clone() LocalizedOptions {
	out := make(LocalizedOptions, len(o))
	for k, v := range o {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (o LocalizedOptions) equal(other LocalizedOptions) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		w, ok := other[k]
		if !ok || len(v) != len(w) {
			return false
		}
		for i := range v {
			if v[i] != w[i] {
				return false
			}
		}
	}
	return true
}

func (o LocalizedOptions) MarshalJSON() ([]byte, error) {
	m := make(map[string][]string, len(o))
	for tag, opts := range o {
		m[tag.String()] = opts
	}
	return json.Marshal(m)
}

func (o *LocalizedOptions) UnmarshalJSON(b []byte) error {
	var m map[string][]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(LocalizedOptions, len(m))
	for k, opts := range m {
		tag, err := language.Parse(k)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", k, err)
		}
		out[tag] = opts
	}
	*o = out
	return nil
}

// closest picks the supported tag that best matches want. Only matches with
// at least High confidence count, so "fr" never falls back to "en".
func closest(supported []language.Tag, want language.Tag) (language.Tag, bool) {
	if len(supported) == 0 {
		return language.Und, false
	}
	_, idx, conf := language.NewMatcher(supported).Match(want)
	if conf < language.High {
		return language.Und, false
	}
	return supported[idx], true
}

func sortTags(tags []language.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
}
