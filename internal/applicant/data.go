// Package applicant holds the per-applicant answer document.
package applicant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/Alijeyrad/uat_backend/internal/path"
)

// DateLayout is the storage format of date scalars.
const DateLayout = "2006-01-02"

// EntityNameKey is the key under each repeated entity that stores its name.
const EntityNameKey = "entity_name"

var preferredLocalePath = path.Applicant().Join("preferred_locale")

var ErrInvalidDocument = errors.New("invalid applicant document")

// Data is a semi-structured answer document addressed by path.Path.
//
// Writes are the only mutation; the last write to a path wins. A path that
// was written with an empty value exists (HasPath) but holds no value
// (HasValueAtPath). Reading a path with the wrong scalar type reports
// absence. Data is owned by a single request and is not safe for concurrent use.
type Data struct {
	id   uuid.UUID
	root map[string]any
}

// New returns an empty document with a fresh identifier.
func New() *Data {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Data{id: id, root: map[string]any{path.ApplicantKey: map[string]any{}}}
}

// FromJSON decodes a stored document. Integers keep their integer type.
func FromJSON(id uuid.UUID, doc []byte) (*Data, error) {
	d := &Data{id: id, root: map[string]any{}}
	if len(bytes.TrimSpace(doc)) == 0 {
		d.root[path.ApplicantKey] = map[string]any{}
		return d, nil
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&d.root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if d.root == nil {
		d.root = map[string]any{}
	}
	return d, nil
}

func (d *Data) ID() uuid.UUID {
	return d.id
}

// MarshalJSON encodes the document tree.
func (d *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.root)
}

// PreferredLocale returns the applicant's locale, en-US when unset or invalid.
func (d *Data) PreferredLocale() language.Tag {
	s, ok := d.ReadString(preferredLocalePath)
	if !ok {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func (d *Data) SetPreferredLocale(tag language.Tag) {
	d.PutString(preferredLocalePath, tag.String())
}

// HasPath reports whether p was ever written, even with an empty value.
func (d *Data) HasPath(p path.Path) bool {
	_, ok := d.lookup(p)
	return ok
}

// HasValueAtPath reports whether p holds a non-empty value.
func (d *Data) HasValueAtPath(p path.Path) bool {
	v, ok := d.lookup(p)
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}

// PutString writes a string scalar. An empty string records the path as
// answered with no value.
func (d *Data) PutString(p path.Path, value string) {
	if value == "" {
		d.put(p, nil)
		return
	}
	d.put(p, value)
}

func (d *Data) PutLong(p path.Path, value int64) {
	d.put(p, value)
}

func (d *Data) PutDate(p path.Path, value time.Time) {
	d.put(p, value.UTC().Format(DateLayout))
}

// PutStringList writes an ordered list of strings, e.g. multi-select answers.
func (d *Data) PutStringList(p path.Path, values []string) {
	list := make([]any, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}
	d.put(p, list)
}

// PutRepeatedEntities writes enumerator entity names under p. Existing
// entities keep their nested answers; surplus entities are removed.
func (d *Data) PutRepeatedEntities(p path.Path, names []string) {
	base := p.WithoutArrayReference()
	existing, _ := d.lookup(base)
	old, _ := existing.([]any)

	list := make([]any, 0, len(names))
	for i, name := range names {
		entity := map[string]any{}
		if i < len(old) {
			if m, ok := old[i].(map[string]any); ok {
				entity = m
			}
		}
		entity[EntityNameKey] = name
		list = append(list, entity)
	}
	d.put(base, list)
}

// ReadString returns a non-empty string scalar.
func (d *Data) ReadString(p path.Path) (string, bool) {
	v, ok := d.lookup(p)
	if !ok {
		return "", false
	}
	s, isString := v.(string)
	if !isString || s == "" {
		return "", false
	}
	return s, true
}

// ReadLong returns an integer scalar.
func (d *Data) ReadLong(p path.Path) (int64, bool) {
	v, ok := d.lookup(p)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// ReadDate returns a date scalar.
func (d *Data) ReadDate(p path.Path) (time.Time, bool) {
	s, ok := d.ReadString(p)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ReadStringList returns a list of strings; non-string elements make the
// whole list unreadable.
func (d *Data) ReadStringList(p path.Path) ([]string, bool) {
	v, ok := d.lookup(p)
	if !ok {
		return nil, false
	}
	list, isList := v.([]any)
	if !isList {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, isString := item.(string)
		if !isString {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// ReadRepeatedEntities returns the entity names stored under p in order.
// An entity without a readable name yields an empty string.
func (d *Data) ReadRepeatedEntities(p path.Path) []string {
	v, ok := d.lookup(p.WithoutArrayReference())
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		name := ""
		if m, isMap := item.(map[string]any); isMap {
			name, _ = m[EntityNameKey].(string)
		}
		names = append(names, name)
	}
	return names
}

func (d *Data) lookup(p path.Path) (any, bool) {
	if p.IsEmpty() {
		return nil, false
	}
	var cur any = d.root
	for _, step := range p.Steps() {
		if step.Unbound {
			return nil, false
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[step.Key]
		if !ok {
			return nil, false
		}
		if step.Index >= 0 {
			list, isList := cur.([]any)
			if !isList || step.Index >= len(list) {
				return nil, false
			}
			cur = list[step.Index]
		}
	}
	return cur, true
}

func (d *Data) put(p path.Path, value any) {
	steps := p.Steps()
	if len(steps) == 0 {
		return
	}
	if d.root == nil {
		d.root = map[string]any{}
	}
	cur := d.root
	for i, step := range steps {
		last := i == len(steps)-1
		if step.Index < 0 {
			if last {
				cur[step.Key] = value
				return
			}
			next, ok := cur[step.Key].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[step.Key] = next
			}
			cur = next
			continue
		}

		list, _ := cur[step.Key].([]any)
		for len(list) <= step.Index {
			list = append(list, map[string]any{})
		}
		cur[step.Key] = list
		if last {
			list[step.Index] = value
			return
		}
		next, ok := list[step.Index].(map[string]any)
		if !ok {
			next = map[string]any{}
			list[step.Index] = next
		}
		cur = next
	}
}
