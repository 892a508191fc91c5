package question

import (
	"fmt"
	"strings"
)

// Type is the closed set of question kinds.
type Type string

const (
	TypeAddress     Type = "ADDRESS"
	TypeCheckbox    Type = "CHECKBOX"
	TypeDate        Type = "DATE"
	TypeDropdown    Type = "DROPDOWN"
	TypeEnumerator  Type = "ENUMERATOR"
	TypeName        Type = "NAME"
	TypeNumber      Type = "NUMBER"
	TypePhone       Type = "PHONE"
	TypeRadioButton Type = "RADIO_BUTTON"
	TypeText        Type = "TEXT"
)

var allTypes = []Type{
	TypeAddress,
	TypeCheckbox,
	TypeDate,
	TypeDropdown,
	TypeEnumerator,
	TypeName,
	TypeNumber,
	TypePhone,
	TypeRadioButton,
	TypeText,
}

// Types lists every supported question type.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType accepts a type name in any letter case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unsupported question type %q", s)
	}
	return t, nil
}

func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsSingleSelect reports whether answers are one choice among options.
func (t Type) IsSingleSelect() bool {
	return t == TypeDropdown || t == TypeRadioButton
}

// HasOptions reports whether the type carries a localized option list.
func (t Type) HasOptions() bool {
	return t.IsSingleSelect() || t == TypeCheckbox
}

func (t Type) String() string {
	return string(t)
}

// ScalarType is the storage type of one answer leaf.
type ScalarType string

const (
	ScalarDate       ScalarType = "DATE"
	ScalarLong       ScalarType = "LONG"
	ScalarString     ScalarType = "STRING"
	ScalarStringList ScalarType = "LIST_OF_STRINGS"
)

// Scalar names used under a question's path.
const (
	ScalarStreet     = "street"
	ScalarCity       = "city"
	ScalarState      = "state"
	ScalarZip        = "zip"
	ScalarSelections = "selections"
	ScalarDateValue  = "date"
	ScalarSelection  = "selection"
	ScalarFirstName  = "first"
	ScalarMiddleName = "middle"
	ScalarLastName   = "last"
	ScalarNumber     = "number"
	ScalarPhone      = "phone"
	ScalarText       = "text"
)

// Scalars maps each scalar name of a question type to its storage type.
// Enumerator answers are repeated entities and have no scalars of their own.
func (t Type) Scalars() map[string]ScalarType {
	switch t {
	case TypeAddress:
		return map[string]ScalarType{
			ScalarStreet: ScalarString,
			ScalarCity:   ScalarString,
			ScalarState:  ScalarString,
			ScalarZip:    ScalarString,
		}
	case TypeCheckbox:
		return map[string]ScalarType{ScalarSelections: ScalarStringList}
	case TypeDate:
		return map[string]ScalarType{ScalarDateValue: ScalarDate}
	case TypeDropdown, TypeRadioButton:
		return map[string]ScalarType{ScalarSelection: ScalarString}
	case TypeName:
		return map[string]ScalarType{
			ScalarFirstName:  ScalarString,
			ScalarMiddleName: ScalarString,
			ScalarLastName:   ScalarString,
		}
	case TypeNumber:
		return map[string]ScalarType{ScalarNumber: ScalarLong}
	case TypePhone:
		return map[string]ScalarType{ScalarPhone: ScalarString}
	case TypeText:
		return map[string]ScalarType{ScalarText: ScalarString}
	default:
		return map[string]ScalarType{}
	}
}
