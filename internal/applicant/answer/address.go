package answer

import (
	"regexp"

	"github.com/Alijeyrad/uat_backend/internal/path"
	"github.com/Alijeyrad/uat_backend/internal/question"
)

// zipPattern accepts 12345 and 12345-6789.
var zipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// AddressView is the answer to an ADDRESS question. Every part is required
// once answered, and the zip code must also be well formed.
type AddressView struct {
	q      *ApplicantQuestion
	street cached[string]
	city   cached[string]
	state  cached[string]
	zip    cached[string]
}

func (q *ApplicantQuestion) AsAddress() *AddressView {
	q.assertType("ADDRESS", question.TypeAddress)
	return &AddressView{q: q}
}

func (v *AddressView) StreetPath() path.Path { return v.q.scalarPath(question.ScalarStreet) }
func (v *AddressView) CityPath() path.Path   { return v.q.scalarPath(question.ScalarCity) }
func (v *AddressView) StatePath() path.Path  { return v.q.scalarPath(question.ScalarState) }
func (v *AddressView) ZipPath() path.Path    { return v.q.scalarPath(question.ScalarZip) }

func (v *AddressView) StreetValue() (string, bool) {
	return v.street.get(func() (string, bool) { return v.q.data.ReadString(v.StreetPath()) })
}

func (v *AddressView) CityValue() (string, bool) {
	return v.city.get(func() (string, bool) { return v.q.data.ReadString(v.CityPath()) })
}

func (v *AddressView) StateValue() (string, bool) {
	return v.state.get(func() (string, bool) { return v.q.data.ReadString(v.StatePath()) })
}

func (v *AddressView) ZipValue() (string, bool) {
	return v.zip.get(func() (string, bool) { return v.q.data.ReadString(v.ZipPath()) })
}

func (v *AddressView) StreetErrors() []ValidationError {
	return v.required(v.StreetPath(), v.StreetValue, "Street is required.")
}

func (v *AddressView) CityErrors() []ValidationError {
	return v.required(v.CityPath(), v.CityValue, "City is required.")
}

func (v *AddressView) StateErrors() []ValidationError {
	return v.required(v.StatePath(), v.StateValue, "State is required.")
}

func (v *AddressView) ZipErrors() []ValidationError {
	errs := v.required(v.ZipPath(), v.ZipValue, "Zip code is required.")
	if zip, ok := v.ZipValue(); ok && !zipPattern.MatchString(zip) {
		errs = append(errs, errorf("Invalid zip code."))
	}
	return errs
}

func (v *AddressView) required(p path.Path, value func() (string, bool), message string) []ValidationError {
	if !v.q.data.HasPath(p) {
		return nil
	}
	if _, ok := value(); !ok {
		return one(errorf("%s", message))
	}
	return nil
}

func (v *AddressView) QuestionErrors() []ValidationError {
	return nil
}

func (v *AddressView) TypeSpecificErrors() []ValidationError {
	var errs []ValidationError
	errs = append(errs, v.StreetErrors()...)
	errs = append(errs, v.CityErrors()...)
	errs = append(errs, v.StateErrors()...)
	errs = append(errs, v.ZipErrors()...)
	return errs
}
