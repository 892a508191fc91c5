package answer

import "fmt"

// ValidationError is a message shown to the applicant next to an answer.
type ValidationError struct {
	Message string `json:"message"`
}

func errorf(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e ValidationError) String() string {
	return e.Message
}

func one(e ValidationError) []ValidationError {
	return []ValidationError{e}
}

// Messages flattens errors to their text.
func Messages(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}
