package catalog

import "errors"

var (
	ErrLifecycleStage   = errors.New("version has the wrong lifecycle stage")
	ErrQuestionNotFound = errors.New("question not found")
	ErrMissingVersion   = errors.New("active and draft versions are both required")
)
