package questionsvc

import "errors"

var (
	// ErrAlreadyPersisted is returned by Create for a definition that carries an id.
	ErrAlreadyPersisted = errors.New("question definition already has an id")
	// ErrNotPersisted is returned by Update for a definition without an id.
	ErrNotPersisted = errors.New("question definition is not persisted")
	// ErrQuestionNotFound is returned by Update when the id has no stored question.
	ErrQuestionNotFound = errors.New("question not found")
)
