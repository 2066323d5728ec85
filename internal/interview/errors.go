package interview

import "errors"

// Engine error kinds. Each is terminal to the operation that raised it and
// leaves no partial writes behind.
var (
	// ErrSessionNotFound means the referenced session does not exist.
	ErrSessionNotFound = errors.New("interview session not found")

	// ErrQuestionNotFound means the referenced question does not exist in
	// the addressed session.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrForbidden means the session exists but belongs to another user.
	ErrForbidden = errors.New("not the session owner")

	// ErrAlreadyEnded means the session is already COMPLETED or CANCELLED.
	ErrAlreadyEnded = errors.New("interview already ended")

	// ErrAnswerAlreadySubmitted means the addressed question already has a
	// committed answer; a retry must not re-evaluate it.
	ErrAnswerAlreadySubmitted = errors.New("answer already submitted")
)
