package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when the unique index on users.email rejects an insert.
	ErrDuplicateEmail = errors.New("email already registered")

	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound covers both a missing task and a task owned by someone
	// else. The two cases are kept indistinguishable so non-owners cannot
	// probe for existing ids.
	ErrTaskNotFound = errors.New("task not found")
)
