package domain

import "errors"

var (
	// ErrActivityNotFound is returned when no activity matches the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyEnrolled is returned when the email is already on the roster.
	ErrAlreadyEnrolled = errors.New("student already signed up")
	// ErrNotEnrolled is returned when unregistering an email that is not on the roster.
	ErrNotEnrolled = errors.New("student is not registered for this activity")
	// ErrEnrollmentConflict indicates the roster update modified no documents
	// despite the precondition check passing, e.g. a concurrent writer won.
	ErrEnrollmentConflict = errors.New("roster update modified no documents")
	// ErrStoreUnavailable wraps transient store failures (network, timeout) so
	// the boundary can report them separately from genuine not-found conditions.
	ErrStoreUnavailable = errors.New("activity store unavailable")
)
