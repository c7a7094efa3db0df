package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrPrerequisiteFailed aborts a collection run before any fact row is
	// written, because the rows those facts reference could not be stored.
	ErrPrerequisiteFailed = errors.New("prerequisite rows not stored")
	// ErrEntryHistoryMissing marks an entry whose upstream history was empty.
	ErrEntryHistoryMissing = errors.New("entry history missing")
	// ErrRecordRejected marks a normalized record without a usable league or entry id.
	ErrRecordRejected = errors.New("record rejected")
)
