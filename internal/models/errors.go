package models

import "errors"

// Domain errors shared across handlers. Handlers translate these to HTTP
// status codes; repositories return them so callers don't have to inspect
// gorm internals.
var (
	// ErrNotFound means a referenced Client/Deal/Job/Task/User id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidStage means a deal stage outside the recognized pipeline set.
	ErrInvalidStage = errors.New("invalid deal stage")

	// ErrInvalidStatus means a task status outside the active vocabulary.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrConstraintViolation means a uniqueness or referential-integrity
	// constraint would be broken (duplicate Job for a Deal, deleting a
	// Client that still has Deals or Jobs).
	ErrConstraintViolation = errors.New("constraint violation")
)
