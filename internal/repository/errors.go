package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateFirebaseUID is returned when an external identity is already
	// linked to another account; callers treat it as "retry the UID lookup"
	ErrDuplicateFirebaseUID = errors.New("firebase uid already linked to an account")
)
