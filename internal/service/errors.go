package service

import "errors"

// Client-facing errors; the HTTP boundary maps these to status codes.
var (
	// ErrEmailTaken is returned when registering an email that already exists (Conflict)
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrInvalidCredentials is returned on bad email/password or an invalid
	// external token (Unauthorized)
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongProvider is returned when a password operation targets a
	// federated account (BadRequest)
	ErrWrongProvider = errors.New("account uses federated authentication")

	// ErrInvalidResetToken is returned for an unknown or expired reset token (BadRequest)
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrInvalidVerificationToken is returned for an unknown verification token (BadRequest)
	ErrInvalidVerificationToken = errors.New("invalid verification token")

	// ErrValidation is returned for malformed input (BadRequest)
	ErrValidation = errors.New("validation failed")
)
