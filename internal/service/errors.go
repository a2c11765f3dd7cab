package service

import "errors"

var (
	// ErrNotFound is returned when the target entity does not exist in
	// the caller's household.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for a bad email/password pair
	// and for unknown accounts, so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already
	// has a profile.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken is returned for expired, used, or unknown
	// password reset tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSelfRemoval is returned when an admin tries to remove their
	// own membership.
	ErrSelfRemoval = errors.New("cannot remove yourself")
)
