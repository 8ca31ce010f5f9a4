package services

import "errors"

// Sentinels returned by the services. Handlers map them to HTTP statuses.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSectionCycle indicates a parent assignment that would make a section its own ancestor.
	ErrSectionCycle = errors.New("section hierarchy cycle")

	// ErrBookmarkOutOfScope indicates a bookmark anchored at a page outside the section's archive.
	ErrBookmarkOutOfScope = errors.New("bookmark page outside section archive")

	// ErrInvalidPassword indicates failed password verification.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrResetTokenInvalid indicates an unknown or expired password reset token.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
)
