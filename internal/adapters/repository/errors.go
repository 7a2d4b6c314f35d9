package repository

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrAlreadySignedUp     = errors.New("student already signed up")
	ErrActivityFull        = errors.New("activity is full")
	ErrParticipantNotFound = errors.New("participant not found")
)
