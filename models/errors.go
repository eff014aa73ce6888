package models

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrCollegeExists     = errors.New("college already exists")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrHasRegistrations  = errors.New("event has existing registrations")
)
