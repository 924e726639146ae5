package app

import "errors"

var (
	// ErrFetch is returned when the schedule page could not be retrieved
	ErrFetch = errors.New("fetch schedule page")
	// ErrWrite is returned when the calendar could not be written to its destination
	ErrWrite = errors.New("write calendar")
	// ErrInvalidFormat is returned for unsupported export formats
	ErrInvalidFormat = errors.New("invalid format")
)
