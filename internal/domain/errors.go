package domain

import "errors"

var (
	// ErrSectionNotFound means the section directory does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrStudentNotFound means the netid is not part of the roster.
	ErrStudentNotFound = errors.New("student not found")
	// ErrNoScoresheet means a submission has zero or several score files.
	ErrNoScoresheet = errors.New("no scoresheet")
	// ErrMalformedScoresheet means the scoresheet holds no point tokens.
	ErrMalformedScoresheet = errors.New("malformed scoresheet")
)
