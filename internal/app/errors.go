package service

import (
	"errors"
)

// Sentinel errors for match queries.
var (
	// ErrNotStudent is returned when a teammate query names a profile
	// that exists but is not a student.
	ErrNotStudent = errors.New("profile is not a student")

	// ErrNotProfessional is returned when a candidate query names a
	// profile that exists but is not a professional.
	ErrNotProfessional = errors.New("profile is not a professional")
)
