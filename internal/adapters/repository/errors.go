package repository

import "errors"

// Sentinel kinds for profile store errors.
var (
	ErrNotFound  = errors.New("profile not found")
	ErrEmptyID   = errors.New("empty profile id")
	ErrRoleUnset = errors.New("profile role unset")
)
