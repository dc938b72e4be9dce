package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// ErrConfigRequired is returned by New when no config is supplied.
var ErrConfigRequired = errors.New("config is required")
