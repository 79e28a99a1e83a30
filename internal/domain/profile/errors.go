package profile

import "errors"

var (
	ErrProfileNotFound     = errors.New("Profile not found")
	ErrProfileLookupFailed = errors.New("Failed to fetch profile")
	ErrProfileCreateFailed = errors.New("Failed to create profile")
	ErrEmailExists         = errors.New("Email already registered")
)
