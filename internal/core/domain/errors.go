package domain

import "errors"

// ErrLocationUnavailable is returned when no acceptable sensor fix could be
// obtained. It is the one failure that crosses the subsystem boundary: the
// policy is to fail rather than guess from IP, locale, or timezone, so the
// caller must be told to ask the user for a location.
var ErrLocationUnavailable = errors.New("location unavailable")

// ErrNotFound is returned by repositories for missing catalog rows.
var ErrNotFound = errors.New("not found")
