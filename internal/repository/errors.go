// Package repository contains the data access layer for users and
// movies. Lookups for absent rows return the sentinel errors defined
// here rather than raw driver errors, so handlers can distinguish
// "entity does not exist" (a normal outcome, usually an HTTP 404)
// from a storage engine failure (always an HTTP 500). Any error that
// is not one of these sentinels wraps the underlying driver error.
package repository

import "errors"

// ErrUserNotFound is returned when a user id does not match any row.
// It is also returned by MovieRepo.Create when the given user_id
// violates the foreign key on movies.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when a movie id does not match any row.
var ErrMovieNotFound = errors.New("movie not found")
