package domain

import "errors"

var (
	// ErrNotFound means no record exists for the given key or secret key.
	ErrNotFound = errors.New("short link not found")

	// ErrInactive means the record exists but its owner has switched it
	// off. The public redirect surface must not distinguish it from
	// ErrNotFound.
	ErrInactive = errors.New("short link is inactive")

	// ErrDuplicateKey is returned by the store when an insert loses the
	// race for a key or secret key. Callers retry with a fresh draw.
	ErrDuplicateKey = errors.New("key already exists")

	// ErrForbidden means the caller is not the owner of the record.
	ErrForbidden = errors.New("not the owner of this link")

	// ErrKeyspaceExhausted is returned when repeated fresh draws keep
	// colliding. With random 7-character keys this signals a broken
	// random source or store, not a full keyspace.
	ErrKeyspaceExhausted = errors.New("could not mint a unique key")
)
