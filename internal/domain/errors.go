package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested item is not in the current list
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrSourceUnavailable indicates the remote catalog is unreachable or failed
	ErrSourceUnavailable = errors.New("catalog source is unavailable")

	// ErrMalformedPayload indicates the remote catalog returned an unusable body
	ErrMalformedPayload = errors.New("malformed catalog payload")

	// ErrSignInRequired indicates an action needs an active session
	ErrSignInRequired = errors.New("sign in required")

	// ErrEmailRequired indicates a sign-in or registration without an email
	ErrEmailRequired = errors.New("email is required")

	// ErrUsernameRequired indicates a registration without a username
	ErrUsernameRequired = errors.New("username is required")

	// ErrNoTrailer indicates the item has no playable trailer
	ErrNoTrailer = errors.New("trailer unavailable")
)
