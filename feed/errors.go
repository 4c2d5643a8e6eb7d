package feed

import "errors"

var (
	// ErrAuth means there is no usable session. It halts feed startup.
	ErrAuth = errors.New("not signed in, run `clipwave login`")

	// ErrNetwork wraps any failed backend request.
	ErrNetwork = errors.New("network request failed")

	// ErrValidation is returned before any request is sent.
	ErrValidation = errors.New("invalid input")

	// ErrDiscarded is returned when a response arrives after the feed was left.
	ErrDiscarded = errors.New("feed discarded")
)
