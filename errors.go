package gslides

import "errors"

// Errors returned by the codec and the request builders. Remote errors are
// never translated into these; they surface unchanged from the transport.
var (
	// ErrSchemaMismatch reports wire JSON whose structure does not fit the
	// model: a required field is missing or a value has the wrong JSON type.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnsupportedVariant reports a union with zero or more than one
	// populated branch, or a branch that lacks a field its target
	// operation requires.
	ErrUnsupportedVariant = errors.New("unsupported variant")

	// ErrMissingReply reports a batch update response whose replies do not
	// carry the object id the submitted request should have produced.
	ErrMissingReply = errors.New("missing reply")
)
