package decision

import "errors"

var (
	// ErrModelUnavailable marks a transport or timeout failure that
	// persisted through the single retry. Never downgraded to a default
	// recommendation.
	ErrModelUnavailable = errors.New("decision model unavailable")

	// ErrAmbiguousDecision marks a model response with zero or more than
	// one distinct decision token. Never silently defaulted to HOLD.
	ErrAmbiguousDecision = errors.New("ambiguous model decision")
)
