package services

import (
	"errors"

	"github.com/u44592/hni/internal/pkg/errs"
)

const (
	DefaultMaxCandidates     = 3
	DefaultSearchRadiusMiles = 3.0
)

// ConversationPolicy carries the tunables of the ordering flow.
type ConversationPolicy struct {
	// MaxCandidates caps the selection numbers accepted in CHOOSING_LOCATION.
	MaxCandidates int

	// SearchRadiusMiles is the neighborhood radius of the nearby search.
	SearchRadiusMiles float64
}

// DefaultConversationPolicy returns the policy used when nothing is configured.
func DefaultConversationPolicy() ConversationPolicy {
	return ConversationPolicy{
		MaxCandidates:     DefaultMaxCandidates,
		SearchRadiusMiles: DefaultSearchRadiusMiles,
	}
}

// Validate checks both values are positive.
func (p ConversationPolicy) Validate() error {
	var errMax, errRadius error
	if p.MaxCandidates < 1 {
		errMax = errs.NewValueIsOutOfRangeError("max candidates", p.MaxCandidates, 1, "unbounded")
	}
	if p.SearchRadiusMiles <= 0 {
		errRadius = errs.NewValueIsOutOfRangeError("search radius miles", p.SearchRadiusMiles, 0, "unbounded")
	}
	return errors.Join(errMax, errRadius)
}
