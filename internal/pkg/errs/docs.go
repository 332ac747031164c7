// Package errs provides the typed errors shared by the domain, application and
// adapter layers.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrVersionIsInvalid) with a struct
// carrying the offending parameter and an optional cause. Unwrap returns the
// sentinel, so callers classify failures with errors.Is:
//
//	d, err := drafts.GetByUser(ctx, userID)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // user is idle
//	}
//
// ErrVersionIsInvalid marks optimistic concurrency conflicts raised by the
// draft store when two turns for the same user race.
package errs
