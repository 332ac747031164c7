// Package draft provides the in-progress order a user builds over several text
// messages.
//
// The package includes:
//   - Draft: the aggregate root, one per user, persisted between turns
//   - Phase: the position of the draft in the conversation
//   - Candidate: a provider location offered for selection together with its
//     single representative menu item
//
// Key business rules:
//   - Candidate locations and candidate items are parallel by construction
//   - A chosen location exists only in the CONFIRM_OR_REDO phase
//   - Selected items form a set keyed by menu item id
//   - Version supports optimistic concurrency in the draft store
package draft
