// Package kernel holds the value objects shared by every aggregate of the meal
// ordering domain: UUID identifiers, Money in cents, postal Address and
// GeoPoint coordinates used by the nearby-provider search.
//
// Value objects that carry invariants embed guard.ConstructorGuard, so a zero
// value fails Validate and cannot slip into an aggregate unnoticed.
package kernel
