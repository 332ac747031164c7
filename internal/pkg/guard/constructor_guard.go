// Package guard provides ConstructorGuard, a marker embedded in value objects,
// aggregates and commands so that zero values built outside their constructor
// fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is only true when produced by NewConstructorGuard.
//
//	type ProcessMessageCommand struct {
//	    userID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c ProcessMessageCommand) Validate() error {
//	    return c.guard.Validate(ErrProcessMessageCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as built by its constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns err (or ErrDefaultConstructorGuard when err is nil) for a zero-value guard.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
