package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a command, query or value object as built by its
// constructor. Embed it as a field and set it with NewConstructorGuard; a zero
// value struct then fails Validate.
//
// Example:
//
//	type ClaimAttemptCommand struct {
//	    attemptID kernel.UUID
//	    staffID   kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c ClaimAttemptCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimAttemptCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
