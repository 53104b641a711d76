package viewer

import (
	"errors"
	"fmt"
)

// Configuration errors. None of them can occur while handling keys.
var (
	// ErrOutOfRange indicates a settings value outside its slot's domain.
	ErrOutOfRange = errors.New("viewer: value out of range")

	// ErrKeyCollision indicates one character bound to two actions.
	ErrKeyCollision = errors.New("viewer: key bound more than once")

	// ErrInvalidKey indicates a binding that is not a single character.
	ErrInvalidKey = errors.New("viewer: binding must be a single character")

	// ErrUnknownAction indicates a key override naming no action.
	ErrUnknownAction = errors.New("viewer: unknown action")

	// ErrNoScenes indicates an empty scene table.
	ErrNoScenes = errors.New("viewer: scene table is empty")

	// ErrMissingCollaborator indicates a nil simulation or renderer.
	ErrMissingCollaborator = errors.New("viewer: simulation and renderer are required")
)

// SlotError reports a rejected settings value.
type SlotError struct {
	Slot    Slot
	Value   int
	Wrapped error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s = %d: %v", e.Slot, e.Value, e.Wrapped)
}

func (e *SlotError) Unwrap() error {
	return e.Wrapped
}

// KeyCollisionError names the two bindings sharing a character.
type KeyCollisionError struct {
	Key           string
	First, Second string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("viewer: key %q bound to both %s and %s", e.Key, e.First, e.Second)
}

func (e *KeyCollisionError) Unwrap() error {
	return ErrKeyCollision
}
