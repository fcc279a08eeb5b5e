package typesystem

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPayload = errors.New("concrete type requires a value")
	ErrInvalidTag     = errors.New("invalid type")
	ErrInvalidCode    = errors.New("invalid type code")
)

// SymbolNotFoundError indicates a symbol was not found
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol not found: %s", e.Name)
}

func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// TypeMismatchError is returned when a payload is read through an accessor
// whose kind differs from the stored tag, or when a value is not admitted
// by a binding's declared type.
type TypeMismatchError struct {
	Op   string
	Want TypeTag
	Got  TypeTag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s wants %s, have %s", e.Op, e.Want, e.Got)
}

func NewTypeMismatchError(op string, want, got TypeTag) *TypeMismatchError {
	return &TypeMismatchError{Op: op, Want: want, Got: got}
}

// IsTypeMismatch reports whether err carries a *TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var tm *TypeMismatchError
	return errors.As(err, &tm)
}
