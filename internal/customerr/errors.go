package customerr

import (
	"github.com/pkg/errors"
)

var (
	// ErrConflict is returned when an atomic update kept losing to concurrent writers.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrDuplicateID is returned when a transaction id is already present in the user's list.
	ErrDuplicateID = errors.New("duplicate transaction id")
)

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Field string
	Err   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err
	}
	return e.Field + ": " + e.Err
}

// PersistenceError means the storage layer rejected a read or a write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Cause() error {
	return e.Err
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewValidation(field, msg string) error {
	return &ValidationError{Field: field, Err: msg}
}

func NewPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}
