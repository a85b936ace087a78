package internal

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds returned by ledger operations. Match them with errors.Is;
// the concrete error carries the context (field, record index, id).
var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrFormat             = errors.New("format error")
	ErrParse              = errors.New("parse error")
	ErrInvalidEnumValue   = errors.New("invalid enum value")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrKeyNotFound        = errors.New("key not found")
	ErrInvariantViolation = errors.New("invariant violation")
)

// failf builds a new error of the given kind.
func failf(kind error, format string, args ...any) error {
	return errors.Wrapf(kind, format, args...)
}

// wrapf reports cause as an error of the given kind. The cause's message is
// kept; its identity is not.
func wrapf(kind error, cause error, format string, args ...any) error {
	return errors.Wrapf(kind, "%s: %v", fmt.Sprintf(format, args...), cause)
}

// wrap adds context to err, keeping whatever kind it already carries.
func wrap(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
