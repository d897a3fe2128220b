/*
Package errors provides the error kinds returned when growing, pruning and
evaluating trees, together with thin wrappers over cockroachdb/errors so
callers need a single import to build, wrap and inspect them.
*/
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

/*
InvalidInputError is returned when the examples given to an operation violate
its preconditions: an empty example set, or an example without a class.
*/
type InvalidInputError struct {
	Op     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("id3: %s: invalid input: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError returns an InvalidInputError with a stack trace attached.
func NewInvalidInputError(op, reason string) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: reason})
}

/*
ImputationError is returned when a missing value for an attribute cannot be
replaced because no example of the same class observes that attribute.
*/
type ImputationError struct {
	Attribute string
	Class     string
}

func (e *ImputationError) Error() string {
	return fmt.Sprintf("id3: cannot impute attribute %q: no example of class %q observes it", e.Attribute, e.Class)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ImputationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("attribute", e.Attribute).
		Str("class", e.Class).
		Str("type", "ImputationError")
}

// NewImputationError returns an ImputationError with a stack trace attached.
func NewImputationError(attribute, class string) error {
	return errors.WithStack(&ImputationError{Attribute: attribute, Class: class})
}

/*
UnseenValueError is returned by strict evaluation when an example carries a
value for a decision attribute that no training example reaching that node had.
*/
type UnseenValueError struct {
	Attribute string
	Value     string
}

func (e *UnseenValueError) Error() string {
	return fmt.Sprintf("id3: value %q for attribute %q was not seen during training", e.Value, e.Attribute)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *UnseenValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("attribute", e.Attribute).
		Str("value", e.Value).
		Str("type", "UnseenValueError")
}

// NewUnseenValueError returns an UnseenValueError with a stack trace attached.
func NewUnseenValueError(attribute, value string) error {
	return errors.WithStack(&UnseenValueError{Attribute: attribute, Value: value})
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New returns an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}
